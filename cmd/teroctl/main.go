// Package main provides teroctl, the administration CLI for the TERO
// portal. It works directly on the configured persistent store, so it
// can repair state while the server is down.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"terolib/internal/config"
	"terolib/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if err := rootCmd(openStore).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// errMemoryStore is returned when the environment selects the in-process
// store, which would drop every change when teroctl exits.
var errMemoryStore = errors.New("teroctl needs a durable store (STORE_BACKEND=valkey or postgres)")

// openStore opens the store selected by the environment.
func openStore() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.StoreBackend == config.BackendMemory {
		return nil, errMemoryStore
	}
	conn, err := store.Open(cfg, nil)
	if err != nil {
		return nil, err
	}
	return &env{kv: conn.KV, locale: cfg.Locale, defaultPassword: cfg.AdminDefaultPassword, close: conn.Close}, nil
}
