// Package main is the entry point for the TERO portal server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"terolib/internal/ai"
	"terolib/internal/auth"
	"terolib/internal/catalog"
	"terolib/internal/chat"
	"terolib/internal/config"
	"terolib/internal/dashboard"
	"terolib/internal/library"
	"terolib/internal/metrics"
	"terolib/internal/portal"
	"terolib/internal/router"
	"terolib/internal/session"
	"terolib/internal/store"
	"terolib/internal/theme"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: JSON in production, text in development.
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.Env == "production" {
		opts.Level = slog.LevelInfo
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"store", cfg.StoreBackend,
		"sessions", cfg.SessionBackend,
	)

	m := metrics.New()

	// Open the persistent store (memory, Valkey or Postgres).
	conn, err := store.Open(cfg, m)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	validate := validator.New()
	files := library.NewRegistry(conn.KV, validate, library.NewDateFormatter(cfg.Locale))

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := files.Seed(context.Background()); err != nil {
			slog.Error("failed to seed sample files", "error", err)
			os.Exit(1)
		}
	}

	// Initialize the AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		"gemini":  {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
	})
	if len(aiRegistry.Available()) == 0 {
		slog.Warn("no ai provider configured, chat will answer with an apology")
	}
	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	app := portal.New(portal.Deps{
		Catalog:   catalog.NewStore(conn.KV),
		Files:     files,
		Themes:    theme.NewRegistry(conn.KV, validate),
		Creds:     auth.NewCredentialStore(conn.KV, cfg.AdminDefaultPassword),
		Assistant: chat.NewAssistant(aiRegistry, m.ObserveChat),
		Dashboard: dashboard.New(files),
		Validate:  validate,
	})
	if err := app.Init(context.Background()); err != nil {
		slog.Error("failed to load portal state", "error", err)
		os.Exit(1)
	}

	// Session store: Valkey when configured, otherwise process memory.
	// In non-development environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	var backend session.Backend = session.NewMemory()
	if cfg.SessionBackend == config.BackendValkey {
		backend = session.NewValkey(conn.Valkey)
	}
	sessionStore := session.NewStore(backend, secureCookies)

	// Set up the Chi router with all middleware and routes.
	r, stopRouter := router.New(app, sessionStore, m, router.Options{
		SecureCookies: secureCookies,
		ChatRateLimit: cfg.ChatRateLimit,
	})
	defer stopRouter()

	// Create the HTTP server with sensible timeouts.
	// WriteTimeout must accommodate the chat endpoint, which waits on the
	// provider (typically 10-30s, up to 60s).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
