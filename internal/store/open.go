// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"terolib/internal/cache"
	"terolib/internal/config"
	"terolib/internal/database"
)

// Conn is the store a configuration selects together with the
// connections opened for it.
type Conn struct {
	KV KV
	// Valkey is set whenever the store or the session backend uses it.
	Valkey *redis.Client
	DB     *sql.DB
}

// Open connects the configured store backend, runs migrations for
// postgres, and namespaces keys with the configured prefix. Operations
// are reported to obs when it is non-nil.
func Open(cfg *config.Config, obs Observer) (*Conn, error) {
	c := &Conn{}

	if cfg.NeedsValkey() {
		client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			return nil, err
		}
		c.Valkey = client
	}

	var backend KV
	switch cfg.StoreBackend {
	case config.BackendValkey:
		backend = NewValkey(c.Valkey)
	case config.BackendPostgres:
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			c.Close()
			return nil, err
		}
		c.DB = db
		if err := database.Migrate(db); err != nil {
			c.Close()
			return nil, err
		}
		backend = NewPostgres(db)
	case config.BackendMemory:
		slog.Warn("using in-memory store, state is lost on restart")
		backend = NewMemory()
	default:
		c.Close()
		return nil, fmt.Errorf("store: unknown backend %q", cfg.StoreBackend)
	}

	c.KV = Instrument(WithPrefix(backend, cfg.StorePrefix), obs)
	slog.Info("store opened", "backend", cfg.StoreBackend, "prefix", cfg.StorePrefix)
	return c, nil
}

// Close releases every open connection.
func (c *Conn) Close() {
	if c.Valkey != nil {
		c.Valkey.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
