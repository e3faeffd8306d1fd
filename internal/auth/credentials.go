// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"

	"terolib/internal/store"
)

// CredentialStore holds the single shared admin password. The value is
// stored as plain text under its own key; until one is stored, the
// configured default applies.
type CredentialStore struct {
	kv       store.KV
	fallback string

	// mu makes Change an atomic compare-and-set.
	mu sync.Mutex
}

// NewCredentialStore creates a CredentialStore with the given default.
func NewCredentialStore(kv store.KV, defaultPassword string) *CredentialStore {
	return &CredentialStore{kv: kv, fallback: defaultPassword}
}

// Current returns the password in force.
func (c *CredentialStore) Current(ctx context.Context) (string, error) {
	raw, err := c.kv.Get(ctx, store.KeyAdminPass)
	if errors.Is(err, store.ErrNotFound) {
		return c.fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("load admin password: %w", err)
	}
	return string(raw), nil
}

// Verify reports whether password equals the current one.
func (c *CredentialStore) Verify(ctx context.Context, password string) (bool, error) {
	current, err := c.Current(ctx)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(current), []byte(password)) == 1, nil
}

// Change replaces the password with next when old matches the current
// one. A mismatch returns ErrInvalidPassword and changes nothing.
func (c *CredentialStore) Change(ctx context.Context, old, next string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ok, err := c.Verify(ctx, old)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidPassword
	}
	return c.Set(ctx, next)
}

// Set stores next unconditionally. Used by the admin CLI.
func (c *CredentialStore) Set(ctx context.Context, next string) error {
	if next == "" {
		return ErrEmptyPassword
	}
	if err := c.kv.Set(ctx, store.KeyAdminPass, []byte(next)); err != nil {
		return fmt.Errorf("save admin password: %w", err)
	}
	return nil
}
