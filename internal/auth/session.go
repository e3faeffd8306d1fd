// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth implements the admin gate: a two-state session that
// becomes AUTHENTICATED when the shared admin password is presented, and
// the store that holds that password.
package auth

import (
	"context"
	"errors"
	"log/slog"
)

var (
	ErrInvalidPassword  = errors.New("auth: invalid password")
	ErrNotAuthenticated = errors.New("auth: not authenticated")
	ErrEmptyPassword    = errors.New("auth: empty password")
)

// State is the admin session state.
type State string

const (
	Anonymous     State = "ANONYMOUS"
	Authenticated State = "AUTHENTICATED"
)

// Session is one visitor's admin session. The zero value behaves as
// ANONYMOUS.
type Session struct {
	State State `json:"state"`
}

// IsAuthenticated reports whether the session passed the gate.
func (s Session) IsAuthenticated() bool {
	return s.State == Authenticated
}

// Login moves the session to AUTHENTICATED when password matches. On a
// mismatch the session is left unchanged.
func (s *Session) Login(ctx context.Context, creds *CredentialStore, password string) error {
	ok, err := creds.Verify(ctx, password)
	if err != nil {
		return err
	}
	if !ok {
		slog.Warn("admin login failed")
		return ErrInvalidPassword
	}
	s.State = Authenticated
	slog.Info("admin logged in")
	return nil
}

// Logout returns the session to ANONYMOUS.
func (s *Session) Logout() {
	if s.IsAuthenticated() {
		slog.Info("admin logged out")
	}
	s.State = Anonymous
}

// ChangePassword replaces the shared password. The session must be
// authenticated and old must match; the session stays authenticated.
func (s *Session) ChangePassword(ctx context.Context, creds *CredentialStore, old, next string) error {
	if !s.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if err := creds.Change(ctx, old, next); err != nil {
		return err
	}
	slog.Info("admin password changed")
	return nil
}
