// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session provides per-visitor HTTP session management.
// Sessions are identified by a browser-session cookie and stored as JSON
// in Valkey or in process memory with an idle TTL.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"terolib/internal/auth"
	"terolib/internal/catalog"
	"terolib/internal/chat"
	"terolib/internal/navigation"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "tero_session"

	// DefaultTTL is how long an idle session is kept.
	DefaultTTL = 24 * time.Hour

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// ErrNoSession is returned by a Backend for an unknown or expired id.
var ErrNoSession = errors.New("session: not found")

// Data is everything the portal remembers about one visitor between
// requests. Draft is nil while no working copy is open.
type Data struct {
	Auth      auth.Session     `json:"auth"`
	Nav       navigation.State `json:"nav"`
	Draft     catalog.Tree     `json:"draft,omitempty"`
	Chat      chat.Transcript  `json:"chat"`
	CreatedAt time.Time        `json:"created_at"`
}

// Backend persists encoded sessions by id.
type Backend interface {
	Load(ctx context.Context, id string) ([]byte, error)
	Save(ctx context.Context, id string, payload []byte, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// Store manages session lifecycle on top of a Backend.
type Store struct {
	backend Backend
	ttl     time.Duration
	secure  bool
}

// NewStore creates a session store. Cookies are marked Secure when secure
// is true.
func NewStore(backend Backend, secure bool) *Store {
	return &Store{backend: backend, ttl: DefaultTTL, secure: secure}
}

// Create generates a new session, stores data under it, and sets the
// session cookie on the response. Returns the session ID.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}

	data.CreatedAt = time.Now()
	if err := s.Save(ctx, id, data); err != nil {
		return "", err
	}

	// No MaxAge: the cookie lasts as long as the browser session.
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return id, nil
}

// Get returns the session named by the request cookie together with its
// ID. Returns ("", nil, nil) if no valid session exists.
func (s *Store) Get(ctx context.Context, r *http.Request) (string, *Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", nil, nil
	}

	data, err := s.Load(ctx, cookie.Value)
	if errors.Is(err, ErrNoSession) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	return cookie.Value, data, nil
}

// Load reads the session stored under id.
func (s *Store) Load(ctx context.Context, id string) (*Data, error) {
	payload, err := s.backend.Load(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil, err
		}
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}
	return &data, nil
}

// Save replaces the session stored under id and resets its TTL.
func (s *Store) Save(ctx context.Context, id string, data *Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}
	if err := s.backend.Save(ctx, id, payload, s.ttl); err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	return nil
}

// Destroy removes the session named by the request cookie and clears
// the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil // No cookie, nothing to destroy
	}

	if err := s.backend.Delete(ctx, cookie.Value); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return nil
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
