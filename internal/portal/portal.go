// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package portal is the application-state container. It holds the shared
// state (committed category tree, theme, credential, file records) and
// exposes every change to it as a named operation on a visitor's session,
// so admin gating and the working-copy protocol live in one place.
package portal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"terolib/internal/auth"
	"terolib/internal/catalog"
	"terolib/internal/chat"
	"terolib/internal/dashboard"
	"terolib/internal/library"
	"terolib/internal/navigation"
	"terolib/internal/session"
	"terolib/internal/theme"
)

var (
	// ErrForbidden is returned for admin operations on an anonymous session.
	ErrForbidden = errors.New("portal: admin session required")
	// ErrNoDraft is returned for working-copy edits before one is opened.
	ErrNoDraft = errors.New("portal: no working copy open")
	// ErrUnknownCategory is returned when a category id is not in the tree.
	ErrUnknownCategory = errors.New("portal: unknown category")
	// ErrUnknownScope is returned when files are added to an id that
	// owns no records in the current tree.
	ErrUnknownScope = errors.New("portal: unknown scope")
	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("portal: invalid input")
)

// Deps are the components an App is built from.
type Deps struct {
	Catalog   *catalog.Store
	Files     *library.Registry
	Themes    *theme.Registry
	Creds     *auth.CredentialStore
	Assistant *chat.Assistant
	Dashboard *dashboard.Service
	Validate  *validator.Validate
}

// App is the portal's shared state.
type App struct {
	catalog   *catalog.Store
	files     *library.Registry
	themes    *theme.Registry
	creds     *auth.CredentialStore
	assistant *chat.Assistant
	board     *dashboard.Service
	validate  *validator.Validate

	tree     atomic.Pointer[catalog.Tree]
	commitMu sync.Mutex
}

// New creates an App. Call Init before serving.
func New(d Deps) *App {
	if d.Validate == nil {
		d.Validate = validator.New()
	}
	a := &App{
		catalog:   d.Catalog,
		files:     d.Files,
		themes:    d.Themes,
		creds:     d.Creds,
		assistant: d.Assistant,
		board:     d.Dashboard,
		validate:  d.Validate,
	}
	empty := catalog.Tree{}
	a.tree.Store(&empty)
	return a
}

// Init loads the committed tree and the active theme from the store.
func (a *App) Init(ctx context.Context) error {
	t, err := a.catalog.Load(ctx)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	a.tree.Store(&t)

	if _, err := a.themes.Load(ctx); err != nil {
		return fmt.Errorf("load theme: %w", err)
	}
	slog.Info("portal state loaded", "categories", len(t))
	return nil
}

// Tree returns a copy of the committed category tree.
func (a *App) Tree() catalog.Tree {
	return a.tree.Load().Clone()
}

// current returns the committed tree without copying. Callers must not
// modify it.
func (a *App) current() catalog.Tree {
	return *a.tree.Load()
}

// Themes returns the theme registry.
func (a *App) Themes() *theme.Registry { return a.themes }

// NewSession returns the state of a fresh visit: anonymous, on the home
// view, with a new chat transcript.
func (a *App) NewSession() *session.Data {
	return &session.Data{
		Auth: auth.Session{State: auth.Anonymous},
		Nav:  navigation.NewState(),
		Chat: a.assistant.NewTranscript(),
	}
}

func requireAdmin(d *session.Data) error {
	if !d.Auth.IsAuthenticated() {
		return ErrForbidden
	}
	return nil
}
