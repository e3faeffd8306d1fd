// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme holds the portal's active color palette. Applying a
// palette swaps it in one step, persists it, and projects it onto the
// style scope the front end reads its root CSS variables from.
package theme

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"terolib/internal/models"
	"terolib/internal/store"
)

var (
	ErrUnknownPreset  = errors.New("theme: unknown preset")
	ErrInvalidPalette = errors.New("theme: invalid palette")
)

// Default is the built-in palette used on first run.
var Default = models.ThemePalette{
	Primary:    "#0f172a",
	Secondary:  "#10b981",
	Accent:     "#b8860b",
	Background: "#f8fafc",
}

var presets = []models.ThemePreset{
	{Name: "tero", Label: "الهوية الرسمية", Palette: Default},
	{Name: "emerald", Label: "زمردي", Palette: models.ThemePalette{
		Primary: "#064e3b", Secondary: "#10b981", Accent: "#f59e0b", Background: "#f0fdf4",
	}},
	{Name: "royal", Label: "ملكي", Palette: models.ThemePalette{
		Primary: "#1e3a8a", Secondary: "#3b82f6", Accent: "#eab308", Background: "#eff6ff",
	}},
	{Name: "sunset", Label: "غروب", Palette: models.ThemePalette{
		Primary: "#7c2d12", Secondary: "#f97316", Accent: "#facc15", Background: "#fff7ed",
	}},
	{Name: "slate", Label: "رمادي", Palette: models.ThemePalette{
		Primary: "#1e293b", Secondary: "#64748b", Accent: "#0ea5e9", Background: "#f8fafc",
	}},
}

// Presets returns the named palettes offered to administrators.
func Presets() []models.ThemePreset {
	out := make([]models.ThemePreset, len(presets))
	copy(out, presets)
	return out
}

// Preset looks up a named palette.
func Preset(name string) (models.ThemePalette, error) {
	for _, p := range presets {
		if p.Name == name {
			return p.Palette, nil
		}
	}
	return models.ThemePalette{}, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
}

// Registry owns the active palette.
type Registry struct {
	kv        store.KV
	validator *validator.Validate
	scope     *StyleScope
	active    atomic.Pointer[models.ThemePalette]

	// mu orders writers so the stored and active palettes agree.
	mu sync.Mutex
}

// NewRegistry creates a Registry with the default palette active. Call
// Load to pick up a persisted one. A nil validator gets a fresh one.
func NewRegistry(kv store.KV, validate *validator.Validate) *Registry {
	if validate == nil {
		validate = validator.New()
	}
	r := &Registry{kv: kv, validator: validate, scope: NewStyleScope()}
	r.activate(Default)
	return r
}

// Scope returns the style scope palettes are projected onto.
func (r *Registry) Scope() *StyleScope {
	return r.scope
}

// Active returns the palette in force.
func (r *Registry) Active() models.ThemePalette {
	return *r.active.Load()
}

// Load activates the persisted palette, or the default when none is
// stored or the stored one cannot be used.
func (r *Registry) Load(ctx context.Context) (models.ThemePalette, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var p models.ThemePalette
	err := store.GetJSON(ctx, r.kv, store.KeyTheme, &p)
	switch {
	case errors.Is(err, store.ErrNotFound):
		p = Default
	case errors.Is(err, store.ErrCorrupt):
		slog.Warn("stored theme is corrupt, using default", "error", err)
		p = Default
	case err != nil:
		return models.ThemePalette{}, fmt.Errorf("load theme: %w", err)
	default:
		if verr := r.validator.Struct(p); verr != nil {
			slog.Warn("stored theme is invalid, using default", "error", verr)
			p = Default
		}
	}

	r.activate(p)
	return p, nil
}

// Apply validates p, persists it and makes it active. Readers observe
// either the previous palette or p, never a mix.
func (r *Registry) Apply(ctx context.Context, p models.ThemePalette) error {
	if err := r.validator.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPalette, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := store.PutJSON(ctx, r.kv, store.KeyTheme, p); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	r.activate(p)
	slog.Info("theme applied", "primary", p.Primary, "secondary", p.Secondary)
	return nil
}

// ApplyPreset applies the named preset.
func (r *Registry) ApplyPreset(ctx context.Context, name string) (models.ThemePalette, error) {
	p, err := Preset(name)
	if err != nil {
		return models.ThemePalette{}, err
	}
	if err := r.Apply(ctx, p); err != nil {
		return models.ThemePalette{}, err
	}
	return p, nil
}

func (r *Registry) activate(p models.ThemePalette) {
	r.active.Store(&p)
	r.scope.Project(p)
}
