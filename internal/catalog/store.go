// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"terolib/internal/store"
)

// Store loads and saves the category tree as a single document.
type Store struct {
	kv store.KV
}

// NewStore creates a new Store.
func NewStore(kv store.KV) *Store {
	return &Store{kv: kv}
}

// Load returns the persisted tree with icons re-bound. An absent or
// unreadable document yields the built-in default tree; only a failing
// backend is reported as an error.
func (s *Store) Load(ctx context.Context) (Tree, error) {
	var t Tree
	err := store.GetJSON(ctx, s.kv, store.KeyCategories, &t)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return Default(), nil
	case errors.Is(err, store.ErrCorrupt):
		slog.Warn("stored category tree is corrupt, using defaults", "error", err)
		return Default(), nil
	case err != nil:
		return nil, fmt.Errorf("load categories: %w", err)
	}
	if t == nil {
		slog.Warn("stored category tree is empty, using defaults")
		return Default(), nil
	}
	t.BindIcons()
	return t, nil
}

// Save validates t and replaces the whole persisted tree with it. Icons
// are not persisted.
func (s *Store) Save(ctx context.Context, t Tree) error {
	if err := t.Validate(); err != nil {
		return err
	}
	doc := t.Clone()
	for i := range doc {
		doc[i].Icon = ""
	}
	if err := store.PutJSON(ctx, s.kv, store.KeyCategories, doc); err != nil {
		return fmt.Errorf("save categories: %w", err)
	}
	return nil
}

// Reset removes the persisted tree so the next Load returns the defaults.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.kv.Delete(ctx, store.KeyCategories); err != nil {
		return fmt.Errorf("reset categories: %w", err)
	}
	return nil
}
