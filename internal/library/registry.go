// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package library keeps the resource records (documents and links) shown
// for each navigation scope. Records are stored per scope id as one list;
// the registry knows nothing about how scopes nest in the category tree.
package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"terolib/internal/models"
	"terolib/internal/store"
)

var (
	// ErrNotConfirmed is returned by Remove when the caller did not confirm.
	ErrNotConfirmed = errors.New("library: deletion not confirmed")

	// ErrInvalidDraft wraps validation failures of a new record.
	ErrInvalidDraft = errors.New("library: invalid draft")

	// ErrFileNotFound is returned when a record id is not in the scope.
	ErrFileNotFound = errors.New("library: file not found")
)

const (
	// DefaultURL is stored when a draft has no URL.
	DefaultURL = "#"
	// DefaultSize is the display size of a document with no size given.
	DefaultSize = "2.4 MB"
	// LinkSize is the display size of every link.
	LinkSize = "-"
)

// Draft is the administrator input for a new record.
type Draft struct {
	Name string `json:"name" validate:"required,max=300"`
	Type string `json:"type" validate:"required,file_type"`
	URL  string `json:"url" validate:"omitempty,max=2048"`
	Size string `json:"size" validate:"omitempty,max=32"`
}

// Registry lists, adds and removes records per scope id.
type Registry struct {
	kv        store.KV
	validator *validator.Validate
	dates     DateFormatter
	now       func() time.Time

	// mu serialises read-modify-write cycles on scope lists.
	mu sync.Mutex
}

// NewRegistry creates a Registry. A nil validator gets a fresh one.
func NewRegistry(kv store.KV, validate *validator.Validate, dates DateFormatter) *Registry {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.RegisterValidation("file_type", func(fl validator.FieldLevel) bool {
		switch models.FileType(fl.Field().String()) {
		case models.FileTypePDF, models.FileTypeDoc, models.FileTypeXLS, models.FileTypePPT, models.FileTypeLink:
			return true
		default:
			return false
		}
	})
	if err != nil {
		panic(fmt.Sprintf("library: register file_type validation: %v", err))
	}
	return &Registry{kv: kv, validator: validate, dates: dates, now: time.Now}
}

// SetClock replaces the registry's time source.
func (r *Registry) SetClock(now func() time.Time) {
	r.now = now
}

// List returns every record of scope in insertion order. A scope with no
// stored list, or an unreadable one, has no records.
func (r *Registry) List(ctx context.Context, scope string) ([]models.FileItem, error) {
	var items []models.FileItem
	err := store.GetJSON(ctx, r.kv, store.FilesKey(scope), &items)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return []models.FileItem{}, nil
	case errors.Is(err, store.ErrCorrupt):
		slog.Warn("stored file list is corrupt, treating as empty", "scope", scope, "error", err)
		return []models.FileItem{}, nil
	case err != nil:
		return nil, fmt.Errorf("list files %s: %w", scope, err)
	}
	if items == nil {
		items = []models.FileItem{}
	}
	return items, nil
}

// Add validates d, appends a new record to scope and stamps the scope's
// last-modified time. scopeTitle is denormalised onto the record.
func (r *Registry) Add(ctx context.Context, scope, scopeTitle string, d Draft) (models.FileItem, error) {
	d.Name = strings.TrimSpace(d.Name)
	if err := r.validator.Struct(d); err != nil {
		return models.FileItem{}, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.List(ctx, scope)
	if err != nil {
		return models.FileItem{}, err
	}

	now := r.now()
	item := models.FileItem{
		ID:       uuid.Must(uuid.NewV7()).String(),
		Name:     d.Name,
		Date:     r.dates.Date(now),
		Size:     d.Size,
		Type:     models.FileType(d.Type),
		URL:      d.URL,
		Category: scopeTitle,
	}
	if item.Type == models.FileTypeLink {
		item.Size = LinkSize
	} else if item.Size == "" {
		item.Size = DefaultSize
	}
	if item.URL == "" {
		item.URL = DefaultURL
	}

	if err := store.PutJSON(ctx, r.kv, store.FilesKey(scope), append(items, item)); err != nil {
		return models.FileItem{}, fmt.Errorf("save files %s: %w", scope, err)
	}
	if err := r.kv.Set(ctx, store.LastModKey(scope), []byte(r.dates.DateTime(now))); err != nil {
		return models.FileItem{}, fmt.Errorf("stamp files %s: %w", scope, err)
	}

	slog.Info("file added", "scope", scope, "id", item.ID, "type", item.Type)
	return item, nil
}

// Remove deletes record id from scope. Deletion is permanent and refused
// unless confirmed is true.
func (r *Registry) Remove(ctx context.Context, scope, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.List(ctx, scope)
	if err != nil {
		return err
	}

	kept := make([]models.FileItem, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return ErrFileNotFound
	}

	if err := store.PutJSON(ctx, r.kv, store.FilesKey(scope), kept); err != nil {
		return fmt.Errorf("save files %s: %w", scope, err)
	}

	slog.Info("file removed", "scope", scope, "id", id)
	return nil
}

// LastModified returns the display stamp of the scope's last addition, or
// "" when nothing was ever added.
func (r *Registry) LastModified(ctx context.Context, scope string) (string, error) {
	raw, err := r.kv.Get(ctx, store.LastModKey(scope))
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("last modified %s: %w", scope, err)
	}
	return string(raw), nil
}

// Count returns the total number of records across scopes.
func (r *Registry) Count(ctx context.Context, scopes []string) (int, error) {
	total := 0
	for _, scope := range scopes {
		items, err := r.List(ctx, scope)
		if err != nil {
			return 0, err
		}
		total += len(items)
	}
	return total, nil
}

// Scopes returns every scope id that has a stored file list, sorted.
// Scopes no longer in the category tree are included.
func (r *Registry) Scopes(ctx context.Context) ([]string, error) {
	keys, err := r.kv.Keys(ctx, store.FilesKeyPrefix())
	if err != nil {
		return nil, fmt.Errorf("list file scopes: %w", err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, store.FilesKeyPrefix()))
	}
	sort.Strings(ids)
	return ids, nil
}

// Search returns the items whose name contains query, ignoring case. An
// empty query returns every item. The input is not modified.
func Search(items []models.FileItem, query string) []models.FileItem {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	out := make([]models.FileItem, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), q) {
			out = append(out, it)
		}
	}
	return out
}
