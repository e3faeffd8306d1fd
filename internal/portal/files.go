// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package portal

import (
	"context"
	"fmt"

	"terolib/internal/library"
	"terolib/internal/models"
	"terolib/internal/session"
)

// ListFiles returns the records of scope, filtered by query. Scopes that
// are no longer in the tree are still readable.
func (a *App) ListFiles(ctx context.Context, scope, query string) (FileList, error) {
	items, err := a.files.List(ctx, scope)
	if err != nil {
		return FileList{}, err
	}
	stamp, err := a.files.LastModified(ctx, scope)
	if err != nil {
		return FileList{}, err
	}
	return FileList{Items: library.Search(items, query), LastModified: stamp}, nil
}

// AddFile adds a record to scope, which must own records in the current
// tree. The record's category label is the scope's display title.
func (a *App) AddFile(ctx context.Context, d *session.Data, scope string, draft library.Draft) (models.FileItem, error) {
	if err := requireAdmin(d); err != nil {
		return models.FileItem{}, err
	}
	title, ok := a.scopeTitle(scope)
	if !ok {
		return models.FileItem{}, fmt.Errorf("%w: %s", ErrUnknownScope, scope)
	}
	return a.files.Add(ctx, scope, title, draft)
}

// RemoveFile deletes a record. confirmed must be true.
func (a *App) RemoveFile(ctx context.Context, d *session.Data, scope, id string, confirmed bool) error {
	if err := requireAdmin(d); err != nil {
		return err
	}
	return a.files.Remove(ctx, scope, id, confirmed)
}

// scopeTitle finds the display title of a scope id: a leaf category or a
// subcategory of the committed tree.
func (a *App) scopeTitle(scope string) (string, bool) {
	for _, c := range a.current() {
		if !c.IsGroup() {
			if c.ID == scope {
				return c.Title, true
			}
			continue
		}
		for _, s := range c.SubCategories {
			if s.ID == scope {
				return s.Title, true
			}
		}
	}
	return "", false
}
