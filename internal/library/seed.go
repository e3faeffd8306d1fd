// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"terolib/internal/models"
	"terolib/internal/store"
)

// SampleScope is the scope that receives the development sample records.
const SampleScope = "tech-edu-all"

var samples = []models.FileItem{
	{ID: "1", Name: "دليل المعلم للتعليم الفني", Date: "2024/01/15", Size: "2.4 MB", Type: models.FileTypePDF, URL: DefaultURL, Category: "التعليم التقني"},
	{ID: "2", Name: "لائحة التقييم والتحقق", Date: "2023/11/20", Size: "1.2 MB", Type: models.FileTypePDF, URL: DefaultURL, Category: "التعليم التقني"},
}

// Seed writes the sample records for development. A scope that already
// has a stored list, even an empty one, is left alone.
func (r *Registry) Seed(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.kv.Get(ctx, store.FilesKey(SampleScope))
	if err == nil {
		slog.Info("sample files already present, skipping")
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("seed check %s: %w", SampleScope, err)
	}

	if err := store.PutJSON(ctx, r.kv, store.FilesKey(SampleScope), samples); err != nil {
		return fmt.Errorf("seed files: %w", err)
	}
	slog.Info("seeded sample files", "scope", SampleScope, "count", len(samples))
	return nil
}
