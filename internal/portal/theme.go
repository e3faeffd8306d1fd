// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package portal

import (
	"context"

	"terolib/internal/models"
	"terolib/internal/session"
)

// ApplyTheme makes p the active palette for everyone.
func (a *App) ApplyTheme(ctx context.Context, d *session.Data, p models.ThemePalette) error {
	if err := requireAdmin(d); err != nil {
		return err
	}
	return a.themes.Apply(ctx, p)
}

// ApplyPreset makes a named preset the active palette.
func (a *App) ApplyPreset(ctx context.Context, d *session.Data, name string) (models.ThemePalette, error) {
	if err := requireAdmin(d); err != nil {
		return models.ThemePalette{}, err
	}
	return a.themes.ApplyPreset(ctx, name)
}
