// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// ThemePalette is the four-channel color set applied to the portal's root
// style variables. Exactly one palette is active at a time.
type ThemePalette struct {
	Primary    string `json:"primary" validate:"required,hexcolor"`
	Secondary  string `json:"secondary" validate:"required,hexcolor"`
	Accent     string `json:"accent" validate:"required,hexcolor"`
	Background string `json:"background" validate:"required,hexcolor"`
}

// ThemePreset is a named palette offered to administrators.
type ThemePreset struct {
	Name    string       `json:"name"`
	Label   string       `json:"label"`
	Palette ThemePalette `json:"palette"`
}
