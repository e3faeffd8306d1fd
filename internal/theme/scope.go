// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"sort"
	"strings"
	"sync/atomic"

	"terolib/internal/models"
)

// CSS custom properties a palette is projected onto.
const (
	VarPrimary    = "--tero-primary"
	VarSecondary  = "--tero-secondary"
	VarAccent     = "--tero-accent"
	VarBackground = "--tero-background"
)

// StyleScope is the set of root style variables the front end consumes.
// The whole set is replaced at once.
type StyleScope struct {
	vars atomic.Pointer[map[string]string]
}

// NewStyleScope returns an empty scope.
func NewStyleScope() *StyleScope {
	s := &StyleScope{}
	empty := map[string]string{}
	s.vars.Store(&empty)
	return s
}

// Project writes every channel of p onto the scope.
func (s *StyleScope) Project(p models.ThemePalette) {
	vars := map[string]string{
		VarPrimary:    p.Primary,
		VarSecondary:  p.Secondary,
		VarAccent:     p.Accent,
		VarBackground: p.Background,
	}
	s.vars.Store(&vars)
}

// Vars returns a copy of the current variables.
func (s *StyleScope) Vars() map[string]string {
	cur := *s.vars.Load()
	out := make(map[string]string, len(cur))
	for k, v := range cur {
		out[k] = v
	}
	return out
}

// CSS renders the scope as a :root rule with variables in name order.
func (s *StyleScope) CSS() string {
	cur := *s.vars.Load()
	names := make([]string, 0, len(cur))
	for k := range cur {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, k := range names {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(cur[k])
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}
