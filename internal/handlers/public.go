// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"terolib/internal/catalog"
	"terolib/internal/middleware"
	"terolib/internal/models"
	"terolib/internal/navigation"
	"terolib/internal/portal"
	"terolib/internal/session"
	"terolib/internal/theme"
)

// Public groups the handlers any visitor may call: bootstrap, the
// category tree, navigation, content resolution and the theme.
type Public struct {
	base
}

// NewPublic creates a new Public handler group.
func NewPublic(app *portal.App, sessions *session.Store) *Public {
	return &Public{base{app: app, sessions: sessions}}
}

type bootstrapResponse struct {
	Tree      catalog.Tree        `json:"tree"`
	Nav       navigation.State    `json:"nav"`
	Theme     models.ThemePalette `json:"theme"`
	CSRFToken string              `json:"csrf_token"`
}

type navigateRequest struct {
	CategoryID    string `json:"category_id" validate:"required,max=100"`
	SubCategoryID string `json:"sub_category_id" validate:"max=100"`
	ViewportWidth int    `json:"viewport_width" validate:"min=0"`
}

type sidebarRequest struct {
	Open bool `json:"open"`
}

type toggleResponse struct {
	// Navigated is set when the category was a leaf and became active.
	Navigated bool             `json:"navigated"`
	Expanded  bool             `json:"expanded"`
	Nav       navigation.State `json:"nav"`
}

// Bootstrap resets the caller's session to a fresh anonymous visit and
// returns everything a client needs for its first render.
func (p *Public) Bootstrap(w http.ResponseWriter, r *http.Request) {
	d, ok := p.session(w, r)
	if !ok {
		return
	}
	*d = *p.app.NewSession()
	if !p.save(w, r, d) {
		return
	}
	writeJSON(w, http.StatusOK, bootstrapResponse{
		Tree:      p.app.Tree(),
		Nav:       d.Nav,
		Theme:     p.app.Themes().Active(),
		CSRFToken: middleware.CSRFTokenFromCtx(r.Context()),
	})
}

// Tree returns the committed category tree.
func (p *Public) Tree(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, p.app.Tree())
}

// Nav returns the session's navigation state.
func (p *Public) Nav(w http.ResponseWriter, r *http.Request) {
	d, ok := p.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, d.Nav)
}

// Navigate selects a category and optional subcategory.
func (p *Public) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := bindJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	d, ok := p.session(w, r)
	if !ok {
		return
	}
	p.app.Navigate(d, req.CategoryID, req.SubCategoryID, req.ViewportWidth)
	if !p.save(w, r, d) {
		return
	}
	writeJSON(w, http.StatusOK, d.Nav)
}

// Toggle expands or collapses a group, or navigates to a leaf category.
// The viewport width is read from the optional viewport_width query
// parameter.
func (p *Public) Toggle(w http.ResponseWriter, r *http.Request) {
	width := 0
	if v := r.URL.Query().Get("viewport_width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, r, portal.ErrInvalidInput)
			return
		}
		width = n
	}
	d, ok := p.session(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "categoryID")
	navigated, err := p.app.ToggleCategory(d, id, width)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !p.save(w, r, d) {
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{
		Navigated: navigated,
		Expanded:  !navigated && d.Nav.ExpandedGroups[id],
		Nav:       d.Nav,
	})
}

// Sidebar opens or closes the sidebar.
func (p *Public) Sidebar(w http.ResponseWriter, r *http.Request) {
	var req sidebarRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	d, ok := p.session(w, r)
	if !ok {
		return
	}
	p.app.SetSidebar(d, req.Open)
	if !p.save(w, r, d) {
		return
	}
	writeJSON(w, http.StatusOK, d.Nav)
}

// Content resolves the active view and attaches its payload.
func (p *Public) Content(w http.ResponseWriter, r *http.Request) {
	d, ok := p.session(w, r)
	if !ok {
		return
	}
	hadDraft := d.Draft != nil
	v, err := p.app.View(r.Context(), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	// The admin view opens a working copy on first visit.
	if !hadDraft && d.Draft != nil && !p.save(w, r, d) {
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Dashboard returns the analytics dashboard data.
func (p *Public) Dashboard(w http.ResponseWriter, r *http.Request) {
	a, err := p.app.Analytics(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Theme returns the active palette.
func (p *Public) Theme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, p.app.Themes().Active())
}

// ThemeCSS serves the active palette as CSS custom properties.
func (p *Public) ThemeCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(p.app.Themes().Scope().CSS()))
}

// Presets lists the named palettes.
func (p *Public) Presets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, theme.Presets())
}
