// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package navigation tracks which node of the category tree a visitor is
// looking at and resolves it to the content type the front end renders.
package navigation

import (
	"terolib/internal/catalog"
	"terolib/internal/models"
)

// HomeID is the category every new visitor starts on.
const HomeID = "home"

// NarrowViewport is the width in CSS pixels below which the sidebar is an
// overlay that closes after each navigation.
const NarrowViewport = 1024

// State is one visitor's navigation state.
type State struct {
	ActiveCategoryID    string          `json:"active_category_id"`
	ActiveSubCategoryID string          `json:"active_sub_category_id,omitempty"`
	SidebarOpen         bool            `json:"sidebar_open"`
	ExpandedGroups      map[string]bool `json:"expanded_groups"`
}

// NewState returns the state of a fresh visit: home selected, sidebar open.
func NewState() State {
	return State{
		ActiveCategoryID: HomeID,
		SidebarOpen:      true,
		ExpandedGroups:   map[string]bool{},
	}
}

// NavigateTo selects categoryID and optionally subCategoryID. A viewport
// narrower than NarrowViewport closes the sidebar. A zero width means
// the client did not report one and leaves the sidebar alone.
func (s *State) NavigateTo(categoryID, subCategoryID string, viewportWidth int) {
	s.ActiveCategoryID = categoryID
	s.ActiveSubCategoryID = subCategoryID
	if viewportWidth > 0 && viewportWidth < NarrowViewport {
		s.SidebarOpen = false
	}
}

// ToggleCategory expands or collapses a group, or navigates to a leaf.
// It never does both. It reports whether navigation happened.
func (s *State) ToggleCategory(c *models.Category, viewportWidth int) bool {
	if c.IsGroup() {
		if s.ExpandedGroups == nil {
			s.ExpandedGroups = map[string]bool{}
		}
		s.ExpandedGroups[c.ID] = !s.ExpandedGroups[c.ID]
		return false
	}
	s.NavigateTo(c.ID, "", viewportWidth)
	return true
}

// Resolution is what the current state points at.
type Resolution struct {
	// ContentType is empty when the state points at nothing renderable:
	// a stale id, or a group with no subcategory selected.
	ContentType models.ContentType  `json:"content_type"`
	Category    *models.Category    `json:"category,omitempty"`
	SubCategory *models.SubCategory `json:"sub_category,omitempty"`
	// ScopeID keys file records: the subcategory id when one is
	// selected, else the category id.
	ScopeID string `json:"scope_id"`
	// Title is the display title of the selected node.
	Title string `json:"title"`
}

// Resolve looks up the selected node in tree. An authenticated session on
// the reserved admin id always resolves to the admin configuration view;
// for anyone else that id is just an unknown node. Resolve never fails.
func Resolve(tree catalog.Tree, s State, authenticated bool) Resolution {
	if s.ActiveCategoryID == catalog.ReservedID {
		if authenticated {
			return Resolution{ContentType: models.ContentTypeAdminConfig, ScopeID: catalog.ReservedID}
		}
		return Resolution{}
	}

	r := Resolution{ScopeID: s.ActiveCategoryID}
	if s.ActiveSubCategoryID != "" {
		r.ScopeID = s.ActiveSubCategoryID
	}

	c := tree.Find(s.ActiveCategoryID)
	if c == nil {
		return r
	}
	cat := c.Clone()
	r.Category = &cat
	r.Title = cat.Title

	if s.ActiveSubCategoryID != "" {
		sub := cat.FindSub(s.ActiveSubCategoryID)
		if sub == nil {
			return r
		}
		r.SubCategory = sub
		r.Title = sub.Title
		r.ContentType = sub.ContentType
		return r
	}

	if !cat.IsGroup() {
		r.ContentType = cat.ContentType
	}
	return r
}
