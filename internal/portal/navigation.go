// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package portal

import (
	"context"
	"fmt"

	"terolib/internal/catalog"
	"terolib/internal/chat"
	"terolib/internal/dashboard"
	"terolib/internal/markdown"
	"terolib/internal/models"
	"terolib/internal/navigation"
	"terolib/internal/session"
	"terolib/internal/theme"
)

// Navigate selects a category and optional subcategory.
func (a *App) Navigate(d *session.Data, categoryID, subCategoryID string, viewportWidth int) {
	d.Nav.NavigateTo(categoryID, subCategoryID, viewportWidth)
}

// ToggleCategory expands a group or navigates to a leaf. It reports
// whether navigation happened.
func (a *App) ToggleCategory(d *session.Data, categoryID string, viewportWidth int) (bool, error) {
	c := a.current().Find(categoryID)
	if c == nil {
		return false, fmt.Errorf("%w: %s", ErrUnknownCategory, categoryID)
	}
	return d.Nav.ToggleCategory(c, viewportWidth), nil
}

// SetSidebar opens or closes the sidebar.
func (a *App) SetSidebar(d *session.Data, open bool) {
	d.Nav.SidebarOpen = open
}

// Resolve returns what the session's navigation state points at.
func (a *App) Resolve(d *session.Data) navigation.Resolution {
	return navigation.Resolve(a.current(), d.Nav, d.Auth.IsAuthenticated())
}

// FileList is a scope's records with its last-modified stamp.
type FileList struct {
	Items        []models.FileItem `json:"items"`
	LastModified string            `json:"last_modified,omitempty"`
}

// AdminView is the payload of the admin configuration view.
type AdminView struct {
	Draft   catalog.Tree         `json:"draft"`
	Presets []models.ThemePreset `json:"presets"`
	Theme   models.ThemePalette  `json:"theme"`
}

// View is a resolution plus the data its content type renders. Exactly
// one payload field is set, or none for an empty resolution.
type View struct {
	navigation.Resolution
	DescriptionHTML string               `json:"description_html,omitempty"`
	Files           *FileList            `json:"files,omitempty"`
	Home            *dashboard.Home      `json:"home,omitempty"`
	Analytics       *dashboard.Analytics `json:"analytics,omitempty"`
	Chat            *chat.Transcript     `json:"chat,omitempty"`
	Admin           *AdminView           `json:"admin,omitempty"`
}

// View resolves the session's navigation state and loads the payload for
// the resulting content type. Opening the admin view opens a working
// copy if none is open.
func (a *App) View(ctx context.Context, d *session.Data) (View, error) {
	tree := a.current()
	v := View{Resolution: navigation.Resolve(tree, d.Nav, d.Auth.IsAuthenticated())}

	desc := ""
	if v.SubCategory != nil {
		desc = v.SubCategory.Description
	} else if v.Category != nil {
		desc = v.Category.Description
	}
	if desc != "" {
		html, err := markdown.ToHTML(desc)
		if err != nil {
			return View{}, fmt.Errorf("render description: %w", err)
		}
		v.DescriptionHTML = html
	}

	switch v.ContentType {
	case models.ContentTypeFiles:
		list, err := a.ListFiles(ctx, v.ScopeID, "")
		if err != nil {
			return View{}, err
		}
		v.Files = &list
	case models.ContentTypeHome:
		h, err := a.board.Home(ctx, tree)
		if err != nil {
			return View{}, err
		}
		v.Home = &h
	case models.ContentTypeDashboard:
		an, err := a.board.Analytics(ctx, tree)
		if err != nil {
			return View{}, err
		}
		v.Analytics = &an
	case models.ContentTypeChatbot:
		t := d.Chat
		v.Chat = &t
	case models.ContentTypeAdminConfig:
		draft, err := a.Draft(d)
		if err != nil {
			return View{}, err
		}
		v.Admin = &AdminView{Draft: draft, Presets: theme.Presets(), Theme: a.themes.Active()}
	}
	return v, nil
}

// Analytics returns the dashboard view over the committed tree.
func (a *App) Analytics(ctx context.Context) (dashboard.Analytics, error) {
	return a.board.Analytics(ctx, a.current())
}
