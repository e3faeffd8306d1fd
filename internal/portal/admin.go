// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package portal

import (
	"context"
	"fmt"
	"log/slog"

	"terolib/internal/catalog"
	"terolib/internal/models"
	"terolib/internal/navigation"
	"terolib/internal/session"
)

// PasswordChange is the input of ChangePassword.
type PasswordChange struct {
	Old string `json:"old" validate:"required"`
	New string `json:"new" validate:"required,max=128"`
}

// Login authenticates the session and moves it to the admin view.
func (a *App) Login(ctx context.Context, d *session.Data, password string) error {
	if err := d.Auth.Login(ctx, a.creds, password); err != nil {
		return err
	}
	d.Nav.NavigateTo(catalog.ReservedID, "", 0)
	return nil
}

// Logout ends the admin session, drops any open working copy and
// returns to the home view.
func (a *App) Logout(d *session.Data) {
	d.Auth.Logout()
	d.Draft = nil
	d.Nav.NavigateTo(navigation.HomeID, "", 0)
}

// ChangePassword replaces the admin password.
func (a *App) ChangePassword(ctx context.Context, d *session.Data, in PasswordChange) error {
	if err := requireAdmin(d); err != nil {
		return err
	}
	if err := a.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return d.Auth.ChangePassword(ctx, a.creds, in.Old, in.New)
}

// Draft returns the session's working copy, opening one from the
// committed tree if none is open.
func (a *App) Draft(d *session.Data) (catalog.Tree, error) {
	if err := requireAdmin(d); err != nil {
		return nil, err
	}
	if d.Draft == nil {
		d.Draft = a.Tree()
	}
	return d.Draft, nil
}

// EditDraft applies fn to the open working copy. Nothing is persisted.
func (a *App) EditDraft(d *session.Data, fn func(catalog.Tree) error) error {
	if err := requireAdmin(d); err != nil {
		return err
	}
	if d.Draft == nil {
		return ErrNoDraft
	}
	return fn(d.Draft)
}

// UpdateCategoryTitle edits the working copy.
func (a *App) UpdateCategoryTitle(d *session.Data, ci int, title string) error {
	return a.EditDraft(d, func(t catalog.Tree) error { return t.UpdateCategoryTitle(ci, title) })
}

// UpdateSubCategoryTitle edits the working copy.
func (a *App) UpdateSubCategoryTitle(d *session.Data, ci, si int, title string) error {
	return a.EditDraft(d, func(t catalog.Tree) error { return t.UpdateSubCategoryTitle(ci, si, title) })
}

// UpdateDescription edits the working copy. si is nil for the category's
// own description.
func (a *App) UpdateDescription(d *session.Data, ci int, si *int, text string) error {
	return a.EditDraft(d, func(t catalog.Tree) error { return t.UpdateDescription(ci, si, text) })
}

// AddSubCategory appends a placeholder subcategory to the working copy.
func (a *App) AddSubCategory(d *session.Data, ci int) (models.SubCategory, error) {
	var sub models.SubCategory
	err := a.EditDraft(d, func(t catalog.Tree) error {
		var err error
		sub, err = t.AddSubCategory(ci)
		return err
	})
	return sub, err
}

// RemoveSubCategory removes a subcategory from the working copy. Its
// file records are left in place.
func (a *App) RemoveSubCategory(d *session.Data, ci, si int) error {
	return a.EditDraft(d, func(t catalog.Tree) error { return t.RemoveSubCategory(ci, si) })
}

// CommitDraft persists the working copy as the new committed tree and
// makes it visible to every session. The working copy stays open.
func (a *App) CommitDraft(ctx context.Context, d *session.Data) error {
	if err := requireAdmin(d); err != nil {
		return err
	}
	if d.Draft == nil {
		return ErrNoDraft
	}

	a.commitMu.Lock()
	defer a.commitMu.Unlock()

	next := d.Draft.Clone()
	if err := a.catalog.Save(ctx, next); err != nil {
		return err
	}
	next.BindIcons()
	a.tree.Store(&next)
	slog.Info("category tree committed", "categories", len(next))
	return nil
}

// DiscardDraft closes the working copy without saving.
func (a *App) DiscardDraft(d *session.Data) error {
	if err := requireAdmin(d); err != nil {
		return err
	}
	d.Draft = nil
	return nil
}

// ResetTree replaces the committed tree with the built-in default. An
// open working copy is left as it is.
func (a *App) ResetTree(ctx context.Context, d *session.Data) error {
	if err := requireAdmin(d); err != nil {
		return err
	}
	a.commitMu.Lock()
	defer a.commitMu.Unlock()

	if err := a.catalog.Reset(ctx); err != nil {
		return err
	}
	t := catalog.Default()
	a.tree.Store(&t)
	slog.Info("category tree reset to default")
	return nil
}
