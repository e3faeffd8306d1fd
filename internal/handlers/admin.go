// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers for the TERO portal.
// Handlers are grouped by concern (admin, public, auth) and receive
// their dependencies through the handler struct. Every handler works on
// the session the middleware placed in the request context and saves it
// back after a mutation.
package handlers

import (
	"errors"
	"net/http"

	"terolib/internal/middleware"
	"terolib/internal/portal"
	"terolib/internal/session"
)

// base holds what every handler group needs.
type base struct {
	app      *portal.App
	sessions *session.Store
}

var errNoSession = errors.New("handlers: no session in request context")

// session returns the request's session data, answering 500 when the
// session middleware did not run.
func (b base) session(w http.ResponseWriter, r *http.Request) (*session.Data, bool) {
	d := middleware.SessionFromCtx(r.Context())
	if d == nil {
		writeError(w, r, errNoSession)
		return nil, false
	}
	return d, true
}

// save persists d under the request's session ID.
func (b base) save(w http.ResponseWriter, r *http.Request, d *session.Data) bool {
	if err := b.sessions.Save(r.Context(), middleware.SessionIDFromCtx(r.Context()), d); err != nil {
		writeError(w, r, err)
		return false
	}
	return true
}

// Admin groups the working-copy editing handlers.
type Admin struct {
	base
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(app *portal.App, sessions *session.Store) *Admin {
	return &Admin{base{app: app, sessions: sessions}}
}

type titleRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

type descriptionRequest struct {
	Description string `json:"description" validate:"max=5000"`
}

// Draft opens the working copy if none is open and returns it.
func (a *Admin) Draft(w http.ResponseWriter, r *http.Request) {
	d, ok := a.session(w, r)
	if !ok {
		return
	}
	tree, err := a.app.Draft(d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !a.save(w, r, d) {
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

// DiscardDraft drops the working copy without applying it.
func (a *Admin) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	a.mutate(w, r, func(d *session.Data) (any, error) {
		return nil, a.app.DiscardDraft(d)
	})
}

// UpdateCategoryTitle renames the category at {ci}.
func (a *Admin) UpdateCategoryTitle(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	a.mutateWith(w, r, &req, func(d *session.Data) (any, error) {
		ci, err := intParam(r, "ci")
		if err != nil {
			return nil, err
		}
		if err := a.app.UpdateCategoryTitle(d, ci, req.Title); err != nil {
			return nil, err
		}
		return d.Draft, nil
	})
}

// UpdateSubCategoryTitle renames subcategory {si} of category {ci}.
func (a *Admin) UpdateSubCategoryTitle(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	a.mutateWith(w, r, &req, func(d *session.Data) (any, error) {
		ci, si, err := indexes(r)
		if err != nil {
			return nil, err
		}
		if err := a.app.UpdateSubCategoryTitle(d, ci, si, req.Title); err != nil {
			return nil, err
		}
		return d.Draft, nil
	})
}

// UpdateCategoryDescription sets the description of category {ci}.
func (a *Admin) UpdateCategoryDescription(w http.ResponseWriter, r *http.Request) {
	var req descriptionRequest
	a.mutateWith(w, r, &req, func(d *session.Data) (any, error) {
		ci, err := intParam(r, "ci")
		if err != nil {
			return nil, err
		}
		if err := a.app.UpdateDescription(d, ci, nil, req.Description); err != nil {
			return nil, err
		}
		return d.Draft, nil
	})
}

// UpdateSubCategoryDescription sets the description of subcategory {si}.
func (a *Admin) UpdateSubCategoryDescription(w http.ResponseWriter, r *http.Request) {
	var req descriptionRequest
	a.mutateWith(w, r, &req, func(d *session.Data) (any, error) {
		ci, si, err := indexes(r)
		if err != nil {
			return nil, err
		}
		if err := a.app.UpdateDescription(d, ci, &si, req.Description); err != nil {
			return nil, err
		}
		return d.Draft, nil
	})
}

// AddSubCategory appends a placeholder subcategory to category {ci} and
// returns it.
func (a *Admin) AddSubCategory(w http.ResponseWriter, r *http.Request) {
	d, ok := a.session(w, r)
	if !ok {
		return
	}
	ci, err := intParam(r, "ci")
	if err != nil {
		writeError(w, r, err)
		return
	}
	sub, err := a.app.AddSubCategory(d, ci)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !a.save(w, r, d) {
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

// RemoveSubCategory deletes subcategory {si} of category {ci}.
func (a *Admin) RemoveSubCategory(w http.ResponseWriter, r *http.Request) {
	a.mutate(w, r, func(d *session.Data) (any, error) {
		ci, si, err := indexes(r)
		if err != nil {
			return nil, err
		}
		if err := a.app.RemoveSubCategory(d, ci, si); err != nil {
			return nil, err
		}
		return d.Draft, nil
	})
}

// CommitDraft replaces the committed tree with the working copy.
func (a *Admin) CommitDraft(w http.ResponseWriter, r *http.Request) {
	d, ok := a.session(w, r)
	if !ok {
		return
	}
	if err := a.app.CommitDraft(r.Context(), d); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a.app.Tree())
}

// ResetTree restores the built-in default tree.
func (a *Admin) ResetTree(w http.ResponseWriter, r *http.Request) {
	d, ok := a.session(w, r)
	if !ok {
		return
	}
	if err := a.app.ResetTree(r.Context(), d); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a.app.Tree())
}

// mutate runs fn on the session, saves it, and answers with fn's result
// or 204 when the result is nil.
func (a *Admin) mutate(w http.ResponseWriter, r *http.Request, fn func(*session.Data) (any, error)) {
	d, ok := a.session(w, r)
	if !ok {
		return
	}
	out, err := fn(d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !a.save(w, r, d) {
		return
	}
	if out == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// mutateWith decodes the request body into req before calling mutate.
func (a *Admin) mutateWith(w http.ResponseWriter, r *http.Request, req any, fn func(*session.Data) (any, error)) {
	if err := bindJSON(w, r, req); err != nil {
		writeError(w, r, err)
		return
	}
	a.mutate(w, r, fn)
}

func indexes(r *http.Request) (ci, si int, err error) {
	if ci, err = intParam(r, "ci"); err != nil {
		return 0, 0, err
	}
	if si, err = intParam(r, "si"); err != nil {
		return 0, 0, err
	}
	return ci, si, nil
}
