package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"terolib/internal/library"
	"terolib/internal/portal"
	"terolib/internal/session"
)

// Files groups the resource record handlers. Listing is public; adding
// and removing records needs an admin session.
type Files struct {
	base
}

// NewFiles creates a new Files handler group.
func NewFiles(app *portal.App, sessions *session.Store) *Files {
	return &Files{base{app: app, sessions: sessions}}
}

// List returns the records of {scopeID}, filtered by the q query
// parameter when present.
func (f *Files) List(w http.ResponseWriter, r *http.Request) {
	list, err := f.app.ListFiles(r.Context(), chi.URLParam(r, "scopeID"), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Add creates a record in {scopeID}.
func (f *Files) Add(w http.ResponseWriter, r *http.Request) {
	var draft library.Draft
	if err := decodeJSON(w, r, &draft); err != nil {
		writeError(w, r, err)
		return
	}
	d, ok := f.session(w, r)
	if !ok {
		return
	}
	item, err := f.app.AddFile(r.Context(), d, chi.URLParam(r, "scopeID"), draft)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Remove deletes record {fileID} from {scopeID}. The request must carry
// confirm=true.
func (f *Files) Remove(w http.ResponseWriter, r *http.Request) {
	d, ok := f.session(w, r)
	if !ok {
		return
	}
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	err := f.app.RemoveFile(r.Context(), d, chi.URLParam(r, "scopeID"), chi.URLParam(r, "fileID"), confirmed)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
