package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"terolib/internal/models"
)

// ApplyTheme replaces the active palette.
func (a *Admin) ApplyTheme(w http.ResponseWriter, r *http.Request) {
	var p models.ThemePalette
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	d, ok := a.session(w, r)
	if !ok {
		return
	}
	if err := a.app.ApplyTheme(r.Context(), d, p); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a.app.Themes().Active())
}

// ApplyPreset activates the named preset.
func (a *Admin) ApplyPreset(w http.ResponseWriter, r *http.Request) {
	d, ok := a.session(w, r)
	if !ok {
		return
	}
	p, err := a.app.ApplyPreset(r.Context(), d, chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
