package handlers

import (
	"log/slog"
	"net/http"

	"terolib/internal/middleware"
	"terolib/internal/navigation"
	"terolib/internal/portal"
	"terolib/internal/session"
)

// Auth groups the admin session transitions.
type Auth struct {
	base
}

// NewAuth creates a new Auth handler group.
func NewAuth(app *portal.App, sessions *session.Store) *Auth {
	return &Auth{base{app: app, sessions: sessions}}
}

type loginRequest struct {
	Password string `json:"password" validate:"required,max=128"`
}

// authResponse reports the session state after a transition.
type authResponse struct {
	Authenticated bool                  `json:"authenticated"`
	Nav           navigation.State      `json:"nav"`
	Resolution    navigation.Resolution `json:"resolution"`
}

// Login checks the password and, on success, authenticates the session
// and moves navigation to the admin control view.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := bindJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	d, ok := a.session(w, r)
	if !ok {
		return
	}

	if err := a.app.Login(r.Context(), d, req.Password); err != nil {
		slog.Warn("admin login failed", "remote", r.RemoteAddr)
		writeError(w, r, err)
		return
	}
	if !a.save(w, r, d) {
		return
	}
	slog.Info("admin logged in", "session", shortID(middleware.SessionIDFromCtx(r.Context())))
	a.respond(w, d)
}

// Logout returns the session to anonymous and navigates home.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	d, ok := a.session(w, r)
	if !ok {
		return
	}
	a.app.Logout(d)
	// The visitor keeps their state under a fresh session id; the one
	// that carried the admin login is removed.
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := a.sessions.Create(r.Context(), w, d); err != nil {
		writeError(w, r, err)
		return
	}
	a.respond(w, d)
}

// ChangePassword replaces the admin credential when the old one matches.
func (a *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req portal.PasswordChange
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	d, ok := a.session(w, r)
	if !ok {
		return
	}
	if err := a.app.ChangePassword(r.Context(), d, req); err != nil {
		writeError(w, r, err)
		return
	}
	slog.Info("admin password changed")
	w.WriteHeader(http.StatusNoContent)
}

func (a *Auth) respond(w http.ResponseWriter, d *session.Data) {
	writeJSON(w, http.StatusOK, authResponse{
		Authenticated: d.Auth.IsAuthenticated(),
		Nav:           d.Nav,
		Resolution:    a.app.Resolve(d),
	})
}

// shortID trims a session ID for logging.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
