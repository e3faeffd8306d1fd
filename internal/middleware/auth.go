// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"terolib/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// SessionKey is the context key for the session data.
	SessionKey contextKey = "session"
	// SessionIDKey is the context key for the session ID.
	SessionIDKey contextKey = "session_id"
)

// LoadSession retrieves the visitor's session and stores it in the request
// context. A visitor without a valid session gets a fresh one from
// newData. Downstream handlers access it via SessionFromCtx().
func LoadSession(store *session.Store, newData func() *session.Data) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id, data, err := store.Get(ctx, r)
			if err != nil {
				// Unreadable sessions are replaced, not fatal.
				slog.Warn("session load failed", "error", err)
			}

			if data == nil {
				data = newData()
				id, err = store.Create(ctx, w, data)
				if err != nil {
					slog.Error("session create failed", "error", err)
					writeError(w, http.StatusInternalServerError, "internal server error")
					return
				}
			}

			ctx = context.WithValue(ctx, SessionKey, data)
			ctx = context.WithValue(ctx, SessionIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin answers 403 unless the session is authenticated.
// Must be applied after LoadSession in the middleware chain.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromCtx(r.Context())
		if sess == nil || !sess.Auth.IsAuthenticated() {
			writeError(w, http.StatusForbidden, "admin session required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SessionFromCtx extracts the session data from the request context.
// Returns nil if no session is loaded.
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}

// SessionIDFromCtx returns the ID of the loaded session.
func SessionIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(SessionIDKey).(string)
	return id
}
