// Package router sets up all HTTP routes and middleware chains for the
// TERO portal. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"terolib/internal/handlers"
	"terolib/internal/metrics"
	"terolib/internal/middleware"
	"terolib/internal/portal"
	"terolib/internal/session"
)

// Options carries the settings the route table needs beyond its handlers.
type Options struct {
	// SecureCookies marks the CSRF cookie Secure.
	SecureCookies bool
	// ChatRateLimit is the number of chat messages accepted per client IP
	// per minute. Zero disables the limit.
	ChatRateLimit int
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The returned stop function releases the
// rate limiter's cleanup goroutine.
func New(app *portal.App, sessions *session.Store, m *metrics.Metrics, opts Options) (chi.Router, func()) {
	pub := handlers.NewPublic(app, sessions)
	admin := handlers.NewAdmin(app, sessions)
	auth := handlers.NewAuth(app, sessions)
	files := handlers.NewFiles(app, sessions)
	chat := handlers.NewChat(app, sessions)

	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.Metrics(m))

	// Health and metrics: no session, no CSRF.
	r.Get("/health", healthHandler)
	r.Get("/metrics", m.Handler().ServeHTTP)
	r.Get("/theme.css", pub.ThemeCSS)

	stop := func() {}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(middleware.NewCSRF(opts.SecureCookies))
		r.Use(middleware.LoadSession(sessions, app.NewSession))

		r.Post("/bootstrap", pub.Bootstrap)
		r.Get("/tree", pub.Tree)
		r.Get("/dashboard", pub.Dashboard)
		r.Get("/content", pub.Content)

		r.Route("/nav", func(r chi.Router) {
			r.Get("/", pub.Nav)
			r.Post("/navigate", pub.Navigate)
			r.Post("/toggle/{categoryID}", pub.Toggle)
			r.Post("/sidebar", pub.Sidebar)
		})

		r.Route("/scopes/{scopeID}/files", func(r chi.Router) {
			r.Get("/", files.List)
			r.With(middleware.RequireAdmin).Post("/", files.Add)
			r.With(middleware.RequireAdmin).Delete("/{fileID}", files.Remove)
		})

		r.Route("/theme", func(r chi.Router) {
			r.Get("/", pub.Theme)
			r.Get("/presets", pub.Presets)
			r.With(middleware.RequireAdmin).Put("/", admin.ApplyTheme)
			r.With(middleware.RequireAdmin).Post("/presets/{name}", admin.ApplyPreset)
		})

		r.Route("/chat", func(r chi.Router) {
			r.Get("/", chat.Transcript)
			if opts.ChatRateLimit > 0 {
				limiter := middleware.NewRateLimiter(opts.ChatRateLimit, time.Minute)
				stop = limiter.Stop
				r.With(limiter.Middleware).Post("/", chat.Send)
			} else {
				r.Post("/", chat.Send)
			}
		})

		r.Route("/admin", func(r chi.Router) {
			// Session transitions, reachable while anonymous.
			r.Post("/login", auth.Login)
			r.Post("/logout", auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/password", auth.ChangePassword)
				r.Post("/tree/reset", admin.ResetTree)

				r.Route("/draft", func(r chi.Router) {
					r.Get("/", admin.Draft)
					r.Delete("/", admin.DiscardDraft)
					r.Post("/commit", admin.CommitDraft)

					r.Route("/categories/{ci}", func(r chi.Router) {
						r.Put("/title", admin.UpdateCategoryTitle)
						r.Put("/description", admin.UpdateCategoryDescription)
						r.Post("/subcategories", admin.AddSubCategory)
						r.Put("/subcategories/{si}/title", admin.UpdateSubCategoryTitle)
						r.Put("/subcategories/{si}/description", admin.UpdateSubCategoryDescription)
						r.Delete("/subcategories/{si}", admin.RemoveSubCategory)
					})
				})
			})
		})
	})

	return r, stop
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
