// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Every test runs against an in-memory store behind a real HTTP server
// so the session cookie round-trips like it does in a browser.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"

	"terolib/internal/ai"
	"terolib/internal/auth"
	"terolib/internal/catalog"
	"terolib/internal/chat"
	"terolib/internal/dashboard"
	"terolib/internal/library"
	"terolib/internal/middleware"
	"terolib/internal/portal"
	"terolib/internal/session"
	"terolib/internal/store"
	"terolib/internal/theme"
)

const adminPass = "01005275052"

// mockCompleter answers every message with a fixed prefix. When gate is
// set it blocks until the channel is closed.
type mockCompleter struct {
	started chan struct{}
	gate    chan struct{}
}

func (m *mockCompleter) Chat(_ context.Context, _ string, _ []ai.Message, message string) (string, error) {
	if m.gate != nil {
		close(m.started)
		<-m.gate
	}
	return "echo: " + message, nil
}

// testEnv holds the dependencies and server for handler tests.
type testEnv struct {
	KV        store.KV
	App       *portal.App
	Sessions  *session.Store
	Completer *mockCompleter
	Server    *httptest.Server
}

// newTestEnv creates a portal over a memory store and serves the
// handlers on a chi router. Admin checks are left to the handlers so
// their 403 answers are exercised.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	kv := store.NewMemory()
	files := library.NewRegistry(kv, nil, library.NewDateFormatter("en-US"))
	completer := &mockCompleter{}
	app := portal.New(portal.Deps{
		Catalog:   catalog.NewStore(kv),
		Files:     files,
		Themes:    theme.NewRegistry(kv, nil),
		Creds:     auth.NewCredentialStore(kv, adminPass),
		Assistant: chat.NewAssistant(completer, nil),
		Dashboard: dashboard.New(files),
	})
	if err := app.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	sessions := session.NewStore(session.NewMemory(), false)

	pub := NewPublic(app, sessions)
	adm := NewAdmin(app, sessions)
	au := NewAuth(app, sessions)
	fl := NewFiles(app, sessions)
	ch := NewChat(app, sessions)

	r := chi.NewRouter()
	r.Use(middleware.LoadSession(sessions, app.NewSession))
	r.Post("/api/bootstrap", pub.Bootstrap)
	r.Get("/api/tree", pub.Tree)
	r.Get("/api/nav", pub.Nav)
	r.Post("/api/nav/navigate", pub.Navigate)
	r.Post("/api/nav/toggle/{categoryID}", pub.Toggle)
	r.Post("/api/nav/sidebar", pub.Sidebar)
	r.Get("/api/content", pub.Content)
	r.Get("/api/dashboard", pub.Dashboard)
	r.Get("/api/theme", pub.Theme)
	r.Put("/api/theme", adm.ApplyTheme)
	r.Get("/api/theme/presets", pub.Presets)
	r.Post("/api/theme/presets/{name}", adm.ApplyPreset)
	r.Get("/theme.css", pub.ThemeCSS)
	r.Get("/api/scopes/{scopeID}/files", fl.List)
	r.Post("/api/scopes/{scopeID}/files", fl.Add)
	r.Delete("/api/scopes/{scopeID}/files/{fileID}", fl.Remove)
	r.Post("/api/admin/login", au.Login)
	r.Post("/api/admin/logout", au.Logout)
	r.Post("/api/admin/password", au.ChangePassword)
	r.Post("/api/admin/tree/reset", adm.ResetTree)
	r.Get("/api/admin/draft", adm.Draft)
	r.Delete("/api/admin/draft", adm.DiscardDraft)
	r.Put("/api/admin/draft/categories/{ci}/title", adm.UpdateCategoryTitle)
	r.Put("/api/admin/draft/categories/{ci}/description", adm.UpdateCategoryDescription)
	r.Post("/api/admin/draft/categories/{ci}/subcategories", adm.AddSubCategory)
	r.Put("/api/admin/draft/categories/{ci}/subcategories/{si}/title", adm.UpdateSubCategoryTitle)
	r.Put("/api/admin/draft/categories/{ci}/subcategories/{si}/description", adm.UpdateSubCategoryDescription)
	r.Delete("/api/admin/draft/categories/{ci}/subcategories/{si}", adm.RemoveSubCategory)
	r.Post("/api/admin/draft/commit", adm.CommitDraft)
	r.Get("/api/chat", ch.Transcript)
	r.Post("/api/chat", ch.Send)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{KV: kv, App: app, Sessions: sessions, Completer: completer, Server: srv}
}

// client is a browser-like HTTP client holding one session cookie.
type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func (e *testEnv) newClient(t *testing.T) *client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &client{t: t, base: e.Server.URL, http: &http.Client{Jar: jar}}
}

// do sends body as JSON and returns the status and raw response body.
func (c *client) do(method, path string, body any) (int, []byte) {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.base+path, rd)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, raw
}

// expect sends the request, checks the status and decodes into out
// when out is non-nil.
func (c *client) expect(method, path string, body any, want int, out any) {
	c.t.Helper()
	status, raw := c.do(method, path, body)
	if status != want {
		c.t.Fatalf("%s %s: status %d, want %d (body %s)", method, path, status, want, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			c.t.Fatalf("%s %s: decode %s: %v", method, path, raw, err)
		}
	}
}

// sessionID returns the session cookie the client currently holds.
func (c *client) sessionID() string {
	u, _ := url.Parse(c.base)
	for _, ck := range c.http.Jar.Cookies(u) {
		if ck.Name == session.CookieName {
			return ck.Value
		}
	}
	return ""
}

// login authenticates the client as admin.
func (c *client) login() {
	c.t.Helper()
	c.expect(http.MethodPost, "/api/admin/login", map[string]string{"password": adminPass}, http.StatusOK, nil)
}
