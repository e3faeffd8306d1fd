// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"terolib/internal/chat"
	"terolib/internal/middleware"
	"terolib/internal/portal"
	"terolib/internal/session"
)

var (
	errEmptyMessage = errors.New("message is empty")
	errPending      = errors.New("a reply is already pending")
)

// Chat groups the assistant handlers.
type Chat struct {
	base
}

// NewChat creates a new Chat handler group.
func NewChat(app *portal.App, sessions *session.Store) *Chat {
	return &Chat{base{app: app, sessions: sessions}}
}

type chatRequest struct {
	Message string `json:"message" validate:"max=4000"`
}

type chatResponse struct {
	Reply      chat.Message    `json:"reply"`
	Transcript chat.Transcript `json:"transcript"`
}

// Transcript returns the session's conversation.
func (c *Chat) Transcript(w http.ResponseWriter, r *http.Request) {
	d, ok := c.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, d.Chat)
}

// Send appends the user's message, waits for the assistant and appends
// its reply. The provider call is not cancelled when the client goes
// away; the reply still lands in the stored transcript.
func (c *Chat) Send(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := bindJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	d, ok := c.session(w, r)
	if !ok {
		return
	}

	turn, started := c.app.BeginChat(d, req.Message)
	if !started {
		status, err := http.StatusConflict, errPending
		if strings.TrimSpace(req.Message) == "" {
			status, err = http.StatusUnprocessableEntity, errEmptyMessage
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	// Store the pending turn so other requests see it while the
	// provider answers.
	if !c.save(w, r, d) {
		return
	}

	ctx := context.WithoutCancel(r.Context())
	reply := c.app.Reply(ctx, turn)

	// Navigation may have changed the session meanwhile.
	id := middleware.SessionIDFromCtx(ctx)
	if fresh, err := c.sessions.Load(ctx, id); err == nil {
		d = fresh
	} else {
		slog.Warn("chat: session reload failed, using request copy", "error", err)
	}
	c.app.FinishChat(d, reply)
	if err := c.sessions.Save(ctx, id, d); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply, Transcript: d.Chat})
}
