// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package portal

import (
	"context"

	"terolib/internal/chat"
	"terolib/internal/session"
)

// BeginChat accepts a message into the session's transcript. The caller
// must persist d before calling Reply so that the pending flag is seen by
// concurrent requests.
func (a *App) BeginChat(d *session.Data, input string) (chat.Turn, bool) {
	return a.assistant.Begin(&d.Chat, input)
}

// Reply waits for the assistant's answer to turn. It never fails.
func (a *App) Reply(ctx context.Context, turn chat.Turn) chat.Message {
	return a.assistant.Reply(ctx, turn)
}

// FinishChat appends reply to the session's transcript.
func (a *App) FinishChat(d *session.Data, reply chat.Message) {
	d.Chat.Finish(reply)
}
