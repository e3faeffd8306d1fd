// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package chat implements the library's assistant: a per-visitor transcript
// that opens with a fixed welcome, one provider call per user message, and
// an apology appended instead of an error when the call fails.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"terolib/internal/ai"
	"terolib/internal/markdown"
)

// Fixed texts of the assistant.
const (
	Welcome = "أهلاً بك في مكتبة TERO الإلكترونية. أنا مساعدك الذكي، كيف يمكنني مساعدتك اليوم؟"

	SystemInstruction = "أنت مساعد ذكي لمكتبة TERO الإلكترونية التابعة لوزارة التربية والتعليم والتعليم الفني في مصر. " +
		"ساعد المستخدمين في العثور على المعلومات المتعلقة بالتعليم الفني، التحول الرقمي، سوق العمل، والمبادرات الخضراء. " +
		"أجب باللغة العربية بأسلوب مهني ومختصر."

	NoAnswer = "عذراً، لم أتمكن من الحصول على إجابة."
	Apology  = "عذراً، حدث خطأ أثناء الاتصال بالخادم. يرجى المحاولة مرة أخرى."
)

// Reply outcomes reported to the Observer.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Message is one entry of a transcript.
type Message struct {
	ID   string    `json:"id"`
	Role ai.Role   `json:"role"`
	Text string    `json:"text"`
	HTML string    `json:"html,omitempty"`
	At   time.Time `json:"at"`
}

// Transcript is a visitor's conversation. Pending is set between accepting
// a message and appending the reply; no second message is accepted while
// it is set.
type Transcript struct {
	Messages []Message `json:"messages"`
	Pending  bool      `json:"pending"`
}

// Turn is an accepted user message with the conversation that preceded it.
type Turn struct {
	History []ai.Message
	Message string
}

// Completer is the provider side of a conversation. *ai.Registry
// satisfies it.
type Completer interface {
	Chat(ctx context.Context, systemPrompt string, history []ai.Message, message string) (string, error)
}

// Observer is told the outcome of every provider call.
type Observer func(outcome string, elapsed time.Duration)

// Assistant produces replies for transcripts.
type Assistant struct {
	provider Completer
	observe  Observer
	now      func() time.Time
}

// NewAssistant creates an assistant backed by provider. observe may be nil.
func NewAssistant(provider Completer, observe Observer) *Assistant {
	return &Assistant{provider: provider, observe: observe, now: time.Now}
}

// SetClock replaces the time source used to stamp messages.
func (a *Assistant) SetClock(now func() time.Time) { a.now = now }

// NewTranscript returns a transcript holding only the welcome message.
func (a *Assistant) NewTranscript() Transcript {
	return Transcript{Messages: []Message{a.message(ai.RoleAssistant, Welcome)}}
}

// Begin accepts input into t. Blank input and input arriving while a reply
// is pending are ignored and reported with ok == false. On success the
// user's message is appended, t is marked pending, and the returned Turn
// carries every earlier message as history.
func (a *Assistant) Begin(t *Transcript, input string) (Turn, bool) {
	text := strings.TrimSpace(input)
	if text == "" || t.Pending {
		return Turn{}, false
	}

	history := make([]ai.Message, 0, len(t.Messages))
	for _, m := range t.Messages {
		history = append(history, ai.Message{Role: m.Role, Text: m.Text})
	}

	t.Messages = append(t.Messages, a.message(ai.RoleUser, text))
	t.Pending = true
	return Turn{History: history, Message: text}, true
}

// Reply asks the provider for the answer to turn. It never fails: an empty
// answer becomes NoAnswer and any error becomes Apology.
func (a *Assistant) Reply(ctx context.Context, turn Turn) Message {
	start := a.now()
	text, err := a.provider.Chat(ctx, SystemInstruction, turn.History, turn.Message)

	outcome := OutcomeOK
	switch {
	case errors.Is(err, ai.ErrEmptyResponse) || (err == nil && strings.TrimSpace(text) == ""):
		outcome = OutcomeEmpty
		text = NoAnswer
	case err != nil:
		outcome = OutcomeError
		slog.Warn("chat provider failed", "error", err)
		text = Apology
	}
	if a.observe != nil {
		a.observe(outcome, a.now().Sub(start))
	}

	return a.message(ai.RoleAssistant, text)
}

// Finish appends reply to t and clears the pending flag.
func (t *Transcript) Finish(reply Message) {
	t.Messages = append(t.Messages, reply)
	t.Pending = false
}

// Send runs Begin, Reply and Finish for callers that hold t for the whole
// exchange. It reports false when the input was ignored.
func (a *Assistant) Send(ctx context.Context, t *Transcript, input string) (Message, bool) {
	turn, ok := a.Begin(t, input)
	if !ok {
		return Message{}, false
	}
	reply := a.Reply(ctx, turn)
	t.Finish(reply)
	return reply, true
}

func (a *Assistant) message(role ai.Role, text string) Message {
	m := Message{ID: uuid.Must(uuid.NewV7()).String(), Role: role, Text: text, At: a.now()}
	if role == ai.RoleAssistant {
		html, err := markdown.ToHTML(text)
		if err != nil {
			slog.Warn("chat reply markdown failed", "error", err)
		} else {
			m.HTML = html
		}
	}
	return m
}
