// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"terolib/internal/ai"
)

// fakeCompleter records the last call and answers with a fixed reply.
type fakeCompleter struct {
	reply   string
	err     error
	calls   int
	system  string
	history []ai.Message
	message string
}

func (f *fakeCompleter) Chat(_ context.Context, systemPrompt string, history []ai.Message, message string) (string, error) {
	f.calls++
	f.system = systemPrompt
	f.history = history
	f.message = message
	return f.reply, f.err
}

func newTestAssistant(p Completer) (*Assistant, *[]string) {
	var outcomes []string
	a := NewAssistant(p, func(o string, _ time.Duration) { outcomes = append(outcomes, o) })
	a.SetClock(func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) })
	return a, &outcomes
}

func TestNewTranscriptStartsWithWelcome(t *testing.T) {
	a, _ := newTestAssistant(&fakeCompleter{})
	tr := a.NewTranscript()

	if len(tr.Messages) != 1 {
		t.Fatalf("len = %d, want 1", len(tr.Messages))
	}
	m := tr.Messages[0]
	if m.Role != ai.RoleAssistant || m.Text != Welcome {
		t.Errorf("first message = %+v", m)
	}
	if m.HTML == "" || m.ID == "" {
		t.Errorf("welcome missing id or html: %+v", m)
	}
	if tr.Pending {
		t.Error("new transcript is pending")
	}
}

func TestSend(t *testing.T) {
	p := &fakeCompleter{reply: "**مرحباً**"}
	a, outcomes := newTestAssistant(p)
	tr := a.NewTranscript()

	reply, ok := a.Send(context.Background(), &tr, "  ما هو التعليم الفني؟ ")
	if !ok {
		t.Fatal("Send ignored valid input")
	}

	if p.system != SystemInstruction {
		t.Error("system instruction not sent")
	}
	if p.message != "ما هو التعليم الفني؟" {
		t.Errorf("message = %q, want trimmed input", p.message)
	}
	if len(p.history) != 1 || p.history[0].Role != ai.RoleAssistant || p.history[0].Text != Welcome {
		t.Errorf("history = %+v, want only the welcome", p.history)
	}

	if len(tr.Messages) != 3 || tr.Pending {
		t.Fatalf("transcript = %+v", tr)
	}
	if tr.Messages[1].Role != ai.RoleUser || tr.Messages[1].HTML != "" {
		t.Errorf("user message = %+v", tr.Messages[1])
	}
	if reply.Text != "**مرحباً**" || !strings.Contains(reply.HTML, "<strong>مرحباً</strong>") {
		t.Errorf("reply = %+v", reply)
	}
	if len(*outcomes) != 1 || (*outcomes)[0] != OutcomeOK {
		t.Errorf("outcomes = %v", *outcomes)
	}

	// The second exchange carries the whole prior conversation.
	a.Send(context.Background(), &tr, "وماذا عن سوق العمل؟")
	if len(p.history) != 3 || p.history[2].Text != "**مرحباً**" {
		t.Errorf("second history = %+v", p.history)
	}
}

func TestSendIgnoresBlankInput(t *testing.T) {
	p := &fakeCompleter{reply: "x"}
	a, _ := newTestAssistant(p)
	tr := a.NewTranscript()

	for _, in := range []string{"", "   ", "\n\t"} {
		if _, ok := a.Send(context.Background(), &tr, in); ok {
			t.Errorf("Send(%q) accepted", in)
		}
	}
	if p.calls != 0 || len(tr.Messages) != 1 {
		t.Errorf("calls = %d, messages = %d", p.calls, len(tr.Messages))
	}
}

func TestBeginWhilePending(t *testing.T) {
	p := &fakeCompleter{reply: "x"}
	a, _ := newTestAssistant(p)
	tr := a.NewTranscript()

	turn, ok := a.Begin(&tr, "first")
	if !ok || !tr.Pending {
		t.Fatal("first message not accepted")
	}
	if _, ok := a.Begin(&tr, "second"); ok {
		t.Error("second message accepted while pending")
	}
	if len(tr.Messages) != 2 {
		t.Errorf("messages = %d, want 2", len(tr.Messages))
	}

	tr.Finish(a.Reply(context.Background(), turn))
	if tr.Pending {
		t.Error("still pending after Finish")
	}
	if _, ok := a.Begin(&tr, "second"); !ok {
		t.Error("message rejected after reply arrived")
	}
}

func TestReplyFailures(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		err     error
		want    string
		outcome string
	}{
		{"transport error", "", fmt.Errorf("dial tcp: refused"), Apology, OutcomeError},
		{"provider missing", "", errors.New("ai: no provider configured"), Apology, OutcomeError},
		{"empty response", "", fmt.Errorf("gemini: %w", ai.ErrEmptyResponse), NoAnswer, OutcomeEmpty},
		{"blank text", "  ", nil, NoAnswer, OutcomeEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, outcomes := newTestAssistant(&fakeCompleter{reply: tt.reply, err: tt.err})
			tr := a.NewTranscript()

			reply, ok := a.Send(context.Background(), &tr, "سؤال")
			if !ok {
				t.Fatal("input ignored")
			}
			if reply.Role != ai.RoleAssistant || reply.Text != tt.want {
				t.Errorf("reply = %+v, want %q", reply, tt.want)
			}
			if tr.Pending || len(tr.Messages) != 3 {
				t.Errorf("transcript = %+v", tr)
			}
			if len(*outcomes) != 1 || (*outcomes)[0] != tt.outcome {
				t.Errorf("outcomes = %v, want %s", *outcomes, tt.outcome)
			}
		})
	}
}
