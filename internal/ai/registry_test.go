// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

// mockProvider is a test double implementing the Provider interface.
// It records calls and returns configurable responses.
type mockProvider struct {
	name        string
	response    string
	err         error
	callCount   int
	lastSystem  string
	lastHistory []Message
	lastMessage string
	mu          sync.Mutex
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Chat(ctx context.Context, systemPrompt string, history []Message, message string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	m.lastSystem = systemPrompt
	m.lastHistory = history
	m.lastMessage = message
	return m.response, m.err
}

// ---------- Registry.Chat ----------

func TestRegistryChat(t *testing.T) {
	t.Run("delegates to active provider", func(t *testing.T) {
		mock := &mockProvider{name: "test", response: "Hello from mock"}
		reg := &Registry{
			providers: map[string]Provider{"test": mock},
			active:    "test",
		}

		history := []Message{{Role: RoleAssistant, Text: "welcome"}}
		result, err := reg.Chat(context.Background(), "system", history, "user")
		if err != nil {
			t.Fatalf("Chat: unexpected error: %v", err)
		}
		if result != "Hello from mock" {
			t.Errorf("result: got %q, want %q", result, "Hello from mock")
		}

		mock.mu.Lock()
		defer mock.mu.Unlock()
		if mock.callCount != 1 {
			t.Errorf("callCount: got %d, want 1", mock.callCount)
		}
		if mock.lastSystem != "system" || mock.lastMessage != "user" {
			t.Errorf("got system=%q message=%q", mock.lastSystem, mock.lastMessage)
		}
		if len(mock.lastHistory) != 1 || mock.lastHistory[0].Text != "welcome" {
			t.Errorf("history: got %+v", mock.lastHistory)
		}
	})

	t.Run("propagates provider error", func(t *testing.T) {
		mock := &mockProvider{name: "test", err: fmt.Errorf("provider failure")}
		reg := &Registry{
			providers: map[string]Provider{"test": mock},
			active:    "test",
		}

		if _, err := reg.Chat(context.Background(), "s", nil, "u"); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestRegistryChatNoProvider(t *testing.T) {
	reg := &Registry{providers: map[string]Provider{}, active: "nonexistent"}

	if _, err := reg.Chat(context.Background(), "s", nil, "u"); err == nil {
		t.Fatal("expected error when active provider is missing")
	}
}

func TestRegistrySetActive(t *testing.T) {
	a := &mockProvider{name: "a", response: "from a"}
	b := &mockProvider{name: "b", response: "from b"}
	reg := &Registry{
		providers: map[string]Provider{"a": a, "b": b},
		active:    "a",
	}

	if err := reg.SetActive("b"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if reg.ActiveName() != "b" {
		t.Errorf("ActiveName: got %q, want b", reg.ActiveName())
	}
	got, _ := reg.Chat(context.Background(), "s", nil, "u")
	if got != "from b" {
		t.Errorf("Chat after switch: got %q", got)
	}

	if err := reg.SetActive("missing"); err == nil {
		t.Error("SetActive accepted an unknown provider")
	}
	if reg.ActiveName() != "b" {
		t.Errorf("failed SetActive changed active to %q", reg.ActiveName())
	}
}

func TestRegistryAvailable(t *testing.T) {
	reg := &Registry{
		providers: map[string]Provider{
			"mistral": &mockProvider{name: "mistral"},
			"claude":  &mockProvider{name: "claude"},
			"gemini":  &mockProvider{name: "gemini"},
		},
	}

	got := reg.Available()
	want := []string{"claude", "gemini", "mistral"}
	if len(got) != len(want) {
		t.Fatalf("Available: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Available[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry("custom", nil)
	if reg.HasProvider("custom") {
		t.Fatal("custom provider present before Register")
	}

	reg.Register("custom", &mockProvider{name: "custom", response: "ok"})
	if !reg.HasProvider("custom") {
		t.Fatal("HasProvider false after Register")
	}
	p, err := reg.Active()
	if err != nil || p.Name() != "custom" {
		t.Errorf("Active: got %v, %v", p, err)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry("gemini", map[string]ProviderConfig{
		"openai":  {APIKey: "k1", Model: "gpt-4o"},
		"gemini":  {APIKey: "k2", Model: "gemini-3-flash-preview"},
		"claude":  {APIKey: "", Model: "claude-sonnet-4-6"},
		"mistral": {APIKey: "k4", Model: "mistral-large-latest"},
		"unknown": {APIKey: "k5"},
	})

	for _, name := range []string{"openai", "gemini", "mistral"} {
		if !reg.HasProvider(name) {
			t.Errorf("provider %q missing", name)
		}
	}
	if reg.HasProvider("claude") {
		t.Error("provider without API key should be skipped")
	}
	if reg.HasProvider("unknown") {
		t.Error("unknown provider name should be ignored")
	}

	p, err := reg.Active()
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if p.Name() != "gemini" {
		t.Errorf("Active: got %q, want gemini", p.Name())
	}
}

func TestRegistryConcurrency(t *testing.T) {
	reg := &Registry{
		providers: map[string]Provider{
			"a": &mockProvider{name: "a", response: "a"},
			"b": &mockProvider{name: "b", response: "b"},
		},
		active: "a",
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				reg.SetActive("a")
			} else {
				reg.SetActive("b")
			}
		}(i)
		go func() {
			defer wg.Done()
			if _, err := reg.Chat(context.Background(), "s", nil, "u"); err != nil {
				t.Errorf("Chat: %v", err)
			}
			reg.Available()
		}()
	}
	wg.Wait()
}
