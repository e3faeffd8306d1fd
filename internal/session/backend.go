// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces session keys in Valkey to avoid collisions.
const keyPrefix = "tero_session:"

// Valkey stores sessions as Valkey strings with a TTL.
type Valkey struct {
	client *redis.Client
}

// NewValkey creates a session backend on client.
func NewValkey(client *redis.Client) *Valkey {
	return &Valkey{client: client}
}

func (v *Valkey) Load(ctx context.Context, id string) ([]byte, error) {
	b, err := v.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	return b, err
}

func (v *Valkey) Save(ctx context.Context, id string, payload []byte, ttl time.Duration) error {
	return v.client.Set(ctx, keyPrefix+id, payload, ttl).Err()
}

func (v *Valkey) Delete(ctx context.Context, id string) error {
	return v.client.Del(ctx, keyPrefix+id).Err()
}

// Memory keeps sessions in process memory. Expired entries are dropped
// when they are next looked up and by a sweep on every save.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	payload []byte
	expires time.Time
}

// NewMemory creates an empty in-memory session backend.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *Memory) Load(_ context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, ErrNoSession
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, id)
		return nil, ErrNoSession
	}
	return append([]byte(nil), e.payload...), nil
}

func (m *Memory) Save(_ context.Context, id string, payload []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, k)
		}
	}
	m.entries[id] = memoryEntry{payload: append([]byte(nil), payload...), expires: now.Add(ttl)}
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Len reports how many sessions are held, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
