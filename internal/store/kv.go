// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides the portal's persistent key-value storage. Every
// durable piece of state (category tree, theme palette, admin credential,
// per-scope file lists and last-modified stamps) is a single value under a
// namespaced key, written with full-overwrite semantics.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a key has no stored value.
	ErrNotFound = errors.New("store: key not found")

	// ErrCorrupt is returned when a stored value cannot be decoded.
	ErrCorrupt = errors.New("store: corrupt value")
)

// KV is a durable key -> value store. Set replaces the whole value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Keys returns every stored key starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// GetJSON loads key and decodes it into v. Returns ErrNotFound when the
// key is absent and an error wrapping ErrCorrupt when decoding fails.
func GetJSON(ctx context.Context, kv KV, key string, v any) error {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

// PutJSON encodes v and stores it under key, replacing any previous value.
func PutJSON(ctx context.Context, kv KV, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store marshal %s: %w", key, err)
	}
	return kv.Set(ctx, key, payload)
}

// prefixed namespaces every key of an underlying store.
type prefixed struct {
	inner  KV
	prefix string
}

// WithPrefix returns a KV that transparently prepends prefix to every key.
// Keys returned by Keys have the prefix stripped again.
func WithPrefix(kv KV, prefix string) KV {
	if prefix == "" {
		return kv
	}
	return &prefixed{inner: kv, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.prefix+key)
}

func (p *prefixed) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := p.inner.Keys(ctx, p.prefix+prefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = k[len(p.prefix):]
	}
	return keys, nil
}

// Observer receives the outcome of every store operation.
type Observer interface {
	ObserveStoreOp(op string, duration time.Duration, err error)
}

// instrumented reports operation timings to an Observer.
type instrumented struct {
	inner KV
	obs   Observer
}

// Instrument wraps kv so that every call is reported to obs. A nil
// observer returns kv unchanged.
func Instrument(kv KV, obs Observer) KV {
	if obs == nil {
		return kv
	}
	return &instrumented{inner: kv, obs: obs}
}

func (s *instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	v, err := s.inner.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		s.obs.ObserveStoreOp("get", time.Since(start), nil)
	} else {
		s.obs.ObserveStoreOp("get", time.Since(start), err)
	}
	return v, err
}

func (s *instrumented) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.inner.Set(ctx, key, value)
	s.obs.ObserveStoreOp("set", time.Since(start), err)
	return err
}

func (s *instrumented) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.inner.Delete(ctx, key)
	s.obs.ObserveStoreOp("delete", time.Since(start), err)
	return err
}

func (s *instrumented) Keys(ctx context.Context, prefix string) ([]string, error) {
	start := time.Now()
	keys, err := s.inner.Keys(ctx, prefix)
	s.obs.ObserveStoreOp("keys", time.Since(start), err)
	return keys, err
}
