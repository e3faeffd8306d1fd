// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemory(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	buf := []byte("abc")
	m.Set(ctx, "k", buf)
	buf[0] = 'z'

	got, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value changed through caller slice: %q", got)
	}
	got[1] = 'z'
	again, _ := m.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value changed through returned slice: %q", again)
	}
}

func TestWithPrefix(t *testing.T) {
	inner := NewMemory()
	kv := WithPrefix(inner, DefaultPrefix)
	ctx := context.Background()

	if err := kv.Set(ctx, FilesKey("market-data"), []byte(`[]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := inner.Get(ctx, "tero_files_market-data"); err != nil {
		t.Errorf("expected namespaced key in inner store: %v", err)
	}

	keys, err := kv.Keys(ctx, FilesKeyPrefix())
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 1 || keys[0] != "files_market-data" {
		t.Errorf("Keys: got %v, want [files_market-data]", keys)
	}

	if WithPrefix(inner, "") != KV(inner) {
		t.Error("empty prefix should return the store unchanged")
	}
}

func TestJSONHelpers(t *testing.T) {
	kv := NewMemory()
	ctx := context.Background()

	type doc struct {
		Name string `json:"name"`
	}

	t.Run("round trip", func(t *testing.T) {
		if err := PutJSON(ctx, kv, "doc", doc{Name: "دليل"}); err != nil {
			t.Fatalf("PutJSON: %v", err)
		}
		var got doc
		if err := GetJSON(ctx, kv, "doc", &got); err != nil {
			t.Fatalf("GetJSON: %v", err)
		}
		if got.Name != "دليل" {
			t.Errorf("Name: got %q", got.Name)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		var got doc
		if err := GetJSON(ctx, kv, "nope", &got); !errors.Is(err, ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("corrupt value", func(t *testing.T) {
		kv.Set(ctx, "bad", []byte("{not json"))
		var got doc
		if err := GetJSON(ctx, kv, "bad", &got); !errors.Is(err, ErrCorrupt) {
			t.Errorf("got %v, want ErrCorrupt", err)
		}
	})
}

type recordingObserver struct {
	mu   sync.Mutex
	ops  []string
	errs []error
}

func (o *recordingObserver) ObserveStoreOp(op string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, op)
	o.errs = append(o.errs, err)
}

func TestInstrument(t *testing.T) {
	obs := &recordingObserver{}
	kv := Instrument(NewMemory(), obs)
	ctx := context.Background()

	kv.Get(ctx, "missing")
	kv.Set(ctx, "k", []byte("v"))
	kv.Keys(ctx, "")
	kv.Delete(ctx, "k")

	want := []string{"get", "set", "keys", "delete"}
	if len(obs.ops) != len(want) {
		t.Fatalf("ops: got %v, want %v", obs.ops, want)
	}
	for i := range want {
		if obs.ops[i] != want[i] {
			t.Errorf("op %d: got %q, want %q", i, obs.ops[i], want[i])
		}
		if obs.errs[i] != nil {
			t.Errorf("op %d: unexpected error %v (a miss is not a failure)", i, obs.errs[i])
		}
	}

	if Instrument(NewMemory(), nil) == nil {
		t.Error("nil observer should return the store unchanged")
	}
}

func TestKeyScheme(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FilesKey("tech-edu-all"), "files_tech-edu-all"},
		{LastModKey("tech-edu-all"), "last_mod_tech-edu-all"},
		{DefaultPrefix + KeyAdminPass, "tero_admin_pass"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
