// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package library

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"

	"terolib/internal/models"
	"terolib/internal/store"
)

var fixedNow = time.Date(2026, time.October, 17, 15, 5, 9, 0, time.UTC)

func newTestRegistry(t *testing.T) (*Registry, store.KV) {
	t.Helper()
	kv := store.NewMemory()
	r := NewRegistry(kv, nil, NewDateFormatter("ar-EG"))
	r.SetClock(func() time.Time { return fixedNow })
	return r, kv
}

func TestListEmptyScope(t *testing.T) {
	r, _ := newTestRegistry(t)

	items, err := r.List(context.Background(), "rd")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("List = %#v, want empty non-nil slice", items)
	}
}

func TestAdd(t *testing.T) {
	r, kv := newTestRegistry(t)
	ctx := context.Background()

	doc, err := r.Add(ctx, "market-data", "معلومات سوق العمل", Draft{Name: " تقرير سوق العمل ", Type: "pdf"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if doc.ID == "" || doc.Name != "تقرير سوق العمل" {
		t.Errorf("doc = %+v", doc)
	}
	if doc.Size != DefaultSize || doc.URL != DefaultURL || doc.Category != "معلومات سوق العمل" {
		t.Errorf("defaults not applied: %+v", doc)
	}
	if doc.Date != "١٧\u200f/١٠\u200f/٢٠٢٦" {
		t.Errorf("Date = %q", doc.Date)
	}

	link, err := r.Add(ctx, "market-data", "معلومات سوق العمل", Draft{Name: "بوابة الوظائف", Type: "link", URL: "https://example.org", Size: "9 MB"})
	if err != nil {
		t.Fatalf("Add link: %v", err)
	}
	if link.Size != LinkSize || link.URL != "https://example.org" {
		t.Errorf("link = %+v", link)
	}
	if link.ID == doc.ID {
		t.Error("record ids collide")
	}

	items, _ := r.List(ctx, "market-data")
	if len(items) != 2 || items[0].ID != doc.ID || items[1].ID != link.ID {
		t.Errorf("List = %+v, want [doc, link] in order", items)
	}

	stamp, err := r.LastModified(ctx, "market-data")
	if err != nil {
		t.Fatalf("LastModified: %v", err)
	}
	if stamp != "١٧\u200f/١٠\u200f/٢٠٢٦، ٣:٠٥:٠٩ م" {
		t.Errorf("LastModified = %q", stamp)
	}

	raw, _ := kv.Get(ctx, store.LastModKey("market-data"))
	if string(raw) != stamp {
		t.Errorf("stamp stored as %q, want plain string", raw)
	}
}

func TestAddRejectsInvalidDrafts(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
	}{
		{"missing name", Draft{Type: "pdf"}},
		{"blank name", Draft{Name: "   ", Type: "pdf"}},
		{"missing type", Draft{Name: "x"}},
		{"unknown type", Draft{Name: "x", Type: "mp4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRegistry(t)
			ctx := context.Background()

			if _, err := r.Add(ctx, "rd", "rd", tt.draft); !errors.Is(err, ErrInvalidDraft) {
				t.Fatalf("got %v, want ErrInvalidDraft", err)
			}
			items, _ := r.List(ctx, "rd")
			if len(items) != 0 {
				t.Error("invalid draft was stored")
			}
			if stamp, _ := r.LastModified(ctx, "rd"); stamp != "" {
				t.Error("invalid draft stamped the scope")
			}
		})
	}
}

func TestScopeIsolation(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	r.Add(ctx, "market-data", "", Draft{Name: "A", Type: "doc"})
	r.Add(ctx, "tech-edu-all", "", Draft{Name: "B", Type: "xls"})

	market, _ := r.List(ctx, "market-data")
	tech, _ := r.List(ctx, "tech-edu-all")

	if len(market) != 1 || market[0].Name != "A" {
		t.Errorf("market-data = %+v", market)
	}
	if len(tech) != 1 || tech[0].Name != "B" {
		t.Errorf("tech-edu-all = %+v", tech)
	}
}

func TestRemove(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	a, _ := r.Add(ctx, "rd", "", Draft{Name: "A", Type: "pdf"})
	b, _ := r.Add(ctx, "rd", "", Draft{Name: "B", Type: "pdf"})

	t.Run("unconfirmed is a no-op", func(t *testing.T) {
		if err := r.Remove(ctx, "rd", a.ID, false); !errors.Is(err, ErrNotConfirmed) {
			t.Fatalf("got %v, want ErrNotConfirmed", err)
		}
		items, _ := r.List(ctx, "rd")
		if len(items) != 2 {
			t.Errorf("len = %d, want 2", len(items))
		}
	})

	t.Run("confirmed removes only that record", func(t *testing.T) {
		if err := r.Remove(ctx, "rd", a.ID, true); err != nil {
			t.Fatalf("Remove: %v", err)
		}
		items, _ := r.List(ctx, "rd")
		if len(items) != 1 || items[0].ID != b.ID {
			t.Errorf("remaining = %+v", items)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if err := r.Remove(ctx, "rd", "missing", true); !errors.Is(err, ErrFileNotFound) {
			t.Errorf("got %v, want ErrFileNotFound", err)
		}
	})
}

func TestListCorruptScope(t *testing.T) {
	r, kv := newTestRegistry(t)
	ctx := context.Background()
	kv.Set(ctx, store.FilesKey("rd"), []byte("not json"))

	items, err := r.List(ctx, "rd")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("List = %+v, want empty", items)
	}

	// Adding to a corrupt scope starts a fresh list.
	if _, err := r.Add(ctx, "rd", "", Draft{Name: "A", Type: "pdf"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	items, _ = r.List(ctx, "rd")
	if len(items) != 1 {
		t.Errorf("len = %d, want 1", len(items))
	}
}

func TestSearch(t *testing.T) {
	items := []models.FileItem{
		{ID: "1", Name: "Teacher Guide"},
		{ID: "2", Name: "Policy Brief"},
	}

	got := Search(items, "guide")
	if len(got) != 1 || got[0].Name != "Teacher Guide" {
		t.Errorf("Search(guide) = %+v", got)
	}

	if got := Search(items, ""); len(got) != 2 {
		t.Errorf("Search(\"\") returned %d items, want 2", len(got))
	}
	if got := Search(items, "BRIEF"); len(got) != 1 || got[0].ID != "2" {
		t.Errorf("Search(BRIEF) = %+v", got)
	}
	if got := Search(items, "annual"); len(got) != 0 {
		t.Errorf("Search(annual) = %+v", got)
	}
	if items[0].Name != "Teacher Guide" || len(items) != 2 {
		t.Error("Search modified its input")
	}
}

func TestCount(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	r.Add(ctx, "a", "", Draft{Name: "1", Type: "pdf"})
	r.Add(ctx, "a", "", Draft{Name: "2", Type: "pdf"})
	r.Add(ctx, "b", "", Draft{Name: "3", Type: "link"})
	r.Add(ctx, "orphan", "", Draft{Name: "4", Type: "pdf"})

	n, err := r.Count(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
}

func TestNewRegistrySharedValidator(t *testing.T) {
	v := validator.New()
	kv := store.NewMemory()
	NewRegistry(kv, v, NewDateFormatter("en-US"))
	r := NewRegistry(kv, v, NewDateFormatter("en-US"))

	if _, err := r.Add(context.Background(), "rd", "", Draft{Name: "x", Type: "zip"}); !errors.Is(err, ErrInvalidDraft) {
		t.Errorf("unknown type: got %v, want ErrInvalidDraft", err)
	}
}

func TestScopes(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	if ids, err := r.Scopes(ctx); err != nil || len(ids) != 0 {
		t.Fatalf("Scopes on empty store = %v, %v", ids, err)
	}

	r.Add(ctx, "market-data", "", Draft{Name: "1", Type: "pdf"})
	r.Add(ctx, "green-move", "", Draft{Name: "2", Type: "link"})
	r.Add(ctx, "market-data", "", Draft{Name: "3", Type: "doc"})

	ids, err := r.Scopes(ctx)
	if err != nil {
		t.Fatalf("Scopes: %v", err)
	}
	if len(ids) != 2 || ids[0] != "green-move" || ids[1] != "market-data" {
		t.Errorf("Scopes = %v, want [green-move market-data]", ids)
	}
}

func TestSeed(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	if err := r.Seed(ctx); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	items, _ := r.List(ctx, SampleScope)
	if len(items) != 2 || items[0].Name != "دليل المعلم للتعليم الفني" {
		t.Fatalf("seeded = %+v", items)
	}

	// An administrator emptied the scope; seeding again must not refill it.
	r.Remove(ctx, SampleScope, "1", true)
	r.Remove(ctx, SampleScope, "2", true)
	if err := r.Seed(ctx); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	items, _ = r.List(ctx, SampleScope)
	if len(items) != 0 {
		t.Errorf("Seed refilled an emptied scope: %+v", items)
	}
}
