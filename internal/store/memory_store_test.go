package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreSetAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "a", []byte("one"), 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, err := s.Get(ctx, "a")
	if err != nil || string(got) != "one" {
		t.Fatalf("expected one, got %q (%v)", got, err)
	}

	got[0] = 'X'
	again, _ := s.Get(ctx, "a")
	if string(again) != "one" {
		t.Fatalf("expected stored value to be isolated from callers, got %q", again)
	}
}

func TestMemoryStoreMissingKey(t *testing.T) {
	if _, err := NewMemoryStore().Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreExpiresEntries(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_ = s.Set(ctx, "a", []byte("one"), time.Minute)
	now = now.Add(59 * time.Second)
	if _, err := s.Get(ctx, "a"); err != nil {
		t.Fatalf("expected entry before expiry, got %v", err)
	}

	now = now.Add(time.Second)
	if _, err := s.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted, have %d", s.Len())
	}
}

func TestJSONHelpersRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	type record struct {
		ID string `json:"id"`
	}

	if err := SetJSON(ctx, s, HistoryKey("alice"), []record{{ID: "g1"}}, time.Hour); err != nil {
		t.Fatalf("SetJSON failed: %v", err)
	}
	var out []record
	if err := GetJSON(ctx, s, HistoryKey("alice"), &out); err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if len(out) != 1 || out[0].ID != "g1" {
		t.Fatalf("unexpected records %+v", out)
	}

	_ = s.Set(ctx, CSAKey("g1"), []byte("not json"), 0)
	if err := GetJSON(ctx, s, CSAKey("g1"), &out); err == nil {
		t.Fatal("expected decode error")
	}
	if err := GetJSON(ctx, s, "missing", &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
