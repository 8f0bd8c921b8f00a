package store

import (
	"context"
	"testing"
)

type blob struct {
	Items []string `json:"items"`
	Note  string   `json:"note,omitempty"`
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	in := blob{Items: []string{"a", "b"}, Note: "hi"}
	if err := s.Set(ctx, "k1", &in); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var out blob
	if err := s.Get(ctx, "k1", &out); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(out.Items) != 2 || out.Note != "hi" {
		t.Errorf("Get() = %+v, want stored value", out)
	}
}

func TestMemoryStoreGetMissingKey(t *testing.T) {
	s := NewMemoryStore()

	var out blob
	if err := s.Get(context.Background(), "missing", &out); err != ErrNotFound {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreSetOverwrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Set(ctx, "k1", &blob{Note: "first"})
	s.Set(ctx, "k1", &blob{Note: "second"})

	var out blob
	if err := s.Get(ctx, "k1", &out); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if out.Note != "second" {
		t.Errorf("Note = %q, want last write to win", out.Note)
	}
}

func TestMemoryStoreDelAndExists(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Set(ctx, "k1", &blob{})
	s.Set(ctx, "k2", &blob{})

	ok, err := s.Exists(ctx, "k1")
	if err != nil || !ok {
		t.Fatalf("Exists(k1) = %v, %v, want true", ok, err)
	}

	if err := s.Del(ctx, "k1", "k2", "ghost"); err != nil {
		t.Fatalf("Del() error = %v", err)
	}
	ok, _ = s.Exists(ctx, "k1")
	if ok {
		t.Error("Exists(k1) = true after Del")
	}

	var out blob
	if err := s.Get(ctx, "k2", &out); err != ErrNotFound {
		t.Errorf("Get(k2) error = %v, want ErrNotFound", err)
	}
}
