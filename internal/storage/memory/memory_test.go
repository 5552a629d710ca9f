package memory

import (
	"context"
	"errors"
	"testing"

	"pocketledger/internal/storage"
)

func TestMemoryStorePutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected absent key, ok=%v err=%v", ok, err)
	}

	value := []byte(`[1,2]`)
	if err := s.Put(ctx, "k", value); err != nil {
		t.Fatalf("put: %v", err)
	}
	value[0] = 'x' // caller mutation must not leak into the store

	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || string(got) != `[1,2]` {
		t.Fatalf("unexpected get: %q ok=%v err=%v", got, ok, err)
	}
	got[0] = 'y'
	again, _, _ := s.Get(ctx, "k")
	if string(again) != `[1,2]` {
		t.Fatalf("returned slice aliases stored value: %q", again)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d keys", s.Len())
	}
}

func TestMemoryStoreEmptyValueIsPresent(t *testing.T) {
	ctx := context.Background()
	s := NewWithValues(map[string][]byte{"k": nil})
	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || len(got) != 0 {
		t.Fatalf("unexpected get: %q ok=%v err=%v", got, ok, err)
	}
}

func TestMemoryStoreRejectsBadKey(t *testing.T) {
	err := New().Put(context.Background(), "../x", []byte("v"))
	if !errors.Is(err, storage.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}
