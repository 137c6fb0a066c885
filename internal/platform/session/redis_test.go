package session

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
)

type stubGetter struct {
	values map[string]string
	err    error
	keys   []string
}

func (s *stubGetter) Get(_ context.Context, key string) *redis.StringCmd {
	s.keys = append(s.keys, key)
	if s.err != nil {
		return redis.NewStringResult("", s.err)
	}
	value, ok := s.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func TestStoreQuoteID(t *testing.T) {
	getter := &stubGetter{values: map[string]string{"sess:abc": " 42 "}}
	store, err := NewStore(getter, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.QuoteID(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "42" {
		t.Fatalf("expected quote 42, got %q", got)
	}
	if len(getter.keys) != 1 || getter.keys[0] != "sess:abc" {
		t.Fatalf("unexpected keys %v", getter.keys)
	}
}

func TestStoreQuoteIDMissingSession(t *testing.T) {
	getter := &stubGetter{values: map[string]string{}}
	store, _ := NewStore(getter, "php:")

	got, err := store.QuoteID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty quote id, got %q", got)
	}
	if getter.keys[0] != "php:missing" {
		t.Fatalf("expected custom prefix, got %v", getter.keys)
	}
}

func TestStoreQuoteIDEmptySessionSkipsLookup(t *testing.T) {
	getter := &stubGetter{}
	store, _ := NewStore(getter, "")

	got, err := store.QuoteID(context.Background(), "  ")
	if err != nil || got != "" {
		t.Fatalf("expected empty result, got %q %v", got, err)
	}
	if len(getter.keys) != 0 {
		t.Fatalf("expected no redis calls, got %v", getter.keys)
	}
}

func TestStoreQuoteIDPropagatesErrors(t *testing.T) {
	boom := errors.New("connection refused")
	store, _ := NewStore(&stubGetter{err: boom}, "")

	if _, err := store.QuoteID(context.Background(), "abc"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestNewStoreRequiresClient(t *testing.T) {
	if _, err := NewStore(nil, ""); err == nil {
		t.Fatal("expected error for nil client")
	}
}
