package server

import (
	"context"
	"errors"
	"testing"

	"github.com/mito-shogi/wars-kif-service/internal/config"
	"github.com/mito-shogi/wars-kif-service/internal/store"
)

func TestBuildStoreDefaultsToMemory(t *testing.T) {
	cache, closeFn := buildStore(context.Background(), config.CacheConfig{}, nil)
	if _, ok := cache.(*store.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", cache)
	}
	if closeFn != nil {
		t.Fatalf("expected no closer for memory store")
	}
}

func TestBuildStoreFallsBackWhenRedisUnavailable(t *testing.T) {
	orig := redisConnect
	defer func() { redisConnect = orig }()
	redisConnect = func(ctx context.Context, rawURL string) (store.Store, func() error, error) {
		return nil, nil, errors.New("dial refused")
	}

	cache, closeFn := buildStore(context.Background(), config.CacheConfig{RedisURL: "redis://localhost:1/0"}, nil)
	if _, ok := cache.(*store.MemoryStore); !ok {
		t.Fatalf("expected memory fallback, got %T", cache)
	}
	if closeFn != nil {
		t.Fatalf("expected no closer for fallback store")
	}
}

func TestBuildStoreUsesRedisWhenReachable(t *testing.T) {
	orig := redisConnect
	defer func() { redisConnect = orig }()
	want := store.NewMemoryStore()
	closed := false
	redisConnect = func(ctx context.Context, rawURL string) (store.Store, func() error, error) {
		return want, func() error { closed = true; return nil }, nil
	}

	cache, closeFn := buildStore(context.Background(), config.CacheConfig{RedisURL: "redis://cache:6379/0"}, nil)
	if cache != want {
		t.Fatalf("expected connected store")
	}
	if err := closeFn(); err != nil || !closed {
		t.Fatalf("expected closer to run")
	}
}
