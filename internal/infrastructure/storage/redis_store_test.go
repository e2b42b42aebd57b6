package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newMiniredisStore(t *testing.T) (*RedisTokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisTokenStore(client), mr
}

func TestRedisTokenStore_LoadAbsent(t *testing.T) {
	store, _ := newMiniredisStore(t)

	token, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error for missing key: %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}
}

func TestRedisTokenStore_SaveLoadClear(t *testing.T) {
	store, mr := newMiniredisStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "tok-redis"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if got, err := mr.Get(tokenKey); err != nil || got != "tok-redis" {
		t.Fatalf("expected token under %q, got %q (%v)", tokenKey, got, err)
	}
	if mr.TTL(tokenKey) != 0 {
		t.Fatalf("token key must not carry a TTL")
	}

	token, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "tok-redis" {
		t.Fatalf("unexpected token: %q", token)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if mr.Exists(tokenKey) {
		t.Fatalf("expected key removed")
	}
}

func TestRedisTokenStore_ClearIdempotent(t *testing.T) {
	store, _ := newMiniredisStore(t)

	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("Clear on missing key must succeed: %v", err)
	}
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := ConnectRedis(context.Background(), RedisConfig{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("ConnectRedis: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("ping after connect: %v", err)
	}
}

func TestConnectRedis_Unreachable(t *testing.T) {
	if _, err := ConnectRedis(context.Background(), RedisConfig{Addr: "127.0.0.1:1"}); err == nil {
		t.Fatalf("expected connection error")
	}
}
