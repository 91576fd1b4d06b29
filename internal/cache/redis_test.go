package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	sharederrors "github.com/khanhnv2901/siteprobe/internal/shared/errors"
	"go.uber.org/zap/zaptest"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), "redis://"+mr.Addr())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	store := NewRedisStore(client, zaptest.NewLogger(t))
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStore_PutGet(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "ssl:example.com"); ok || err != nil {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}

	if err := store.Put(ctx, "ssl:example.com", `{"success":true}`, time.Hour); err != nil {
		t.Fatalf("put: %v", err)
	}
	val, ok, err := store.Get(ctx, "ssl:example.com")
	if err != nil || !ok || val != `{"success":true}` {
		t.Fatalf("unexpected get result val=%q ok=%v err=%v", val, ok, err)
	}

	if ttl := mr.TTL("ssl:example.com"); ttl != time.Hour {
		t.Fatalf("expected ttl of 1h, got %s", ttl)
	}

	mr.FastForward(time.Hour)
	if _, ok, _ := store.Get(ctx, "ssl:example.com"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestRedisStore_GetErrorWhenDown(t *testing.T) {
	store, mr := newTestRedisStore(t)
	mr.Close()

	if _, ok, err := store.Get(context.Background(), "k"); err == nil || ok {
		t.Fatalf("expected error from stopped server, ok=%v err=%v", ok, err)
	}
	if err := store.Ping(context.Background()); err == nil {
		t.Fatal("expected ping to fail")
	}
}

func TestConnect_HostPort(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), mr.Addr())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestConnect_Errors(t *testing.T) {
	if _, err := Connect(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty url")
	}
	if _, err := Connect(context.Background(), "redis://localhost:6379/notanumber"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, Options{Backend: "memory"})
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	_ = store.Close()

	mr := miniredis.RunT(t)
	store, err = Open(ctx, Options{Backend: "redis", RedisURL: mr.Addr()})
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	_ = store.Close()

	if _, err := Open(ctx, Options{Backend: "memcached"}); !errors.Is(err, sharederrors.ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}
