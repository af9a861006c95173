package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func openTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(context.Background(), "redis://"+mr.Addr(), "hm")
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestRedisStoreContract(t *testing.T) {
	s, _ := openTestRedis(t)
	testStoreContract(t, s)
}

func TestRedisSkillSetRoundTrip(t *testing.T) {
	s, _ := openTestRedis(t)
	testSkillSetRoundTrip(t, s)
}

func TestRedisKeysArePrefixed(t *testing.T) {
	s, mr := openTestRedis(t)

	if err := s.Set(context.Background(), "humanmode_skills", `{"react":"expert"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := mr.Get("hm:humanmode_skills")
	if err != nil {
		t.Fatalf("miniredis Get: %v", err)
	}
	if got != `{"react":"expert"}` {
		t.Errorf("stored value = %q", got)
	}
}

func TestRedisClearOnlyTouchesPrefix(t *testing.T) {
	s, mr := openTestRedis(t)
	ctx := context.Background()

	mr.Set("other:key", "keep")
	s.Set(ctx, "a", "1")
	s.Set(ctx, "b", "2")

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if !mr.Exists("other:key") {
		t.Error("Clear removed a key outside the prefix")
	}
	if mr.Exists("hm:a") || mr.Exists("hm:b") {
		t.Error("Clear left prefixed keys behind")
	}
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedisStore(context.Background(), "redis://"+addr, ""); err == nil {
		t.Error("expected ping error for closed server")
	}
}

func TestNewRedisStore_BadURL(t *testing.T) {
	if _, err := NewRedisStore(context.Background(), "http://nope", ""); err == nil {
		t.Error("expected error for non-redis url")
	}
}
