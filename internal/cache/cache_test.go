package cache

import (
	"context"
	"testing"
	"time"

	"github.com/hopbarley/internal/config"
	"github.com/hopbarley/internal/models"
)

func TestKeyUsesPrefix(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	prev := redisPrefix
	t.Cleanup(func() { redisPrefix = prev })

	redisPrefix = "hb"
	if got := Key("catalog:home"); got != "hb:catalog:home" {
		t.Fatalf("key want hb:catalog:home got %s", got)
	}
	if got := Key("  "); got != "hb" {
		t.Fatalf("blank key want hb got %s", got)
	}
}

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(nil); err != nil {
		t.Fatalf("init nil redis failed: %v", err)
	}
	ctx := context.Background()
	if Enabled() {
		t.Fatalf("cache should be disabled")
	}
	if err := SetHomeCatalog(ctx, map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("set on disabled cache should be noop: %v", err)
	}
	var dest map[string]int
	hit, err := GetHomeCatalog(ctx, &dest)
	if err != nil || hit {
		t.Fatalf("disabled cache should miss, hit=%v err=%v", hit, err)
	}
	if err := Ping(ctx); err != nil {
		t.Fatalf("ping disabled cache should be noop: %v", err)
	}
}

func TestBuildUserAuthState(t *testing.T) {
	invalidBefore := time.Unix(1700000000, 0)
	state := BuildUserAuthState(&models.User{ID: 3, Status: "active", TokenVersion: 4, TokenInvalidBefore: &invalidBefore})
	if state.UserID != 3 || state.TokenVersion != 4 {
		t.Fatalf("state mismatch: %+v", state)
	}
	if state.TokenInvalidBefore != 1700000000 {
		t.Fatalf("token invalid before want 1700000000 got %d", state.TokenInvalidBefore)
	}
	if BuildUserAuthState(nil) != nil {
		t.Fatalf("nil user should build nil state")
	}
}
