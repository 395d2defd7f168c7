package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestManager(t *testing.T) (*CacheManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheManager(client), mr
}

func TestCacheHelper_SetGet(t *testing.T) {
	cm, mr := newTestManager(t)
	ctx := context.Background()

	type profile struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
	}

	if err := cm.User.Set(ctx, "id:1", profile{ID: 1, Email: "a@example.com"}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if !mr.Exists("user:id:1") {
		t.Error("expected key to be stored under the user: prefix")
	}

	var got profile
	if err := cm.User.Get(ctx, "id:1", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Email != "a@example.com" {
		t.Errorf("Get() = %+v", got)
	}

	mr.FastForward(2 * time.Minute)
	if err := cm.User.Get(ctx, "id:1", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() after expiry error = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	cm, _ := newTestManager(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	for i := 0; i < 2; i++ {
		var got []string
		if err := cm.User.CacheOrExecute(ctx, "list:all", &got, time.Minute, fetch); err != nil {
			t.Fatalf("CacheOrExecute() error = %v", err)
		}
		if len(got) != 2 || got[1] != "b" {
			t.Errorf("CacheOrExecute() = %v", got)
		}
	}
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}

	cm.InvalidateUsers(ctx)
	var got []string
	if err := cm.User.CacheOrExecute(ctx, "list:all", &got, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("fetch called %d times after invalidation, want 2", calls)
	}
}

func TestCacheManager_NilClient(t *testing.T) {
	cm := NewCacheManager(nil)
	ctx := context.Background()

	if cm.Enabled() {
		t.Error("Enabled() = true for nil client")
	}
	if err := cm.Web.SetString(ctx, "k", "v", time.Minute); err != nil {
		t.Errorf("SetString() error = %v, want nil", err)
	}
	if _, err := cm.Web.GetString(ctx, "k"); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("GetString() error = %v, want ErrCacheNotAvailable", err)
	}
	if err := cm.HealthCheck(ctx); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("HealthCheck() error = %v", err)
	}
}
