package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "hotel_reviews/internal/adapters/redis"
	"hotel_reviews/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test:")
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetDel(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	var miss domain.ReviewsPage
	if ok, err := c.Get(ctx, "reviews:1", &miss); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	in := domain.ReviewsPage{Items: []domain.Review{{HotelID: "1", ReviewID: "r", Rating: 5}}, Limit: 10}
	if err := c.Set(ctx, "reviews:1", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("test:reviews:1") {
		t.Fatalf("expected prefixed key in redis, keys=%v", mr.Keys())
	}

	var out domain.ReviewsPage
	ok, err := c.Get(ctx, "reviews:1", &out)
	if !ok || err != nil {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(out.Items) != 1 || out.Items[0].ReviewID != "r" || out.Limit != 10 {
		t.Fatalf("unexpected page: %+v", out)
	}

	if err := c.Del(ctx, "reviews:1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := c.Get(ctx, "reviews:1", &out); ok {
		t.Fatalf("expected miss after del")
	}
}

func TestCache_TTL(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", map[string]int{"a": 1}, 30); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(31 * time.Second)

	var v map[string]int
	if ok, _ := c.Get(ctx, "k", &v); ok {
		t.Fatalf("expected key to expire")
	}
}

func TestCache_CorruptEntryIsDropped(t *testing.T) {
	c, mr := newCache(t)
	if err := mr.Set("test:bad", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var v domain.ReviewsPage
	ok, err := c.Get(context.Background(), "bad", &v)
	if ok || err == nil {
		t.Fatalf("expected decode error, got ok=%v err=%v", ok, err)
	}
	if mr.Exists("test:bad") {
		t.Fatalf("corrupt entry should be deleted")
	}
}
