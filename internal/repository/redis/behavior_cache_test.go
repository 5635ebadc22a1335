package redis

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"marketReco/domain"
)

func newTestCache(t *testing.T) (*BehaviorCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewBehaviorCache(client), mr
}

func TestBehaviorCache_RoundTrip(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	hi := 120.0
	pattern := domain.UserBehaviorPattern{
		TopCategories:       []string{"tools", "garden"},
		PreferredPriceRange: domain.PriceRange{Min: 10, Max: &hi, Average: 55},
		MostActiveHour:      9,
		TopSearchTerms:      []string{"drill"},
		AverageRatingGiven:  4.5,
		TotalPurchases:      3,
		TotalReviews:        2,
	}

	if err := cache.Set(ctx, 42, pattern, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if ttl := mr.TTL("behavior:user:42"); ttl != time.Minute {
		t.Fatalf("expected ttl 1m, got %v", ttl)
	}

	got, ok, err := cache.Get(ctx, 42)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, pattern) {
		t.Fatalf("expected %+v, got %+v", pattern, got)
	}

	mr.FastForward(2 * time.Minute)
	if _, ok, _ := cache.Get(ctx, 42); ok {
		t.Fatalf("entry should expire after ttl")
	}
}

func TestBehaviorCache_MissAndInvalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if _, ok, err := cache.Get(ctx, 7); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := cache.Set(ctx, 7, domain.UserBehaviorPattern{TopCategories: []string{}, TopSearchTerms: []string{}, MostActiveHour: 12}, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := cache.Invalidate(ctx, 7); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, ok, _ := cache.Get(ctx, 7); ok {
		t.Fatalf("expected miss after invalidate")
	}
}

func TestBehaviorCache_CorruptEntry(t *testing.T) {
	cache, mr := newTestCache(t)

	if err := mr.Set("behavior:user:9", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, ok, err := cache.Get(context.Background(), 9); ok || err == nil {
		t.Fatalf("expected decode error, got ok=%v err=%v", ok, err)
	}
}

func TestBehaviorCache_ServerDown(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()

	if _, _, err := cache.Get(context.Background(), 1); err == nil {
		t.Fatalf("expected error when redis is unreachable")
	}
}
