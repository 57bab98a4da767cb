package cache

import (
	"context"
	"delivery-optimizer-service/internal/domain"
	"sort"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisCache(t *testing.T) *RedisTimeCache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisTimeCache(client)
}

func TestRedisTimeCacheRoundTrip(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	saved := []domain.TimeEntry{
		{From: 1, To: 2, Time: 5},
		{From: 1, To: 3, Time: 7.5},
		{From: 2, To: 3, Time: 2.25},
	}
	if err := c.Save(ctx, 2, saved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := c.Load(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sort.Slice(loaded, func(i, j int) bool {
		if loaded[i].From != loaded[j].From {
			return loaded[i].From < loaded[j].From
		}
		return loaded[i].To < loaded[j].To
	})

	if len(loaded) != len(saved) {
		t.Fatalf("loaded %d entries, want %d", len(loaded), len(saved))
	}
	for i, e := range saved {
		if loaded[i] != e {
			t.Fatalf("entry %d = %+v, want %+v", i, loaded[i], e)
		}
	}
}

func TestRedisTimeCacheSeparatesSpeeds(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	if err := c.Save(ctx, 1, []domain.TimeEntry{{From: 1, To: 2, Time: 10}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other, err := c.Load(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("speed 2 returned %d entries, want 0", len(other))
	}
}

func TestRedisTimeCacheRejectsUnnormalizedPair(t *testing.T) {
	c := newTestRedisCache(t)

	err := c.Save(context.Background(), 1, []domain.TimeEntry{{From: 3, To: 2, Time: 1}})
	if err == nil {
		t.Fatal("expected error for unnormalized pair")
	}
}
