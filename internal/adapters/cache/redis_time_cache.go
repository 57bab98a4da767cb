package cache

import (
	"context"
	"delivery-optimizer-service/internal/domain"
	"delivery-optimizer-service/internal/platform/obs"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Redis-backed cache for computed stop-pair travel times. Each speed maps
// to one hash whose fields are "from:to" pair keys (from < to).
type RedisTimeCache struct {
	Client *redis.Client
}

func NewRedisTimeCache(client *redis.Client) *RedisTimeCache {
	return &RedisTimeCache{Client: client}
}

func timeCacheKey(speed float64) string {
	return "traveltime:" + strconv.FormatFloat(speed, 'g', -1, 64)
}

// Fetch every cached pair time derived from one travel speed.
func (r *RedisTimeCache) Load(ctx context.Context, speed float64) (_ []domain.TimeEntry, err error) {
	defer obs.Time(ctx, "traveltime.cache.redis.Load")(&err)

	if r.Client == nil {
		return nil, errors.New("time cache: redis client is nil")
	}
	if speed <= 0 {
		return nil, fmt.Errorf("load time cache: speed must be greater than 0, got %v", speed)
	}

	fields, err := r.Client.HGetAll(ctx, timeCacheKey(speed)).Result()
	if err != nil {
		return nil, fmt.Errorf("load time cache: hgetall: %w", err)
	}

	entries := make([]domain.TimeEntry, 0, len(fields))
	for field, raw := range fields {
		from, to, ok := strings.Cut(field, ":")
		if !ok {
			return nil, fmt.Errorf("load time cache: malformed pair key %q", field)
		}
		e := domain.TimeEntry{}
		if e.From, err = strconv.Atoi(from); err != nil {
			return nil, fmt.Errorf("load time cache: pair key %q: %w", field, err)
		}
		if e.To, err = strconv.Atoi(to); err != nil {
			return nil, fmt.Errorf("load time cache: pair key %q: %w", field, err)
		}
		if e.Time, err = strconv.ParseFloat(raw, 64); err != nil {
			return nil, fmt.Errorf("load time cache: value for %q: %w", field, err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// Store pair times for one travel speed.
func (r *RedisTimeCache) Save(ctx context.Context, speed float64, entries []domain.TimeEntry) (err error) {
	defer obs.Time(ctx, "traveltime.cache.redis.Save")(&err)

	if r.Client == nil {
		return errors.New("time cache: redis client is nil")
	}
	if speed <= 0 {
		return fmt.Errorf("save time cache: speed must be greater than 0, got %v", speed)
	}
	if len(entries) == 0 {
		return nil
	}

	fields := make([]any, 0, 2*len(entries))
	for _, e := range entries {
		if e.From >= e.To {
			return fmt.Errorf("save time cache: pair (%d,%d) is not normalized", e.From, e.To)
		}
		field := strconv.Itoa(e.From) + ":" + strconv.Itoa(e.To)
		fields = append(fields, field, strconv.FormatFloat(e.Time, 'g', -1, 64))
	}

	if err := r.Client.HSet(ctx, timeCacheKey(speed), fields...).Err(); err != nil {
		return fmt.Errorf("save time cache: hset: %w", err)
	}
	return nil
}
