package repository

import (
	"context"
	"fmt"
	"time"
	"trading-journal/internal/dto"
	"trading-journal/pkg/cache"

	"golang.org/x/sync/singleflight"
)

// cachedBarRepository memoizes bar windows. The cache key encodes the window
// bounds, not just the symbol and minute, so a run with a different window
// size can never silently reuse a narrower or wider window. Concurrent
// fetches for the same key collapse into a single provider call.
type cachedBarRepository struct {
	next  BarRepository
	cache cache.Cache
	ttl   time.Duration
	group singleflight.Group
}

// NewCachedBarRepository wraps a BarRepository with an in-memory window cache.
func NewCachedBarRepository(next BarRepository, c cache.Cache, ttl time.Duration) BarRepository {
	return &cachedBarRepository{
		next:  next,
		cache: c,
		ttl:   ttl,
	}
}

func (r *cachedBarRepository) Fetch(ctx context.Context, symbol string, center time.Time, windowHours int) ([]dto.Bar, error) {
	center = center.Truncate(time.Minute)
	window := time.Duration(windowHours) * time.Hour
	start, end := center.Add(-window), center.Add(window)

	key := fmt.Sprintf("bars:%s:%d:%d", symbol, start.Unix(), end.Unix())

	if bars, ok := cache.GetTyped[[]dto.Bar](r.cache, key); ok {
		return bars, nil
	}

	result, err, _ := r.group.Do(key, func() (interface{}, error) {
		bars, err := r.next.Fetch(ctx, symbol, center, windowHours)
		if err != nil {
			return nil, err
		}
		r.cache.Set(key, bars, r.ttl)
		return bars, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]dto.Bar), nil
}
