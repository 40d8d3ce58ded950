package repository

import (
	"context"
	"sync"
	"testing"
	"time"
	"trading-journal/internal/dto"
	"trading-journal/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingBarRepo struct {
	mu      sync.Mutex
	fetches int
	bars    []dto.Bar
}

func (c *countingBarRepo) Fetch(_ context.Context, _ string, _ time.Time, _ int) ([]dto.Bar, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetches++
	return c.bars, nil
}

func TestCachedBarRepositoryReusesWindow(t *testing.T) {
	next := &countingBarRepo{bars: []dto.Bar{{Close: 1.0}}}
	repo := NewCachedBarRepository(next, cache.NewCache(time.Minute, time.Minute), time.Minute)

	center := time.Date(2025, 5, 1, 14, 30, 12, 0, time.UTC)

	first, err := repo.Fetch(context.Background(), "NQZ4", center, 8)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Same symbol, same minute, same window: served from cache.
	second, err := repo.Fetch(context.Background(), "NQZ4", center.Add(30*time.Second), 8)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.fetches)
}

// A different window size is a different cache entry even for the same
// symbol and minute.
func TestCachedBarRepositoryKeysOnWindowBounds(t *testing.T) {
	next := &countingBarRepo{bars: []dto.Bar{{Close: 1.0}}}
	repo := NewCachedBarRepository(next, cache.NewCache(time.Minute, time.Minute), time.Minute)

	center := time.Date(2025, 5, 1, 14, 30, 0, 0, time.UTC)

	_, err := repo.Fetch(context.Background(), "NQZ4", center, 8)
	require.NoError(t, err)
	_, err = repo.Fetch(context.Background(), "NQZ4", center, 4)
	require.NoError(t, err)

	assert.Equal(t, 2, next.fetches)
}

func TestCachedBarRepositoryDistinctSymbols(t *testing.T) {
	next := &countingBarRepo{bars: []dto.Bar{{Close: 1.0}}}
	repo := NewCachedBarRepository(next, cache.NewCache(time.Minute, time.Minute), time.Minute)

	center := time.Date(2025, 5, 1, 14, 30, 0, 0, time.UTC)

	_, err := repo.Fetch(context.Background(), "NQZ4", center, 8)
	require.NoError(t, err)
	_, err = repo.Fetch(context.Background(), "ESZ4", center, 8)
	require.NoError(t, err)

	assert.Equal(t, 2, next.fetches)
}
