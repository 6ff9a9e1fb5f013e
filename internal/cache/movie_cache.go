package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "github.com/hjoseph777/MoviesLand/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyMovie = "movie:"

// MovieCache caches movie detail records in Redis. The detail page is the
// only route without an auth gate, so it is the one worth caching.
type MovieCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewMovieCache returns a new MovieCache.
func NewMovieCache(rdb *redis.Client, ttl time.Duration) *MovieCache {
	return &MovieCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached movie or nil on miss.
func (c *MovieCache) Get(ctx context.Context, id int64) (*dom.Movie, error) {
	b, err := c.rdb.Get(ctx, movieKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var m dom.Movie
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Set stores the movie in cache.
func (c *MovieCache) Set(ctx context.Context, m dom.Movie) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, movieKey(m.ID), b, c.ttl).Err()
}

// Invalidate removes the cached movie (cache invalidation on write).
func (c *MovieCache) Invalidate(ctx context.Context, id int64) error {
	return c.rdb.Del(ctx, movieKey(id)).Err()
}

func movieKey(id int64) string {
	return keyMovie + strconv.FormatInt(id, 10)
}
