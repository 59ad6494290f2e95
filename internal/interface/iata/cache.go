package iata

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"flight-intent-service/internal/domain/repository"
	"flight-intent-service/pkg/logger"
	"flight-intent-service/pkg/metrics"
	"flight-intent-service/pkg/textnorm"
)

// Store is the subset of the redis client the caches need.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedLookup keeps found codes in redis. Misses and errors are not cached.
type CachedLookup struct {
	store   Store
	next    repository.AirportCodeLookup
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  logger.Logger
}

// NewCachedLookup creates a new cached lookup. A zero ttl keeps entries
// forever.
func NewCachedLookup(store Store, next repository.AirportCodeLookup, ttl time.Duration, metrics *metrics.Metrics, logger logger.Logger) *CachedLookup {
	return &CachedLookup{
		store:   store,
		next:    next,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// CacheKey builds the redis key for a city and its preferred countries.
func CacheKey(city string, preferred []string) string {
	return "iata:" + strings.Join(preferred, ",") + ":" + textnorm.Fold(city)
}

// LookupIATA implements repository.AirportCodeLookup. Redis problems are
// logged and the call goes through to the next lookup.
func (c *CachedLookup) LookupIATA(ctx context.Context, city string, preferred []string) (string, error) {
	key := CacheKey(city, preferred)

	code, err := c.store.Get(ctx, key).Result()
	switch {
	case err == nil && code != "":
		c.metrics.CacheHits.WithLabelValues("iata").Inc()
		return code, nil
	case err != nil && !errors.Is(err, redis.Nil):
		c.logger.Warn("Redis GET failed", "key", key, "error", err)
	}

	code, err = c.next.LookupIATA(ctx, city, preferred)
	if err != nil || code == "" {
		return code, err
	}

	if err := c.store.Set(ctx, key, code, c.ttl).Err(); err != nil {
		c.logger.Warn("Redis SET failed", "key", key, "error", err)
	}
	return code, nil
}
