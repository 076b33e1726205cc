// Package cache provides the Redis read-through layer in front of the
// sold-identifier repository. The sold check runs on every scan, and a code
// that entered the sold set never leaves it, so positive answers are safe to
// cache; negative answers are not (another terminal may sell the code at any
// moment) and always fall through.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/id"
	"github.com/prinzana/sellyticsOffline-sub002/internal/domain/sales/sold"
	"github.com/prinzana/sellyticsOffline-sub002/pkg/logger"
)

const (
	soldKeyPrefix = "sold:"
	soldKeyTTL    = 12 * time.Hour
)

// SoldCache wraps a sold.Repository with a Redis positive-hit cache.
// Redis failures are logged and the query falls through to the repository.
type SoldCache struct {
	client *redis.Client
	next   sold.Repository
	log    *logger.Logger
}

// NewSoldCache creates the cache layer over next.
func NewSoldCache(client *redis.Client, next sold.Repository, log *logger.Logger) *SoldCache {
	return &SoldCache{
		client: client,
		next:   next,
		log:    log.WithComponent("sold_cache"),
	}
}

func soldKey(storeID id.ID, code string) string {
	return fmt.Sprintf("%s%s:%s", soldKeyPrefix, storeID, strings.ToLower(code))
}

// Exists checks Redis first and falls through to the repository on miss,
// populating the cache on a positive answer.
func (c *SoldCache) Exists(ctx context.Context, storeID id.ID, code string) (bool, error) {
	key := soldKey(storeID, code)

	hit, err := c.client.Exists(ctx, key).Result()
	if err != nil && err != redis.Nil {
		c.log.Warnw("redis sold check failed, falling through", "error", err)
	} else if hit > 0 {
		return true, nil
	}

	isSold, err := c.next.Exists(ctx, storeID, code)
	if err != nil {
		return false, err
	}

	if isSold {
		if err := c.client.Set(ctx, key, 1, soldKeyTTL).Err(); err != nil {
			c.log.Warnw("redis sold set failed", "error", err)
		}
	}
	return isSold, nil
}

// FindSoldOf delegates to the repository. The set-difference query is not on
// the per-scan hot path and is not cached.
func (c *SoldCache) FindSoldOf(ctx context.Context, storeID id.ID, identifiers []string) ([]string, error) {
	return c.next.FindSoldOf(ctx, storeID, identifiers)
}
