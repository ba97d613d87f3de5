package analytics

import (
	"context"

	"github.com/Taichi-iskw/tagscribe/internal/cache"
	"github.com/Taichi-iskw/tagscribe/internal/logger"
)

// generationKey versions every cached analytics result
const generationKey = "analytics:generation"

// Invalidator retires cached analytics once a write that changes counts has committed
type Invalidator struct {
	cache cache.Cache
	log   *logger.Logger
}

// NewInvalidator creates an Invalidator over the cache the analytics service reads
func NewInvalidator(c cache.Cache, log *logger.Logger) *Invalidator {
	if c == nil {
		c = cache.Nop{}
	}
	return &Invalidator{cache: c, log: log.With("component", "AnalyticsInvalidator")}
}

// Invalidate bumps the cache generation so later reads miss every earlier entry
func (i *Invalidator) Invalidate(ctx context.Context) {
	if _, err := i.cache.Incr(ctx, generationKey); err != nil {
		// entries still expire after the cache TTL
		i.log.Warn("analytics cache invalidation failed", "error", err)
	}
}
