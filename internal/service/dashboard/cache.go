package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"habit-tracker-service/pkg/metrics"
)

// Cache keeps rendered month views in Redis. A Redis outage never fails a
// dashboard read: lookups degrade to a miss and writes are best-effort.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(year int, month time.Month) string {
	return fmt.Sprintf("dashboard:%04d-%02d", year, int(month))
}

func (c *Cache) Get(ctx context.Context, year int, month time.Month) (*MonthView, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, cacheKey(year, month)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Dashboard cache lookup failed", zap.Error(err))
		}
		metrics.DashboardCacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}

	var view MonthView
	if err := json.Unmarshal(data, &view); err != nil {
		c.logger.Warn("Dashboard cache entry corrupt, dropping", zap.Error(err))
		_ = c.rdb.Del(ctx, cacheKey(year, month)).Err()
		metrics.DashboardCacheHits.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.DashboardCacheHits.WithLabelValues("hit").Inc()
	return &view, true
}

func (c *Cache) Set(ctx context.Context, view *MonthView) {
	if c == nil || c.rdb == nil {
		return
	}

	data, err := json.Marshal(view)
	if err != nil {
		c.logger.Warn("Failed to marshal month view for cache", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(view.Year, time.Month(view.Month)), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Dashboard cache store failed", zap.Error(err))
	}
}

// InvalidateMonth drops the cached view after a tracking or habit write.
func (c *Cache) InvalidateMonth(ctx context.Context, year int, month time.Month) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, cacheKey(year, month)).Err(); err != nil {
		c.logger.Warn("Dashboard cache invalidation failed", zap.Error(err))
	}
}
