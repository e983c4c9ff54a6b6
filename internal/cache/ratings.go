package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"swap-service/internal/logger"
	"swap-service/internal/models"
)

// RatingCache keeps rating summaries in redis so profile reads skip the
// aggregate query. A nil client disables caching entirely.
type RatingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRatingCache constructs a RatingCache.
func NewRatingCache(rdb *redis.Client, ttl time.Duration) *RatingCache {
	return &RatingCache{rdb: rdb, ttl: ttl}
}

func ratingKey(userID int) string {
	return fmt.Sprintf("rating_summary:%d", userID)
}

// Get returns the cached summary and whether it was present.
func (c *RatingCache) Get(ctx context.Context, userID int) (models.RatingSummary, bool) {
	if c == nil || c.rdb == nil {
		return models.RatingSummary{}, false
	}
	val, err := c.rdb.Get(ctx, ratingKey(userID)).Result()
	if err == redis.Nil {
		return models.RatingSummary{}, false
	}
	if err != nil {
		logger.Log.Warn("rating cache read failed", zap.Error(err))
		return models.RatingSummary{}, false
	}

	var summary models.RatingSummary
	if _, err := fmt.Sscanf(val, "%f|%d", &summary.Average, &summary.Count); err != nil {
		return models.RatingSummary{}, false
	}
	return summary, true
}

// Set stores the summary.
func (c *RatingCache) Set(ctx context.Context, userID int, summary models.RatingSummary) {
	if c == nil || c.rdb == nil {
		return
	}
	val := fmt.Sprintf("%f|%d", summary.Average, summary.Count)
	if err := c.rdb.Set(ctx, ratingKey(userID), val, c.ttl).Err(); err != nil {
		logger.Log.Warn("rating cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached summary after a new rating lands.
func (c *RatingCache) Invalidate(ctx context.Context, userID int) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, ratingKey(userID)).Err(); err != nil {
		logger.Log.Warn("rating cache invalidate failed", zap.Error(err))
	}
}
