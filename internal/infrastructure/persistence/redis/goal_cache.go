package redis

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fitsphere/fitsphere-api/internal/application/query"
)

// ══════════════════════════════════════════════════════════════════════════════
// GOAL DETAIL CACHE
// ══════════════════════════════════════════════════════════════════════════════

// GoalDetailCache caches assembled goal detail DTOs in Redis.
// All operations are best-effort: failures are logged and swallowed so that
// a Redis outage degrades to cache misses instead of failed reads.
type GoalDetailCache struct {
	cache  *Cache
	logger *slog.Logger
}

// NewGoalDetailCache creates a goal detail cache on top of a Cache client.
func NewGoalDetailCache(cache *Cache, logger *slog.Logger) *GoalDetailCache {
	return &GoalDetailCache{
		cache:  cache,
		logger: logger.With("component", "goal_detail_cache"),
	}
}

func goalDetailKey(goalID string) string {
	return PrefixGoal + "detail:" + goalID
}

// Get returns the cached detail DTO for a goal, or false on a miss.
func (c *GoalDetailCache) Get(ctx context.Context, goalID string) (*query.GoalDetailDTO, bool) {
	var dto query.GoalDetailDTO
	err := c.cache.Get(ctx, goalDetailKey(goalID), &dto)
	if errors.Is(err, ErrCacheMiss) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("goal detail cache read failed", "goal_id", goalID, "error", err)
		return nil, false
	}
	return &dto, true
}

// Set stores the detail DTO under the goal's key.
func (c *GoalDetailCache) Set(ctx context.Context, dto *query.GoalDetailDTO) {
	if dto == nil {
		return
	}
	if err := c.cache.Set(ctx, goalDetailKey(dto.ID), dto, TTLGoalDetail); err != nil {
		c.logger.Warn("goal detail cache write failed", "goal_id", dto.ID, "error", err)
	}
}

// Invalidate drops the cached detail for a goal.
func (c *GoalDetailCache) Invalidate(ctx context.Context, goalID string) {
	if err := c.cache.Delete(ctx, goalDetailKey(goalID)); err != nil {
		c.logger.Warn("goal detail cache invalidation failed", "goal_id", goalID, "error", err)
	}
}
