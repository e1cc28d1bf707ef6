// Package cache is the injected snapshot cache collaborator. The
// reconciliation engine never touches it; the query surface that owns
// the cache decides when to consult and populate it.
package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pixelplot/tile-indexer/internal/adapter"
	"github.com/pixelplot/tile-indexer/internal/domain"
	"github.com/pixelplot/tile-indexer/internal/logger"
)

const snapshotKey = "tile-indexer:snapshot:latest"

// SnapshotCache stores the latest reconciled snapshot with a TTL
//
//go:generate mockgen -source=cache.go -destination=../mocks/snapshot_cache.go -package=mocks -mock_names=SnapshotCache=MockSnapshotCache
type SnapshotCache interface {
	// Get returns the cached snapshot, or false when absent or expired
	Get(ctx context.Context) (*domain.Snapshot, bool)

	// Set stores a snapshot. Failures are absorbed: the cache is an
	// optimization, never a correctness dependency
	Set(ctx context.Context, snapshot *domain.Snapshot)
}

// RedisSnapshotCache keeps the snapshot as a JSON blob in Redis
type RedisSnapshotCache struct {
	redis adapter.RedisClient
	json  adapter.JSON
	ttl   time.Duration
}

// NewRedisSnapshotCache creates a snapshot cache with the given TTL
func NewRedisSnapshotCache(redis adapter.RedisClient, json adapter.JSON, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{redis: redis, json: json, ttl: ttl}
}

// Get returns the cached snapshot, or false when absent or unreadable.
// An unreadable entry is treated as a miss so the caller recomputes and
// overwrites it.
func (c *RedisSnapshotCache) Get(ctx context.Context) (*domain.Snapshot, bool) {
	raw, err := c.redis.Get(ctx, snapshotKey)
	if err != nil {
		if !adapter.IsCacheMiss(err) {
			logger.WarnCtx(ctx, "snapshot cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var snapshot domain.Snapshot
	if err := c.json.Unmarshal([]byte(raw), &snapshot); err != nil {
		logger.WarnCtx(ctx, "snapshot cache entry unreadable, treating as miss", zap.Error(err))
		return nil, false
	}

	return &snapshot, true
}

// Set stores a snapshot, absorbing failures
func (c *RedisSnapshotCache) Set(ctx context.Context, snapshot *domain.Snapshot) {
	raw, err := c.json.Marshal(snapshot)
	if err != nil {
		logger.WarnCtx(ctx, "failed to marshal snapshot for cache", zap.Error(err))
		return
	}

	if err := c.redis.Set(ctx, snapshotKey, string(raw), c.ttl); err != nil {
		logger.WarnCtx(ctx, "snapshot cache write failed", zap.Error(err))
	}
}
