package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/logger"
	"github.com/benvansteenbergen/console-sub000/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "wingsuite:folders:"

// FolderCache is the shared backend for multi-instance deployments: the same
// contract as the in-process cache, backed by Redis with per-key TTL.
type FolderCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

func NewFolderCache(rdb *redis.Client, ttl time.Duration, log logger.ILogger) *FolderCache {
	return &FolderCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: log,
	}
}

var _ contract.FolderCache = (*FolderCache)(nil)

func (r *FolderCache) Get(key string) ([]dto.FolderStat, bool) {
	raw, err := r.rdb.Get(context.Background(), keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("FolderCache", "Redis get failed", map[string]interface{}{"error": err.Error()})
		}
		return nil, false
	}

	var payload []dto.FolderStat
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Treat an undecodable entry as a miss and drop it.
		r.rdb.Del(context.Background(), keyPrefix+key)
		return nil, false
	}
	return payload, true
}

func (r *FolderCache) Put(key string, payload []dto.FolderStat) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := r.rdb.Set(context.Background(), keyPrefix+key, raw, r.ttl).Err(); err != nil {
		r.logger.Warn("FolderCache", "Redis set failed", map[string]interface{}{"error": err.Error()})
	}
}

func (r *FolderCache) Invalidate(key string) {
	r.rdb.Del(context.Background(), keyPrefix+key)
}
