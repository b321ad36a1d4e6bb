package memory

import (
	"time"

	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type FolderCache struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewFolderCache creates the in-process backend. The background janitor purges
// expired entries so the key set does not grow unbounded across sessions.
func NewFolderCache(ttl time.Duration) *FolderCache {
	c := cache.New(ttl, 5*time.Minute)
	return &FolderCache{
		cache: c,
		ttl:   ttl,
	}
}

var _ contract.FolderCache = (*FolderCache)(nil)

func (r *FolderCache) Get(key string) ([]dto.FolderStat, bool) {
	if x, found := r.cache.Get(key); found {
		return x.([]dto.FolderStat), true
	}
	return nil, false
}

func (r *FolderCache) Put(key string, payload []dto.FolderStat) {
	r.cache.Set(key, payload, cache.DefaultExpiration)
}

func (r *FolderCache) Invalidate(key string) {
	r.cache.Delete(key)
}
