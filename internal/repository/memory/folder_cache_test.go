package memory

import (
	"testing"
	"time"

	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/repository/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolderCachePutGet(t *testing.T) {
	cache := NewFolderCache(time.Minute)

	_, hit := cache.Get("abc")
	assert.False(t, hit)

	payload := []dto.FolderStat{{Folder: "blog posts", Unseen: 3}}
	cache.Put("abc", payload)

	got, hit := cache.Get("abc")
	require.True(t, hit)
	assert.Equal(t, payload, got)
}

func TestFolderCacheOverwrite(t *testing.T) {
	cache := NewFolderCache(time.Minute)

	cache.Put("abc", []dto.FolderStat{{Folder: "old"}})
	cache.Put("abc", []dto.FolderStat{{Folder: "new"}})

	got, hit := cache.Get("abc")
	require.True(t, hit)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Folder)
}

func TestFolderCacheExpiry(t *testing.T) {
	cache := NewFolderCache(20 * time.Millisecond)

	cache.Put("abc", []dto.FolderStat{{Folder: "blog posts"}})
	time.Sleep(40 * time.Millisecond)

	_, hit := cache.Get("abc")
	assert.False(t, hit)
}

func TestFolderCacheInvalidate(t *testing.T) {
	cache := NewFolderCache(time.Minute)

	cache.Put("abc", []dto.FolderStat{{Folder: "blog posts"}})
	cache.Invalidate("abc")

	_, hit := cache.Get("abc")
	assert.False(t, hit)
}

func TestCacheKeySuffix(t *testing.T) {
	token := "abcdefghijklmnopqrstuvwxyz"
	key := contract.CacheKey(token)
	assert.Equal(t, "opqrstuvwxyz", key)

	// Short tokens are used as-is.
	assert.Equal(t, "short", contract.CacheKey("short"))

	// Distinct tokens sharing a suffix collide on purpose.
	assert.Equal(t, key, contract.CacheKey("zzzz"+token[4:]))
}
