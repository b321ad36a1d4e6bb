package contract

import "github.com/benvansteenbergen/console-sub000/internal/dto"

// keySuffixLen is how much of the session token becomes the cache key.
// Distinct tokens sharing a suffix collide; accepted, the cached payload is a
// reconstructable projection of upstream state, never the system of record.
const keySuffixLen = 12

// FolderCache holds short-lived folder-listing payloads keyed by a session
// token suffix. Entries are valid only until their TTL; Put unconditionally
// overwrites.
type FolderCache interface {
	Get(key string) ([]dto.FolderStat, bool)
	Put(key string, payload []dto.FolderStat)
	Invalidate(key string)
}

// CacheKey derives the cache key from a session token.
func CacheKey(token string) string {
	if len(token) <= keySuffixLen {
		return token
	}
	return token[len(token)-keySuffixLen:]
}
