// Package cache fronts a snapshot source with a read-through cache.
package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/pensionproj/internal/domain"
	"github.com/rgehrsitz/pensionproj/internal/storage"
)

// Cache stores serialised user records. Get reports an absent key as a miss with a
// nil error.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Logger receives cache failures, which never fail a lookup.
type Logger interface {
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...any) {}

const keyPrefix = "pensionproj:user:"

// Key returns the cache key for a user.
func Key(userID string) string {
	return keyPrefix + strings.TrimSpace(userID)
}

// CachedSource is a SnapshotSource that consults a cache before its backing source.
type CachedSource struct {
	source storage.SnapshotSource
	cache  Cache
	logger Logger
}

// NewCachedSource wraps source with cache. A nil logger discards warnings.
func NewCachedSource(source storage.SnapshotSource, cache Cache, logger Logger) *CachedSource {
	if logger == nil {
		logger = nopLogger{}
	}
	return &CachedSource{source: source, cache: cache, logger: logger}
}

// LookupUser implements storage.SnapshotSource.
func (c *CachedSource) LookupUser(ctx context.Context, userID string) (domain.UserRecords, error) {
	key := Key(userID)

	cached, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		c.logger.Warnf("cache read for %s failed, using the backing source: %v", key, err)
	case ok:
		var records domain.UserRecords
		err := json.Unmarshal([]byte(cached), &records)
		if err == nil {
			return records, nil
		}
		c.logger.Warnf("discarding unreadable cache entry %s: %v", key, err)
	}

	records, err := c.source.LookupUser(ctx, userID)
	if err != nil {
		return domain.UserRecords{}, fmt.Errorf("lookup user %s: %w", userID, err)
	}

	data, err := json.Marshal(records)
	if err != nil {
		c.logger.Warnf("failed to encode records for %s: %v", key, err)
		return records, nil
	}
	if err := c.cache.Set(ctx, key, string(data)); err != nil {
		c.logger.Warnf("failed to cache records for %s: %v", key, err)
	}
	return records, nil
}

// Invalidate drops the cached records for a user.
func (c *CachedSource) Invalidate(ctx context.Context, userID string) error {
	return c.cache.Delete(ctx, Key(userID))
}
