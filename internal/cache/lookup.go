package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const lookupSuffix = ".lookup.json"

// LookupCache stores geocoder responses keyed by provider and query.
type LookupCache struct {
	Dir string
	// MaxAge makes entries older than this a miss. Zero keeps them forever.
	MaxAge time.Duration
	// StrictPerms enforces 0700 directories and 0600 files.
	StrictPerms bool

	now func() time.Time
}

// LookupKey builds a cache key for query against provider. Queries that only
// differ in whitespace share a key.
func LookupKey(provider, query string) string {
	return digest(provider, strings.Join(strings.Fields(query), " "))
}

func (c *LookupCache) pathFor(key string) string {
	return filepath.Join(c.Dir, key+lookupSuffix)
}

// Get returns cached bytes if present and fresh. A missing or expired entry
// is a miss, not an error.
func (c *LookupCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if err := ensureDir(c.Dir, c.StrictPerms); err != nil {
		return nil, false, err
	}
	p := c.pathFor(key)
	info, err := os.Stat(p)
	if err != nil {
		return nil, false, nil
	}
	if c.MaxAge > 0 && c.clock().Sub(info.ModTime()) > c.MaxAge {
		return nil, false, nil
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false, nil
	}
	return b, true, nil
}

// Save writes bytes to the cache.
func (c *LookupCache) Save(_ context.Context, key string, data []byte) error {
	if err := ensureDir(c.Dir, c.StrictPerms); err != nil {
		return err
	}
	return os.WriteFile(c.pathFor(key), data, fileMode(c.StrictPerms))
}

func (c *LookupCache) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}
