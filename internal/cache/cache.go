// internal/cache/cache.go

// Package cache provides a TTL file cache for LLM responses, keyed by a
// hash of the prompt material. Repeated runs over the same capture skip
// the network entirely.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Cache is an on-disk response cache. Entries older than TTL are treated
// as absent and removed on read.
type Cache struct {
	dir    string
	ttl    time.Duration
	logger *zap.Logger
}

// envelope wraps a cached payload with its creation time.
type envelope struct {
	CreatedUnix int64              `json:"created_unix"`
	Data        jsoniter.RawMessage `json:"data"`
}

// Stats summarizes the cache's on-disk state.
type Stats struct {
	Entries    int   `json:"entries"`
	TotalBytes int64 `json:"total_bytes"`
	Expired    int   `json:"expired"`
}

// New opens (creating if needed) a cache rooted at dir.
func New(dir string, ttl time.Duration, logger *zap.Logger) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return &Cache{dir: dir, ttl: ttl, logger: logger.Named("cache")}, nil
}

// Key derives the cache key for a set of prompt parts.
func Key(parts ...string) string {
	h := sha256.New()
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Get loads the cached value for key into out. It returns false on a
// miss; expired or unreadable entries count as misses and are removed.
func (c *Cache) Get(key string, out interface{}) bool {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// A corrupted entry is discarded, not surfaced.
		c.logger.Warn("discarding corrupted cache entry", zap.String("key", key), zap.Error(err))
		os.Remove(path)
		return false
	}

	if c.expired(env.CreatedUnix) {
		c.logger.Debug("cache entry expired", zap.String("key", key))
		os.Remove(path)
		return false
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		c.logger.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		os.Remove(path)
		return false
	}

	c.logger.Debug("cache hit", zap.String("key", key))
	return true
}

// Set stores value under key. Write failures are logged, not fatal; a
// broken cache must never break a run.
func (c *Cache) Set(key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("failed to encode cache value", zap.String("key", key), zap.Error(err))
		return
	}

	raw, err := json.Marshal(envelope{CreatedUnix: time.Now().Unix(), Data: data})
	if err != nil {
		c.logger.Warn("failed to encode cache envelope", zap.String("key", key), zap.Error(err))
		return
	}

	if err := os.WriteFile(c.path(key), raw, 0o644); err != nil {
		c.logger.Warn("failed to write cache entry", zap.String("key", key), zap.Error(err))
	}
}

// Clear removes every entry and reports how many were deleted.
func (c *Cache) Clear() (int, error) {
	paths, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil {
		return 0, fmt.Errorf("listing cache entries: %w", err)
	}

	removed := 0
	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			c.logger.Warn("failed to remove cache entry", zap.String("path", path), zap.Error(err))
			continue
		}
		removed++
	}
	c.logger.Info("cache cleared", zap.Int("removed", removed))
	return removed, nil
}

// GetStats walks the cache dir and tallies entries, bytes, and how many
// entries have outlived the TTL.
func (c *Cache) GetStats() (Stats, error) {
	paths, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil {
		return Stats{}, fmt.Errorf("listing cache entries: %w", err)
	}

	stats := Stats{}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalBytes += info.Size()

		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil || c.expired(env.CreatedUnix) {
			stats.Expired++
		}
	}
	return stats, nil
}

func (c *Cache) expired(createdUnix int64) bool {
	if c.ttl <= 0 {
		return false
	}
	return time.Since(time.Unix(createdUnix, 0)) > c.ttl
}
