// internal/cache/cache_test.go
package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type cachedThing struct {
	Summary string `json:"summary"`
	Score   int    `json:"score"`
}

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c, err := New(t.TempDir(), ttl, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestKey_Deterministic(t *testing.T) {
	assert.Equal(t, Key("system", "user"), Key("system", "user"))
	assert.NotEqual(t, Key("system", "user"), Key("user", "system"))
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"), "part boundaries must matter")
	assert.Len(t, Key("x"), 64)
}

func TestCache_SetGet(t *testing.T) {
	c := newTestCache(t, time.Hour)

	want := cachedThing{Summary: "user checked out quickly", Score: 87}
	c.Set(Key("prompt"), want)

	var got cachedThing
	require.True(t, c.Get(Key("prompt"), &got))
	assert.Equal(t, want, got)
}

func TestCache_Miss(t *testing.T) {
	c := newTestCache(t, time.Hour)

	var got cachedThing
	assert.False(t, c.Get(Key("never-stored"), &got))
}

func TestCache_Expiry(t *testing.T) {
	c := newTestCache(t, time.Hour)

	key := Key("old")
	c.Set(key, cachedThing{Summary: "stale"})

	// Backdate the entry beyond the TTL.
	raw, err := os.ReadFile(c.path(key))
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	env.CreatedUnix = time.Now().Add(-2 * time.Hour).Unix()
	raw, err = json.Marshal(env)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(c.path(key), raw, 0o644))

	var got cachedThing
	assert.False(t, c.Get(key, &got), "expired entry should read as a miss")
	_, err = os.Stat(c.path(key))
	assert.True(t, os.IsNotExist(err), "expired entry should be removed on read")
}

func TestCache_ZeroTTLNeverExpires(t *testing.T) {
	c := newTestCache(t, 0)

	key := Key("keep")
	c.Set(key, cachedThing{Summary: "fresh forever"})

	var got cachedThing
	assert.True(t, c.Get(key, &got))
}

func TestCache_CorruptedEntry(t *testing.T) {
	c := newTestCache(t, time.Hour)

	key := Key("broken")
	require.NoError(t, os.WriteFile(c.path(key), []byte("{not json"), 0o644))

	var got cachedThing
	assert.False(t, c.Get(key, &got))
	_, err := os.Stat(c.path(key))
	assert.True(t, os.IsNotExist(err), "corrupted entry should be removed")
}

func TestCache_Clear(t *testing.T) {
	c := newTestCache(t, time.Hour)

	c.Set(Key("a"), cachedThing{})
	c.Set(Key("b"), cachedThing{})

	removed, err := c.Clear()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	var got cachedThing
	assert.False(t, c.Get(Key("a"), &got))
}

func TestCache_GetStats(t *testing.T) {
	c := newTestCache(t, time.Hour)

	c.Set(Key("live"), cachedThing{Summary: "recent"})
	require.NoError(t, os.WriteFile(filepath.Join(c.dir, "junk.json"), []byte("oops"), 0o644))

	stats, err := c.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 1, stats.Expired, "unreadable entries count as expired")
	assert.Greater(t, stats.TotalBytes, int64(0))
}
