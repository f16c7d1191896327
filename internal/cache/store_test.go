package cache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/rohmanhakim/html2md/internal/cache"
	"github.com/rohmanhakim/html2md/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock is a manually advanced clock for expiry tests.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T, clock *testClock) *cache.Store {
	t.Helper()
	store, err := cache.New(true, time.Hour, &metadata.NoopSink{}, cache.WithClock(clock.Now))
	require.NoError(t, err)
	return store
}

func mustKey(t *testing.T, url string) cache.Key {
	t.Helper()
	key, err := cache.DeriveKey(cache.KeySpec{
		URL:           url,
		IncludeImages: true, IncludeTables: true, IncludeLinks: true,
		FetchMethod: "fetch", BrowserType: "chromium", WaitFor: "networkidle",
	})
	require.NoError(t, err)
	return key
}

func TestNew_RejectsNonPositiveTTL(t *testing.T) {
	store, err := cache.New(true, 0, &metadata.NoopSink{})
	assert.Nil(t, store)
	require.Error(t, err)

	configErr, ok := err.(*cache.ConfigError)
	require.True(t, ok, "expected *cache.ConfigError, got %T", err)
	assert.Equal(t, cache.ErrCauseNonPositiveTTL, configErr.Cause)
}

func TestStore_MissThenHit(t *testing.T) {
	store := newTestStore(t, newTestClock())
	key := mustKey(t, "https://example.com/a")

	_, found := store.Get(key)
	assert.False(t, found, "empty store must miss")

	value := cache.NewResult("https://example.com/a", "# A", 100, 80, 3)
	store.Put(key, value, time.Hour)

	got, found := store.Get(key)
	require.True(t, found)
	assert.Equal(t, value, got)
}

func TestStore_Expiry(t *testing.T) {
	clock := newTestClock()
	store := newTestStore(t, clock)
	key := mustKey(t, "https://example.com/a")

	store.Put(key, cache.NewResult("https://example.com/a", "# A", 10, 8, 3), time.Second)

	clock.Advance(999 * time.Millisecond)
	_, found := store.Get(key)
	assert.True(t, found, "entry must be live just before the TTL elapses")

	clock.Advance(2 * time.Millisecond)
	_, found = store.Get(key)
	assert.False(t, found, "stale entry must be treated as absent")
}

func TestStore_SizeCountsStaleUntilSweep(t *testing.T) {
	clock := newTestClock()
	store := newTestStore(t, clock)

	store.Put(mustKey(t, "https://example.com/a"), cache.Result{}, time.Second)
	store.Put(mustKey(t, "https://example.com/b"), cache.Result{}, time.Hour)
	assert.Equal(t, 2, store.Size())

	clock.Advance(2 * time.Second)

	// Stale entry still occupies storage; Size is informational.
	assert.Equal(t, 2, store.Size())

	removed := store.Sweep()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Size())
}

func TestStore_Replacement(t *testing.T) {
	store := newTestStore(t, newTestClock())
	key := mustKey(t, "https://example.com/a")

	v1 := cache.NewResult("https://example.com/a", "# v1", 10, 8, 4)
	v2 := cache.NewResult("https://example.com/a", "# v2", 10, 8, 4)

	store.Put(key, v1, time.Hour)
	store.Put(key, v2, time.Hour)

	got, found := store.Get(key)
	require.True(t, found)
	assert.Equal(t, "# v2", got.Markdown())
	assert.Equal(t, 1, store.Size())
}

func TestStore_ReplacementRefreshesCreatedAt(t *testing.T) {
	clock := newTestClock()
	store := newTestStore(t, clock)
	key := mustKey(t, "https://example.com/a")

	store.Put(key, cache.NewResult("u", "# v1", 1, 1, 1), time.Minute)
	clock.Advance(50 * time.Second)
	store.Put(key, cache.NewResult("u", "# v2", 1, 1, 1), time.Minute)
	clock.Advance(30 * time.Second)

	// 80s after the first put, 30s after the replace: still live.
	got, found := store.Get(key)
	require.True(t, found)
	assert.Equal(t, "# v2", got.Markdown())
}

func TestStore_InvalidateIdempotent(t *testing.T) {
	store := newTestStore(t, newTestClock())
	key := mustKey(t, "https://example.com/a")

	// Absent key: no-op, no panic.
	store.Invalidate(key)

	store.Put(key, cache.Result{}, time.Hour)
	store.Invalidate(key)
	_, found := store.Get(key)
	assert.False(t, found)

	// Already removed: still a no-op.
	store.Invalidate(key)
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore(t, newTestClock())

	store.Put(mustKey(t, "https://example.com/a"), cache.Result{}, time.Hour)
	store.Put(mustKey(t, "https://example.com/b"), cache.Result{}, time.Hour)

	store.Clear()
	assert.Equal(t, 0, store.Size())
	_, found := store.Get(mustKey(t, "https://example.com/a"))
	assert.False(t, found)
}

func TestStore_PutSweepsStaleEntries(t *testing.T) {
	clock := newTestClock()
	store := newTestStore(t, clock)

	store.Put(mustKey(t, "https://example.com/a"), cache.Result{}, time.Second)
	clock.Advance(time.Minute)

	store.Put(mustKey(t, "https://example.com/b"), cache.Result{}, time.Hour)

	// The stale entry was removed by the opportunistic sweep inside Put.
	assert.Equal(t, 1, store.Size())
}

func TestStore_PutNonPositiveTTLPanics(t *testing.T) {
	store := newTestStore(t, newTestClock())

	assert.Panics(t, func() {
		store.Put(mustKey(t, "https://example.com/a"), cache.Result{}, 0)
	})
	assert.Panics(t, func() {
		store.Put(mustKey(t, "https://example.com/a"), cache.Result{}, -time.Second)
	})
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := newTestStore(t, newTestClock())
	key := mustKey(t, "https://example.com/a")
	value := cache.NewResult("https://example.com/a", "# A", 1, 1, 1)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.Put(key, value, time.Hour)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got, found := store.Get(key); found {
					// Never a half-written entry.
					assert.Equal(t, "# A", got.Markdown())
				}
			}
		}()
	}
	wg.Wait()

	got, found := store.Get(key)
	require.True(t, found)
	assert.Equal(t, value, got)
}

// Mirrors the documented end-to-end scenario: identical parameters hit the
// same entry, a method change misses, and 3601 elapsed seconds expire a
// 3600-second entry.
func TestStore_ConversionScenario(t *testing.T) {
	clock := newTestClock()
	store := newTestStore(t, clock)

	spec := cache.KeySpec{
		URL:           "https://example.com/a",
		IncludeImages: true, IncludeTables: true, IncludeLinks: true,
		FetchMethod: "fetch", BrowserType: "chromium", WaitFor: "networkidle",
	}
	key, err := cache.DeriveKey(spec)
	require.NoError(t, err)

	again, err := cache.DeriveKey(spec)
	require.NoError(t, err)
	assert.Equal(t, key, again)

	playwrightSpec := spec
	playwrightSpec.FetchMethod = "playwright"
	playwrightKey, err := cache.DeriveKey(playwrightSpec)
	require.NoError(t, err)
	assert.NotEqual(t, key, playwrightKey)

	store.Put(key, cache.NewResult("https://example.com/a", "# A", 100, 80, 3), 3600*time.Second)

	got, found := store.Get(key)
	require.True(t, found)
	assert.Equal(t, "# A", got.Markdown())

	clock.Advance(3601 * time.Second)
	_, found = store.Get(key)
	assert.False(t, found)
}
