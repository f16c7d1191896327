/*
Responsibilities
- Memoize conversion results keyed by a derived fingerprint
- Enforce TTL freshness on every read
- Bound stale-entry growth via opportunistic sweeps

The store performs no I/O. The only reportable failure is invalid
configuration at construction time; every operation afterwards is total
over its documented input domain.
*/
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/rohmanhakim/html2md/internal/metadata"
	"github.com/rohmanhakim/html2md/pkg/failure"
)

// entry pairs a stored result with its freshness window.
// An entry is live while now < createdAt+ttl; afterwards it is stale and
// every read path treats it as absent, whether or not it still occupies
// storage. Entries are never mutated in place: a repeated Put replaces the
// whole entry atomically under the store lock.
type entry struct {
	value     Result
	createdAt time.Time
	ttl       time.Duration
}

func (e entry) staleAt(now time.Time) bool {
	return !now.Before(e.createdAt.Add(e.ttl))
}

// Store is the process-wide conversion cache. It is constructed once,
// explicitly, and passed to the request-handling context; multiple
// independent instances can coexist in tests.
//
// Every operation takes the same non-reentrant critical section, so a
// Get/Put pair on one key can never observe a half-written entry. The store
// offers no check-then-set primitive: cross-operation atomicity belongs to
// the caller.
type Store struct {
	mu           sync.Mutex
	entries      map[Key]entry
	enabled      bool
	defaultTTL   time.Duration
	now          func() time.Time
	metadataSink metadata.MetadataSink
}

// Option configures optional Store behavior at construction.
type Option func(*Store)

// WithClock replaces the wall clock. Tests use it to advance time without
// sleeping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a Store. defaultTTL must be positive even when the cache is
// disabled; construction is the one place configuration is validated, so
// every later operation can be total.
func New(
	enabled bool,
	defaultTTL time.Duration,
	metadataSink metadata.MetadataSink,
	opts ...Option,
) (*Store, failure.ClassifiedError) {
	if defaultTTL <= 0 {
		return nil, &ConfigError{
			Message: fmt.Sprintf("default ttl must be positive, got %v", defaultTTL),
			Cause:   ErrCauseNonPositiveTTL,
		}
	}

	s := &Store{
		entries:      make(map[Key]entry),
		enabled:      enabled,
		defaultTTL:   defaultTTL,
		now:          time.Now,
		metadataSink: metadataSink,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Enabled reports whether callers should consult the cache at all.
// The store works either way; this only carries the configured policy.
func (s *Store) Enabled() bool {
	return s.enabled
}

// DefaultTTL returns the TTL configured at construction.
func (s *Store) DefaultTTL() time.Duration {
	return s.defaultTTL
}

// Get returns the stored result for key. found is false when the key is
// absent or its entry has gone stale; a stale entry found this way is purged
// on the spot.
func (s *Store) Get(key Key) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		s.metadataSink.RecordCache(metadata.CacheMiss, string(key), nil)
		return Result{}, false
	}

	if e.staleAt(s.now()) {
		delete(s.entries, key)
		s.metadataSink.RecordCache(metadata.CacheExpired, string(key), nil)
		return Result{}, false
	}

	s.metadataSink.RecordCache(metadata.CacheHit, string(key), nil)
	return e.value, true
}

// Put unconditionally stores or replaces the entry for key with a fresh
// createdAt. The caller is responsible for clamping ttl to its configured
// policy bounds beforehand; a non-positive ttl here is a programming error,
// not a recoverable condition.
//
// A sweep of stale entries runs first, inside the same critical section, so
// sustained use cannot grow the map beyond the stale backlog of one put
// interval.
func (s *Store) Put(key Key, value Result, ttl time.Duration) {
	if ttl <= 0 {
		panic(fmt.Sprintf("cache: Put called with non-positive ttl %v", ttl))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()

	s.entries[key] = entry{
		value:     value,
		createdAt: s.now(),
		ttl:       ttl,
	}
	s.metadataSink.RecordCache(metadata.CacheStore, string(key), nil)
}

// Invalidate removes the entry for key if present. Idempotent: absent or
// already-removed keys are a no-op.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
}

// Clear removes all entries. Used for full resets.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[Key]entry)
}

// Size returns the number of entries currently held, live or stale.
// Informational; it does not trigger expiry.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// Sweep removes all stale entries and returns the count removed. Get already
// hides stale entries, so Sweep exists purely to bound memory growth.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.sweepLocked()
	if removed > 0 {
		s.metadataSink.RecordCache(metadata.CacheSweep, "", []metadata.Attribute{
			metadata.NewAttr(metadata.AttrField, fmt.Sprintf("removed=%d", removed)),
		})
	}
	return removed
}

// sweepLocked removes stale entries. Callers must hold s.mu.
func (s *Store) sweepLocked() int {
	now := s.now()
	removed := 0
	for key, e := range s.entries {
		if e.staleAt(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}
