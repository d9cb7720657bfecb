// Package cache memoizes the last batch extraction result against a
// message-set fingerprint so repeated reads over an unchanged inbox skip
// the rule engine entirely.
package cache

import (
	"sync/atomic"
	"time"

	"sms-tagger/internal/sms"
)

// DefaultTTL bounds how long a snapshot is served without revalidation.
const DefaultTTL = 5 * time.Minute

// Snapshot is one immutable cache generation. It is replaced wholesale on
// update; readers never observe a partially written state.
type Snapshot struct {
	Records         []sms.ExpressRecord
	LatestTimestamp string
	LatestID        int64
	LoadedAt        time.Time
}

// Freshness is a single-value cell holding the last known good extraction
// result. Safe for concurrent use: the snapshot is swapped atomically.
type Freshness struct {
	ttl      time.Duration
	snapshot atomic.Pointer[Snapshot]
	now      func() time.Time
}

// New creates a cache with the given TTL; ttl <= 0 selects DefaultTTL.
func New(ttl time.Duration) *Freshness {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Freshness{ttl: ttl, now: time.Now}
}

// GetIfFresh returns the cached records when the snapshot is non-empty,
// within TTL, and the fingerprint matches. A zero latestTimestamp or
// latestID skips that half of the fingerprint check.
func (f *Freshness) GetIfFresh(latestTimestamp string, latestID int64) ([]sms.ExpressRecord, bool) {
	snap := f.snapshot.Load()
	if snap == nil || len(snap.Records) == 0 {
		return nil, false
	}

	if f.now().Sub(snap.LoadedAt) > f.ttl {
		return nil, false
	}
	if latestTimestamp != "" && snap.LatestTimestamp != latestTimestamp {
		return nil, false
	}
	if latestID != 0 && snap.LatestID != latestID {
		return nil, false
	}

	return snap.Records, true
}

// Update replaces the snapshot with a new generation.
func (f *Freshness) Update(records []sms.ExpressRecord, latestTimestamp string, latestID int64) {
	f.snapshot.Store(&Snapshot{
		Records:         records,
		LatestTimestamp: latestTimestamp,
		LatestID:        latestID,
		LoadedAt:        f.now(),
	})
}

// Get returns the current snapshot regardless of freshness, or nil when
// the cache is empty.
func (f *Freshness) Get() *Snapshot {
	snap := f.snapshot.Load()
	if snap == nil || len(snap.Records) == 0 {
		return nil
	}
	return snap
}

// Clear drops the snapshot.
func (f *Freshness) Clear() {
	f.snapshot.Store(nil)
}

// TTL returns the configured time-to-live.
func (f *Freshness) TTL() time.Duration {
	return f.ttl
}
