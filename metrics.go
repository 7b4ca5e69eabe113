package idlecore

import "sync/atomic"

// Metrics tracks low-overhead runtime counters for a Core. All fields
// are updated with atomic counters and are safe to read concurrently
// with Core activity via Snapshot.
//
// Unlike the teacher's event-loop Metrics (which tracks per-task latency
// percentiles via a streaming P-Square estimator), idlecore has no
// per-task latency concept to sample — Tickle/WorkFound/NoWorkFound are
// O(1) state transitions, not task executions — so only plain counters
// are exposed here.
type Metrics struct {
	becameSleepy   atomic.Uint64
	lostSleepyRace atomic.Uint64
	fellAsleep     atomic.Uint64
	woke           atomic.Uint64
	tickles        atomic.Uint64
	tickleNoops    atomic.Uint64
	tickleNotifies atomic.Uint64
}

// MetricsSnapshot is a point-in-time copy of Metrics, safe to read
// without further synchronization.
type MetricsSnapshot struct {
	BecameSleepy   uint64
	LostSleepyRace uint64
	FellAsleep     uint64
	Woke           uint64
	Tickles        uint64
	TickleNoops    uint64
	TickleNotifies uint64
}

// Snapshot returns a copy of the current counters. Safe to call
// concurrently with any Core activity.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	return MetricsSnapshot{
		BecameSleepy:   m.becameSleepy.Load(),
		LostSleepyRace: m.lostSleepyRace.Load(),
		FellAsleep:     m.fellAsleep.Load(),
		Woke:           m.woke.Load(),
		Tickles:        m.tickles.Load(),
		TickleNoops:    m.tickleNoops.Load(),
		TickleNotifies: m.tickleNotifies.Load(),
	}
}
