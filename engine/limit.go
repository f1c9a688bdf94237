// Copyright 2025 The tundra authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// limit.go implements the shared search limit: a stop flag, a node
// counter and an optional deadline, polled by every worker.

package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// SearchLimit bounds a search. It is shared by all workers of one
// search: the stop flag and node counter are atomic, the read-mostly
// deadline fields change only at search boundaries and are guarded by a
// mutex.
//
// Once IsOver reports true it keeps doing so until the next Start.
type SearchLimit struct {
	over     atomic.Bool
	numNodes atomic.Uint64

	mu       sync.Mutex
	nodesCap uint64 // 0 means no cap
	duration time.Duration
	start    time.Time
	deadline time.Time // zero means no deadline
}

// NewSearchLimit returns a limit that never stops on its own.
func NewSearchLimit() *SearchLimit {
	return &SearchLimit{}
}

// Start arms the limit: counters are cleared, the stop flag is reset
// and the deadline is set from the configured duration.
func (l *SearchLimit) Start() {
	l.numNodes.Store(0)
	l.over.Store(false)

	l.mu.Lock()
	l.start = time.Now()
	if l.duration != 0 {
		l.deadline = l.start.Add(l.duration)
	} else {
		l.deadline = time.Time{}
	}
	l.mu.Unlock()
}

// SetMoveTime sets the search duration applied by the next Start.
// Zero removes the deadline.
func (l *SearchLimit) SetMoveTime(d time.Duration) {
	l.mu.Lock()
	l.duration = d
	l.mu.Unlock()
}

// SetNodesCap sets the maximum number of nodes to search.
// Zero removes the cap.
func (l *SearchLimit) SetNodesCap(n uint64) {
	l.mu.Lock()
	l.nodesCap = n
	l.mu.Unlock()
}

// IsOver polls whether the search must stop.
func (l *SearchLimit) IsOver() bool {
	return l.over.Load()
}

// Stop flips the stop flag. Idempotent.
func (l *SearchLimit) Stop() {
	l.over.Store(true)
}

// UpdateTime checks the clock and stops the search past the deadline.
// Only the main worker calls this; helpers observe the flag.
func (l *SearchLimit) UpdateTime() {
	l.mu.Lock()
	deadline := l.deadline
	l.mu.Unlock()
	if !deadline.IsZero() && time.Now().After(deadline) {
		l.over.Store(true)
	}
}

// AddNodes adds a worker's batch of searched nodes to the shared count
// and stops the search when the node cap is crossed.
func (l *SearchLimit) AddNodes(n uint64) {
	total := l.numNodes.Add(n)
	l.mu.Lock()
	nodesCap := l.nodesCap
	l.mu.Unlock()
	if nodesCap != 0 && total > nodesCap {
		l.over.Store(true)
	}
}

// Nodes returns the cumulative number of nodes searched.
func (l *SearchLimit) Nodes() uint64 {
	return l.numNodes.Load()
}

// Elapsed returns the time since Start.
func (l *SearchLimit) Elapsed() time.Duration {
	l.mu.Lock()
	start := l.start
	l.mu.Unlock()
	return time.Since(start)
}
