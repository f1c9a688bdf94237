// Copyright 2025 The tundra authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// hash_table.go implements the shared transposition table.
//
// The table is a plain power-of-two array with no locks. Workers read
// and write the same slots concurrently and entries may be observed
// torn. Safety is a protocol property, not a memory one: every entry
// carries the full 64-bit hash which readers verify, and every stored
// move is re-checked for legality before it is played. A corrupt entry
// can cost a little search effort but never an illegal move.

package engine

import (
	"github.com/tundrachess/tundra/board"
)

// DefaultHashTableSizeMB is the default table size in megabytes.
const DefaultHashTableSizeMB = 64

// ttEntry is one slot of the transposition table, 16 bytes.
type ttEntry struct {
	hash  uint64     // full Zobrist key of the stored position
	move  board.Move // best move found, NullMove if unknown
	lower Eval       // lower bound on the position's value
	upper Eval       // upper bound on the position's value
	depth uint8      // remaining depth the entry was searched to
	age   uint8      // searches since the entry was written
}

// TTable is a fixed-capacity transposition table.
type TTable struct {
	entries []ttEntry
	mask    uint64 // len(entries)-1; entries may be nil when size is 0
}

// NewTTable builds a table using at most sizeMB megabytes. The entry
// count is rounded down to a power of two; a size of 0 disables the
// table.
func NewTTable(sizeMB int) *TTable {
	t := &TTable{}
	t.Resize(sizeMB)
	return t
}

// Resize reallocates the table for the new size, dropping all entries.
func (t *TTable) Resize(sizeMB int) {
	numEntries := uint64(sizeMB) << 20 / 16
	for numEntries&(numEntries-1) != 0 {
		numEntries &= numEntries - 1
	}
	if numEntries == 0 {
		t.entries = nil
		t.mask = 0
		return
	}
	t.entries = make([]ttEntry, numEntries)
	t.mask = numEntries - 1
}

// Size returns the number of slots in the table.
func (t *TTable) Size() int {
	return len(t.entries)
}

// Probe looks up hash. The boolean is false on a miss or when the table
// is disabled. The returned entry is a copy: even on a hit the move
// must be legality-checked by the caller.
func (t *TTable) Probe(hash uint64) (ttEntry, bool) {
	if t.entries == nil {
		return ttEntry{}, false
	}
	entry := t.entries[hash&t.mask]
	if entry.hash != hash {
		return ttEntry{}, false
	}
	return entry, true
}

// Store unconditionally writes an entry for hash.
func (t *TTable) Store(hash uint64, depth int, move board.Move, lower, upper Eval) {
	if t.entries == nil {
		return
	}
	t.entries[hash&t.mask] = ttEntry{
		hash:  hash,
		move:  move,
		lower: lower,
		upper: upper,
		depth: uint8(depth),
	}
}

// AgeUp increments every entry's age and clears entries reaching
// maxAge. Called between game moves so stale analysis fades out
// instead of polluting the next search.
func (t *TTable) AgeUp(maxAge uint8) {
	for i := range t.entries {
		t.entries[i].age++
		if t.entries[i].age >= maxAge {
			t.entries[i] = ttEntry{}
		}
	}
}

// Clear removes all entries.
func (t *TTable) Clear() {
	for i := range t.entries {
		t.entries[i] = ttEntry{}
	}
}

// FillRatePermill estimates how full the table is, in parts per
// thousand, by sampling the first thousand slots. Used for the UCI
// hashfull info field.
func (t *TTable) FillRatePermill() int {
	if t.entries == nil {
		return 1000
	}
	full := 0
	for i := 0; i < 1000; i++ {
		if t.entries[uint64(i)&t.mask].hash != 0 {
			full++
		}
	}
	return full
}
