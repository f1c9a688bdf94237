// Copyright 2025 The tundra authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// pv.go recovers the principal variation from the transposition table.
//
// The search does not carry its best line upward; instead the line is
// rebuilt by replaying stored moves. Cycles are possible because the
// table is shared and racy, so visited positions are tracked.

package engine

import (
	"github.com/tundrachess/tundra/board"
)

// PrincipalVariation returns the expected line starting with first,
// following transposition table moves for at most maxLen plies.
// Every stored move is legality-checked before it is appended.
func (ms *MainSearch) PrincipalVariation(g *board.Game, first board.Move, maxLen int) []board.Move {
	clone := g.Clone()
	seen := make(map[uint64]bool)

	var pv []board.Move
	m := first
	for m != board.NullMove && len(pv) < maxLen &&
		!seen[clone.Board().Zobrist] && clone.Board().IsLegal(m) {
		seen[clone.Board().Zobrist] = true
		pv = append(pv, m)
		clone.MakeMove(m, board.NoScore)

		m = board.NullMove
		if entry, ok := ms.TT.Probe(clone.Board().Zobrist); ok {
			m = entry.move
		}
	}
	return pv
}
