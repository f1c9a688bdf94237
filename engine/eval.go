// Copyright 2025 The tundra authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// eval.go implements the static evaluation: the cached material and
// piece square table score, a few positional terms computed per call,
// all blended between midgame and endgame by the phase.

package engine

import (
	"github.com/tundrachess/tundra/board"
)

var (
	// doubledPawnPenalty is subtracted once per doubled pawn.
	doubledPawnPenalty = board.Score{M: 12, E: 24}
	// rookOpenFileBonus rewards rooks with no own pawn ahead on their file.
	rookOpenFileBonus = board.Score{M: 20, E: 10}

	// mobilityBonus[fig][n] rewards a piece of kind fig attacking n
	// squares. The tables saturate at their last entry.
	mobilityBonus = [board.FigureArraySize][]board.Score{
		board.Knight: {
			{M: -16, E: -16}, {M: -8, E: -8}, {M: 0, E: 0}, {M: 4, E: 4},
			{M: 8, E: 8}, {M: 12, E: 12}, {M: 14, E: 14}, {M: 16, E: 16}, {M: 18, E: 18},
		},
		board.Bishop: {
			{M: -16, E: -16}, {M: -8, E: -8}, {M: 0, E: 0}, {M: 4, E: 4},
			{M: 8, E: 8}, {M: 10, E: 10}, {M: 12, E: 12}, {M: 14, E: 14},
			{M: 16, E: 16}, {M: 17, E: 17}, {M: 18, E: 18}, {M: 19, E: 19},
			{M: 20, E: 20}, {M: 21, E: 21},
		},
		board.Rook: {
			{M: -10, E: -16}, {M: -5, E: -8}, {M: 0, E: 0}, {M: 2, E: 4},
			{M: 4, E: 8}, {M: 6, E: 12}, {M: 8, E: 14}, {M: 10, E: 16},
			{M: 11, E: 18}, {M: 12, E: 20}, {M: 13, E: 22}, {M: 14, E: 23},
			{M: 15, E: 24}, {M: 16, E: 25}, {M: 17, E: 26},
		},
		board.Queen: {
			{M: -8, E: -12}, {M: -4, E: -6}, {M: 0, E: 0}, {M: 1, E: 2},
			{M: 2, E: 4}, {M: 3, E: 6}, {M: 4, E: 8}, {M: 5, E: 10},
			{M: 6, E: 12}, {M: 7, E: 13}, {M: 8, E: 14}, {M: 9, E: 15},
			{M: 10, E: 16},
		},
	}
)

// Phase computes the progress of the game from the non-pawn material.
// 0 is the opening, 256 is a pure pawn endgame.
func Phase(pos *board.Position) int32 {
	const total = 4*1 + 4*1 + 4*2 + 2*4
	curr := pos.ByFigure[board.Knight].Popcnt()*1 +
		pos.ByFigure[board.Bishop].Popcnt()*1 +
		pos.ByFigure[board.Rook].Popcnt()*2 +
		pos.ByFigure[board.Queen].Popcnt()*4
	if curr > total {
		curr = total
	}
	return (total - curr) * 256 / total
}

// Evaluate statically evaluates the position from White's perspective.
// The result is in centipawns and always lies outside the mate band.
func Evaluate(pos *board.Position) Eval {
	s := pos.Score
	s = s.Plus(evaluateSide(pos, board.White))
	s = s.Minus(evaluateSide(pos, board.Black))

	phase := Phase(pos)
	blended := (s.M*(256-phase) + s.E*phase) / 256

	if blended > int32(MateCutoff) {
		blended = int32(MateCutoff)
	}
	if blended < -int32(MateCutoff) {
		blended = -int32(MateCutoff)
	}
	return Eval(blended)
}

// evaluateSide computes us's positional terms: doubled pawns, rooks on
// open files and piece mobility.
func evaluateSide(pos *board.Position, us board.Color) board.Score {
	var accum board.Score
	occ := pos.Occupancy()
	pawns := pos.ByPiece(us, board.Pawn)

	// A pawn is doubled when a friendly pawn sits behind it on the same
	// file, so a file with n pawns counts n-1 doubled pawns.
	doubled := (pawns & board.ForwardSpan(us, pawns)).Popcnt()
	accum = accum.Minus(board.Score{
		M: doubledPawnPenalty.M * doubled,
		E: doubledPawnPenalty.E * doubled,
	})

	for bb := pos.ByPiece(us, board.Rook); bb != 0; {
		sq := bb.Pop()
		if board.ForwardSpan(us, sq.Bitboard())&board.FileBb(sq.File())&pawns == 0 {
			accum = accum.Plus(rookOpenFileBonus)
		}
	}

	for fig := board.Knight; fig <= board.Queen; fig++ {
		table := mobilityBonus[fig]
		for bb := pos.ByPiece(us, fig); bb != 0; {
			sq := bb.Pop()
			var att board.Bitboard
			switch fig {
			case board.Knight:
				att = board.KnightAttacks(sq)
			case board.Bishop:
				att = board.BishopAttacks(sq, occ)
			case board.Rook:
				att = board.RookAttacks(sq, occ)
			case board.Queen:
				att = board.QueenAttacks(sq, occ)
			}
			n := int(att.Popcnt())
			if n >= len(table) {
				n = len(table) - 1
			}
			accum = accum.Plus(table[n])
		}
	}

	return accum
}
