// Copyright 2025 The tundra authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// pst.go implements the material and piece square table part of the
// evaluation. The tables are kept incrementally on the game: MakeMove
// applies the delta computed by PSTDelta so the sum over all pieces is
// never recomputed during search.

package engine

import (
	"github.com/tundrachess/tundra/board"
)

// figureValue is the material value of each figure, midgame and endgame.
var figureValue = [board.FigureArraySize]board.Score{
	board.Pawn:   {M: 100, E: 120},
	board.Knight: {M: 320, E: 300},
	board.Bishop: {M: 330, E: 320},
	board.Rook:   {M: 500, E: 550},
	board.Queen:  {M: 950, E: 1000},
}

// Piece square tables, from White's point of view with a1 at index 0.
// Black uses the rank-mirrored square.
var pstMid = [board.FigureArraySize][64]int32{
	board.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		2, 4, 4, -12, -12, 4, 4, 2,
		2, -2, -4, 2, 2, -4, -2, 2,
		0, 0, 0, 16, 16, 0, 0, 0,
		4, 4, 8, 20, 20, 8, 4, 4,
		8, 8, 16, 24, 24, 16, 8, 8,
		32, 32, 32, 32, 32, 32, 32, 32,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	board.Knight: {
		-40, -24, -16, -12, -12, -16, -24, -40,
		-24, -8, 0, 4, 4, 0, -8, -24,
		-16, 4, 8, 12, 12, 8, 4, -16,
		-12, 4, 12, 16, 16, 12, 4, -12,
		-12, 4, 12, 16, 16, 12, 4, -12,
		-16, 4, 8, 12, 12, 8, 4, -16,
		-24, -8, 0, 4, 4, 0, -8, -24,
		-40, -24, -16, -12, -12, -16, -24, -40,
	},
	board.Bishop: {
		-16, -8, -8, -8, -8, -8, -8, -16,
		-8, 8, 0, 4, 4, 0, 8, -8,
		-8, 4, 8, 8, 8, 8, 4, -8,
		-8, 0, 8, 12, 12, 8, 0, -8,
		-8, 0, 8, 12, 12, 8, 0, -8,
		-8, 4, 8, 8, 8, 8, 4, -8,
		-8, 0, 0, 4, 4, 0, 0, -8,
		-16, -8, -8, -8, -8, -8, -8, -16,
	},
	board.Rook: {
		0, 0, 4, 8, 8, 4, 0, 0,
		-4, 0, 0, 0, 0, 0, 0, -4,
		-4, 0, 0, 0, 0, 0, 0, -4,
		-4, 0, 0, 0, 0, 0, 0, -4,
		-4, 0, 0, 0, 0, 0, 0, -4,
		-4, 0, 0, 0, 0, 0, 0, -4,
		12, 16, 16, 16, 16, 16, 16, 12,
		8, 8, 8, 8, 8, 8, 8, 8,
	},
	board.Queen: {
		-12, -8, -8, -4, -4, -8, -8, -12,
		-8, 0, 0, 0, 0, 0, 0, -8,
		-8, 0, 4, 4, 4, 4, 0, -8,
		-4, 0, 4, 8, 8, 4, 0, -4,
		-4, 0, 4, 8, 8, 4, 0, -4,
		-8, 0, 4, 4, 4, 4, 0, -8,
		-8, 0, 0, 0, 0, 0, 0, -8,
		-12, -8, -8, -4, -4, -8, -8, -12,
	},
	board.King: {
		16, 24, 8, -8, -8, 8, 24, 16,
		8, 8, -8, -16, -16, -8, 8, 8,
		-16, -24, -24, -32, -32, -24, -24, -16,
		-24, -32, -32, -40, -40, -32, -32, -24,
		-32, -40, -40, -48, -48, -40, -40, -32,
		-32, -40, -40, -48, -48, -40, -40, -32,
		-32, -40, -40, -48, -48, -40, -40, -32,
		-32, -40, -40, -48, -48, -40, -40, -32,
	},
}

var pstEnd = [board.FigureArraySize][64]int32{
	board.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		4, 4, 4, 4, 4, 4, 4, 4,
		8, 8, 8, 8, 8, 8, 8, 8,
		16, 16, 16, 16, 16, 16, 16, 16,
		32, 32, 32, 32, 32, 32, 32, 32,
		56, 56, 56, 56, 56, 56, 56, 56,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	board.Knight: {
		-32, -20, -12, -8, -8, -12, -20, -32,
		-20, -8, 0, 4, 4, 0, -8, -20,
		-12, 0, 8, 12, 12, 8, 0, -12,
		-8, 4, 12, 16, 16, 12, 4, -8,
		-8, 4, 12, 16, 16, 12, 4, -8,
		-12, 0, 8, 12, 12, 8, 0, -12,
		-20, -8, 0, 4, 4, 0, -8, -20,
		-32, -20, -12, -8, -8, -12, -20, -32,
	},
	board.Bishop: {
		-12, -8, -8, -4, -4, -8, -8, -12,
		-8, 0, 0, 4, 4, 0, 0, -8,
		-8, 0, 8, 8, 8, 8, 0, -8,
		-4, 4, 8, 12, 12, 8, 4, -4,
		-4, 4, 8, 12, 12, 8, 4, -4,
		-8, 0, 8, 8, 8, 8, 0, -8,
		-8, 0, 0, 4, 4, 0, 0, -8,
		-12, -8, -8, -4, -4, -8, -8, -12,
	},
	board.Rook: {
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		8, 8, 8, 8, 8, 8, 8, 8,
		4, 4, 4, 4, 4, 4, 4, 4,
	},
	board.Queen: {
		-12, -8, -8, -4, -4, -8, -8, -12,
		-8, 0, 0, 0, 0, 0, 0, -8,
		-8, 0, 8, 8, 8, 8, 0, -8,
		-4, 0, 8, 12, 12, 8, 0, -4,
		-4, 0, 8, 12, 12, 8, 0, -4,
		-8, 0, 8, 8, 8, 8, 0, -8,
		-8, 0, 0, 0, 0, 0, 0, -8,
		-12, -8, -8, -4, -4, -8, -8, -12,
	},
	board.King: {
		-40, -28, -20, -16, -16, -20, -28, -40,
		-28, -12, -4, 0, 0, -4, -12, -28,
		-20, -4, 8, 12, 12, 8, -4, -20,
		-16, 0, 12, 20, 20, 12, 0, -16,
		-16, 0, 12, 20, 20, 12, 0, -16,
		-20, -4, 8, 12, 12, 8, -4, -20,
		-28, -12, -4, 0, 0, -4, -12, -28,
		-40, -28, -20, -16, -16, -20, -28, -40,
	},
}

// pieceScore returns material plus PST for fig of color col on sq.
func pieceScore(col board.Color, fig board.Figure, sq board.Square) board.Score {
	pov := sq.POV(col)
	v := figureValue[fig]
	return board.Score{
		M: v.M + pstMid[fig][pov],
		E: v.E + pstEnd[fig][pov],
	}
}

// PSTEvaluate computes the material plus PST score of a position from
// scratch, from White's perspective. Used to seed the incremental score
// when a game is set up; the search only ever applies deltas.
func PSTEvaluate(pos *board.Position) board.Score {
	var s board.Score
	for fig := board.FigureMinValue; fig <= board.FigureMaxValue; fig++ {
		for bb := pos.ByPiece(board.White, fig); bb != 0; {
			s = s.Plus(pieceScore(board.White, fig, bb.Pop()))
		}
		for bb := pos.ByPiece(board.Black, fig); bb != 0; {
			s = s.Minus(pieceScore(board.Black, fig, bb.Pop()))
		}
	}
	return s
}

// PSTDelta computes the change in the material plus PST score caused by
// m, from the mover's perspective. It handles promotions, captures
// (including en passant) and the rook displacement of a castle, so that
// applying the delta during MakeMove keeps the cached score exact.
func PSTDelta(pos *board.Position, m board.Move) board.Score {
	us := pos.SideToMove
	them := us.Opposite()
	from, to := m.From(), m.To()
	fig := pos.TypeAt(from)

	var delta board.Score
	if promo := m.Promotion(); promo != board.NoFigure {
		delta = pieceScore(us, promo, to).Minus(pieceScore(us, fig, from))
	} else {
		delta = pieceScore(us, fig, to).Minus(pieceScore(us, fig, from))
	}

	if pos.IsCapture(m) {
		capSq := pos.CaptureSquare(m)
		delta = delta.Plus(pieceScore(them, pos.TypeAt(capSq), capSq))
	}

	if pos.IsCastle(m) {
		_, rookFrom, rookTo := board.CastlingRook(to)
		delta = delta.Plus(pieceScore(us, board.Rook, rookTo).Minus(pieceScore(us, board.Rook, rookFrom)))
	}

	return delta
}
