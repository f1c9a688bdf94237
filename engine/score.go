// Copyright 2025 The tundra authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// score.go defines the engine's evaluation scale.

// Package engine implements position evaluation and searching for the
// tundra chess engine: a tapered evaluation, a lock-free transposition
// table and a multi-threaded principal variation search.
package engine

// Eval is a position evaluation in centipawns from White's perspective
// unless stated otherwise. The band above MateCutoff is reserved for
// mate scores: MateScore-n means mate in n plies.
type Eval int16

const (
	// MateScore is the score of a delivered mate (mate in 0 plies).
	MateScore Eval = 30000
	// MateCutoff is the highest score that is not a mate.
	MateCutoff Eval = 29000
	// InfinityScore is larger than every achievable score.
	InfinityScore Eval = 31000
	// DrawScore is the score of a drawn position.
	DrawScore Eval = 0
)

// MateIn returns the score of mating in nplies half-moves.
func MateIn(nplies int) Eval {
	return MateScore - Eval(nplies)
}

// MatedIn returns the score of getting mated in nplies half-moves.
func MatedIn(nplies int) Eval {
	return -MateScore + Eval(nplies)
}

// IsMate returns true if e lies in the mate band.
func (e Eval) IsMate() bool {
	return e > MateCutoff || e < -MateCutoff
}

// StepBack moves a mate score one ply further from mate, as the search
// returns towards the root. Non-mate scores are unchanged.
func (e Eval) StepBack() Eval {
	return e - e/(MateCutoff+1)
}

// StepForward moves a mate score one ply closer to mate. Non-mate
// scores are unchanged.
func (e Eval) StepForward() Eval {
	return e + e/(MateCutoff+1)
}

// MovesToMate returns the number of full moves until mate.
// The result is undefined for non-mate scores.
func (e Eval) MovesToMate() int {
	if e > 0 {
		return int((MateScore - e + 1) / 2)
	}
	return int((MateScore + e + 1) / 2)
}

func maxEval(a, b Eval) Eval {
	if a > b {
		return a
	}
	return b
}

func minEval(a, b Eval) Eval {
	if a < b {
		return a
	}
	return b
}
