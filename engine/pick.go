// Copyright 2025 The tundra authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// pick.go implements staged, lazy move ordering.
//
// Moves come out in the order: transposition table move, good captures,
// killer, quiet moves, bad captures. Captures are generated only when
// the good-capture phase is entered and quiets only when the quiet
// phase is entered; a beta cutoff on the hash move costs no generation
// at all.

package engine

import (
	"github.com/tundrachess/tundra/board"
)

// Picker phases.
const (
	pickTTMove int = iota
	pickGenCaptures
	pickGoodCaptures
	pickKiller
	pickGenQuiets
	pickQuiets
	pickBadCaptures
	pickDone
)

// exchangeValue approximates each figure's worth in captures.
var exchangeValue = [board.FigureArraySize]int32{
	board.Pawn:   100,
	board.Knight: 320,
	board.Bishop: 330,
	board.Rook:   500,
	board.Queen:  950,
	board.King:   10000,
}

type scoredMove struct {
	move board.Move
	key  int32
}

// MovePicker yields the legal moves of one position in search order.
// It owns a copy of the position so the game can be freely mutated
// while iterating.
type MovePicker struct {
	pos    board.Position
	ttMove board.Move
	killer board.Move

	phase      int
	captures   []scoredMove
	quiets     []scoredMove
	captureIdx int
	quietIdx   int
}

// NewMovePicker returns a picker for pos. ttMove and killer may be
// NullMove; they are legality-checked before being yielded.
func NewMovePicker(pos *board.Position, ttMove, killer board.Move) *MovePicker {
	return &MovePicker{
		pos:    *pos,
		ttMove: ttMove,
		killer: killer,
		phase:  pickTTMove,
	}
}

// Next returns the next move, or false when no moves remain.
func (p *MovePicker) Next() (board.Move, bool) {
	for {
		switch p.phase {
		case pickTTMove:
			p.phase = pickGenCaptures
			if p.ttMove != board.NullMove && p.pos.IsLegal(p.ttMove) {
				return p.ttMove, true
			}

		case pickGenCaptures:
			p.phase = pickGoodCaptures
			p.genCaptures()

		case pickGoodCaptures:
			if p.captureIdx >= len(p.captures) {
				p.phase = pickKiller
				break
			}
			best := selectBest(p.captures, p.captureIdx)
			if best.key < 0 {
				// Only bad captures remain; defer them.
				p.phase = pickKiller
				break
			}
			p.captureIdx++
			if m := best.move; m != p.ttMove {
				return m, true
			}

		case pickKiller:
			p.phase = pickGenQuiets
			// A killer that captures here is left to the capture phases.
			if m := p.killer; m != board.NullMove && m != p.ttMove && p.pos.IsLegal(m) && !p.pos.IsCapture(m) {
				return m, true
			}

		case pickGenQuiets:
			p.phase = pickQuiets
			p.genQuiets()

		case pickQuiets:
			if p.quietIdx >= len(p.quiets) {
				p.phase = pickBadCaptures
				break
			}
			best := selectBest(p.quiets, p.quietIdx)
			p.quietIdx++
			if m := best.move; m != p.ttMove && m != p.killer {
				return m, true
			}

		case pickBadCaptures:
			if p.captureIdx >= len(p.captures) {
				p.phase = pickDone
				break
			}
			best := selectBest(p.captures, p.captureIdx)
			p.captureIdx++
			if m := best.move; m != p.ttMove {
				return m, true
			}

		case pickDone:
			return board.NullMove, false
		}
	}
}

// selectBest moves the highest-keyed remaining entry to idx and returns
// it. A partial selection sort: with frequent beta cutoffs most of the
// list is never ordered.
func selectBest(moves []scoredMove, idx int) scoredMove {
	best := idx
	for i := idx + 1; i < len(moves); i++ {
		if moves[i].key > moves[best].key {
			best = i
		}
	}
	moves[idx], moves[best] = moves[best], moves[idx]
	return moves[idx]
}

func (p *MovePicker) genCaptures() {
	var moves []board.Move
	p.pos.GenerateMoves(board.Violent, &moves)
	p.captures = make([]scoredMove, 0, len(moves))
	for _, m := range moves {
		p.captures = append(p.captures, scoredMove{move: m, key: p.captureKey(m)})
	}
}

// captureKey approximates the exchange outcome: victim minus attacker,
// plus the material gained by a promotion. Non-negative keys are
// searched as good captures.
func (p *MovePicker) captureKey(m board.Move) int32 {
	key := int32(0)
	if p.pos.IsCapture(m) {
		capSq := p.pos.CaptureSquare(m)
		key = exchangeValue[p.pos.TypeAt(capSq)] - exchangeValue[p.pos.TypeAt(m.From())]
	}
	if promo := m.Promotion(); promo != board.NoFigure {
		key += exchangeValue[promo] - exchangeValue[board.Pawn]
	}
	if key < 0 && p.pos.TypeAt(m.From()) == board.King {
		// The king only captures undefended pieces, which generation
		// already guarantees.
		key = 0
	}
	return key
}

func (p *MovePicker) genQuiets() {
	var moves []board.Move
	p.pos.GenerateMoves(board.Quiet, &moves)
	p.quiets = make([]scoredMove, 0, len(moves))
	for _, m := range moves {
		delta := PSTDelta(&p.pos, m)
		p.quiets = append(p.quiets, scoredMove{move: m, key: delta.M + delta.E})
	}
}
