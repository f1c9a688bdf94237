// Copyright 2025 The tundra authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package board

import (
	"errors"
)

// ErrNoHistory is returned when undoing from an empty history.
var ErrNoHistory = errors.New("no moves to undo")

// repCount tracks how many times a position occurred.
type repCount struct {
	total  uint8 // occurrences over the whole game
	search uint8 // occurrences since the current search started
}

// Game is a chess game: the current position plus the entire history
// needed for undo and repetition detection.
//
// The history invariant is that it is never empty and holds one more
// position than there are moves. The repetition table maps Zobrist keys
// to occurrence counts; the sum of total counts equals the history
// length.
type Game struct {
	// history[len-1] is the current position.
	history []Position
	moves   []Move

	repetitions map[uint64]repCount

	// While searching, a position repeated twice is scored as a draw.
	// This is stronger than the threefold rule but prunes search lines
	// without affecting game-level correctness.
	searching bool
}

// NewGame returns a game at the standard starting position.
// eval initializes the cached PST score; pass nil to leave it zero.
func NewGame(eval PSTEvaluator) *Game {
	g, _ := GameFromFEN(FENStartPos, eval)
	return g
}

// GameFromFEN returns a game whose starting position is given in FEN.
func GameFromFEN(fen string, eval PSTEvaluator) (*Game, error) {
	pos, err := PositionFromFEN(fen)
	if err != nil {
		return nil, err
	}
	if eval != nil {
		pos.Score = eval(pos)
	}
	g := &Game{
		history:     []Position{*pos},
		repetitions: make(map[uint64]repCount),
	}
	g.repetitions[pos.Zobrist] = repCount{total: 1}
	return g, nil
}

// Board returns the current position.
// The returned pointer is invalidated by MakeMove and Undo.
func (g *Game) Board() *Position {
	return &g.history[len(g.history)-1]
}

// MakeMove plays a legal move. delta is the PST score change caused by
// the move, from the mover's perspective (see engine.PSTDelta).
func (g *Game) MakeMove(m Move, delta Score) {
	next := g.history[len(g.history)-1]
	next.MakeMove(m, delta)

	rep := g.repetitions[next.Zobrist]
	rep.total++
	if g.searching {
		rep.search++
	}
	g.repetitions[next.Zobrist] = rep

	g.history = append(g.history, next)
	g.moves = append(g.moves, m)
}

// TryMove plays m if it is legal and reports an error otherwise.
func (g *Game) TryMove(m Move, delta Score) error {
	if !g.Board().IsLegal(m) {
		return errors.New("illegal move " + m.UCI())
	}
	g.MakeMove(m, delta)
	return nil
}

// Undo takes back the last move and returns it.
func (g *Game) Undo() (Move, error) {
	if len(g.moves) == 0 {
		return NullMove, ErrNoHistory
	}
	last := g.history[len(g.history)-1]

	rep := g.repetitions[last.Zobrist]
	rep.total--
	if g.searching && rep.search > 0 {
		rep.search--
	}
	if rep.total == 0 {
		delete(g.repetitions, last.Zobrist)
	} else {
		g.repetitions[last.Zobrist] = rep
	}

	g.history = g.history[:len(g.history)-1]
	m := g.moves[len(g.moves)-1]
	g.moves = g.moves[:len(g.moves)-1]
	return m, nil
}

// NumMoves returns the number of moves played.
func (g *Game) NumMoves() int {
	return len(g.moves)
}

// LastMove returns the most recent move, NullMove for a fresh game.
func (g *Game) LastMove() Move {
	if len(g.moves) == 0 {
		return NullMove
	}
	return g.moves[len(g.moves)-1]
}

// StartSearch begins a search period. Positions repeated twice from now
// on are treated as draws. The current position counts as seen once.
func (g *Game) StartSearch() {
	g.searching = true
	for k, v := range g.repetitions {
		v.search = 0
		g.repetitions[k] = v
	}
	if rep, ok := g.repetitions[g.Board().Zobrist]; ok {
		rep.search = 1
		g.repetitions[g.Board().Zobrist] = rep
	}
}

// StopSearch ends the search period started by StartSearch.
func (g *Game) StopSearch() {
	g.searching = false
}

// IsDrawnByRepetition returns true if the current position occurred
// three times over the game, or twice within the current search.
func (g *Game) IsDrawnByRepetition() bool {
	rep := g.repetitions[g.Board().Zobrist]
	return rep.total >= 3 || rep.search >= 2
}

// IsDrawn returns true if the game is drawn by repetition, the fifty
// move rule or insufficient material.
func (g *Game) IsDrawn() bool {
	return g.IsDrawnByRepetition() || g.Board().FiftyMoveRule() || g.Board().InsufficientMaterial()
}

// Clone returns a deep copy of the game. Search workers operate on
// clones so that the shared game is never mutated concurrently.
func (g *Game) Clone() *Game {
	c := &Game{
		history:     append([]Position(nil), g.history...),
		moves:       append([]Move(nil), g.moves...),
		repetitions: make(map[uint64]repCount, len(g.repetitions)),
		searching:   g.searching,
	}
	for k, v := range g.repetitions {
		c.repetitions[k] = v
	}
	return c
}
