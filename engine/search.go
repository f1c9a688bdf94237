// Copyright 2025 The tundra authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// search.go implements the principal variation search.
//
// The search is a negamax that returns alpha when every move fails low
// and the cutoff score on a fail-high, with a zero-window scout for every
// move after the first, late move reductions for quiet moves past the
// configured early-move count, killer moves, and a quiescence extension
// at the horizon. Results are shared between workers through the
// transposition table.

package engine

import (
	"errors"

	"github.com/tundrachess/tundra/board"
)

// errTimeout signals that the shared limit stopped the search. It is
// not a failure: the coordinator reports the last completed depth.
var errTimeout = errors.New("search timed out")

// SearchInfo is the result of one worker's search.
type SearchInfo struct {
	// BestMove is the best move found. NullMove if no depth completed.
	BestMove board.Move
	// Score is the evaluation from the side to move's perspective.
	Score Eval
	// Depth is the highest fully completed depth.
	Depth int
	// SelDepth is the deepest ply reached, including quiescence.
	SelDepth int
	// Nodes is the number of nodes this worker evaluated; in the result
	// of MainSearch.Evaluate it is the shared total of all workers.
	Nodes uint64
	// TTHits counts successful transposition table probes.
	TTHits uint64
}

// unify merges another worker's result, keeping the deeper one and
// summing the counters.
func (si *SearchInfo) unify(other SearchInfo) {
	if other.Depth > si.Depth {
		si.BestMove = other.BestMove
		si.Score = other.Score
		si.Depth = other.Depth
	}
	if other.SelDepth > si.SelDepth {
		si.SelDepth = other.SelDepth
	}
	si.Nodes += other.Nodes
	si.TTHits += other.TTHits
}

// searcher holds one worker's state across pvs calls.
type searcher struct {
	tt     *TTable
	cfg    SearchConfig
	limit  *SearchLimit
	isMain bool

	// killers[ply] is the quiet move that last caused a beta cutoff at
	// that ply in a sibling line.
	killers []board.Move

	nodes      uint64
	sinceFlush uint64
	ttHits     uint64
	selDepth   int
}

func newSearcher(tt *TTable, cfg SearchConfig, limit *SearchLimit, isMain bool) *searcher {
	return &searcher{
		tt:      tt,
		cfg:     cfg,
		limit:   limit,
		isMain:  isMain,
		killers: make([]board.Move, cfg.Depth+1),
	}
}

// incrementNodes counts a node, periodically pushing the local count
// into the shared limit so other workers and the timer see progress.
func (s *searcher) incrementNodes() error {
	s.nodes++
	s.sinceFlush++
	if s.sinceFlush >= s.cfg.LimitBatch {
		s.flushNodes()
		if s.isMain {
			s.limit.UpdateTime()
		}
		if s.limit.IsOver() {
			return errTimeout
		}
	}
	return nil
}

func (s *searcher) flushNodes() {
	s.limit.AddNodes(s.sinceFlush)
	s.sinceFlush = 0
}

// pvs searches g to depthToGo more plies, with ply plies already played
// since the root. Returns the best move and its value from the side to
// move's perspective. On timeout the moves made on g are not undone;
// workers therefore operate on clones.
func (s *searcher) pvs(g *board.Game, depthToGo, ply int, alpha, beta Eval, allowReduction bool) (board.Move, Eval, error) {
	if s.limit.IsOver() {
		return board.NullMove, 0, errTimeout
	}

	if alpha >= MateIn(1) {
		// A mate at least this fast is already guaranteed elsewhere.
		return board.NullMove, MateIn(2), nil
	}

	if ply > s.selDepth {
		s.selDepth = ply
	}

	// Probe the transposition table. Bounds are only trusted when the
	// stored search was at least as deep; the move is always usable as
	// an ordering hint once it passes the legality check.
	storedMove := board.NullMove
	if ply <= s.cfg.MaxTTDepth {
		if entry, ok := s.tt.Probe(g.Board().Zobrist); ok {
			s.ttHits++
			if g.Board().IsLegal(entry.move) {
				storedMove = entry.move
			}
			if entry.lower == entry.upper && entry.lower.IsMate() && storedMove != board.NullMove {
				// A proven mate; deeper search cannot improve on it.
				return storedMove, entry.lower, nil
			}
			if int(entry.depth) >= depthToGo {
				if entry.lower >= beta {
					return storedMove, entry.lower, nil
				}
				if entry.upper <= alpha {
					return storedMove, entry.upper, nil
				}
				alpha = maxEval(alpha, entry.lower)
				beta = minEval(beta, entry.upper)
			}
		}
	}

	if depthToGo <= 0 {
		return s.quiesce(g, ply, alpha, beta)
	}

	if err := s.incrementNodes(); err != nil {
		return board.NullMove, 0, err
	}

	// Draws end the line, except at the root where a move must still be
	// produced: search-level repetitions must never mask the root choice.
	if ply > 0 && (g.IsDrawnByRepetition() || g.Board().FiftyMoveRule() || g.Board().InsufficientMaterial()) {
		return board.NullMove, DrawScore, nil
	}

	canUseKillers := ply < len(s.killers)
	killer := board.NullMove
	if canUseKillers {
		killer = s.killers[ply]
	}

	picker := NewMovePicker(g.Board(), storedMove, killer)
	alphaOrig := alpha

	// The first move is searched with the full window at full depth.
	m, ok := picker.Next()
	if !ok {
		if g.Board().Checkers != 0 {
			return board.NullMove, MatedIn(0), nil
		}
		return board.NullMove, DrawScore, nil
	}

	bestMove := m
	firstQuiet := !g.Board().IsCapture(m) && m.Promotion() == board.NoFigure

	g.MakeMove(m, PSTDelta(g.Board(), m))
	_, childScore, err := s.pvs(g, depthToGo-1, ply+1, -beta.StepForward(), -alpha.StepForward(), allowReduction)
	if err != nil {
		return board.NullMove, 0, err
	}
	bestScore := -childScore.StepBack()
	g.Undo()

	alpha = maxEval(bestScore, alpha)
	if alpha >= beta {
		if canUseKillers && firstQuiet {
			s.killers[ply] = m
		}
		s.ttStore(g, depthToGo, ply, alphaOrig, beta, bestScore, bestMove)
		return bestMove, bestScore, nil
	}

	// The remaining moves are scouted with a zero window, re-searched
	// with the full window on a fail-high. Quiet moves past the early
	// count are also reduced one ply.
	for idx := 0; ; idx++ {
		m, ok := picker.Next()
		if !ok {
			break
		}
		isQuiet := !g.Board().IsCapture(m) && m.Promotion() == board.NoFigure
		lateMove := idx >= s.cfg.NumEarlyMoves && isQuiet && allowReduction

		depthToSearch := depthToGo - 1
		if lateMove {
			depthToSearch = depthToGo - 2
		}

		g.MakeMove(m, PSTDelta(g.Board(), m))
		_, childScore, err := s.pvs(g, depthToSearch, ply+1,
			-alpha.StepForward()-1, -alpha.StepForward(), allowReduction)
		if err != nil {
			return board.NullMove, 0, err
		}
		score := -childScore.StepBack()

		if alpha < score && score < beta {
			// The scout failed high: re-search with the full window.
			// The scout score is a usable lower bound unless the move
			// was reduced.
			lowerBound := -score.StepForward()
			if lateMove {
				lowerBound = -alpha.StepForward()
			}
			_, childScore, err = s.pvs(g, depthToGo-1, ply+1, -beta.StepForward(), lowerBound, allowReduction)
			if err != nil {
				return board.NullMove, 0, err
			}
			score = -childScore.StepBack()
		}
		g.Undo()

		if score > bestScore {
			bestMove, bestScore = m, score
			alpha = maxEval(score, alpha)
			if alpha >= beta {
				if canUseKillers && isQuiet {
					s.killers[ply] = m
				}
				break
			}
		}
	}

	s.ttStore(g, depthToGo, ply, alphaOrig, beta, bestScore, bestMove)
	return bestMove, alpha, nil
}

// quiesce resolves captures past the horizon so material left hanging
// at the last ply does not distort the evaluation. A position in check
// is never quiet: it is handed back to one ply of full search with
// reductions disabled.
func (s *searcher) quiesce(g *board.Game, ply int, alpha, beta Eval) (board.Move, Eval, error) {
	if alpha >= MateIn(1) {
		return board.NullMove, MateIn(2), nil
	}

	if g.Board().Checkers != 0 {
		return s.pvs(g, 1, ply, alpha, beta, false)
	}

	if err := s.incrementNodes(); err != nil {
		return board.NullMove, 0, err
	}
	if ply > s.selDepth {
		s.selDepth = ply
	}

	// Stand pat: capturing is not forced.
	standPat := Eval(int32(Evaluate(g.Board())) * g.Board().SideToMove.Multiplier())
	alpha = maxEval(standPat, alpha)
	if alpha >= beta {
		return board.NullMove, alpha, nil
	}

	var moves []board.Move
	g.Board().GenerateMoves(board.Violent, &moves)
	scored := make([]scoredMove, 0, len(moves))
	for _, m := range moves {
		delta := PSTDelta(g.Board(), m)
		scored = append(scored, scoredMove{move: m, key: delta.M + delta.E})
	}

	bestMove := board.NullMove
	for i := range scored {
		m := selectBest(scored, i).move

		g.MakeMove(m, PSTDelta(g.Board(), m))
		_, childScore, err := s.quiesce(g, ply+1, -alpha.StepForward()-1, -alpha.StepForward())
		if err != nil {
			return board.NullMove, 0, err
		}
		score := -childScore.StepBack()

		if alpha < score && score < beta {
			_, childScore, err = s.quiesce(g, ply+1, -beta.StepForward(), -score.StepForward())
			if err != nil {
				return board.NullMove, 0, err
			}
			score = -childScore.StepBack()
			bestMove = m
		}
		g.Undo()

		alpha = maxEval(alpha, score)
		if alpha >= beta {
			break
		}
	}

	return bestMove, alpha, nil
}

// ttStore writes the search result for the current position.
func (s *searcher) ttStore(g *board.Game, depthToGo, ply int, alphaOrig, beta, best Eval, bestMove board.Move) {
	if ply > s.cfg.MaxTTDepth {
		return
	}
	lower, upper := -InfinityScore, InfinityScore
	switch {
	case best >= beta:
		lower = best
	case best <= alphaOrig:
		upper = best
	default:
		lower, upper = best, best
	}
	s.tt.Store(g.Board().Zobrist, depthToGo, bestMove, lower, upper)
}
