// Copyright 2025 The tundra authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// smp.go implements the Lazy SMP search coordinator.
//
// All workers search the same root independently and share only the
// transposition table and the limit. They diverge through scheduling
// jitter and their private killer tables; deep results found by one
// worker reach the others through the table.

package engine

import (
	"sync"

	"github.com/tundrachess/tundra/board"
)

// ttMaxAge is how many searches an unused entry survives.
const ttMaxAge = 3

// ProgressFunc is called by the main worker after each completed depth.
type ProgressFunc func(SearchInfo, *TTable, *SearchLimit)

// MainSearch owns everything shared by the search workers.
type MainSearch struct {
	TT     *TTable
	Limit  *SearchLimit
	Config SearchConfig
}

// NewMainSearch returns a coordinator with default configuration.
func NewMainSearch() *MainSearch {
	return &MainSearch{
		TT:     NewTTable(DefaultHashTableSizeMB),
		Limit:  NewSearchLimit(),
		Config: NewSearchConfig(),
	}
}

// SetNHelpers sets the number of helper workers. 0 is single-threaded.
func (ms *MainSearch) SetNHelpers(n int) {
	ms.Config.NHelpers = n
}

// SetDepth sets the target iterative deepening depth.
func (ms *MainSearch) SetDepth(depth int) {
	ms.Config.Depth = depth
}

// Evaluate searches g and returns the best move found.
//
// Helpers run the same iterative deepening on clones of g. When the
// main worker finishes, the limit is stopped so the helpers return,
// the results are merged preferring the deepest completed search, and
// the table is aged for the next move.
func (ms *MainSearch) Evaluate(g *board.Game, progress ProgressFunc) SearchInfo {
	ms.Limit.Start()
	g.StartSearch()
	defer g.StopSearch()

	results := make(chan SearchInfo, ms.Config.NHelpers)
	var wg sync.WaitGroup
	for i := 0; i < ms.Config.NHelpers; i++ {
		clone := g.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- ms.worker(clone, false, nil)
		}()
	}

	best := ms.worker(g.Clone(), true, progress)

	ms.Limit.Stop()
	wg.Wait()
	close(results)
	for info := range results {
		best.unify(info)
	}
	best.Nodes = ms.Limit.Nodes()

	if best.BestMove == board.NullMove {
		// Not even depth 1 completed; fall back to any legal move so a
		// move is always produced under extreme time pressure.
		var moves []board.Move
		g.Board().GenerateMoves(board.All, &moves)
		if len(moves) > 0 {
			best.BestMove = moves[0]
		}
	}

	ms.TT.AgeUp(ttMaxAge)
	return best
}

// worker runs iterative deepening to the configured depth, recording
// the result of every fully completed depth.
func (ms *MainSearch) worker(g *board.Game, isMain bool, progress ProgressFunc) SearchInfo {
	var best SearchInfo
	for depth := 1; depth <= ms.Config.Depth; depth++ {
		cfg := ms.Config
		cfg.Depth = depth
		s := newSearcher(ms.TT, cfg, ms.Limit, isMain)

		m, score, err := s.pvs(g, depth, 0, -InfinityScore, InfinityScore, true)
		s.flushNodes()
		if err != nil {
			break
		}

		best = SearchInfo{
			BestMove: m,
			Score:    score,
			Depth:    depth,
			SelDepth: s.selDepth,
			Nodes:    best.Nodes + s.nodes,
			TTHits:   best.TTHits + s.ttHits,
		}
		if progress != nil {
			progress(best, ms.TT, ms.Limit)
		}
		if score > MateCutoff {
			// A forced mate was proven; deeper search cannot lose it.
			break
		}
	}
	return best
}
