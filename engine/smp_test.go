package engine

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tundrachess/tundra/board"
)

// TestSMPFindsMateInOne runs the coordinator with helper workers; the
// shared table must not corrupt the result.
func TestSMPFindsMateInOne(t *testing.T) {
	g, err := board.GameFromFEN("3k4/R7/1R6/5K2/8/8/8/8 w - - 0 1", PSTEvaluate)
	require.NoError(t, err)

	ms := NewMainSearch()
	ms.TT = NewTTable(16)
	ms.SetDepth(3)
	ms.SetNHelpers(3)
	info := ms.Evaluate(g, nil)

	assert.Equal(t, board.MakeMove(board.SquareB6, board.SquareB8), info.BestMove)
	assert.Equal(t, MateIn(1), info.Score)
}

func TestSMPBestMoveIsAlwaysLegal(t *testing.T) {
	data := []string{
		board.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range data {
		g, err := board.GameFromFEN(fen, PSTEvaluate)
		require.NoError(t, err)

		ms := NewMainSearch()
		ms.TT = NewTTable(16)
		ms.SetDepth(4)
		ms.SetNHelpers(2)
		info := ms.Evaluate(g, nil)

		assert.True(t, g.Board().IsLegal(info.BestMove),
			"%s: best move %v is not legal", fen, info.BestMove)
		assert.Greater(t, info.Nodes, uint64(0))
	}
}

// TestSMPSharedGameIsNotMutated: workers operate on clones, so the
// coordinator's game must come back unchanged.
func TestSMPSharedGameIsNotMutated(t *testing.T) {
	g, err := board.GameFromFEN(board.FENStartPos, PSTEvaluate)
	require.NoError(t, err)
	before := *g.Board()
	numMoves := g.NumMoves()

	ms := NewMainSearch()
	ms.TT = NewTTable(8)
	ms.SetDepth(4)
	ms.SetNHelpers(2)
	ms.Evaluate(g, nil)

	assert.Equal(t, before, *g.Board(), "the root position changed during search")
	assert.Equal(t, numMoves, g.NumMoves())
}

func TestSMPStopEndsSearch(t *testing.T) {
	g, err := board.GameFromFEN(board.FENStartPos, PSTEvaluate)
	require.NoError(t, err)

	ms := NewMainSearch()
	ms.TT = NewTTable(8)
	ms.SetDepth(64)
	ms.Limit.SetNodesCap(20000)
	ms.SetNHelpers(2)

	info := ms.Evaluate(g, nil)
	assert.NotEqual(t, board.NullMove, info.BestMove)
	assert.True(t, ms.Limit.IsOver(), "the limit is stopped after Evaluate")
}

func TestPrincipalVariationIsPlayable(t *testing.T) {
	g, err := board.GameFromFEN(board.FENStartPos, PSTEvaluate)
	require.NoError(t, err)

	ms := NewMainSearch()
	ms.TT = NewTTable(16)
	ms.SetDepth(5)
	info := ms.Evaluate(g, nil)

	pv := ms.PrincipalVariation(g, info.BestMove, 5)
	require.NotEmpty(t, pv)
	assert.Equal(t, info.BestMove, pv[0])

	clone := g.Clone()
	for _, m := range pv {
		require.True(t, clone.Board().IsLegal(m), "pv move %v is not legal", m)
		clone.MakeMove(m, board.NoScore)
	}
}

func TestSearchConfigDefaults(t *testing.T) {
	cfg := NewSearchConfig()
	assert.Equal(t, 10, cfg.Depth)
	assert.Equal(t, 0, cfg.NHelpers)
	assert.Greater(t, cfg.NumEarlyMoves, 0)
	assert.Greater(t, cfg.LimitBatch, uint64(0))
}

func TestLoadSearchConfigMissingFile(t *testing.T) {
	cfg, err := LoadSearchConfig("does-not-exist.toml")
	require.NoError(t, err)
	assert.Equal(t, NewSearchConfig(), cfg)
}

func TestLoadSearchConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/tundra.toml"
	require.NoError(t, writeFile(path, "depth = 12\nhelpers = 3\n"))

	cfg, err := LoadSearchConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Depth)
	assert.Equal(t, 3, cfg.NHelpers)
	assert.Equal(t, NewSearchConfig().NumEarlyMoves, cfg.NumEarlyMoves,
		"unset keys keep their defaults")
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
