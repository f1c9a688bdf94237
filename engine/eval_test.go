package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tundrachess/tundra/board"
)

func positionWithScore(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.PositionFromFEN(fen)
	require.NoError(t, err)
	pos.Score = PSTEvaluate(pos)
	return pos
}

func TestEvaluateStartPositionIsBalanced(t *testing.T) {
	pos := positionWithScore(t, board.FENStartPos)
	e := Evaluate(pos)
	assert.Equal(t, Eval(0), e, "the start position is symmetric")
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	// White is up a rook.
	pos := positionWithScore(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	assert.Greater(t, Evaluate(pos), Eval(300))

	// Black is up a rook.
	pos = positionWithScore(t, "r3k3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.Less(t, Evaluate(pos), Eval(-300))
}

func TestEvaluateNeverReachesMateBand(t *testing.T) {
	// An absurd material advantage still stays below the mate band.
	pos := positionWithScore(t, "4k3/8/8/8/8/8/PPPPPPPP/QQQQKQQQ w - - 0 1")
	e := Evaluate(pos)
	assert.False(t, e.IsMate())
}

func TestPhase(t *testing.T) {
	pos := positionWithScore(t, board.FENStartPos)
	assert.Equal(t, int32(0), Phase(pos), "full material is the opening")

	pos = positionWithScore(t, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	assert.Equal(t, int32(256), Phase(pos), "bare kings and pawns are the endgame")

	pos = positionWithScore(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	mid := Phase(pos)
	assert.Greater(t, mid, int32(0))
	assert.Less(t, mid, int32(256))
}

func TestEvaluateDoubledPawns(t *testing.T) {
	// Same material; white's pawns are doubled on the e file.
	doubled := positionWithScore(t, "4k3/3pp3/8/8/8/4P3/4P3/4K3 w - - 0 1")
	healthy := positionWithScore(t, "4k3/3pp3/8/8/8/8/3PP3/4K3 w - - 0 1")
	assert.Less(t, Evaluate(doubled), Evaluate(healthy))
}

func TestEvaluateRookOnOpenFile(t *testing.T) {
	// Identical material: the blocking pawn sits in front of the rook
	// in one position and on the neighboring file in the other.
	blocked := positionWithScore(t, "4k3/8/8/8/8/8/P7/R3K3 w - - 0 1")
	open := positionWithScore(t, "4k3/8/8/8/8/8/1P6/R3K3 w - - 0 1")
	a := evaluateSide(blocked, board.White)
	b := evaluateSide(open, board.White)
	assert.Less(t, a.M, b.M, "a rook blocked by its own pawn is not open")
}
