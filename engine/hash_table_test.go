package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tundrachess/tundra/board"
)

func TestTTableMiss(t *testing.T) {
	tt := NewTTable(1)
	_, ok := tt.Probe(12345)
	assert.False(t, ok)
}

func TestTTableHit(t *testing.T) {
	tt := NewTTable(1)
	m := board.MakeMove(board.SquareE2, board.SquareE4)
	tt.Store(12, 5, m, DrawScore, Eval(100))

	entry, ok := tt.Probe(12)
	assert.True(t, ok)
	assert.Equal(t, m, entry.move)
	assert.Equal(t, uint8(5), entry.depth)
	assert.Equal(t, DrawScore, entry.lower)
	assert.Equal(t, Eval(100), entry.upper)
}

func TestTTableOverwrite(t *testing.T) {
	tt := NewTTable(1)
	m0 := board.MakeMove(board.SquareE2, board.SquareE4)
	m1 := board.MakeMove(board.SquareE4, board.SquareE5)

	tt.Store(2022, 5, m0, DrawScore, Eval(100))
	tt.Store(2022, 7, m1, Eval(-100), Eval(-50))

	entry, ok := tt.Probe(2022)
	assert.True(t, ok)
	assert.Equal(t, m1, entry.move)
	assert.Equal(t, uint8(7), entry.depth)
}

func TestTTableZeroSize(t *testing.T) {
	tt := NewTTable(0)
	tt.Store(12, 5, board.MakeMove(board.SquareE2, board.SquareE4), DrawScore, DrawScore)
	_, ok := tt.Probe(12)
	assert.False(t, ok, "a disabled table stores nothing")
	assert.Equal(t, 0, tt.Size())
}

func TestTTableResizeDropsEntries(t *testing.T) {
	tt := NewTTable(1)
	tt.Store(12, 5, board.MakeMove(board.SquareE2, board.SquareE4), DrawScore, DrawScore)
	tt.Resize(2)
	_, ok := tt.Probe(12)
	assert.False(t, ok)
	assert.NotZero(t, tt.Size())
}

func TestTTableSizeIsPowerOfTwo(t *testing.T) {
	for _, mb := range []int{1, 3, 64, 100} {
		tt := NewTTable(mb)
		size := tt.Size()
		assert.NotZero(t, size)
		assert.Zero(t, size&(size-1), "size %d for %d MB is not a power of two", size, mb)
		assert.LessOrEqual(t, size*16, mb<<20, "table exceeds the requested budget")
	}
}

func TestTTableAgeUp(t *testing.T) {
	tt := NewTTable(1)
	tt.Store(12, 5, board.MakeMove(board.SquareE2, board.SquareE4), DrawScore, DrawScore)

	tt.AgeUp(3)
	_, ok := tt.Probe(12)
	assert.True(t, ok, "a young entry survives aging")

	tt.AgeUp(3)
	tt.AgeUp(3)
	_, ok = tt.Probe(12)
	assert.False(t, ok, "an old entry is evicted")
}

func TestTTableClear(t *testing.T) {
	tt := NewTTable(1)
	tt.Store(12, 5, board.MakeMove(board.SquareE2, board.SquareE4), DrawScore, DrawScore)
	tt.Clear()
	_, ok := tt.Probe(12)
	assert.False(t, ok)
}

func TestTTableFillRate(t *testing.T) {
	tt := NewTTable(1)
	assert.Zero(t, tt.FillRatePermill())

	for i := uint64(1); i <= 2000; i++ {
		tt.Store(i, 1, board.NullMove, DrawScore, DrawScore)
	}
	assert.Greater(t, tt.FillRatePermill(), 0)

	empty := NewTTable(0)
	assert.Equal(t, 1000, empty.FillRatePermill())
}
