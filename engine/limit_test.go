package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimitNeverStopsByDefault(t *testing.T) {
	l := NewSearchLimit()
	l.Start()
	l.AddNodes(1000000)
	l.UpdateTime()
	assert.False(t, l.IsOver())
	assert.Equal(t, uint64(1000000), l.Nodes())
}

func TestLimitStopIsSticky(t *testing.T) {
	l := NewSearchLimit()
	l.Start()
	l.Stop()
	assert.True(t, l.IsOver())
	assert.True(t, l.IsOver(), "stays over until the next start")

	l.Start()
	assert.False(t, l.IsOver(), "start rearms the limit")
	assert.Zero(t, l.Nodes(), "start clears the node count")
}

func TestLimitNodeCap(t *testing.T) {
	l := NewSearchLimit()
	l.SetNodesCap(500)
	l.Start()

	l.AddNodes(400)
	assert.False(t, l.IsOver())
	l.AddNodes(200)
	assert.True(t, l.IsOver(), "crossing the cap stops the search")
}

func TestLimitDeadline(t *testing.T) {
	l := NewSearchLimit()
	l.SetMoveTime(10 * time.Millisecond)
	l.Start()

	l.UpdateTime()
	assert.False(t, l.IsOver())

	time.Sleep(20 * time.Millisecond)
	assert.False(t, l.IsOver(), "the flag flips only on UpdateTime")
	l.UpdateTime()
	assert.True(t, l.IsOver())
}

func TestLimitElapsed(t *testing.T) {
	l := NewSearchLimit()
	l.Start()
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, l.Elapsed(), 5*time.Millisecond)
}
