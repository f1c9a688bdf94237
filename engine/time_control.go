// time_control.go allocates thinking time from the clock situation
// given by the UCI go command.

package engine

import (
	"time"

	"github.com/tundrachess/tundra/board"
)

const (
	// defaultMovesToGo is assumed when the GUI gives no move count.
	defaultMovesToGo = 30
	// branchFactor reserves headroom so the last iteration can finish
	// before the allocation runs out.
	branchFactor = 2
)

// TimeControl describes the clocks of both players.
type TimeControl struct {
	WTime, WInc time.Duration // White's remaining time and increment
	BTime, BInc time.Duration // Black's remaining time and increment
	MovesToGo   int           // moves until the next time control, 0 if unknown
}

// ThinkingTime returns how long side may think on this move.
// The formula spends more of the remaining time early on and leans on
// the increment later.
func (tc *TimeControl) ThinkingTime(side board.Color) time.Duration {
	t, inc := tc.WTime, tc.WInc
	if side == board.Black {
		t, inc = tc.BTime, tc.BInc
	}

	movesToGo := time.Duration(defaultMovesToGo)
	if tc.MovesToGo > 0 {
		movesToGo = time.Duration(tc.MovesToGo)
	}

	budget := (t + (movesToGo-1)*inc) / movesToGo
	if budget > t {
		budget = t
	}
	return budget / branchFactor
}
