package board

// Score is a pair of midgame and endgame values in centipawns, always
// from White's perspective. The two halves are blended by the game phase
// at evaluation time.
type Score struct {
	M, E int32
}

// NoScore is a delta that causes no change.
var NoScore = Score{}

// Plus returns the sum of two scores.
func (s Score) Plus(o Score) Score {
	return Score{M: s.M + o.M, E: s.E + o.E}
}

// Minus returns the difference of two scores.
func (s Score) Minus(o Score) Score {
	return Score{M: s.M - o.M, E: s.E - o.E}
}

// Neg returns the negated score.
func (s Score) Neg() Score {
	return Score{M: -s.M, E: -s.E}
}

// PSTEvaluator computes the material plus piece square table score of a
// position from scratch. The engine package provides the implementation;
// board only threads it through game construction so that the cached
// score on each position starts out correct.
type PSTEvaluator func(*Position) Score
