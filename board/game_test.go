package board

import (
	"testing"
)

func TestGameMakeUndoRoundTrip(t *testing.T) {
	g := NewGame(nil)
	initial := *g.Board()

	m := MakeMove(SquareE2, SquareE4)
	g.MakeMove(m, NoScore)
	if g.Board().SideToMove != Black {
		t.Errorf("expected Black to move")
	}
	if g.Board().EnpassantSquare != SquareE3 {
		t.Errorf("expected en passant target e3")
	}
	if g.Board().Zobrist == initial.Zobrist {
		t.Errorf("hash did not change")
	}

	undone, err := g.Undo()
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if undone != m {
		t.Errorf("expected %v, got %v", m, undone)
	}
	if *g.Board() != initial {
		t.Errorf("undo did not restore the position bit for bit")
	}
}

func TestGameUndoEmptyHistory(t *testing.T) {
	g := NewGame(nil)
	if _, err := g.Undo(); err == nil {
		t.Errorf("expected an error undoing an empty history")
	}
}

func TestGameUndoMultiple(t *testing.T) {
	g := NewGame(nil)
	initial := *g.Board()
	moves := []Move{
		MakeMove(SquareE2, SquareE4),
		MakeMove(SquareE7, SquareE5),
		MakeMove(SquareG1, SquareF3),
	}
	for _, m := range moves {
		g.MakeMove(m, NoScore)
	}
	for range moves {
		if _, err := g.Undo(); err != nil {
			t.Fatal(err)
		}
	}
	if *g.Board() != initial {
		t.Errorf("undo did not restore the initial position")
	}
	if g.NumMoves() != 0 {
		t.Errorf("expected an empty move list")
	}
}

var shuffleMoves = []Move{
	MakeMove(SquareB1, SquareC3),
	MakeMove(SquareB8, SquareC6),
	MakeMove(SquareC3, SquareB1),
	MakeMove(SquareC6, SquareB8),
}

func TestThreefoldRepetition(t *testing.T) {
	g := NewGame(nil)
	// Each knight round trip revisits the start position once.
	for i := 0; i < 2; i++ {
		for _, m := range shuffleMoves {
			if g.IsDrawnByRepetition() {
				t.Fatalf("drawn too early, round %d", i)
			}
			g.MakeMove(m, NoScore)
		}
	}
	// Start position has now occurred three times.
	if !g.IsDrawnByRepetition() {
		t.Errorf("expected a threefold repetition draw")
	}
}

func TestSearchRepetitionIsStricter(t *testing.T) {
	plain := NewGame(nil)
	searched := NewGame(nil)
	searched.StartSearch()

	for _, m := range shuffleMoves {
		plain.MakeMove(m, NoScore)
		searched.MakeMove(m, NoScore)
	}

	if plain.IsDrawnByRepetition() {
		t.Errorf("two occurrences are not a draw outside of a search")
	}
	if !searched.IsDrawnByRepetition() {
		t.Errorf("two occurrences during a search are a draw")
	}

	// Undo restores the counts.
	for range shuffleMoves {
		if _, err := searched.Undo(); err != nil {
			t.Fatal(err)
		}
	}
	if searched.IsDrawnByRepetition() {
		t.Errorf("undo did not restore the repetition counts")
	}

	// Ending the search ends the stricter rule.
	searched.StopSearch()
	for _, m := range shuffleMoves {
		searched.MakeMove(m, NoScore)
	}
	if searched.IsDrawnByRepetition() {
		t.Errorf("search repetitions must not leak past StopSearch")
	}
}

func TestFiftyMoveRule(t *testing.T) {
	g, err := GameFromFEN("4k3/8/8/8/8/8/8/4K2R w - - 99 80", nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.Board().FiftyMoveRule() {
		t.Errorf("99 half moves are not yet a draw")
	}
	g.MakeMove(MakeMove(SquareH1, SquareH2), NoScore)
	if !g.Board().FiftyMoveRule() {
		t.Errorf("expected a fifty move rule draw")
	}

	// A pawn move resets the clock.
	g2, _ := GameFromFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 99 80", nil)
	g2.MakeMove(MakeMove(SquareE2, SquareE3), NoScore)
	if g2.Board().HalfMoveClock != 0 {
		t.Errorf("pawn move did not reset the half move clock")
	}
}

func TestTryMoveRejectsIllegal(t *testing.T) {
	g := NewGame(nil)
	if err := g.TryMove(MakeMove(SquareE2, SquareE5), NoScore); err == nil {
		t.Errorf("expected an error for e2e5")
	}
	if g.NumMoves() != 0 {
		t.Errorf("illegal move must not change the game")
	}
	if err := g.TryMove(MakeMove(SquareE2, SquareE4), NoScore); err != nil {
		t.Errorf("unexpected error for e2e4: %v", err)
	}
}

func TestGameClone(t *testing.T) {
	g := NewGame(nil)
	g.MakeMove(MakeMove(SquareE2, SquareE4), NoScore)

	c := g.Clone()
	c.MakeMove(MakeMove(SquareE7, SquareE5), NoScore)

	if g.NumMoves() != 1 {
		t.Errorf("mutating the clone changed the original")
	}
	if c.NumMoves() != 2 {
		t.Errorf("clone lost a move")
	}
	if g.Board().Zobrist == c.Board().Zobrist {
		t.Errorf("clone and original should be on different positions")
	}
}
