package board

import (
	"testing"
)

func TestMoveToSAN(t *testing.T) {
	data := []struct {
		fen  string
		move string
		san  string
	}{
		// A pawn capture includes the originating file.
		{"rnbqkbnr/ppppp1pp/8/5p2/4P3/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 2", "e4f5", "exf5"},
		{FENStartPos, "e2e4", "e4"},
		{FENStartPos, "g1f3", "Nf3"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", "O-O-O"},
		{"8/6P1/8/8/8/k7/8/1K6 w - - 0 1", "g7g8q", "g8=Q"},
		// Two knights can reach e2; the file disambiguates.
		{"4k3/8/8/8/8/2N3N1/8/4K3 w - - 0 1", "c3e2", "Nce2"},
		// Mate gets the # suffix.
		{"3k4/R7/1R6/5K2/8/8/8/8 w - - 0 1", "b6b8", "Rb8#"},
		// Check gets the + suffix.
		{"rnbqkbnr/ppppp1pp/8/5p2/8/4P3/PPPP1PPP/RNBQKBNR w KQkq - 0 2", "d1h5", "Qh5+"},
	}

	for _, d := range data {
		pos, err := PositionFromFEN(d.fen)
		if err != nil {
			t.Fatalf("%s: %v", d.fen, err)
		}
		m, err := MoveFromUCI(d.move)
		if err != nil {
			t.Fatal(err)
		}
		if got := MoveToSAN(pos, m); got != d.san {
			t.Errorf("%s %s: expected %q, got %q", d.fen, d.move, d.san, got)
		}
	}
}

func TestMoveFromSAN(t *testing.T) {
	data := []struct {
		fen  string
		san  string
		move string
	}{
		{"rnbqkbnr/ppppp1pp/8/5p2/4P3/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 2", "exf5", "e4f5"},
		{FENStartPos, "e4", "e2e4"},
		{FENStartPos, "Nf3", "g1f3"},
		{"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "O-O", "e1g1"},
		{"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "O-O-O", "e8c8"},
		{"8/6P1/8/8/8/k7/8/1K6 w - - 0 1", "g8=Q", "g7g8q"},
		{"8/6P1/8/8/8/k7/8/1K6 w - - 0 1", "g8N", "g7g8n"},
		{"4k3/8/8/8/8/2N3N1/8/4K3 w - - 0 1", "Nce2", "c3e2"},
		{"3k4/R7/1R6/5K2/8/8/8/8 w - - 0 1", "Rb8#", "b6b8"},
	}

	for _, d := range data {
		pos, err := PositionFromFEN(d.fen)
		if err != nil {
			t.Fatalf("%s: %v", d.fen, err)
		}
		want, _ := MoveFromUCI(d.move)
		got, err := MoveFromSAN(pos, d.san)
		if err != nil {
			t.Errorf("%s %q: %v", d.fen, d.san, err)
			continue
		}
		if got != want {
			t.Errorf("%s %q: expected %v, got %v", d.fen, d.san, want, got)
		}
	}
}

func TestSANRoundTrip(t *testing.T) {
	data := []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range data {
		pos, _ := PositionFromFEN(fen)
		var moves []Move
		pos.GenerateMoves(All, &moves)
		for _, m := range moves {
			san := MoveToSAN(pos, m)
			back, err := MoveFromSAN(pos, san)
			if err != nil {
				t.Errorf("%s: cannot parse %q back: %v", fen, san, err)
				continue
			}
			if back != m {
				t.Errorf("%s: %v -> %q -> %v", fen, m, san, back)
			}
		}
	}
}

func TestMoveFromSANErrors(t *testing.T) {
	pos, _ := PositionFromFEN(FENStartPos)
	for _, bad := range []string{"", "Xf3", "Nf6", "e5", "Ke2", "axb3"} {
		if _, err := MoveFromSAN(pos, bad); err == nil {
			t.Errorf("expected an error for %q", bad)
		}
	}
}
