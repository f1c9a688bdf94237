package board

import (
	"fmt"
)

var (
	errInvalidMove = fmt.Errorf("invalid move string")
)

// Move is a compact move representation.
//
// From LSB to MSB:
//   - bits 0-5: from square
//   - bits 6-11: to square
//   - bits 12-14: promotion figure, NoFigure when not promoting
//   - bit 15: unused
//
// Castling and en passant moves carry no tag; consumers classify them
// from the position the move is played on (see Position.IsCastle and
// Position.IsEnpassant).
type Move uint16

// NullMove is a sentinel for "no move".
const NullMove Move = 0

// MakeMove returns a move from from to to without promotion.
func MakeMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// MakePromotionMove returns a pawn move promoting to promo.
func MakePromotionMove(from, to Square, promo Figure) Move {
	return Move(from) | Move(to)<<6 | Move(promo)<<12
}

// From returns the source square.
func (m Move) From() Square {
	return Square(m & 63)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m >> 6 & 63)
}

// Promotion returns the figure the move promotes to,
// or NoFigure when the move is not a promotion.
func (m Move) Promotion() Figure {
	return Figure(m >> 12 & 7)
}

// UCI converts a move to UCI format, e.g. "e2e4" or "b7b8q".
func (m Move) UCI() string {
	r := m.From().String() + m.To().String()
	if p := m.Promotion(); p != NoFigure {
		r += string(figureToSymbol[p][0] - 'A' + 'a')
	}
	return r
}

func (m Move) String() string {
	return m.UCI()
}

// MoveFromUCI parses a move in UCI format.
// The string is 4 or 5 characters, e.g. "a2a4" or "h7h8q".
// The move is not checked for legality.
func MoveFromUCI(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, errInvalidMove
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return NullMove, err
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return NullMove, err
	}
	if len(s) == 5 {
		promo, ok := symbolToFigure[rune(s[4])]
		if !ok || !promo.IsPromotable() {
			return NullMove, errInvalidMove
		}
		return MakePromotionMove(from, to, promo), nil
	}
	return MakeMove(from, to), nil
}
