// Copyright 2025 The tundra authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// fen.go implements parsing and formatting of positions in
// Forsyth-Edwards Notation.
// http://en.wikipedia.org/wiki/Forsyth%E2%80%93Edwards_Notation

package board

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	errTooManyFields = fmt.Errorf("fen has too many fields")
	errTooFewFields  = fmt.Errorf("fen has too few fields")
)

// PositionFromFEN parses fen and returns the position.
func PositionFromFEN(fen string) (*Position, error) {
	f := strings.Fields(fen)
	if len(f) > 6 {
		return nil, errTooManyFields
	}
	if len(f) < 6 {
		return nil, errTooFewFields
	}

	pos := NewPosition()
	if err := parsePiecePlacement(f[0], pos); err != nil {
		return nil, err
	}
	if err := parseSideToMove(f[1], pos); err != nil {
		return nil, err
	}
	if err := parseCastlingAbility(f[2], pos); err != nil {
		return nil, err
	}
	if err := parseEnpassantSquare(f[3], pos); err != nil {
		return nil, err
	}
	var err error
	if pos.HalfMoveClock, err = strconv.Atoi(f[4]); err != nil {
		return nil, err
	}
	if pos.FullMoveNumber, err = strconv.Atoi(f[5]); err != nil {
		return nil, err
	}

	if pos.ByPiece(White, King).Popcnt() != 1 || pos.ByPiece(Black, King).Popcnt() != 1 {
		return nil, fmt.Errorf("expected exactly one king per side")
	}

	// Strip castling rights whose king or rook is not on its home
	// square, so a sloppy FEN cannot produce impossible castles.
	ability := pos.CastlingAbility
	if pos.Get(SquareE1) != ColorFigure(White, King) {
		ability &^= WhiteOO | WhiteOOO
	}
	if pos.Get(SquareH1) != ColorFigure(White, Rook) {
		ability &^= WhiteOO
	}
	if pos.Get(SquareA1) != ColorFigure(White, Rook) {
		ability &^= WhiteOOO
	}
	if pos.Get(SquareE8) != ColorFigure(Black, King) {
		ability &^= BlackOO | BlackOOO
	}
	if pos.Get(SquareH8) != ColorFigure(Black, Rook) {
		ability &^= BlackOO
	}
	if pos.Get(SquareA8) != ColorFigure(Black, Rook) {
		ability &^= BlackOOO
	}
	pos.SetCastlingAbility(ability)

	pos.computeCheckInfo()
	return pos, nil
}

// String returns the position in FEN format.
func (pos *Position) String() string {
	s := formatPiecePlacement(pos)
	s += " " + formatSideToMove(pos)
	s += " " + pos.CastlingAbility.String()
	s += " " + formatEnpassantSquare(pos)
	s += " " + strconv.Itoa(pos.HalfMoveClock)
	s += " " + strconv.Itoa(pos.FullMoveNumber)
	return s
}

func parsePiecePlacement(str string, pos *Position) error {
	ranks := strings.Split(str, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("expected 8 ranks, got %d", len(ranks))
	}
	for r, rank := range ranks {
		f := 0
		for _, c := range []byte(rank) {
			if '1' <= c && c <= '8' {
				f += int(c - '0')
				continue
			}
			pi, ok := symbolToPiece[c]
			if !ok {
				return fmt.Errorf("unknown piece symbol %q", c)
			}
			if f >= 8 {
				return fmt.Errorf("rank %d too long", 8-r)
			}
			if pi.Figure() == Pawn && (r == 0 || r == 7) {
				return fmt.Errorf("pawn on back rank")
			}
			pos.Put(RankFile(7-r, f), pi)
			f++
		}
		if f != 8 {
			return fmt.Errorf("rank %d has wrong length", 8-r)
		}
	}
	return nil
}

func formatPiecePlacement(pos *Position) string {
	s := ""
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			pi := pos.Get(RankFile(r, f))
			if pi == NoPiece {
				empty++
				continue
			}
			if empty != 0 {
				s += strconv.Itoa(empty)
				empty = 0
			}
			s += pi.String()
		}
		if empty != 0 {
			s += strconv.Itoa(empty)
		}
		if r != 0 {
			s += "/"
		}
	}
	return s
}

func parseSideToMove(str string, pos *Position) error {
	switch str {
	case "w":
		pos.SetSideToMove(White)
	case "b":
		pos.SetSideToMove(Black)
	default:
		return fmt.Errorf("unknown side to move %q", str)
	}
	return nil
}

func formatSideToMove(pos *Position) string {
	if pos.SideToMove == Black {
		return "b"
	}
	return "w"
}

func parseCastlingAbility(str string, pos *Position) error {
	if str == "-" {
		pos.SetCastlingAbility(NoCastle)
		return nil
	}
	ability := NoCastle
	for _, c := range str {
		switch c {
		case 'K':
			ability |= WhiteOO
		case 'Q':
			ability |= WhiteOOO
		case 'k':
			ability |= BlackOO
		case 'q':
			ability |= BlackOOO
		default:
			return fmt.Errorf("unknown castling right %q", c)
		}
	}
	pos.SetCastlingAbility(ability)
	return nil
}

func parseEnpassantSquare(str string, pos *Position) error {
	if str == "-" {
		pos.SetEnpassantSquare(SquareA1)
		return nil
	}
	sq, err := SquareFromString(str)
	if err != nil {
		return err
	}
	if sq.Rank() != 2 && sq.Rank() != 5 {
		return fmt.Errorf("en passant square %v on wrong rank", sq)
	}
	pos.SetEnpassantSquare(sq)
	return nil
}

func formatEnpassantSquare(pos *Position) string {
	if pos.EnpassantSquare == SquareA1 {
		return "-"
	}
	return pos.EnpassantSquare.String()
}
