// Copyright 2025 The tundra authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package board

// FENStartPos is the standard starting position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Which castle rights are lost when pieces move from or to a square.
var lostCastleRights [SquareArraySize]Castle

func init() {
	lostCastleRights[SquareA1] = WhiteOOO
	lostCastleRights[SquareE1] = WhiteOOO | WhiteOO
	lostCastleRights[SquareH1] = WhiteOO
	lostCastleRights[SquareA8] = BlackOOO
	lostCastleRights[SquareE8] = BlackOOO | BlackOO
	lostCastleRights[SquareH8] = BlackOO
}

// Position encodes the chess board.
//
// Position has value semantics: the game history copies positions to
// implement undo, so all fields must be plain values.
type Position struct {
	ByFigure [FigureArraySize]Bitboard // occupancy by figure
	ByColor  [ColorArraySize]Bitboard  // occupancy by color

	SideToMove      Color
	CastlingAbility Castle
	EnpassantSquare Square // SquareA1 when no en passant is possible
	HalfMoveClock   int
	FullMoveNumber  int

	// Zobrist is maintained incrementally by MakeMove and the Set*
	// methods. It covers pieces, side to move, castling rights and the
	// en passant square.
	Zobrist uint64

	// Score is the cached material plus piece square table score from
	// White's perspective. MakeMove applies the caller-provided delta so
	// the score never needs to be recomputed from scratch.
	Score Score

	// Checkers are the pieces giving check to the side to move.
	Checkers Bitboard
	// Pinned are the side to move's pieces pinned against their king.
	// A pinned piece may only move along Line(king, piece).
	Pinned Bitboard

	kingSq [ColorArraySize]Square
}

// NewPosition returns a new empty position.
func NewPosition() *Position {
	return &Position{FullMoveNumber: 1}
}

// KingSquare returns the square of col's king.
func (pos *Position) KingSquare(col Color) Square {
	return pos.kingSq[col]
}

// ByPiece is a shortcut for ByColor[col]&ByFigure[fig].
func (pos *Position) ByPiece(col Color, fig Figure) Bitboard {
	return pos.ByColor[col] & pos.ByFigure[fig]
}

// Occupancy returns the set of all occupied squares.
func (pos *Position) Occupancy() Bitboard {
	return pos.ByColor[White] | pos.ByColor[Black]
}

// IsEmpty returns true if there is no piece at sq.
func (pos *Position) IsEmpty(sq Square) bool {
	return !pos.Occupancy().Has(sq)
}

// Get returns the piece at sq.
func (pos *Position) Get(sq Square) Piece {
	var col Color
	if pos.ByColor[White].Has(sq) {
		col = White
	} else if pos.ByColor[Black].Has(sq) {
		col = Black
	} else {
		return NoPiece
	}

	for fig := FigureMinValue; fig <= FigureMaxValue; fig++ {
		if pos.ByFigure[fig].Has(sq) {
			return ColorFigure(col, fig)
		}
	}
	panic("occupancy and figure bitboards disagree")
}

// TypeAt returns the figure at sq, NoFigure if the square is empty.
func (pos *Position) TypeAt(sq Square) Figure {
	if pos.IsEmpty(sq) {
		return NoFigure
	}
	for fig := FigureMinValue; fig <= FigureMaxValue; fig++ {
		if pos.ByFigure[fig].Has(sq) {
			return fig
		}
	}
	return NoFigure
}

// ColorAt returns the color of the piece at sq, NoColor if empty.
func (pos *Position) ColorAt(sq Square) Color {
	if pos.ByColor[White].Has(sq) {
		return White
	}
	if pos.ByColor[Black].Has(sq) {
		return Black
	}
	return NoColor
}

// Put puts a piece on the board and updates the Zobrist key.
// Does nothing if pi is NoPiece. Does not validate the input.
func (pos *Position) Put(sq Square, pi Piece) {
	if pi != NoPiece {
		pos.Zobrist ^= zobristPiece[pi][sq]
		bb := sq.Bitboard()
		pos.ByColor[pi.Color()] |= bb
		pos.ByFigure[pi.Figure()] |= bb
		if pi.Figure() == King {
			pos.kingSq[pi.Color()] = sq
		}
	}
}

// Remove removes a piece from the board and updates the Zobrist key.
// Does nothing if pi is NoPiece. Does not validate the input.
func (pos *Position) Remove(sq Square, pi Piece) {
	if pi != NoPiece {
		pos.Zobrist ^= zobristPiece[pi][sq]
		bb := ^sq.Bitboard()
		pos.ByColor[pi.Color()] &= bb
		pos.ByFigure[pi.Figure()] &= bb
	}
}

// SetCastlingAbility sets the castling rights, updating the Zobrist key.
func (pos *Position) SetCastlingAbility(castle Castle) {
	if pos.CastlingAbility == castle {
		return
	}
	pos.Zobrist ^= zobristCastle[pos.CastlingAbility]
	pos.CastlingAbility = castle
	pos.Zobrist ^= zobristCastle[pos.CastlingAbility]
}

// SetSideToMove sets the side to move, updating the Zobrist key.
func (pos *Position) SetSideToMove(col Color) {
	pos.Zobrist ^= zobristColor[pos.SideToMove]
	pos.SideToMove = col
	pos.Zobrist ^= zobristColor[pos.SideToMove]
}

// SetEnpassantSquare sets the en passant square, updating the Zobrist key.
// SquareA1 clears the target.
func (pos *Position) SetEnpassantSquare(sq Square) {
	if sq == pos.EnpassantSquare {
		return
	}
	pos.Zobrist ^= zobristEnpassant[pos.EnpassantSquare]
	pos.EnpassantSquare = sq
	pos.Zobrist ^= zobristEnpassant[pos.EnpassantSquare]
}

// IsEnpassantSquare returns true if sq is the en passant target.
func (pos *Position) IsEnpassantSquare(sq Square) bool {
	return sq != SquareA1 && sq == pos.EnpassantSquare
}

// IsEnpassant returns true if m is an en passant capture on this position.
func (pos *Position) IsEnpassant(m Move) bool {
	return pos.ByFigure[Pawn].Has(m.From()) && pos.IsEnpassantSquare(m.To())
}

// IsCastle returns true if m castles on this position.
// A castle is a king move across two files.
func (pos *Position) IsCastle(m Move) bool {
	return pos.ByFigure[King].Has(m.From()) && Distance(m.From(), m.To()) == 2
}

// IsCapture returns true if m captures on this position.
func (pos *Position) IsCapture(m Move) bool {
	them := pos.SideToMove.Opposite()
	return pos.ByColor[them].Has(m.To()) || pos.IsEnpassant(m)
}

// CaptureSquare returns the square of the piece captured by m, which for
// en passant captures is not the move's destination. Returns the
// destination square for non-captures, which is then empty.
func (pos *Position) CaptureSquare(m Move) Square {
	if pos.IsEnpassant(m) {
		return RankFile(m.From().Rank(), m.To().File())
	}
	return m.To()
}

// HasNonPawns returns whether col has any minor or major pieces.
func (pos *Position) HasNonPawns(col Color) bool {
	return pos.ByColor[col]&^pos.ByFigure[Pawn]&^pos.ByFigure[King] != 0
}

// MakeMove executes a legal move, mutating the position in place.
// delta is the change in the cached PST score caused by the move, from
// the mover's perspective; pass NoScore if the score is not maintained.
func (pos *Position) MakeMove(m Move, delta Score) {
	from, to := m.From(), m.To()
	pi := pos.Get(from)
	us := pi.Color()

	if us == White {
		pos.Score = pos.Score.Plus(delta)
	} else {
		pos.Score = pos.Score.Minus(delta)
	}

	captureSq := to
	if pos.IsEnpassant(m) {
		captureSq = RankFile(from.Rank(), to.File())
	}
	captured := pos.Get(captureSq)

	// Castling rights are lost when the king or a rook moves, or when a
	// rook is captured.
	pos.SetCastlingAbility(pos.CastlingAbility &^ lostCastleRights[from] &^ lostCastleRights[to])

	if captured != NoPiece || pi.Figure() == Pawn {
		pos.HalfMoveClock = 0
	} else {
		pos.HalfMoveClock++
	}
	if us == Black {
		pos.FullMoveNumber++
	}

	// The en passant target appears only after a double pawn push.
	if pi.Figure() == Pawn &&
		from.Bitboard()&BbPawnStartRank != 0 &&
		to.Bitboard()&BbPawnDoubleRank != 0 {
		pos.SetEnpassantSquare((from + to) / 2)
	} else {
		pos.SetEnpassantSquare(SquareA1)
	}

	// Move the rook together with the king on castling.
	if pi.Figure() == King && Distance(from, to) == 2 {
		rook, rookFrom, rookTo := CastlingRook(to)
		pos.Remove(rookFrom, rook)
		pos.Put(rookTo, rook)
	}

	target := pi
	if promo := m.Promotion(); promo != NoFigure {
		target = ColorFigure(us, promo)
	}

	pos.Remove(captureSq, captured)
	pos.Remove(from, pi)
	pos.Put(to, target)

	pos.SetSideToMove(us.Opposite())
	pos.computeCheckInfo()
}

// attackersTo returns them's pieces attacking sq, given occupancy occ.
// occ may differ from the real occupancy, e.g. with the king removed to
// detect sliders piercing the king's square.
func (pos *Position) attackersTo(sq Square, them Color, occ Bitboard) Bitboard {
	theirs := pos.ByColor[them]
	att := bbPawnAttack[them.Opposite()][sq] & theirs & pos.ByFigure[Pawn]
	att |= bbKnightAttack[sq] & theirs & pos.ByFigure[Knight]
	att |= bbKingAttack[sq] & theirs & pos.ByFigure[King]
	if bbSuperAttack[sq]&theirs&^pos.ByFigure[Pawn]&^pos.ByFigure[Knight]&^pos.ByFigure[King] != 0 {
		att |= BishopAttacks(sq, occ) & theirs & (pos.ByFigure[Bishop] | pos.ByFigure[Queen])
		att |= RookAttacks(sq, occ) & theirs & (pos.ByFigure[Rook] | pos.ByFigure[Queen])
	}
	return att
}

// IsAttacked returns true if any piece of them attacks sq.
func (pos *Position) IsAttacked(sq Square, them Color) bool {
	return pos.attackersTo(sq, them, pos.Occupancy()) != 0
}

// IsChecked returns true if side's king is in check.
func (pos *Position) IsChecked(side Color) bool {
	return pos.attackersTo(pos.kingSq[side], side.Opposite(), pos.Occupancy()) != 0
}

// computeCheckInfo refreshes the checkers and pinned bitboards for the
// side to move. Called after every MakeMove and at position setup.
func (pos *Position) computeCheckInfo() {
	us := pos.SideToMove
	them := us.Opposite()
	king := pos.kingSq[us]
	occ := pos.Occupancy()

	pos.Checkers = pos.attackersTo(king, them, occ)

	pos.Pinned = BbEmpty
	snipers := pos.ByColor[them] & (pos.ByFigure[Rook]|pos.ByFigure[Queen]) & RookAttacks(king, BbEmpty)
	snipers |= pos.ByColor[them] & (pos.ByFigure[Bishop]|pos.ByFigure[Queen]) & BishopAttacks(king, BbEmpty)
	for snipers != 0 {
		sq := snipers.Pop()
		blockers := Between(king, sq) & occ
		if blockers != 0 && blockers&(blockers-1) == 0 && blockers&pos.ByColor[us] != 0 {
			pos.Pinned |= blockers
		}
	}
}
