// Package board implements the chess board, move generation and game
// history handling for the tundra chess engine.
//
// The board is represented using bitboards, with magic bitboards for
// sliding piece attacks. The move generator produces strictly legal
// moves.
package board

import (
	"fmt"
)

var (
	errInvalidSquare = fmt.Errorf("invalid square")

	figureToSymbol = map[Figure]string{
		Knight: "N",
		Bishop: "B",
		Rook:   "R",
		Queen:  "Q",
		King:   "K",
	}

	symbolToFigure = map[rune]Figure{
		'n': Knight, 'b': Bishop, 'r': Rook, 'q': Queen, 'k': King, 'p': Pawn,
		'N': Knight, 'B': Bishop, 'R': Rook, 'Q': Queen, 'K': King, 'P': Pawn,
	}
)

// Square identifies a location on the board.
// Bits 0-2 are the file, bits 3-5 are the rank.
type Square uint8

const (
	SquareA1 Square = iota
	SquareB1
	SquareC1
	SquareD1
	SquareE1
	SquareF1
	SquareG1
	SquareH1
	SquareA2
	SquareB2
	SquareC2
	SquareD2
	SquareE2
	SquareF2
	SquareG2
	SquareH2
	SquareA3
	SquareB3
	SquareC3
	SquareD3
	SquareE3
	SquareF3
	SquareG3
	SquareH3
	SquareA4
	SquareB4
	SquareC4
	SquareD4
	SquareE4
	SquareF4
	SquareG4
	SquareH4
	SquareA5
	SquareB5
	SquareC5
	SquareD5
	SquareE5
	SquareF5
	SquareG5
	SquareH5
	SquareA6
	SquareB6
	SquareC6
	SquareD6
	SquareE6
	SquareF6
	SquareG6
	SquareH6
	SquareA7
	SquareB7
	SquareC7
	SquareD7
	SquareE7
	SquareF7
	SquareG7
	SquareH7
	SquareA8
	SquareB8
	SquareC8
	SquareD8
	SquareE8
	SquareF8
	SquareG8
	SquareH8

	SquareArraySize = int(iota)
	SquareMinValue  = SquareA1
	SquareMaxValue  = SquareH8
)

// RankFile returns a square with rank r and file f.
// r and f should be between 0 and 7.
func RankFile(r, f int) Square {
	return Square(r*8 + f)
}

// SquareFromString parses a square from a string.
// The string has standard chess format [a-h][1-8].
func SquareFromString(s string) (Square, error) {
	if len(s) != 2 {
		return SquareA1, errInvalidSquare
	}

	f, r := -1, -1
	if 'a' <= s[0] && s[0] <= 'h' {
		f = int(s[0] - 'a')
	}
	if 'A' <= s[0] && s[0] <= 'H' {
		f = int(s[0] - 'A')
	}
	if '1' <= s[1] && s[1] <= '8' {
		r = int(s[1] - '1')
	}
	if f == -1 || r == -1 {
		return SquareA1, errInvalidSquare
	}

	return RankFile(r, f), nil
}

// Bitboard returns a bitboard that has sq set.
func (sq Square) Bitboard() Bitboard {
	return 1 << uint(sq)
}

// Rank returns a number from 0 to 7 representing the rank of the square.
func (sq Square) Rank() int {
	return int(sq / 8)
}

// File returns a number from 0 to 7 representing the file of the square.
func (sq Square) File() int {
	return int(sq % 8)
}

// Opposite returns the rank-mirrored square.
func (sq Square) Opposite() Square {
	return sq ^ 56
}

// POV returns the square from col's point of view, i.e. the rank-mirrored
// square for Black and the same square for White. Used by the piece square
// tables so that both colors share one set of tables.
func (sq Square) POV(col Color) Square {
	return sq ^ colorMask[col]
}

func (sq Square) String() string {
	return string([]byte{
		uint8(sq.File() + 'a'),
		uint8(sq.Rank() + '1'),
	})
}

// distance is the Chebyshev distance between any two squares.
var distance [SquareArraySize][SquareArraySize]int

func init() {
	for i := SquareMinValue; i <= SquareMaxValue; i++ {
		for j := SquareMinValue; j <= SquareMaxValue; j++ {
			df, dr := i.File()-j.File(), i.Rank()-j.Rank()
			if df < 0 {
				df = -df
			}
			if dr < 0 {
				dr = -dr
			}
			if df > dr {
				distance[i][j] = df
			} else {
				distance[i][j] = dr
			}
		}
	}
}

// Distance returns the Chebyshev distance between two squares.
func Distance(a, b Square) int {
	return distance[a][b]
}

// Figure represents a piece without a color.
type Figure uint8

const (
	NoFigure Figure = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King

	FigureArraySize = int(iota)
	FigureMinValue  = Pawn
	FigureMaxValue  = King
)

// IsPromotable returns true if a pawn can promote to fig.
func (fig Figure) IsPromotable() bool {
	return Knight <= fig && fig <= Queen
}

// Color represents a side.
type Color uint8

const (
	NoColor Color = iota
	White
	Black

	ColorArraySize = int(iota)
	ColorMinValue  = White
	ColorMaxValue  = Black
)

var (
	colorWeight = [ColorArraySize]int32{0, 1, -1}
	// colorMask[col] ^ square mirrors the board for Black.
	colorMask    = [ColorArraySize]Square{0, 0, 56}
	kingHomeRank = [ColorArraySize]int{0, 0, 7}
)

// Opposite returns the reversed color.
// Result is undefined if c is not White or Black.
func (c Color) Opposite() Color {
	return White + Black - c
}

// Multiplier returns +1 for White, -1 for Black.
// Used to put white-perspective scores into c's perspective.
func (c Color) Multiplier() int32 {
	return colorWeight[c]
}

// KingHomeRank returns the king's rank in the starting position.
// Result is undefined if c is not White or Black.
func (c Color) KingHomeRank() int {
	return kingHomeRank[c]
}

// Piece is a figure owned by one side.
type Piece uint8

const (
	NoPiece Piece = iota
)

// ColorFigure returns a piece with col and fig.
func ColorFigure(col Color, fig Figure) Piece {
	return Piece(fig<<2) + Piece(col)
}

// Color returns the piece's color.
func (pi Piece) Color() Color {
	return Color(pi & 3)
}

// Figure returns the piece's figure.
func (pi Piece) Figure() Figure {
	return Figure(pi >> 2)
}

const (
	PieceArraySize = int(King)<<2 + int(Black) + 1
)

var (
	pieceToSymbol = map[Piece]byte{NoPiece: '.'}
	symbolToPiece = map[byte]Piece{}
)

func init() {
	symbols := map[Figure]byte{
		Pawn: 'p', Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q', King: 'k',
	}
	for fig, sym := range symbols {
		white := ColorFigure(White, fig)
		black := ColorFigure(Black, fig)
		pieceToSymbol[white] = sym - 'a' + 'A'
		pieceToSymbol[black] = sym
		symbolToPiece[sym-'a'+'A'] = white
		symbolToPiece[sym] = black
	}
}

func (pi Piece) String() string {
	if sym, ok := pieceToSymbol[pi]; ok {
		return string(sym)
	}
	return "?"
}

// Castle is the castling rights mask.
type Castle uint8

const (
	// WhiteOO indicates that White can castle on king side.
	WhiteOO Castle = 1 << iota
	// WhiteOOO indicates that White can castle on queen side.
	WhiteOOO
	// BlackOO indicates that Black can castle on king side.
	BlackOO
	// BlackOOO indicates that Black can castle on queen side.
	BlackOOO

	NoCastle  Castle = 0
	AnyCastle Castle = WhiteOO | WhiteOOO | BlackOO | BlackOOO

	CastleArraySize = int(AnyCastle + 1)
)

var castleToSymbol = map[Castle]byte{
	WhiteOO:  'K',
	WhiteOOO: 'Q',
	BlackOO:  'k',
	BlackOOO: 'q',
}

func (c Castle) String() string {
	if c == 0 {
		return "-"
	}

	var r []byte
	for c > 0 {
		k := c & (-c)
		r = append(r, castleToSymbol[k])
		c -= k
	}
	return string(r)
}

// CastlingRook returns the rook moved during castling
// together with its start and end squares.
func CastlingRook(kingEnd Square) (Piece, Square, Square) {
	// The rook is on the A file for queen side castles (king ends on the
	// C file) and on the H file for king side castles (king ends on the
	// G file).
	rank := kingEnd.Rank()
	col := White
	if rank == 7 {
		col = Black
	}
	if kingEnd.File() == 2 {
		return ColorFigure(col, Rook), RankFile(rank, 0), RankFile(rank, 3)
	}
	return ColorFigure(col, Rook), RankFile(rank, 7), RankFile(rank, 5)
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "NoColor"
}

func (fig Figure) String() string {
	switch fig {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	}
	return "NoFigure"
}
