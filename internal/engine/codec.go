package engine

import (
	"encoding/json"
	"fmt"
)

// Serialization boundary. Letters follow the usual convention: uppercase
// PNBRQK for White, lowercase for Black, space for an empty cell. Rules code
// never branches on letters; it goes through the tagged Piece type.

var kindLetters = map[PieceKind]byte{
	Pawn:   'P',
	Knight: 'N',
	Bishop: 'B',
	Rook:   'R',
	Queen:  'Q',
	King:   'K',
}

// Letter returns the serialized character for a piece.
func (p Piece) Letter() byte {
	if p.IsEmpty() {
		return ' '
	}
	ch := kindLetters[p.Kind]
	if p.Color == Black {
		ch += 'a' - 'A'
	}
	return ch
}

// PieceFromLetter decodes a single board character.
func PieceFromLetter(ch byte) (Piece, error) {
	if ch == ' ' {
		return Piece{}, nil
	}
	color := White
	if ch >= 'a' && ch <= 'z' {
		color = Black
		ch -= 'a' - 'A'
	}
	for kind, letter := range kindLetters {
		if letter == ch {
			return Piece{Kind: kind, Color: color}, nil
		}
	}
	return Piece{}, fmt.Errorf("invalid piece letter %q", ch)
}

// Encode renders the board as exactly 64 characters, rank-major, rank 0 first.
func (b Board) Encode() string {
	out := make([]byte, 64)
	for i, p := range b {
		out[i] = p.Letter()
	}
	return string(out)
}

// DecodeBoard parses a 64-character board string.
func DecodeBoard(s string) (Board, error) {
	var b Board
	if len(s) != 64 {
		return b, fmt.Errorf("board string must be 64 characters, got %d", len(s))
	}
	for i := 0; i < 64; i++ {
		p, err := PieceFromLetter(s[i])
		if err != nil {
			return Board{}, fmt.Errorf("cell %d: %w", i, err)
		}
		b[i] = p
	}
	return b, nil
}

func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Encode())
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decoded, err := DecodeBoard(s)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// String renders the rights as a subset of "KQkq" in canonical order; the
// empty string means no castling remains available.
func (r CastlingRights) String() string {
	out := make([]byte, 0, 4)
	if r.Has(CastleWhiteKingside) {
		out = append(out, 'K')
	}
	if r.Has(CastleWhiteQueenside) {
		out = append(out, 'Q')
	}
	if r.Has(CastleBlackKingside) {
		out = append(out, 'k')
	}
	if r.Has(CastleBlackQueenside) {
		out = append(out, 'q')
	}
	return string(out)
}

// ParseCastlingRights parses a subset of "KQkq".
func ParseCastlingRights(s string) (CastlingRights, error) {
	var r CastlingRights
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'K':
			r |= CastleWhiteKingside
		case 'Q':
			r |= CastleWhiteQueenside
		case 'k':
			r |= CastleBlackKingside
		case 'q':
			r |= CastleBlackQueenside
		default:
			return 0, fmt.Errorf("invalid castling flag %q", s[i])
		}
	}
	return r, nil
}

func (r CastlingRights) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *CastlingRights) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCastlingRights(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// CoordNotation renders a from/to pair in coordinate notation ("e2e4").
// Rank 8 is y=0, matching the far side being Black's.
func CoordNotation(from, to Coord) string {
	return fmt.Sprintf("%c%d%c%d", 'a'+from.X, 8-from.Y, 'a'+to.X, 8-to.Y)
}
