package engine

// Board is a fixed 64-cell position, rank-major: index = y*8 + x. Being an
// array it copies by value, so SetPieceAt can hand out a modified board
// without touching the original and the 64-cell invariant holds structurally.
type Board [64]Piece

// PieceAt returns the piece on (x,y), or the empty piece.
func (b Board) PieceAt(c Coord) Piece { return b[c.index()] }

// SetPieceAt returns a new board with exactly that cell replaced.
func (b Board) SetPieceAt(c Coord, p Piece) Board {
	b[c.index()] = p
	return b
}

// StartingBoard places all 32 pieces on their home squares. Black occupies
// ranks y=0..1, White y=6..7.
func StartingBoard() Board {
	var b Board
	back := [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for x := 0; x < 8; x++ {
		b[Coord{x, 0}.index()] = Piece{Kind: back[x], Color: Black}
		b[Coord{x, 1}.index()] = Piece{Kind: Pawn, Color: Black}
		b[Coord{x, 6}.index()] = Piece{Kind: Pawn, Color: White}
		b[Coord{x, 7}.index()] = Piece{Kind: back[x], Color: White}
	}
	return b
}
