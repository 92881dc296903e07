package engine

// IsLegalMove reports whether moving p from one cell to another obeys that
// piece kind's movement rules against the given board, castling rights and
// en-passant target. It does not check whose turn it is or whether the
// destination holds a same-colored piece; the lifecycle layer screens those
// before calling in. Check safety is never evaluated anywhere: the king may
// move into, castle through, or remain in attack. Games end by king capture.
func IsLegalMove(b Board, from, to Coord, p Piece, rights CastlingRights, epTarget *Coord) bool {
	if from == to {
		return false
	}
	switch p.Kind {
	case Pawn:
		return pawnMoveLegal(b, from, to, p.Color, epTarget)
	case Rook:
		return straightMoveLegal(b, from, to)
	case Knight:
		return knightMoveLegal(from, to)
	case Bishop:
		return diagonalMoveLegal(b, from, to)
	case Queen:
		return straightMoveLegal(b, from, to) || diagonalMoveLegal(b, from, to)
	case King:
		return kingMoveLegal(b, from, to, p.Color, rights)
	}
	return false
}

// pawnMoveLegal covers single and double advances, regular diagonal captures
// and en-passant captures. White advances toward decreasing y.
func pawnMoveLegal(b Board, from, to Coord, color Color, epTarget *Coord) bool {
	dir, home := 1, 1
	if color == White {
		dir, home = -1, 6
	}
	dx := to.X - from.X
	dy := to.Y - from.Y

	if dx == 0 {
		if dy == dir {
			return b.PieceAt(to).IsEmpty()
		}
		if dy == 2*dir && from.Y == home {
			mid := Coord{from.X, from.Y + dir}
			return b.PieceAt(mid).IsEmpty() && b.PieceAt(to).IsEmpty()
		}
		return false
	}
	if (dx == 1 || dx == -1) && dy == dir {
		target := b.PieceAt(to)
		if !target.IsEmpty() {
			return target.Color != color
		}
		// empty destination is only capturable en passant
		return epTarget != nil && *epTarget == to
	}
	return false
}

func straightMoveLegal(b Board, from, to Coord) bool {
	if (from.X == to.X) == (from.Y == to.Y) {
		return false
	}
	return pathClear(b, from, to)
}

func diagonalMoveLegal(b Board, from, to Coord) bool {
	if abs(to.X-from.X) != abs(to.Y-from.Y) {
		return false
	}
	return pathClear(b, from, to)
}

func knightMoveLegal(from, to Coord) bool {
	dx, dy := abs(to.X-from.X), abs(to.Y-from.Y)
	return (dx == 1 && dy == 2) || (dx == 2 && dy == 1)
}

func kingMoveLegal(b Board, from, to Coord, color Color, rights CastlingRights) bool {
	dx, dy := abs(to.X-from.X), abs(to.Y-from.Y)
	if dx <= 1 && dy <= 1 {
		return true // null move already excluded
	}
	return castlingLegal(b, from, to, color, rights)
}

// castlingLegal checks the positional and rights preconditions for castling:
// king on its home square, matching flag still set, a same-colored rook on
// the expected home file, and an empty corridor between them.
func castlingLegal(b Board, from, to Coord, color Color, rights CastlingRights) bool {
	if from.Y != to.Y || abs(to.X-from.X) != 2 {
		return false
	}
	homeY := 0
	if color == White {
		homeY = 7
	}
	if from.X != 4 || from.Y != homeY {
		return false
	}
	kingside := to.X > from.X

	var flag CastlingRights
	switch {
	case color == White && kingside:
		flag = CastleWhiteKingside
	case color == White:
		flag = CastleWhiteQueenside
	case kingside:
		flag = CastleBlackKingside
	default:
		flag = CastleBlackQueenside
	}
	if !rights.Has(flag) {
		return false
	}

	rookSq := Coord{0, homeY}
	if kingside {
		rookSq = Coord{7, homeY}
	}
	if !pathClear(b, from, rookSq) {
		return false
	}
	rook := b.PieceAt(rookSq)
	return rook.Kind == Rook && rook.Color == color
}

// pathClear walks the at most six strictly-intermediate cells between from
// and to with unit steps on each axis and requires all of them to be empty.
// Endpoints are never inspected. Callers guarantee a straight or diagonal
// line, so the walk always terminates on to.
func pathClear(b Board, from, to Coord) bool {
	dx := sign(to.X - from.X)
	dy := sign(to.Y - from.Y)
	x, y := from.X+dx, from.Y+dy
	for x != to.X || y != to.Y {
		if !b.PieceAt(Coord{x, y}).IsEmpty() {
			return false
		}
		x += dx
		y += dy
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
