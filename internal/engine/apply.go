package engine

// moveKind captures what Apply classified the move as before touching the
// board. A move is at most one of castling/promotion/enPassant, but a
// promotion can also be a capture.
type moveKind struct {
	capture        bool
	enPassantTaken bool
	castling       bool
	promotion      bool
}

// Apply computes the successor state for an already-validated move. It never
// fails: legality, turn ownership and bounds were established by the caller.
// The receiver state is untouched; the result is a fresh value.
func Apply(s State, from, to Coord) State {
	moved := s.Board.PieceAt(from)
	dest := s.Board.PieceAt(to)

	kind := moveKind{
		capture:  !dest.IsEmpty() && dest.Color != moved.Color,
		castling: moved.Kind == King && abs(to.X-from.X) == 2,
		promotion: moved.Kind == Pawn &&
			((moved.Color == White && to.Y == 0) || (moved.Color == Black && to.Y == 7)),
	}
	kind.enPassantTaken = moved.Kind == Pawn && from.X != to.X && dest.IsEmpty() &&
		s.EnPassant != nil && *s.EnPassant == to

	next := s
	next.Board = applyBoard(s.Board, from, to, moved, kind)
	next.Castling = applyCastlingRights(s.Castling, moved, dest, from, to, kind)
	next.EnPassant = nextEnPassantTarget(moved, from, to)
	if moved.Kind == Pawn || kind.capture || kind.enPassantTaken {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock = s.HalfmoveClock + 1
	}
	if moved.Color == Black {
		next.FullmoveNumber = s.FullmoveNumber + 1
	}
	next.Turn = s.Turn.Other()
	next.Status = deriveStatus(next.Board, next.HalfmoveClock)
	return next
}

func applyBoard(b Board, from, to Coord, moved Piece, kind moveKind) Board {
	b = b.SetPieceAt(from, Piece{})
	if kind.enPassantTaken {
		// the captured pawn sits beside the destination, on the mover's rank
		b = b.SetPieceAt(Coord{to.X, from.Y}, Piece{})
	}
	placed := moved
	if kind.promotion {
		placed = Piece{Kind: Queen, Color: moved.Color}
	}
	b = b.SetPieceAt(to, placed)
	if kind.castling {
		if to.X > from.X {
			b = b.SetPieceAt(Coord{7, from.Y}, Piece{})
			b = b.SetPieceAt(Coord{5, from.Y}, Piece{Kind: Rook, Color: moved.Color})
		} else {
			b = b.SetPieceAt(Coord{0, from.Y}, Piece{})
			b = b.SetPieceAt(Coord{3, from.Y}, Piece{Kind: Rook, Color: moved.Color})
		}
	}
	return b
}

// applyCastlingRights clears flags on exactly three events: the king moving,
// a rook leaving its home square, and a rook being captured on its home
// square. Cleared flags never come back.
func applyCastlingRights(rights CastlingRights, moved, dest Piece, from, to Coord, kind moveKind) CastlingRights {
	if moved.Kind == King {
		if moved.Color == White {
			rights = rights.Without(CastleWhiteKingside | CastleWhiteQueenside)
		} else {
			rights = rights.Without(CastleBlackKingside | CastleBlackQueenside)
		}
	}
	if moved.Kind == Rook {
		rights = rights.Without(rookHomeFlag(moved.Color, from))
	}
	if kind.capture && dest.Kind == Rook {
		rights = rights.Without(rookHomeFlag(dest.Color, to))
	}
	return rights
}

// rookHomeFlag maps a rook home square to its castling flag, or 0 when the
// square is not a home corner for that color.
func rookHomeFlag(c Color, sq Coord) CastlingRights {
	homeY := 0
	if c == White {
		homeY = 7
	}
	if sq.Y != homeY {
		return 0
	}
	switch sq.X {
	case 0:
		if c == White {
			return CastleWhiteQueenside
		}
		return CastleBlackQueenside
	case 7:
		if c == White {
			return CastleWhiteKingside
		}
		return CastleBlackKingside
	}
	return 0
}

// nextEnPassantTarget yields the skipped-over square after a pawn double
// advance; every other move clears the target.
func nextEnPassantTarget(moved Piece, from, to Coord) *Coord {
	if moved.Kind != Pawn || abs(to.Y-from.Y) != 2 {
		return nil
	}
	return &Coord{from.X, (from.Y + to.Y) / 2}
}

// deriveStatus resolves the game outcome: a missing king loses immediately,
// then the hundred-halfmove clock draws, otherwise play continues. There is
// no checkmate or stalemate detection; king capture is the decision rule.
func deriveStatus(b Board, halfmoveClock uint32) Status {
	whiteKing, blackKing := false, false
	for _, p := range b {
		if p.Kind == King {
			if p.Color == White {
				whiteKing = true
			} else {
				blackKing = true
			}
		}
	}
	switch {
	case !whiteKing:
		return BlackWon
	case !blackKing:
		return WhiteWon
	case halfmoveClock >= 100:
		return Draw
	}
	return InProgress
}
