package engine

import "testing"

func TestApplyDoubleAdvance(t *testing.T) {
	s := NewState()
	next := Apply(s, Coord{4, 6}, Coord{4, 4}) // e2-e4

	if !next.Board.PieceAt(Coord{4, 6}).IsEmpty() {
		t.Fatalf("source cell should be empty after the move")
	}
	got := next.Board.PieceAt(Coord{4, 4})
	if got.Kind != Pawn || got.Color != White {
		t.Fatalf("expected white pawn on destination, got %+v", got)
	}
	if next.EnPassant == nil || *next.EnPassant != (Coord{4, 5}) {
		t.Fatalf("expected en-passant target (4,5), got %v", next.EnPassant)
	}
	if next.HalfmoveClock != 0 {
		t.Fatalf("pawn move must reset the halfmove clock, got %d", next.HalfmoveClock)
	}
	if next.Turn != Black {
		t.Fatalf("turn should flip to black")
	}
	if next.FullmoveNumber != 1 {
		t.Fatalf("fullmove number must not change after a white move, got %d", next.FullmoveNumber)
	}
	if next.Status != InProgress {
		t.Fatalf("game should remain in progress")
	}

	// original state untouched
	if s.EnPassant != nil || s.Board.PieceAt(Coord{4, 6}).IsEmpty() {
		t.Fatalf("Apply must not mutate its input state")
	}
}

func TestApplyClearsEnPassantAndCountsFullmoves(t *testing.T) {
	s := NewState()
	s = Apply(s, Coord{4, 6}, Coord{4, 4}) // e4, sets target
	s = Apply(s, Coord{1, 0}, Coord{2, 2}) // ...Nc6

	if s.EnPassant != nil {
		t.Fatalf("en-passant target must be cleared by the next move, got %v", s.EnPassant)
	}
	if s.FullmoveNumber != 2 {
		t.Fatalf("fullmove number should advance after a black move, got %d", s.FullmoveNumber)
	}
	if s.HalfmoveClock != 1 {
		t.Fatalf("quiet knight move should increment the clock, got %d", s.HalfmoveClock)
	}
}

func TestApplyEnPassantCapture(t *testing.T) {
	s := NewState()
	s = Apply(s, Coord{4, 6}, Coord{4, 4}) // e4
	s = Apply(s, Coord{0, 1}, Coord{0, 2}) // ...a6
	s = Apply(s, Coord{4, 4}, Coord{4, 3}) // e5
	s = Apply(s, Coord{3, 1}, Coord{3, 3}) // ...d5, double advance beside e5

	if s.EnPassant == nil || *s.EnPassant != (Coord{3, 2}) {
		t.Fatalf("expected en-passant target (3,2), got %v", s.EnPassant)
	}
	s = Apply(s, Coord{4, 3}, Coord{3, 2}) // exd6 en passant

	if !s.Board.PieceAt(Coord{3, 3}).IsEmpty() {
		t.Fatalf("captured pawn beside the destination must be removed")
	}
	got := s.Board.PieceAt(Coord{3, 2})
	if got.Kind != Pawn || got.Color != White {
		t.Fatalf("expected white pawn on the target square, got %+v", got)
	}
	if s.HalfmoveClock != 0 {
		t.Fatalf("en-passant capture must reset the clock")
	}
}

func TestApplyCastling(t *testing.T) {
	s := NewState()
	s.Board = castlePosition()
	next := Apply(s, Coord{4, 7}, Coord{6, 7})

	if got := next.Board.PieceAt(Coord{6, 7}); got.Kind != King || got.Color != White {
		t.Fatalf("king should end on (6,7), got %+v", got)
	}
	if got := next.Board.PieceAt(Coord{5, 7}); got.Kind != Rook || got.Color != White {
		t.Fatalf("rook should relocate to (5,7), got %+v", got)
	}
	if !next.Board.PieceAt(Coord{7, 7}).IsEmpty() || !next.Board.PieceAt(Coord{4, 7}).IsEmpty() {
		t.Fatalf("king and rook home squares should be empty")
	}
	if next.Castling.Has(CastleWhiteKingside) || next.Castling.Has(CastleWhiteQueenside) {
		t.Fatalf("both white flags must clear on a king move, got %q", next.Castling.String())
	}
	if !next.Castling.Has(CastleBlackKingside | CastleBlackQueenside) {
		t.Fatalf("black flags must survive white castling, got %q", next.Castling.String())
	}

	queenSide := Apply(s, Coord{4, 7}, Coord{2, 7})
	if got := queenSide.Board.PieceAt(Coord{3, 7}); got.Kind != Rook || got.Color != White {
		t.Fatalf("queen-side rook should relocate to (3,7), got %+v", got)
	}
}

func TestApplyRookEventsClearFlags(t *testing.T) {
	s := NewState()
	s.Board = castlePosition()

	moved := Apply(s, Coord{7, 7}, Coord{7, 5})
	if moved.Castling.Has(CastleWhiteKingside) {
		t.Fatalf("rook leaving h1 must clear the white king-side flag")
	}
	if !moved.Castling.Has(CastleWhiteQueenside) {
		t.Fatalf("queen-side flag must survive a king-side rook move")
	}

	// capturing a rook on its home square clears the victim's flag
	b := castlePosition()
	b = b.SetPieceAt(Coord{7, 4}, Piece{Kind: Rook, Color: White})
	cap := State{Board: b, Turn: White, Castling: CastleAll, FullmoveNumber: 1, Status: InProgress}
	next := Apply(cap, Coord{7, 4}, Coord{7, 0})
	if next.Castling.Has(CastleBlackKingside) {
		t.Fatalf("capturing the h8 rook must clear the black king-side flag")
	}
	if !next.Castling.Has(CastleBlackQueenside) {
		t.Fatalf("the black queen-side flag must survive")
	}
	if next.HalfmoveClock != 0 {
		t.Fatalf("capture must reset the halfmove clock")
	}
}

func TestApplyPromotion(t *testing.T) {
	b := place(Board{}, 0, 1, Pawn, White)
	b = place(b, 4, 0, King, Black)
	b = place(b, 4, 7, King, White)
	s := State{Board: b, Turn: White, FullmoveNumber: 1, Status: InProgress}

	next := Apply(s, Coord{0, 1}, Coord{0, 0})
	got := next.Board.PieceAt(Coord{0, 0})
	if got.Kind != Queen || got.Color != White {
		t.Fatalf("pawn reaching the far rank must become a queen, got %+v", got)
	}
	if next.HalfmoveClock != 0 {
		t.Fatalf("promotion is a pawn move and resets the clock")
	}

	black := place(Board{}, 6, 6, Pawn, Black)
	black = place(black, 4, 0, King, Black)
	black = place(black, 0, 7, King, White)
	sb := State{Board: black, Turn: Black, FullmoveNumber: 3, Status: InProgress}
	nb := Apply(sb, Coord{6, 6}, Coord{6, 7})
	if got := nb.Board.PieceAt(Coord{6, 7}); got.Kind != Queen || got.Color != Black {
		t.Fatalf("black pawn reaching y=7 must become a black queen, got %+v", got)
	}
	if nb.FullmoveNumber != 4 {
		t.Fatalf("fullmove number should advance after the black move")
	}
}

func TestApplyKingCaptureEndsGame(t *testing.T) {
	b := place(Board{}, 4, 4, Queen, White)
	b = place(b, 4, 0, King, Black)
	b = place(b, 4, 7, King, White)
	s := State{Board: b, Turn: White, FullmoveNumber: 10, Status: InProgress}

	next := Apply(s, Coord{4, 4}, Coord{4, 0})
	if next.Status != WhiteWon {
		t.Fatalf("capturing the black king must end the game as WHITE_WON, got %s", next.Status)
	}
}

func TestApplyHundredHalfmovesDraw(t *testing.T) {
	b := place(Board{}, 1, 7, Knight, White)
	b = place(b, 4, 0, King, Black)
	b = place(b, 4, 7, King, White)
	s := State{Board: b, Turn: White, HalfmoveClock: 99, FullmoveNumber: 50, Status: InProgress}

	next := Apply(s, Coord{1, 7}, Coord{2, 5})
	if next.HalfmoveClock != 100 {
		t.Fatalf("expected clock 100, got %d", next.HalfmoveClock)
	}
	if next.Status != Draw {
		t.Fatalf("the hundredth halfmove must draw the game, got %s", next.Status)
	}

	// king capture outranks the clock
	cap := place(b, 2, 5, King, Black)
	cap = cap.SetPieceAt(Coord{4, 0}, Piece{})
	sc := State{Board: cap, Turn: White, HalfmoveClock: 99, FullmoveNumber: 50, Status: InProgress}
	nc := Apply(sc, Coord{1, 7}, Coord{2, 5})
	if nc.Status != WhiteWon {
		t.Fatalf("king capture takes precedence over the draw clock, got %s", nc.Status)
	}
}
