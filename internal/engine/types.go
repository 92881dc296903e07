package engine

// Color identifies a chess side.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Other returns the opposing side.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

// PieceKind enumerates the six piece kinds. The zero value marks an empty cell.
type PieceKind uint8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Piece is a tagged kind/color pair. The zero value is an empty cell; the
// letter encoding used on the wire lives in codec.go, never in rules logic.
type Piece struct {
	Kind  PieceKind
	Color Color
}

// IsEmpty reports whether the cell holds no piece.
func (p Piece) IsEmpty() bool { return p.Kind == NoKind }

// Coord addresses a board cell. X is the file, Y the rank index; (0,0) is the
// corner on the far ("black") side and the board index is Y*8 + X.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// InBounds reports whether both components lie in [0,7].
func (c Coord) InBounds() bool {
	return c.X >= 0 && c.X <= 7 && c.Y >= 0 && c.Y <= 7
}

func (c Coord) index() int { return c.Y*8 + c.X }

// CastlingRights is a set of the four independent castling flags.
type CastlingRights uint8

const (
	CastleWhiteKingside CastlingRights = 1 << iota
	CastleWhiteQueenside
	CastleBlackKingside
	CastleBlackQueenside
)

// CastleAll has every flag set, as at the start of a game.
const CastleAll = CastleWhiteKingside | CastleWhiteQueenside | CastleBlackKingside | CastleBlackQueenside

// Has reports whether every flag in f is set.
func (r CastlingRights) Has(f CastlingRights) bool { return r&f == f && f != 0 }

// Without returns the rights with the flags in f cleared. Flags never re-set.
func (r CastlingRights) Without(f CastlingRights) CastlingRights { return r &^ f }

// Status is the lifecycle state of a game.
type Status string

const (
	InProgress Status = "IN_PROGRESS"
	WhiteWon   Status = "WHITE_WON"
	BlackWon   Status = "BLACK_WON"
	Draw       Status = "DRAW"
)

// State is the full rules-relevant position: everything Apply needs to
// compute a successor. It is a value type; copies are independent.
type State struct {
	Board          Board          `json:"board"`
	Turn           Color          `json:"turn"`
	Castling       CastlingRights `json:"castling"`
	EnPassant      *Coord         `json:"en_passant,omitempty"`
	HalfmoveClock  uint32         `json:"halfmove_clock"`
	FullmoveNumber uint32         `json:"fullmove_number"`
	Status         Status         `json:"status"`
}

// NewState returns the standard initial position with White to move.
func NewState() State {
	return State{
		Board:          StartingBoard(),
		Turn:           White,
		Castling:       CastleAll,
		HalfmoveClock:  0,
		FullmoveNumber: 1,
		Status:         InProgress,
	}
}
