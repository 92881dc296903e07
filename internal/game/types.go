package game

import (
	"time"

	"github.com/park285/chess-arbiter/internal/engine"
)

// Record is the authoritative stored state of one game. IDs are allocated
// monotonically by the store; records are created once and never deleted.
type Record struct {
	ID        uint64       `json:"id"`
	White     string       `json:"white"`
	Black     string       `json:"black"`
	State     engine.State `json:"state"`
	Moves     []string     `json:"moves,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// PlayerColor returns the side a participant plays, or false for outsiders.
func (r *Record) PlayerColor(player string) (engine.Color, bool) {
	switch player {
	case r.White:
		return engine.White, true
	case r.Black:
		return engine.Black, true
	}
	return "", false
}

// Opponent returns the other participant's identity, or "" for outsiders.
func (r *Record) Opponent(player string) string {
	if player == r.White {
		return r.Black
	}
	if player == r.Black {
		return r.White
	}
	return ""
}

// Clone returns a deep copy safe to mutate independently.
func (r *Record) Clone() *Record {
	cp := *r
	cp.Moves = append([]string(nil), r.Moves...)
	if r.State.EnPassant != nil {
		ep := *r.State.EnPassant
		cp.State.EnPassant = &ep
	}
	return &cp
}

type staticErr string

func (e staticErr) Error() string { return string(e) }

// Every error below is deterministic given (state, input): never transient,
// never retried, and a failing call leaves stored state untouched.
var (
	ErrInvalidPlayer     = staticErr("caller and opponent must differ")
	ErrGameAlreadyExists = staticErr("game id already occupied")
	ErrGameNotExist      = staticErr("game does not exist")
	ErrGameOver          = staticErr("game is already over")
	ErrNotYourTurn       = staticErr("not your turn")
	ErrNotAuthorized     = staticErr("caller is not a participant")
	ErrInvalidPosition   = staticErr("coordinate outside the board")
	ErrNoPiece           = staticErr("no piece on source cell")
	ErrWrongPieceColor   = staticErr("piece belongs to the opponent")
	ErrInvalidMove       = staticErr("move is not legal")

	// ErrConflict is the one non-rules error: two mutating calls raced on
	// the same game and the loser's transaction was aborted unapplied.
	ErrConflict = staticErr("concurrent update detected")
)
