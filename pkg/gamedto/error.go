package gamedto

// Error codes surfaced at the API boundary. Each one is deterministic given
// (stored state, input); none is transient.
const (
	CodeNotAuthorized     = "NOT_AUTHORIZED"
	CodeGameOver          = "GAME_OVER"
	CodeNotYourTurn       = "NOT_YOUR_TURN"
	CodeInvalidMove       = "INVALID_MOVE"
	CodeInvalidPosition   = "INVALID_POSITION"
	CodeNoPiece           = "NO_PIECE"
	CodeWrongPieceColor   = "WRONG_PIECE_COLOR"
	CodeGameNotExist      = "GAME_NOT_EXIST"
	CodeGameAlreadyExists = "GAME_ALREADY_EXISTS"
	CodeInvalidPlayer     = "INVALID_PLAYER"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL"
)

// DomainError is the wire form of a failed call.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

func (e DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return "game service error"
}
