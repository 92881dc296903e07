package gamedto

import "time"

// CoordDTO is a board coordinate on the wire; x and y each lie in [0,7].
type CoordDTO struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// GameView is the full external representation of a game record. The board
// is exactly 64 characters, rank-major ("PNBRQK"/"pnbrqk"/space), castling a
// subset of "KQkq" in canonical order.
type GameView struct {
	ID             uint64    `json:"id"`
	White          string    `json:"white"`
	Black          string    `json:"black"`
	Board          string    `json:"board"`
	Turn           string    `json:"turn"`
	Status         string    `json:"status"`
	Castling       string    `json:"castling"`
	EnPassant      *CoordDTO `json:"en_passant,omitempty"`
	HalfmoveClock  uint32    `json:"halfmove_clock"`
	FullmoveNumber uint32    `json:"fullmove_number"`
	Moves          []string  `json:"moves,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateGameRequest struct {
	Opponent string `json:"opponent"`
}

type CreateGameResponse struct {
	GameID uint64 `json:"game_id"`
}

type MoveRequest struct {
	FromX int `json:"from_x"`
	FromY int `json:"from_y"`
	ToX   int `json:"to_x"`
	ToY   int `json:"to_y"`
}

type MoveResponse struct {
	Game GameView `json:"game"`
}

type ResignResponse struct {
	Game GameView `json:"game"`
}

type DrawOfferResponse struct {
	// Accepted is true when the opponent had a pending offer and the game
	// was drawn; false when this call recorded a new pending offer.
	Accepted bool     `json:"accepted"`
	Game     GameView `json:"game"`
}
