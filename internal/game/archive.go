package game

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/park285/chess-arbiter/internal/engine"
)

// Archive writes finished games to Postgres for hosts that keep a ledger of
// results. It is strictly downstream of the store: the engine never reads it.
type Archive struct {
	db *sql.DB
}

func NewArchive(databaseURL string) (*Archive, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("database url required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// SaveResult upserts a terminal game summary row.
func (a *Archive) SaveResult(ctx context.Context, rec *Record, method string) error {
	if a == nil || a.db == nil || rec == nil {
		return nil
	}
	result := resultToken(rec.State.Status)
	if result == "" {
		return fmt.Errorf("game %d is not finished", rec.ID)
	}
	movesRaw, _ := json.Marshal(rec.Moves)

	q := `INSERT INTO arbiter_games (
	    game_id, white_player, black_player,
	    result, result_method, moves, final_board,
	    halfmove_clock, fullmove_number, started_at, ended_at
	  ) VALUES (
	    $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11
	  ) ON CONFLICT (game_id) DO UPDATE SET
	    result=EXCLUDED.result,
	    result_method=EXCLUDED.result_method,
	    moves=EXCLUDED.moves,
	    final_board=EXCLUDED.final_board,
	    halfmove_clock=EXCLUDED.halfmove_clock,
	    fullmove_number=EXCLUDED.fullmove_number,
	    ended_at=EXCLUDED.ended_at`

	_, err := a.db.ExecContext(ctx, q,
		rec.ID, rec.White, rec.Black,
		result, strings.TrimSpace(method), string(movesRaw), rec.State.Board.Encode(),
		rec.State.HalfmoveClock, rec.State.FullmoveNumber, rec.CreatedAt, rec.UpdatedAt,
	)
	return err
}

func resultToken(s engine.Status) string {
	switch s {
	case engine.WhiteWon:
		return "white"
	case engine.BlackWon:
		return "black"
	case engine.Draw:
		return "draw"
	}
	return ""
}
