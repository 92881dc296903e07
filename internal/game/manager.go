package game

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/park285/chess-arbiter/internal/engine"
	"github.com/park285/chess-arbiter/internal/obslog"
)

// Manager orchestrates the rules engine against the store. Every mutating
// operation is a single atomic read-modify-write: either a fully consistent
// successor record commits, or the prior record survives untouched and the
// caller gets one of the deterministic errors from types.go.
type Manager struct {
	store   Store
	archive *Archive
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// AttachArchive wires an optional database archive for finished games.
func (m *Manager) AttachArchive(a *Archive) {
	if m != nil {
		m.archive = a
	}
}

// CreateGame allocates the next game id and stores the standard initial
// position with the caller as White and the opponent as Black.
func (m *Manager) CreateGame(ctx context.Context, caller, opponent string) (*Record, error) {
	caller = strings.TrimSpace(caller)
	opponent = strings.TrimSpace(opponent)
	if caller == "" || opponent == "" || caller == opponent {
		return nil, ErrInvalidPlayer
	}

	id, err := m.store.AllocateID(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	rec := &Record{
		ID:        id,
		White:     caller,
		Black:     opponent,
		State:     engine.NewState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Create(ctx, rec); err != nil {
		return nil, err
	}
	obslog.L().Info("game_create",
		zap.Uint64("game_id", rec.ID),
		zap.String("white", rec.White),
		zap.String("black", rec.Black),
	)
	return rec, nil
}

// GetGame loads a committed record.
func (m *Manager) GetGame(ctx context.Context, id uint64) (*Record, error) {
	return m.store.Get(ctx, id)
}

// MakeMove validates and applies a move for the caller. Precondition failures
// surface in a fixed order: missing game, finished game, turn ownership,
// bounds, source occupancy, source color, then move legality.
func (m *Manager) MakeMove(ctx context.Context, caller string, id uint64, from, to engine.Coord) (*Record, error) {
	rec, err := m.store.Update(ctx, id, func(rec *Record, _ map[string]struct{}) (OfferOps, error) {
		if rec.State.Status != engine.InProgress {
			return OfferOps{}, ErrGameOver
		}
		color, ok := rec.PlayerColor(caller)
		if !ok || color != rec.State.Turn {
			return OfferOps{}, ErrNotYourTurn
		}
		if !from.InBounds() || !to.InBounds() {
			return OfferOps{}, ErrInvalidPosition
		}
		piece := rec.State.Board.PieceAt(from)
		if piece.IsEmpty() {
			return OfferOps{}, ErrNoPiece
		}
		if piece.Color != rec.State.Turn {
			return OfferOps{}, ErrWrongPieceColor
		}
		dest := rec.State.Board.PieceAt(to)
		if !dest.IsEmpty() && dest.Color == piece.Color {
			return OfferOps{}, ErrInvalidMove
		}
		if !engine.IsLegalMove(rec.State.Board, from, to, piece, rec.State.Castling, rec.State.EnPassant) {
			return OfferOps{}, ErrInvalidMove
		}

		rec.State = engine.Apply(rec.State, from, to)
		rec.Moves = append(rec.Moves, engine.CoordNotation(from, to))
		rec.UpdatedAt = time.Now().UTC()
		return OfferOps{}, nil
	})
	if err != nil {
		return nil, err
	}

	obslog.L().Info("game_move",
		zap.Uint64("game_id", rec.ID),
		zap.String("player", caller),
		zap.String("move", rec.Moves[len(rec.Moves)-1]),
		zap.String("turn", string(rec.State.Turn)),
		zap.String("status", string(rec.State.Status)),
	)
	switch rec.State.Status {
	case engine.WhiteWon, engine.BlackWon:
		m.archiveFinal(ctx, rec, "king_capture")
	case engine.Draw:
		m.archiveFinal(ctx, rec, "fifty_move")
	}
	return rec, nil
}

// Resign ends the game with the other participant winning.
func (m *Manager) Resign(ctx context.Context, caller string, id uint64) (*Record, error) {
	rec, err := m.store.Update(ctx, id, func(rec *Record, _ map[string]struct{}) (OfferOps, error) {
		if rec.State.Status != engine.InProgress {
			return OfferOps{}, ErrGameOver
		}
		color, ok := rec.PlayerColor(caller)
		if !ok {
			return OfferOps{}, ErrNotAuthorized
		}
		if color == engine.White {
			rec.State.Status = engine.BlackWon
		} else {
			rec.State.Status = engine.WhiteWon
		}
		rec.UpdatedAt = time.Now().UTC()
		return OfferOps{}, nil
	})
	if err != nil {
		return nil, err
	}

	obslog.L().Info("game_resign",
		zap.Uint64("game_id", rec.ID),
		zap.String("resigner", caller),
		zap.String("status", string(rec.State.Status)),
	)
	m.archiveFinal(ctx, rec, "resignation")
	return rec, nil
}

// OfferDraw records a pending offer, or accepts immediately when the
// opponent already has one pending: the game becomes a draw and every offer
// for it is cleared in the same transaction. accepted reports which happened.
func (m *Manager) OfferDraw(ctx context.Context, caller string, id uint64) (rec *Record, accepted bool, err error) {
	rec, err = m.store.Update(ctx, id, func(rec *Record, offers map[string]struct{}) (OfferOps, error) {
		if rec.State.Status != engine.InProgress {
			return OfferOps{}, ErrGameOver
		}
		if _, ok := rec.PlayerColor(caller); !ok {
			return OfferOps{}, ErrNotAuthorized
		}
		if _, pending := offers[rec.Opponent(caller)]; pending {
			rec.State.Status = engine.Draw
			rec.UpdatedAt = time.Now().UTC()
			accepted = true
			return OfferOps{ClearOffers: true}, nil
		}
		return OfferOps{AddOffer: caller}, nil
	})
	if err != nil {
		return nil, false, err
	}

	obslog.L().Info("draw_offer",
		zap.Uint64("game_id", rec.ID),
		zap.String("player", caller),
		zap.Bool("accepted", accepted),
	)
	if accepted {
		m.archiveFinal(ctx, rec, "agreement")
	}
	return rec, accepted, nil
}

// archiveFinal persists a terminal record best-effort; archive failures are
// logged, never surfaced, so the committed game state stays authoritative.
func (m *Manager) archiveFinal(ctx context.Context, rec *Record, method string) {
	if m.archive == nil {
		return
	}
	if err := m.archive.SaveResult(ctx, rec, method); err != nil {
		obslog.L().Error("game_archive_error",
			zap.Uint64("game_id", rec.ID),
			zap.String("method", method),
			zap.Error(err),
		)
		return
	}
	obslog.L().Info("game_archive",
		zap.Uint64("game_id", rec.ID),
		zap.String("method", method),
		zap.String("status", string(rec.State.Status)),
	)
}
