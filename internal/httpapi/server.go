package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/park285/chess-arbiter/internal/engine"
	"github.com/park285/chess-arbiter/internal/game"
	"github.com/park285/chess-arbiter/internal/obslog"
	"github.com/park285/chess-arbiter/pkg/gamedto"
)

// Server exposes the lifecycle operations over JSON for the host. The caller
// identity is opaque to the engine and arrives in the X-Player-Id header; the
// server holds no game logic beyond DTO translation.
type Server struct {
	mgr  *game.Manager
	http *fasthttp.Server
}

func NewServer(mgr *game.Manager) *Server {
	s := &Server{mgr: mgr}
	s.http = &fasthttp.Server{
		Handler:            s.Handle,
		Name:               "chess-arbiter",
		MaxRequestBodySize: 1 << 16,
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown.
func (s *Server) ListenAndServe(addr string) error {
	return s.http.ListenAndServe(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.ShutdownWithContext(ctx)
}

// Handle routes a single request. Paths:
//
//	POST /games                    create a game against the body's opponent
//	GET  /games/<id>               fetch a record
//	POST /games/<id>/moves         make a move
//	POST /games/<id>/resign        resign
//	POST /games/<id>/draw-offer    offer or accept a draw
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	reqID := uuid.NewString()
	path := string(ctx.Path())
	method := string(ctx.Method())

	caller := strings.TrimSpace(string(ctx.Request.Header.Peek("X-Player-Id")))
	if caller == "" {
		writeError(ctx, fasthttp.StatusUnauthorized, gamedto.DomainError{
			Code: gamedto.CodeNotAuthorized, Message: "missing X-Player-Id header",
		})
		return
	}

	obslog.L().Debug("http_request",
		zap.String("request_id", reqID),
		zap.String("method", method),
		zap.String("path", path),
		zap.String("player", caller),
	)

	switch {
	case method == fasthttp.MethodPost && path == "/games":
		s.handleCreate(ctx, caller)
		return
	case strings.HasPrefix(path, "/games/"):
		rest := strings.TrimPrefix(path, "/games/")
		idStr, action, _ := strings.Cut(rest, "/")
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			writeError(ctx, fasthttp.StatusNotFound, gamedto.DomainError{
				Code: gamedto.CodeGameNotExist, Message: "malformed game id",
			})
			return
		}
		switch {
		case method == fasthttp.MethodGet && action == "":
			s.handleGet(ctx, id)
			return
		case method == fasthttp.MethodPost && action == "moves":
			s.handleMove(ctx, caller, id)
			return
		case method == fasthttp.MethodPost && action == "resign":
			s.handleResign(ctx, caller, id)
			return
		case method == fasthttp.MethodPost && action == "draw-offer":
			s.handleOfferDraw(ctx, caller, id)
			return
		}
	}
	ctx.SetStatusCode(fasthttp.StatusNotFound)
}

func (s *Server) handleCreate(ctx *fasthttp.RequestCtx, caller string) {
	var req gamedto.CreateGameRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, gamedto.DomainError{
			Code: gamedto.CodeInvalidPlayer, Message: "malformed request body",
		})
		return
	}
	rec, err := s.mgr.CreateGame(ctx, caller, req.Opponent)
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusCreated, gamedto.CreateGameResponse{GameID: rec.ID})
}

func (s *Server) handleGet(ctx *fasthttp.RequestCtx, id uint64) {
	rec, err := s.mgr.GetGame(ctx, id)
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, viewOf(rec))
}

func (s *Server) handleMove(ctx *fasthttp.RequestCtx, caller string, id uint64) {
	var req gamedto.MoveRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, gamedto.DomainError{
			Code: gamedto.CodeInvalidMove, Message: "malformed request body",
		})
		return
	}
	from := engine.Coord{X: req.FromX, Y: req.FromY}
	to := engine.Coord{X: req.ToX, Y: req.ToY}
	rec, err := s.mgr.MakeMove(ctx, caller, id, from, to)
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, gamedto.MoveResponse{Game: viewOf(rec)})
}

func (s *Server) handleResign(ctx *fasthttp.RequestCtx, caller string, id uint64) {
	rec, err := s.mgr.Resign(ctx, caller, id)
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, gamedto.ResignResponse{Game: viewOf(rec)})
}

func (s *Server) handleOfferDraw(ctx *fasthttp.RequestCtx, caller string, id uint64) {
	rec, accepted, err := s.mgr.OfferDraw(ctx, caller, id)
	if err != nil {
		writeDomainError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, gamedto.DrawOfferResponse{Accepted: accepted, Game: viewOf(rec)})
}

func viewOf(rec *game.Record) gamedto.GameView {
	v := gamedto.GameView{
		ID:             rec.ID,
		White:          rec.White,
		Black:          rec.Black,
		Board:          rec.State.Board.Encode(),
		Turn:           string(rec.State.Turn),
		Status:         string(rec.State.Status),
		Castling:       rec.State.Castling.String(),
		HalfmoveClock:  rec.State.HalfmoveClock,
		FullmoveNumber: rec.State.FullmoveNumber,
		Moves:          rec.Moves,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
	if ep := rec.State.EnPassant; ep != nil {
		v.EnPassant = &gamedto.CoordDTO{X: ep.X, Y: ep.Y}
	}
	return v
}

func writeDomainError(ctx *fasthttp.RequestCtx, err error) {
	status, code := fasthttp.StatusInternalServerError, gamedto.CodeInternal
	switch {
	case errors.Is(err, game.ErrGameNotExist):
		status, code = fasthttp.StatusNotFound, gamedto.CodeGameNotExist
	case errors.Is(err, game.ErrGameAlreadyExists):
		status, code = fasthttp.StatusConflict, gamedto.CodeGameAlreadyExists
	case errors.Is(err, game.ErrNotAuthorized):
		status, code = fasthttp.StatusForbidden, gamedto.CodeNotAuthorized
	case errors.Is(err, game.ErrGameOver):
		status, code = fasthttp.StatusConflict, gamedto.CodeGameOver
	case errors.Is(err, game.ErrNotYourTurn):
		status, code = fasthttp.StatusConflict, gamedto.CodeNotYourTurn
	case errors.Is(err, game.ErrInvalidPosition):
		status, code = fasthttp.StatusBadRequest, gamedto.CodeInvalidPosition
	case errors.Is(err, game.ErrNoPiece):
		status, code = fasthttp.StatusBadRequest, gamedto.CodeNoPiece
	case errors.Is(err, game.ErrWrongPieceColor):
		status, code = fasthttp.StatusBadRequest, gamedto.CodeWrongPieceColor
	case errors.Is(err, game.ErrInvalidMove):
		status, code = fasthttp.StatusBadRequest, gamedto.CodeInvalidMove
	case errors.Is(err, game.ErrInvalidPlayer):
		status, code = fasthttp.StatusBadRequest, gamedto.CodeInvalidPlayer
	case errors.Is(err, game.ErrConflict):
		status, code = fasthttp.StatusConflict, gamedto.CodeConflict
	}
	writeError(ctx, status, gamedto.DomainError{Code: code, Message: err.Error()})
}

func writeError(ctx *fasthttp.RequestCtx, status int, derr gamedto.DomainError) {
	writeJSON(ctx, status, map[string]gamedto.DomainError{"error": derr})
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json; charset=utf-8")
	ctx.SetBody(body)
}
