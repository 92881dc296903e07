package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/park285/chess-arbiter/internal/game"
	"github.com/park285/chess-arbiter/pkg/gamedto"
)

func newTestClient(t *testing.T) *http.Client {
	t.Helper()
	srv := NewServer(game.NewManager(game.NewMemoryStore()))
	ln := fasthttputil.NewInmemoryListener()
	go func() { _ = fasthttp.Serve(ln, srv.Handle) }()
	t.Cleanup(func() { _ = ln.Close() })

	return &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return ln.Dial()
			},
		},
	}
}

func doJSON(t *testing.T, c *http.Client, method, path, player string, body any) (int, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, "http://arbiter"+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if player != "" {
		req.Header.Set("X-Player-Id", player)
	}
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, raw
}

func TestGameOverHTTP(t *testing.T) {
	c := newTestClient(t)

	status, raw := doJSON(t, c, http.MethodPost, "/games", "alice", gamedto.CreateGameRequest{Opponent: "bob"})
	if status != http.StatusCreated {
		t.Fatalf("create: status %d body %s", status, raw)
	}
	var created gamedto.CreateGameResponse
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.GameID == 0 {
		t.Fatalf("expected a game id")
	}
	base := fmt.Sprintf("/games/%d", created.GameID)

	status, raw = doJSON(t, c, http.MethodPost, base+"/moves", "alice",
		gamedto.MoveRequest{FromX: 4, FromY: 6, ToX: 4, ToY: 4})
	if status != http.StatusOK {
		t.Fatalf("move: status %d body %s", status, raw)
	}
	var moved gamedto.MoveResponse
	if err := json.Unmarshal(raw, &moved); err != nil {
		t.Fatalf("decode move response: %v", err)
	}
	if moved.Game.Turn != "black" || len(moved.Game.Board) != 64 {
		t.Fatalf("unexpected move response: %+v", moved.Game)
	}
	if moved.Game.EnPassant == nil || moved.Game.EnPassant.X != 4 || moved.Game.EnPassant.Y != 5 {
		t.Fatalf("expected en-passant target (4,5), got %+v", moved.Game.EnPassant)
	}

	status, raw = doJSON(t, c, http.MethodGet, base, "anyone", nil)
	if status != http.StatusOK {
		t.Fatalf("get: status %d body %s", status, raw)
	}

	status, raw = doJSON(t, c, http.MethodPost, base+"/resign", "bob", nil)
	if status != http.StatusOK {
		t.Fatalf("resign: status %d body %s", status, raw)
	}
	var resigned gamedto.ResignResponse
	if err := json.Unmarshal(raw, &resigned); err != nil {
		t.Fatalf("decode resign response: %v", err)
	}
	if resigned.Game.Status != "WHITE_WON" {
		t.Fatalf("black resigning must yield WHITE_WON, got %s", resigned.Game.Status)
	}
}

func TestHTTPErrorCodes(t *testing.T) {
	c := newTestClient(t)

	status, raw := doJSON(t, c, http.MethodPost, "/games", "", gamedto.CreateGameRequest{Opponent: "bob"})
	if status != http.StatusUnauthorized {
		t.Fatalf("missing identity: status %d body %s", status, raw)
	}

	status, raw = doJSON(t, c, http.MethodGet, "/games/42", "alice", nil)
	if status != http.StatusNotFound {
		t.Fatalf("unknown game: status %d body %s", status, raw)
	}
	var wrapper struct {
		Error gamedto.DomainError `json:"error"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if wrapper.Error.Code != gamedto.CodeGameNotExist {
		t.Fatalf("expected code %s, got %s", gamedto.CodeGameNotExist, wrapper.Error.Code)
	}

	status, raw = doJSON(t, c, http.MethodPost, "/games", "alice", gamedto.CreateGameRequest{Opponent: "alice"})
	if status != http.StatusBadRequest {
		t.Fatalf("self-play: status %d body %s", status, raw)
	}

	status, raw = doJSON(t, c, http.MethodPost, "/games", "alice", gamedto.CreateGameRequest{Opponent: "bob"})
	if status != http.StatusCreated {
		t.Fatalf("create: status %d body %s", status, raw)
	}
	var created gamedto.CreateGameResponse
	_ = json.Unmarshal(raw, &created)
	base := fmt.Sprintf("/games/%d", created.GameID)

	status, raw = doJSON(t, c, http.MethodPost, base+"/moves", "bob",
		gamedto.MoveRequest{FromX: 4, FromY: 1, ToX: 4, ToY: 3})
	if status != http.StatusConflict {
		t.Fatalf("out of turn: status %d body %s", status, raw)
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if wrapper.Error.Code != gamedto.CodeNotYourTurn {
		t.Fatalf("expected code %s, got %s", gamedto.CodeNotYourTurn, wrapper.Error.Code)
	}

	status, raw = doJSON(t, c, http.MethodPost, base+"/moves", "alice",
		gamedto.MoveRequest{FromX: 0, FromY: 6, ToX: 7, ToY: 3})
	if status != http.StatusBadRequest {
		t.Fatalf("illegal move: status %d body %s", status, raw)
	}
}
