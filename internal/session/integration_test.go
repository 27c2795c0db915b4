package session

import (
	"context"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	httpapi "battlefun/internal/api/http"
	"battlefun/internal/api/ws"
	"battlefun/internal/auth"
	"battlefun/internal/config"
	"battlefun/internal/game"
	"battlefun/internal/room"
	"battlefun/internal/store"
)

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)
	cfg := config.Config{Weights: config.Weights{WHitNeighbor: 100, WLine: 150, WParity: 10, WCenter: 2}}
	tokens, err := auth.NewTokens("secret", time.Hour, nil)
	if err != nil {
		t.Fatalf("new tokens: %v", err)
	}
	rm := room.NewManager(store.NewMemoryStore(), cfg, 7, logger)
	hub := ws.NewHub(rm, tokens, "*", logger)
	rm.SetHub(hub)
	srv := httptest.NewServer(httpapi.NewRouter(rm, tokens, hub, cfg))
	t.Cleanup(srv.Close)
	return srv
}

func joinServer(t *testing.T, ctx context.Context, srv *httptest.Server, req *HTTPRequester, name string) *Synchronizer {
	t.Helper()
	reg, err := req.Register(ctx, name)
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	sess := NewContext(reg.PlayerID, reg.Name, reg.Token)
	s := NewSynchronizer(sess, WebSocketDialer(srv.URL), req, Options{Logger: log.New(io.Discard, "", 0)})
	if err := s.Connect(ctx); err != nil {
		t.Fatalf("connect %s: %v", name, err)
	}
	go func() { _ = s.Run(ctx) }()
	eventually(t, name+" authenticated", func() bool { return s.Phase() == AuthenticatedNoGame })
	return s
}

func TestTwoPlayersOverWebSocket(t *testing.T) {
	srv := startServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := NewHTTPRequester(srv.URL, srv.Client())

	alice := joinServer(t, ctx, srv, req, "alice")
	bob := joinServer(t, ctx, srv, req, "bob")

	opened, err := alice.PlaceShips(ctx, testFleet(), "", false)
	if err != nil {
		t.Fatalf("alice place: %v", err)
	}
	if opened.RoomCode == "" {
		t.Fatal("no room code")
	}
	if got := alice.Phase(); got != PlacingShips {
		t.Fatalf("alice phase = %s, want PLACING_SHIPS", got)
	}

	bobFleet := game.Fleet{
		game.Carrier:    {95, 96, 97, 98, 99},
		game.Battleship: {18, 28, 38, 48},
		game.Destroyer:  {1, 11, 21},
		game.Submarine:  {25, 35, 45},
		game.PatrolBoat: {29, 39},
	}
	if _, err := bob.PlaceShips(ctx, bobFleet, opened.RoomCode, false); err != nil {
		t.Fatalf("bob place: %v", err)
	}

	eventually(t, "both in progress", func() bool {
		return alice.Phase() == InProgress && bob.Phase() == InProgress
	})
	eventually(t, "alice to move", func() bool {
		snap, _ := alice.Snapshot()
		return snap != nil && snap.YourTurn
	})

	if err := alice.Shoot(ctx, 1); err != nil {
		t.Fatalf("alice shoot: %v", err)
	}
	eventually(t, "bob sees the shot", func() bool {
		snap, _ := bob.Snapshot()
		return snap != nil && len(snap.OpponentShots) == 1 && snap.YourTurn
	})
	eventually(t, "alice sees the hit", func() bool {
		snap, _ := alice.Snapshot()
		return snap != nil && len(snap.YourShots) == 1 && snap.YourShots[0].Hit && !snap.YourTurn
	})

	if err := bob.Shoot(ctx, 50); err != nil {
		t.Fatalf("bob shoot: %v", err)
	}
	eventually(t, "alice sees the miss", func() bool {
		snap, _ := alice.Snapshot()
		return snap != nil && len(snap.OpponentShots) == 1 && snap.YourTurn
	})
	_, view := alice.Snapshot()
	if len(view.DestroyedShips) != 0 || view.Outcome != "IN_PROGRESS" {
		t.Fatalf("alice view = %+v", view)
	}

	cancel()
	eventually(t, "disconnect", func() bool {
		return alice.Phase() == Disconnected && bob.Phase() == Disconnected
	})
}
