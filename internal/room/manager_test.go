package room

import (
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"battlefun/internal/apperrors"
	"battlefun/internal/config"
	"battlefun/internal/game"
	"battlefun/internal/shared"
	"battlefun/internal/state"
	"battlefun/internal/store"
)

type recorder struct {
	mu      sync.Mutex
	patches map[string][]state.Patch
}

func (r *recorder) Notify(playerID string, p state.Patch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.patches == nil {
		r.patches = map[string][]state.Patch{}
	}
	r.patches[playerID] = append(r.patches[playerID], p)
}

func (r *recorder) last(playerID string) *state.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	var s *state.GameState
	for _, p := range r.patches[playerID] {
		s = state.Merge(s, p)
	}
	return s
}

func fleetA() game.Fleet {
	return game.Fleet{
		game.Carrier:    {0, 1, 2, 3, 4},
		game.Battleship: {12, 13, 14, 15},
		game.Destroyer:  {23, 33, 43},
		game.Submarine:  {77, 78, 79},
		game.PatrolBoat: {55, 65},
	}
}

func fleetB() game.Fleet {
	return game.Fleet{
		game.Carrier:    {95, 96, 97, 98, 99},
		game.Battleship: {18, 28, 38, 48},
		game.Destroyer:  {1, 11, 21},
		game.Submarine:  {25, 35, 45},
		game.PatrolBoat: {29, 39},
	}
}

func newTestManager() (*Manager, *recorder) {
	m := NewManager(store.NewMemoryStore(), config.Config{Weights: config.Weights{WHitNeighbor: 100, WLine: 150, WParity: 10, WCenter: 2}}, 1, log.New(io.Discard, "", 0))
	rec := &recorder{}
	m.SetHub(rec)
	return m, rec
}

func startMatch(t *testing.T, m *Manager) (string, string, string) {
	t.Helper()
	a := m.Register("alice")
	b := m.Register("bob")
	res, err := m.Play(a.ID, fleetA(), "", false)
	if err != nil {
		t.Fatalf("open room: %v", err)
	}
	if res.RoomCode == "" || res.GameID != "" {
		t.Fatalf("unexpected play result %+v", res)
	}
	res, err = m.Play(b.ID, fleetB(), res.RoomCode, false)
	if err != nil {
		t.Fatalf("join room: %v", err)
	}
	if res.GameID == "" {
		t.Fatal("expected game id after join")
	}
	return res.GameID, a.ID, b.ID
}

// playToWin lets a sink every ship of fleetB while b fires into open water.
func playToWin(t *testing.T, m *Manager, gameID, a, b string) {
	t.Helper()
	targets := fleetB().Cells()
	water := []int{50, 51, 52, 53, 54, 56, 57, 58, 59, 60, 61, 62, 63, 64, 66, 67, 68}
	for i, cell := range targets {
		if _, err := m.Shoot(gameID, a, cell); err != nil {
			t.Fatalf("shot %d at %d: %v", i, cell, err)
		}
		if i == len(targets)-1 {
			break
		}
		if _, err := m.Shoot(gameID, b, water[i]); err != nil {
			t.Fatalf("reply %d at %d: %v", i, water[i], err)
		}
	}
}

func TestPlayPairsByRoomCode(t *testing.T) {
	m, rec := newTestManager()
	gameID, a, b := startMatch(t, m)

	sa, sb := rec.last(a), rec.last(b)
	if sa == nil || sb == nil {
		t.Fatal("both players should receive an initial snapshot")
	}
	if sa.GameID != gameID || sa.OpponentID != b || sb.OpponentID != a {
		t.Fatalf("unexpected identities: %+v / %+v", sa, sb)
	}
	if !sa.YourTurn || sb.YourTurn {
		t.Fatal("room host should move first")
	}
	if len(sb.YourShips) != 5 || sb.YourShips[game.Carrier][0] != 95 {
		t.Fatalf("joiner ships not projected: %v", sb.YourShips)
	}
}

func TestPlayErrors(t *testing.T) {
	m, _ := newTestManager()
	a := m.Register("alice")

	bad := fleetA()
	delete(bad, game.Carrier)
	if _, err := m.Play(a.ID, bad, "", false); !errors.Is(err, apperrors.ErrInvalidPlacement) {
		t.Fatalf("expected invalid placement, got %v", err)
	}
	if _, err := m.Play("nobody", fleetA(), "", false); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := m.Play(a.ID, fleetA(), "NOPE42", false); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected room not found, got %v", err)
	}
	res, _ := m.Play(a.ID, fleetA(), "", false)
	if _, err := m.Play(a.ID, fleetA(), res.RoomCode, false); !errors.Is(err, apperrors.ErrRoomFull) {
		t.Fatalf("expected own room rejection, got %v", err)
	}
}

func TestShootLegalityAndTurns(t *testing.T) {
	m, rec := newTestManager()
	gameID, a, b := startMatch(t, m)

	if _, err := m.Shoot(gameID, b, 50); !errors.Is(err, apperrors.ErrOutOfTurn) {
		t.Fatalf("expected out of turn, got %v", err)
	}
	shot, err := m.Shoot(gameID, a, 13)
	if err != nil {
		t.Fatalf("shoot: %v", err)
	}
	if shot.Hit {
		t.Fatal("13 is water on fleet B")
	}
	sa, sb := rec.last(a), rec.last(b)
	if sa.YourTurn || !sb.YourTurn {
		t.Fatal("turn did not flip for both sides")
	}
	if len(sb.OpponentShots) != 1 || sb.OpponentShots[0] != 13 {
		t.Fatalf("opponent shots = %v, want [13]", sb.OpponentShots)
	}

	if _, err := m.Shoot(gameID, b, 55); err != nil {
		t.Fatalf("shoot: %v", err)
	}
	if _, err := m.Shoot(gameID, a, 13); !errors.Is(err, apperrors.ErrDuplicateShot) {
		t.Fatalf("expected duplicate shot, got %v", err)
	}
	if _, err := m.Shoot(gameID, a, 100); !errors.Is(err, apperrors.ErrInvalidCell) {
		t.Fatalf("expected invalid cell, got %v", err)
	}
	if _, err := m.Shoot(gameID, "intruder", 3); !errors.Is(err, apperrors.ErrInvalidPlayer) {
		t.Fatalf("expected invalid player, got %v", err)
	}
	if _, err := m.Shoot("missing", a, 3); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestShootUntilWin(t *testing.T) {
	m, rec := newTestManager()
	gameID, a, b := startMatch(t, m)
	playToWin(t, m, gameID, a, b)

	sa, sb := rec.last(a), rec.last(b)
	if sa.CurrentState != state.Win || sb.CurrentState != state.Loss {
		t.Fatalf("states = %s / %s, want WIN / LOSS", sa.CurrentState, sb.CurrentState)
	}
	if len(sa.DestroyedOpponentShips) != 5 {
		t.Fatalf("destroyed = %v, want all five", sa.DestroyedOpponentShips)
	}
	if _, err := m.Shoot(gameID, b, 90); !errors.Is(err, apperrors.ErrGameOver) {
		t.Fatalf("expected game over, got %v", err)
	}
	for _, side := range []*state.GameState{sa, sb} {
		if _, err := state.Resolve(side); err != nil {
			t.Fatalf("resolve final snapshot: %v", err)
		}
	}
}

func TestBotAnswersShot(t *testing.T) {
	m, rec := newTestManager()
	a := m.Register("alice")
	res, err := m.Play(a.ID, fleetA(), "", true)
	if err != nil {
		t.Fatalf("play vs bot: %v", err)
	}
	if res.GameID == "" {
		t.Fatal("bot match should start at once")
	}
	if _, err := m.Shoot(res.GameID, a.ID, 0); err != nil {
		t.Fatalf("shoot: %v", err)
	}
	s := rec.last(a.ID)
	if !s.YourTurn {
		t.Fatal("bot should have answered and handed the turn back")
	}
	if len(s.OpponentShots) != 1 {
		t.Fatalf("bot shots = %v, want one", s.OpponentShots)
	}
}

func TestFlipTurn(t *testing.T) {
	m, rec := newTestManager()
	gameID, a, b := startMatch(t, m)
	if err := m.FlipTurn(b, true); err != nil {
		t.Fatalf("flip: %v", err)
	}
	if !rec.last(b).YourTurn || rec.last(a).YourTurn {
		t.Fatal("turn not flipped")
	}
	if _, err := m.Shoot(gameID, b, 0); err != nil {
		t.Fatalf("shoot after flip: %v", err)
	}
	if err := m.FlipTurn("nobody", true); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPlayWhileInGame(t *testing.T) {
	m, _ := newTestManager()
	_, a, _ := startMatch(t, m)
	if _, err := m.Play(a, fleetA(), "", true); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	if _, ok := m.ActiveView(a); !ok {
		t.Fatal("expected an active view")
	}
}

func TestPlaySecondRoomRejected(t *testing.T) {
	m, _ := newTestManager()
	a := m.Register("alice")
	res, err := m.Play(a.ID, fleetA(), "", false)
	if err != nil {
		t.Fatalf("open room: %v", err)
	}
	if _, err := m.Play(a.ID, fleetA(), "", false); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("second room: expected invalid state, got %v", err)
	}

	b := m.Register("bob")
	joined, err := m.Play(b.ID, fleetB(), res.RoomCode, false)
	if err != nil {
		t.Fatalf("join first room: %v", err)
	}
	if joined.GameID == "" {
		t.Fatal("expected a game from the first room")
	}
}

func TestBotMatchClosesOpenRoom(t *testing.T) {
	m, rec := newTestManager()
	a := m.Register("alice")
	b := m.Register("bob")
	res, err := m.Play(a.ID, fleetA(), "", false)
	if err != nil {
		t.Fatalf("open room: %v", err)
	}
	botGame, err := m.Play(a.ID, fleetA(), "", true)
	if err != nil {
		t.Fatalf("play vs bot: %v", err)
	}

	if _, err := m.Play(b.ID, fleetB(), res.RoomCode, false); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("join abandoned room: expected not found, got %v", err)
	}
	v, ok := m.ActiveView(a.ID)
	if !ok || v.GameID != botGame.GameID {
		t.Fatalf("alice active game = %q (%v), want bot game %q", v.GameID, ok, botGame.GameID)
	}
	if s := rec.last(b.ID); s != nil {
		t.Fatalf("bob received a snapshot: %+v", s)
	}
}

func TestJoinRoomOfBusyHost(t *testing.T) {
	st := store.NewMemoryStore()
	m := NewManager(st, config.Config{}, 1, log.New(io.Discard, "", 0))
	rec := &recorder{}
	m.SetHub(rec)

	gameID, a, b := startMatch(t, m)
	// a room left behind by a host who is already playing
	st.SaveRoom(&shared.Room{Code: "STALE1", HostID: a, HostShips: fleetA(), CreatedAt: time.Now()})

	c := m.Register("carol")
	if _, err := m.Play(c.ID, fleetB(), "STALE1", false); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("join busy host: expected invalid state, got %v", err)
	}
	if _, ok := st.GetRoom("STALE1"); ok {
		t.Fatal("stale room should be deleted")
	}
	if v, ok := m.ActiveView(a); !ok || v.GameID != gameID || v.OpponentID != b {
		t.Fatalf("host match changed: %+v (%v)", v, ok)
	}
	if _, ok := m.ActiveView(c.ID); ok {
		t.Fatal("joiner should not be in a game")
	}
}

func TestFinishedMatchIsNotActive(t *testing.T) {
	m, _ := newTestManager()
	gameID, a, b := startMatch(t, m)
	playToWin(t, m, gameID, a, b)

	for _, id := range []string{a, b} {
		if v, ok := m.ActiveView(id); ok {
			t.Fatalf("%s still has active view %+v", id, v)
		}
		called := false
		if !m.WithActiveView(id, func(_ state.GameState, found bool) { called = !found }) || !called {
			t.Fatalf("%s: WithActiveView should report no game", id)
		}
	}
	if err := m.FlipTurn(a, true); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("flip after game over: expected not found, got %v", err)
	}
	res, err := m.Play(a, fleetA(), "", true)
	if err != nil {
		t.Fatalf("play after game over: %v", err)
	}
	if res.GameID == "" || res.GameID == gameID {
		t.Fatalf("expected a new game, got %+v", res)
	}
	if v, err := m.View(gameID, b); err != nil || v.CurrentState != state.Loss {
		t.Fatalf("finished game view = %+v, %v", v, err)
	}
}

func TestNotificationsStayOrdered(t *testing.T) {
	m, rec := newTestManager()
	a := m.Register("alice")
	res, err := m.Play(a.ID, fleetA(), "", true)
	if err != nil {
		t.Fatalf("play vs bot: %v", err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			m.WithActiveView(a.ID, func(v state.GameState, found bool) {
				if found {
					rec.Notify(a.ID, state.FullPatch(v))
				}
			})
		}
	}()

	for cell := 0; cell < game.BoardSize*game.BoardSize; cell++ {
		if _, err := m.Shoot(res.GameID, a.ID, cell); err != nil {
			if errors.Is(err, apperrors.ErrGameOver) {
				break
			}
			t.Fatalf("shoot %d: %v", cell, err)
		}
	}
	close(done)
	wg.Wait()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	prev := -1
	for i, p := range rec.patches[a.ID] {
		s := state.Merge(nil, p)
		if len(s.YourShots) < prev {
			t.Fatalf("patch %d carries %d shots after %d", i, len(s.YourShots), prev)
		}
		prev = len(s.YourShots)
	}
	if prev < 1 {
		t.Fatal("no shots recorded")
	}
}

func TestDeregister(t *testing.T) {
	m, _ := newTestManager()
	gameID, a, b := startMatch(t, m)
	if err := m.Deregister(a); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("deregister mid-game: expected invalid state, got %v", err)
	}
	playToWin(t, m, gameID, a, b)
	if err := m.Deregister(a); err != nil {
		t.Fatalf("deregister: %v", err)
	}
	if _, ok := m.Player(a); ok {
		t.Fatal("player still registered")
	}
	if err := m.Deregister(a); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("second deregister: expected not found, got %v", err)
	}
	if _, err := m.Play(a, fleetA(), "", true); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("play after deregister: expected not found, got %v", err)
	}
	if m.WithActiveView(a, func(state.GameState, bool) {}) {
		t.Fatal("WithActiveView should reject a deregistered player")
	}

	c := m.Register("carol")
	res, err := m.Play(c.ID, fleetA(), "", false)
	if err != nil {
		t.Fatalf("open room: %v", err)
	}
	if err := m.Deregister(c.ID); err != nil {
		t.Fatalf("deregister host: %v", err)
	}
	if _, err := m.Play(b, fleetB(), res.RoomCode, false); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("join room of deregistered host: expected not found, got %v", err)
	}
}
