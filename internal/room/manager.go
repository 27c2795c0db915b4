package room

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"battlefun/internal/apperrors"
	"battlefun/internal/config"
	"battlefun/internal/game"
	"battlefun/internal/shared"
	"battlefun/internal/state"
)

const botRestarts = 10

type Manager struct {
	mu    sync.Mutex
	store Store
	cfg   config.Config
	hub   Broadcaster
	rng   *rand.Rand
	gen   *game.Generator
	log   *log.Logger
	now   func() time.Time
}

func NewManager(s Store, cfg config.Config, seed int64, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		store: s,
		cfg:   cfg,
		hub:   nopBroadcaster{},
		rng:   rand.New(rand.NewSource(seed)),
		gen:   game.NewGenerator(seed),
		log:   logger,
		now:   time.Now,
	}
}

func (m *Manager) SetHub(hub Broadcaster) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hub == nil {
		hub = nopBroadcaster{}
	}
	m.hub = hub
}

// Register creates a player identity. Blank names get a generated one.
func (m *Manager) Register(name string) shared.Player {
	id := uuid.New()
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Anonymous_coward#%d", id.ID()%100000)
	}
	p := &shared.Player{ID: id.String(), Name: name, CreatedAt: m.now()}
	m.store.SavePlayer(p)
	return *p
}

func (m *Manager) Player(id string) (shared.Player, bool) {
	p, ok := m.store.GetPlayer(id)
	if !ok {
		return shared.Player{}, false
	}
	return *p, true
}

// PlayResult tells the caller whether a match started or a room is waiting.
type PlayResult struct {
	RoomCode string
	GameID   string
}

// Play submits a fleet. With vsBot the match starts at once against a
// generated fleet; with an empty roomCode a room is opened for a second
// player; otherwise the player joins the named room and the match starts.
// A player is in at most one live match and hosts at most one open room;
// starting a match drops the player's own open room.
func (m *Manager) Play(playerID string, ships game.Fleet, roomCode string, vsBot bool) (PlayResult, error) {
	if err := game.ValidateFleet(ships); err != nil {
		return PlayResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store.GetPlayer(playerID); !ok {
		return PlayResult{}, apperrors.WithMetadata(apperrors.CodeNotFound, "player not found",
			map[string]string{"player_id": playerID})
	}
	if g, ok := m.liveMatch(playerID); ok {
		return PlayResult{}, apperrors.WithMetadata(apperrors.CodeInvalidState, "player already in a game",
			map[string]string{"game_id": g.ID})
	}
	own, hosting := m.store.RoomOf(playerID)

	var g *shared.Match
	switch {
	case vsBot:
		bot := &shared.Player{ID: "bot-" + uuid.NewString(), Name: "Bot", IsBot: true, CreatedAt: m.now()}
		botShips, err := m.gen.GenerateWithRestarts(botRestarts)
		if err != nil {
			return PlayResult{}, err
		}
		m.store.SavePlayer(bot)
		g = m.newMatch(shared.Side{PlayerID: playerID, Ships: ships.Clone()},
			shared.Side{PlayerID: bot.ID, Ships: botShips})
		g.VsBot = true

	case roomCode == "":
		if hosting {
			return PlayResult{}, apperrors.WithMetadata(apperrors.CodeInvalidState, "room already open",
				map[string]string{"room_code": own.Code})
		}
		r := &shared.Room{Code: randCode(m.rng, 6), HostID: playerID, HostShips: ships.Clone(), CreatedAt: m.now()}
		m.store.SaveRoom(r)
		m.log.Printf("player %s opened room %s", playerID, r.Code)
		return PlayResult{RoomCode: r.Code}, nil

	default:
		r, ok := m.store.GetRoom(roomCode)
		if !ok {
			return PlayResult{}, apperrors.WithMetadata(apperrors.CodeNotFound, "room not found",
				map[string]string{"room_code": roomCode})
		}
		if r.HostID == playerID {
			return PlayResult{}, apperrors.New(apperrors.CodeRoomFull, "cannot join your own room")
		}
		if hg, busy := m.liveMatch(r.HostID); busy {
			m.store.DeleteRoom(roomCode)
			m.log.Printf("dropped room %s: host %s is in game %s", roomCode, r.HostID, hg.ID)
			return PlayResult{}, apperrors.WithMetadata(apperrors.CodeInvalidState, "room host is already in a game",
				map[string]string{"room_code": roomCode})
		}
		m.store.DeleteRoom(roomCode)
		g = m.newMatch(shared.Side{PlayerID: r.HostID, Ships: r.HostShips},
			shared.Side{PlayerID: playerID, Ships: ships.Clone()})
	}

	if hosting {
		m.store.DeleteRoom(own.Code)
		m.log.Printf("player %s left room %s", playerID, own.Code)
	}
	m.store.SaveMatch(g)
	m.log.Printf("start game %s with %s and %s", g.ID, g.Sides[0].PlayerID, g.Sides[1].PlayerID)
	m.notify(g)
	return PlayResult{RoomCode: roomCode, GameID: g.ID}, nil
}

func (m *Manager) newMatch(p1, p2 shared.Side) *shared.Match {
	return &shared.Match{
		ID:          uuid.NewString(),
		Sides:       [2]shared.Side{p1, p2},
		Player1Turn: true,
		Status:      shared.MatchInProgress,
		CreatedAt:   m.now(),
	}
}

// Shoot fires at cell on behalf of playerID. In a bot match the bot answers
// before the call returns.
func (m *Manager) Shoot(gameID, playerID string, cell int) (game.Shot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, i, err := m.matchFor(gameID, playerID)
	if err != nil {
		return game.Shot{}, err
	}
	shot, err := fire(g, i, cell)
	if err != nil {
		return game.Shot{}, err
	}
	m.log.Printf("game %s: player %s took a shot @ %d (hit=%v)", g.ID, playerID, cell, shot.Hit)

	if g.VsBot && !g.Status.Finished() && g.TurnOf(1-i) {
		m.botMove(g, 1-i)
	}
	m.store.SaveMatch(g)
	m.notify(g)
	return shot, nil
}

func (m *Manager) botMove(g *shared.Match, bi int) {
	bot, human := g.Sides[bi], g.Sides[1-bi]
	sunk := game.SunkCells(human.Ships, game.ShotSet(game.ShotCells(bot.Shots)))
	cell, err := game.ChooseShot(bot.Shots, sunk, m.cfg.Weights, m.rng)
	if err != nil {
		m.log.Printf("game %s: bot has no move: %v", g.ID, err)
		return
	}
	if _, err := fire(g, bi, cell); err != nil {
		m.log.Printf("game %s: bot move rejected: %v", g.ID, err)
	}
}

// FlipTurn forces whose turn it is. Development aid; callers gate it.
func (m *Manager) FlipTurn(playerID string, yourTurn bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.liveMatch(playerID)
	if !ok {
		return apperrors.New(apperrors.CodeNotFound, "no active game")
	}
	i, _ := g.SideOf(playerID)
	g.Player1Turn = (i == 0) == yourTurn
	m.notify(g)
	return nil
}

// Deregister forgets the player and any room it left open. A player in a
// live match must finish it first.
func (m *Manager) Deregister(playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store.GetPlayer(playerID); !ok {
		return apperrors.WithMetadata(apperrors.CodeNotFound, "player not found",
			map[string]string{"player_id": playerID})
	}
	if g, ok := m.liveMatch(playerID); ok {
		return apperrors.WithMetadata(apperrors.CodeInvalidState, "player is in a game",
			map[string]string{"game_id": g.ID})
	}
	m.store.DeletePlayer(playerID)
	m.log.Printf("player %s deregistered", playerID)
	return nil
}

// View returns the snapshot of gameID as playerID sees it.
func (m *Manager) View(gameID, playerID string) (state.GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, _, err := m.matchFor(gameID, playerID)
	if err != nil {
		return state.GameState{}, err
	}
	return View(g, playerID)
}

// ActiveView returns the snapshot of the player's unfinished match, if any.
func (m *Manager) ActiveView(playerID string) (state.GameState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeView(playerID)
}

// WithActiveView calls fn with the player's unfinished match, if any. No
// notification is sent while fn runs, so fn may register a listener and
// send the snapshot without a newer patch overtaking it. It returns false,
// without calling fn, for unknown players.
func (m *Manager) WithActiveView(playerID string, fn func(v state.GameState, found bool)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store.GetPlayer(playerID); !ok {
		return false
	}
	fn(m.activeView(playerID))
	return true
}

func (m *Manager) activeView(playerID string) (state.GameState, bool) {
	g, ok := m.liveMatch(playerID)
	if !ok {
		return state.GameState{}, false
	}
	v, err := View(g, playerID)
	return v, err == nil
}

func (m *Manager) liveMatch(playerID string) (*shared.Match, bool) {
	g, ok := m.store.ActiveMatch(playerID)
	if !ok || g.Status.Finished() {
		return nil, false
	}
	return g, true
}

func (m *Manager) matchFor(gameID, playerID string) (*shared.Match, int, error) {
	g, ok := m.store.GetMatch(gameID)
	if !ok {
		return nil, 0, apperrors.WithMetadata(apperrors.CodeNotFound, "unknown game",
			map[string]string{"game_id": gameID})
	}
	i, ok := g.SideOf(playerID)
	if !ok {
		return nil, 0, apperrors.ErrInvalidPlayer
	}
	return g, i, nil
}

// notify pushes a full-state patch to each human side of g. Callers hold
// mu, so patches leave in the order the match changed.
func (m *Manager) notify(g *shared.Match) {
	for _, s := range g.Sides {
		if p, ok := m.store.GetPlayer(s.PlayerID); ok && p.IsBot {
			continue
		}
		v, err := View(g, s.PlayerID)
		if err != nil {
			continue
		}
		m.hub.Notify(s.PlayerID, state.FullPatch(v))
	}
}
