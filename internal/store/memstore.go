package store

import (
	"sync"

	"battlefun/internal/shared"
)

type MemoryStore struct {
	mu      sync.RWMutex
	players map[string]*shared.Player
	matches map[string]*shared.Match
	rooms   map[string]*shared.Room
	active  map[string]string // player id -> match id
	hosted  map[string]string // host id -> open room code
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		players: map[string]*shared.Player{},
		matches: map[string]*shared.Match{},
		rooms:   map[string]*shared.Room{},
		active:  map[string]string{},
		hosted:  map[string]string{},
	}
}

func (m *MemoryStore) GetPlayer(id string) (*shared.Player, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[id]
	return p, ok
}

func (m *MemoryStore) SavePlayer(p *shared.Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[p.ID] = p
}

// DeletePlayer forgets the player, its open room and its active match index.
// Finished matches stay readable by id.
func (m *MemoryStore) DeletePlayer(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.players, id)
	delete(m.active, id)
	if code, ok := m.hosted[id]; ok {
		delete(m.rooms, code)
		delete(m.hosted, id)
	}
}

func (m *MemoryStore) GetMatch(id string) (*shared.Match, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.matches[id]
	return g, ok
}

// SaveMatch stores g and marks it as the active match of both sides.
func (m *MemoryStore) SaveMatch(g *shared.Match) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches[g.ID] = g
	for _, s := range g.Sides {
		m.active[s.PlayerID] = g.ID
	}
}

func (m *MemoryStore) ActiveMatch(playerID string) (*shared.Match, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.active[playerID]
	if !ok {
		return nil, false
	}
	g, ok := m.matches[id]
	return g, ok
}

func (m *MemoryStore) GetRoom(code string) (*shared.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	return r, ok
}

// RoomOf returns the room the player opened and nobody has joined yet.
func (m *MemoryStore) RoomOf(hostID string) (*shared.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	code, ok := m.hosted[hostID]
	if !ok {
		return nil, false
	}
	r, ok := m.rooms[code]
	return r, ok
}

func (m *MemoryStore) SaveRoom(r *shared.Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.Code] = r
	m.hosted[r.HostID] = r.Code
}

func (m *MemoryStore) DeleteRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[code]; ok && m.hosted[r.HostID] == code {
		delete(m.hosted, r.HostID)
	}
	delete(m.rooms, code)
}
