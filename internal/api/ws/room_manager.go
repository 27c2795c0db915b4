package ws

import "battlefun/internal/state"

// RoomManager hands out the snapshot a freshly authenticated connection
// starts from. WithActiveView returns false for unknown players.
type RoomManager interface {
	WithActiveView(playerID string, fn func(v state.GameState, found bool)) bool
}

// TokenVerifier resolves a bearer token to a player id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}
