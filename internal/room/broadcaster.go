package room

import "battlefun/internal/state"

// Broadcaster pushes a state patch to one connected player.
type Broadcaster interface {
	Notify(playerID string, p state.Patch)
}

type nopBroadcaster struct{}

func (nopBroadcaster) Notify(string, state.Patch) {}
