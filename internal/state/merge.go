package state

import "battlefun/internal/game"

// Merge folds p into current and returns the next snapshot. current is never
// modified and may be nil. Scalars are replaced, shot logs are replaced
// wholesale (senders always ship the full running log) and ship maps are
// merged key by key.
func Merge(current *GameState, p Patch) *GameState {
	if current == nil && p.Empty() {
		return nil
	}
	next := current.Clone()
	if next == nil {
		next = &GameState{CurrentState: InProgress}
	}

	if p.GameID != nil {
		next.GameID = *p.GameID
	}
	if p.OpponentID != nil {
		next.OpponentID = *p.OpponentID
	}
	if p.CurrentState != nil {
		next.CurrentState = *p.CurrentState
	}
	if p.YourTurn != nil {
		next.YourTurn = *p.YourTurn
	}
	if p.YourShips != nil {
		if next.YourShips == nil {
			next.YourShips = make(game.Fleet, len(p.YourShips))
		}
		for k, cells := range p.YourShips {
			next.YourShips[k] = cloneSlice(cells)
		}
	}
	if p.YourShots != nil {
		next.YourShots = cloneSlice(*p.YourShots)
	}
	if p.OpponentShots != nil {
		next.OpponentShots = cloneSlice(*p.OpponentShots)
	}
	if p.DestroyedOpponentShips != nil {
		next.DestroyedOpponentShips = cloneSlice(*p.DestroyedOpponentShips)
	}
	return next
}
