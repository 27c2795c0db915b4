// Package state holds one player's authoritative view of a match and the
// rules for folding server patches into it.
package state

import (
	"battlefun/internal/game"
)

// Outcome is the match status from the owning player's point of view.
type Outcome string

const (
	InProgress Outcome = "IN_PROGRESS"
	Win        Outcome = "WIN"
	Loss       Outcome = "LOSS"
)

func (o Outcome) Terminal() bool {
	return o == Win || o == Loss
}

// GameState is a per-player snapshot. A nil *GameState means no fleet has
// been accepted yet.
type GameState struct {
	GameID                 string          `json:"game_id"`
	OpponentID             string          `json:"opponent_id"`
	CurrentState           Outcome         `json:"current_state"`
	YourTurn               bool            `json:"your_turn"`
	YourShips              game.Fleet      `json:"your_ships"`
	YourShots              []game.Shot     `json:"your_shots"`
	OpponentShots          []int           `json:"opponent_shots"`
	DestroyedOpponentShips []game.ShipKind `json:"destroyed_opponent_ships"`
}

// Clone returns a deep copy.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	out := *s
	out.YourShips = s.YourShips.Clone()
	out.YourShots = cloneSlice(s.YourShots)
	out.OpponentShots = cloneSlice(s.OpponentShots)
	out.DestroyedOpponentShips = cloneSlice(s.DestroyedOpponentShips)
	return &out
}

// cloneSlice copies src, keeping a nil slice nil and an empty slice empty.
func cloneSlice[T any](src []T) []T {
	if src == nil {
		return nil
	}
	out := make([]T, len(src))
	copy(out, src)
	return out
}

// Patch is a partial GameState. Nil fields are absent and leave the current
// value untouched.
type Patch struct {
	GameID                 *string          `json:"game_id,omitempty"`
	OpponentID             *string          `json:"opponent_id,omitempty"`
	CurrentState           *Outcome         `json:"current_state,omitempty"`
	YourTurn               *bool            `json:"your_turn,omitempty"`
	YourShips              game.Fleet       `json:"your_ships,omitempty"`
	YourShots              *[]game.Shot     `json:"your_shots,omitempty"`
	OpponentShots          *[]int           `json:"opponent_shots,omitempty"`
	DestroyedOpponentShips *[]game.ShipKind `json:"destroyed_opponent_ships,omitempty"`
}

// Empty reports whether the patch carries no fields.
func (p Patch) Empty() bool {
	return p.GameID == nil && p.OpponentID == nil && p.CurrentState == nil &&
		p.YourTurn == nil && p.YourShips == nil && p.YourShots == nil &&
		p.OpponentShots == nil && p.DestroyedOpponentShips == nil
}

// FullPatch converts a snapshot into a patch that sets every field.
func FullPatch(s GameState) Patch {
	c := s.Clone()
	return Patch{
		GameID:                 &c.GameID,
		OpponentID:             &c.OpponentID,
		CurrentState:           &c.CurrentState,
		YourTurn:               &c.YourTurn,
		YourShips:              c.YourShips,
		YourShots:              &c.YourShots,
		OpponentShots:          &c.OpponentShots,
		DestroyedOpponentShips: &c.DestroyedOpponentShips,
	}
}
