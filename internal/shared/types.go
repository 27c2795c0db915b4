package shared

import (
	"time"

	"battlefun/internal/game"
)

type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsBot     bool      `json:"is_bot"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchStatus is the server-side status of a match.
type MatchStatus string

const (
	MatchInProgress MatchStatus = "IN_PROGRESS"
	MatchPlayer1Win MatchStatus = "PLAYER1_WIN"
	MatchPlayer2Win MatchStatus = "PLAYER2_WIN"
)

func (s MatchStatus) Finished() bool {
	return s == MatchPlayer1Win || s == MatchPlayer2Win
}

// Side is one player's half of a match.
type Side struct {
	PlayerID string      `json:"player_id"`
	Ships    game.Fleet  `json:"ships"`
	Shots    []game.Shot `json:"shots"`
}

// Match is the authoritative record of a game between two sides.
type Match struct {
	ID          string      `json:"id"`
	Sides       [2]Side     `json:"sides"`
	Player1Turn bool        `json:"player1_turn"`
	Status      MatchStatus `json:"status"`
	VsBot       bool        `json:"vs_bot"`
	CreatedAt   time.Time   `json:"created_at"`
}

// SideOf returns the index of playerID in the match.
func (m *Match) SideOf(playerID string) (int, bool) {
	for i := range m.Sides {
		if m.Sides[i].PlayerID == playerID {
			return i, true
		}
	}
	return 0, false
}

// TurnOf reports whether side i may fire next.
func (m *Match) TurnOf(i int) bool {
	return (i == 0) == m.Player1Turn
}

// Room holds a fleet waiting for a second player to join by code.
type Room struct {
	Code      string     `json:"code"`
	HostID    string     `json:"host_id"`
	HostShips game.Fleet `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
}
