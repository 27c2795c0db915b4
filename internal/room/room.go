package room

import (
	"math/rand"

	"battlefun/internal/apperrors"
	"battlefun/internal/game"
	"battlefun/internal/shared"
	"battlefun/internal/state"
)

type Store interface {
	GetPlayer(id string) (*shared.Player, bool)
	SavePlayer(p *shared.Player)
	DeletePlayer(id string)
	GetMatch(id string) (*shared.Match, bool)
	SaveMatch(g *shared.Match)
	ActiveMatch(playerID string) (*shared.Match, bool)
	GetRoom(code string) (*shared.Room, bool)
	RoomOf(hostID string) (*shared.Room, bool)
	SaveRoom(r *shared.Room)
	DeleteRoom(code string)
}

// View projects a match onto one side, the way that player sees it.
func View(g *shared.Match, playerID string) (state.GameState, error) {
	i, ok := g.SideOf(playerID)
	if !ok {
		return state.GameState{}, apperrors.ErrInvalidPlayer
	}
	me, opp := g.Sides[i], g.Sides[1-i]

	outcome := state.InProgress
	switch g.Status {
	case shared.MatchPlayer1Win:
		outcome = state.Loss
		if i == 0 {
			outcome = state.Win
		}
	case shared.MatchPlayer2Win:
		outcome = state.Loss
		if i == 1 {
			outcome = state.Win
		}
	}

	yourShots := append([]game.Shot{}, me.Shots...)
	oppShots := game.ShotCells(opp.Shots)
	return state.GameState{
		GameID:                 g.ID,
		OpponentID:             opp.PlayerID,
		CurrentState:           outcome,
		YourTurn:               g.TurnOf(i),
		YourShips:              me.Ships.Clone(),
		YourShots:              yourShots,
		OpponentShots:          oppShots,
		DestroyedOpponentShips: game.Destroyed(opp.Ships, game.ShotSet(game.ShotCells(me.Shots))),
	}, nil
}

// fire applies one shot by side i after checking legality. A repeated cell
// is rejected before turn order.
func fire(g *shared.Match, i, cell int) (game.Shot, error) {
	if !game.ValidCell(cell) {
		return game.Shot{}, apperrors.ErrInvalidCell
	}
	if g.Status.Finished() {
		return game.Shot{}, apperrors.ErrGameOver
	}
	me, opp := &g.Sides[i], &g.Sides[1-i]
	for _, s := range me.Shots {
		if s.Cell == cell {
			return game.Shot{}, apperrors.ErrDuplicateShot
		}
	}
	if !g.TurnOf(i) {
		return game.Shot{}, apperrors.ErrOutOfTurn
	}

	shot := game.FireAt(opp.Ships, cell)
	me.Shots = append(me.Shots, shot)
	if game.Sunk(opp.Ships, game.ShotSet(game.ShotCells(me.Shots))) {
		if i == 0 {
			g.Status = shared.MatchPlayer1Win
		} else {
			g.Status = shared.MatchPlayer2Win
		}
		return shot, nil
	}
	g.Player1Turn = !g.Player1Turn
	return shot, nil
}

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randCode(r *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[r.Intn(len(letters))]
	}
	return string(b)
}
