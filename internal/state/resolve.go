package state

import (
	"fmt"

	"battlefun/internal/apperrors"
	"battlefun/internal/game"
)

// View is a snapshot plus the fields derived from it.
type View struct {
	State *GameState
	// DestroyedShips are this player's ships fully covered by opponent shots.
	DestroyedShips []game.ShipKind
	Outcome        Outcome
}

// DestroyedShips lists the kinds whose footprint lies entirely in incomingShots.
func DestroyedShips(ships game.Fleet, incomingShots []int) []game.ShipKind {
	return game.Destroyed(ships, game.ShotSet(incomingShots))
}

// opponentSunk infers from this side's shots alone whether the opponent's
// fleet is gone: either every kind is reported destroyed or the distinct hits
// cover a whole fleet's worth of cells.
func opponentSunk(s *GameState) bool {
	destroyed := make(map[game.ShipKind]bool, len(s.DestroyedOpponentShips))
	for _, k := range s.DestroyedOpponentShips {
		destroyed[k] = true
	}
	all := true
	for _, k := range game.Kinds() {
		if !destroyed[k] {
			all = false
			break
		}
	}
	return all || len(game.HitCells(s.YourShots)) >= game.FleetCells()
}

// Terminal derives the outcome from shots alone. Both fleets sunk at once is
// a data integrity violation.
func Terminal(s *GameState) (Outcome, error) {
	if s == nil {
		return InProgress, nil
	}
	win := opponentSunk(s)
	loss := game.Sunk(s.YourShips, game.ShotSet(s.OpponentShots))
	switch {
	case win && loss:
		return "", apperrors.WithMetadata(apperrors.CodeDataIntegrity,
			"snapshot derives both WIN and LOSS",
			map[string]string{"game_id": s.GameID})
	case win:
		return Win, nil
	case loss:
		return Loss, nil
	}
	return InProgress, nil
}

// Resolve recomputes the derived view. A terminal status reported by the
// server is kept when shots alone cannot prove it; a contradiction between
// the reported and derived outcome is a data integrity violation.
func Resolve(s *GameState) (View, error) {
	if s == nil {
		return View{Outcome: InProgress}, nil
	}
	derived, err := Terminal(s)
	if err != nil {
		return View{}, err
	}
	outcome := derived
	reported := s.CurrentState
	if reported.Terminal() {
		if derived.Terminal() && derived != reported {
			return View{}, apperrors.WithMetadata(apperrors.CodeDataIntegrity,
				fmt.Sprintf("server reports %s but shots derive %s", reported, derived),
				map[string]string{"game_id": s.GameID})
		}
		outcome = reported
	}

	next := s.Clone()
	next.CurrentState = outcome
	return View{
		State:          next,
		DestroyedShips: DestroyedShips(s.YourShips, s.OpponentShots),
		Outcome:        outcome,
	}, nil
}

// CheckShot validates a shot request against this side's snapshot without
// mutating it. A repeated cell is rejected before turn order is considered.
func CheckShot(s *GameState, cell int) error {
	if !game.ValidCell(cell) {
		return apperrors.WithMetadata(apperrors.CodeInvalidCell,
			fmt.Sprintf("cell %d outside board", cell),
			map[string]string{"cell": fmt.Sprint(cell)})
	}
	if s == nil {
		return apperrors.New(apperrors.CodeInvalidState, "no game in progress")
	}
	if s.CurrentState.Terminal() {
		return apperrors.ErrGameOver
	}
	for _, shot := range s.YourShots {
		if shot.Cell == cell {
			return apperrors.WithMetadata(apperrors.CodeDuplicateShot,
				fmt.Sprintf("cell %d already targeted", cell),
				map[string]string{"cell": fmt.Sprint(cell)})
		}
	}
	if !s.YourTurn {
		return apperrors.ErrOutOfTurn
	}
	return nil
}
