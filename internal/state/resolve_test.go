package state

import (
	"errors"
	"reflect"
	"testing"

	"battlefun/internal/apperrors"
	"battlefun/internal/game"
)

func TestDestroyedShipsCarrier(t *testing.T) {
	s := sampleState()
	got := DestroyedShips(s.YourShips, []int{4, 3, 2, 1, 0, 50})
	if !reflect.DeepEqual(got, []game.ShipKind{game.Carrier}) {
		t.Fatalf("destroyed = %v, want [carrier]", got)
	}
}

func TestTerminalLossOnlyWhenEveryShipSunk(t *testing.T) {
	s := sampleState()
	s.OpponentShots = []int{0, 1, 2, 3, 4}
	if got, err := Terminal(s); err != nil || got != InProgress {
		t.Fatalf("terminal = %s, %v; want IN_PROGRESS", got, err)
	}

	s.OpponentShots = s.YourShips.Cells()
	if got, err := Terminal(s); err != nil || got != Loss {
		t.Fatalf("terminal = %s, %v; want LOSS", got, err)
	}
}

func TestTerminalWinFromDestroyedReport(t *testing.T) {
	s := sampleState()
	s.DestroyedOpponentShips = game.Kinds()
	if got, err := Terminal(s); err != nil || got != Win {
		t.Fatalf("terminal = %s, %v; want WIN", got, err)
	}
}

func TestTerminalWinFromHitCount(t *testing.T) {
	s := sampleState()
	s.YourShots = nil
	for c := 0; c < game.FleetCells(); c++ {
		s.YourShots = append(s.YourShots, game.Shot{Cell: 80 + c%10, Hit: true})
	}
	// Only 17 distinct cells count; duplicates in the log do not.
	if got, _ := Terminal(s); got != InProgress {
		t.Fatalf("terminal = %s, want IN_PROGRESS with repeated hits", got)
	}
	s.YourShots = nil
	for c := 0; c < game.FleetCells(); c++ {
		s.YourShots = append(s.YourShots, game.Shot{Cell: c, Hit: true})
	}
	if got, _ := Terminal(s); got != Win {
		t.Fatalf("terminal = %s, want WIN", got)
	}
}

func TestTerminalBothIsIntegrityError(t *testing.T) {
	s := sampleState()
	s.DestroyedOpponentShips = game.Kinds()
	s.OpponentShots = s.YourShips.Cells()
	_, err := Terminal(s)
	if !errors.Is(err, apperrors.ErrDataIntegrity) {
		t.Fatalf("expected data integrity error, got %v", err)
	}
	if _, err := Resolve(s); !errors.Is(err, apperrors.ErrDataIntegrity) {
		t.Fatalf("resolve: expected data integrity error, got %v", err)
	}
}

func TestResolveKeepsReportedTerminal(t *testing.T) {
	s := sampleState()
	s.CurrentState = Win
	v, err := Resolve(s)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if v.Outcome != Win || v.State.CurrentState != Win {
		t.Fatalf("outcome = %s, want WIN", v.Outcome)
	}

	s.OpponentShots = s.YourShips.Cells()
	if _, err := Resolve(s); !errors.Is(err, apperrors.ErrDataIntegrity) {
		t.Fatalf("expected contradiction to be reported, got %v", err)
	}
}

func TestResolveDerivesLoss(t *testing.T) {
	s := sampleState()
	s.OpponentShots = s.YourShips.Cells()
	v, err := Resolve(s)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if v.Outcome != Loss {
		t.Fatalf("outcome = %s, want LOSS", v.Outcome)
	}
	if len(v.DestroyedShips) != len(game.Kinds()) {
		t.Fatalf("destroyed = %v, want all kinds", v.DestroyedShips)
	}
	if s.CurrentState != InProgress {
		t.Fatal("resolve mutated its input")
	}
}

func TestResolveNil(t *testing.T) {
	v, err := Resolve(nil)
	if err != nil || v.Outcome != InProgress || v.State != nil {
		t.Fatalf("resolve(nil) = %+v, %v", v, err)
	}
}

func TestCheckShot(t *testing.T) {
	s := sampleState()
	s.YourShots = nil

	if err := CheckShot(s, 13); err != nil {
		t.Fatalf("first shot rejected: %v", err)
	}
	shots := []game.Shot{{Cell: 13, Hit: false}}
	s = Merge(s, Patch{YourShots: &shots})

	// The repeat is rejected as a duplicate regardless of whose turn it is.
	for _, turn := range []bool{true, false} {
		s.YourTurn = turn
		if err := CheckShot(s, 13); !errors.Is(err, apperrors.ErrDuplicateShot) {
			t.Fatalf("turn=%v: expected duplicate shot, got %v", turn, err)
		}
	}

	s.YourTurn = false
	if err := CheckShot(s, 14); !errors.Is(err, apperrors.ErrOutOfTurn) {
		t.Fatalf("expected out of turn, got %v", err)
	}
	if err := CheckShot(s, 100); !errors.Is(err, apperrors.ErrInvalidCell) {
		t.Fatalf("expected invalid cell, got %v", err)
	}
	s.CurrentState = Loss
	if err := CheckShot(s, 14); !errors.Is(err, apperrors.ErrGameOver) {
		t.Fatalf("expected game over, got %v", err)
	}
	if err := CheckShot(nil, 14); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}
