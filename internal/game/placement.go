package game

import (
	"fmt"

	"battlefun/internal/apperrors"
)

// IsValid reports whether candidate can join the already accepted footprints:
// it must not wrap across rows, must stay on the board and must not collide.
func IsValid(candidate []int, accepted [][]int) bool {
	if len(candidate) == 0 {
		return false
	}
	for _, c := range candidate {
		if !ValidCell(c) {
			return false
		}
	}

	rows := make(map[int]struct{}, len(candidate))
	for _, c := range candidate {
		rows[c/BoardSize] = struct{}{}
	}
	if len(rows) != 1 && len(rows) != len(candidate) {
		return false
	}

	if candidate[len(candidate)-1]/BoardSize >= BoardSize {
		return false
	}

	taken := make(map[int]struct{})
	for _, fp := range accepted {
		for _, c := range fp {
			taken[c] = struct{}{}
		}
	}
	for _, c := range candidate {
		if _, ok := taken[c]; ok {
			return false
		}
	}
	return true
}

// sameRow reports whether a horizontal footprint stays in one row. IsValid
// alone admits a two-cell ship split across a row boundary, since two rows
// also equals its cell count.
func sameRow(cells []int) bool {
	for _, c := range cells[1:] {
		if c/BoardSize != cells[0]/BoardSize {
			return false
		}
	}
	return true
}

// ValidateFleet checks a manually supplied fleet: every kind exactly once,
// correct lengths, contiguous footprints and no overlaps.
func ValidateFleet(f Fleet) error {
	if len(f) != len(kinds) {
		return placementError(fmt.Sprintf("fleet must contain %d ships, got %d", len(kinds), len(f)), "")
	}
	var accepted [][]int
	for _, k := range kinds {
		cells, ok := f[k]
		if !ok {
			return placementError(fmt.Sprintf("ship %s not placed", k), k)
		}
		if len(cells) != k.Length() {
			return placementError(fmt.Sprintf("ship %s has %d cells, want %d", k, len(cells), k.Length()), k)
		}
		step := 1
		if OrientationOf(cells) {
			step = BoardSize
		}
		for i := 1; i < len(cells); i++ {
			if cells[i]-cells[i-1] != step {
				return placementError(fmt.Sprintf("ship %s is not contiguous", k), k)
			}
		}
		if !IsValid(cells, accepted) || (step == 1 && !sameRow(cells)) {
			return placementError(fmt.Sprintf("ship %s wraps, leaves the board or collides", k), k)
		}
		accepted = append(accepted, cells)
	}
	return nil
}

func placementError(msg string, kind ShipKind) error {
	md := map[string]string{}
	if kind != "" {
		md["ship"] = string(kind)
	}
	return apperrors.WithMetadata(apperrors.CodeInvalidPlacement, msg, md)
}
