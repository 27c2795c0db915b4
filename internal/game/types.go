package game

import "sort"

const (
	BoardSize = 10
	CellCount = BoardSize * BoardSize
)

// ShipKind names one of the five ships of a fleet.
type ShipKind string

const (
	Carrier    ShipKind = "carrier"
	Battleship ShipKind = "battleship"
	Destroyer  ShipKind = "destroyer"
	Submarine  ShipKind = "submarine"
	PatrolBoat ShipKind = "patrol_boat"
)

var kinds = []ShipKind{Carrier, Battleship, Destroyer, Submarine, PatrolBoat}

// Kinds returns the ship kinds in their fixed placement order.
func Kinds() []ShipKind {
	return append([]ShipKind(nil), kinds...)
}

// Length returns the number of cells the ship occupies, 0 for unknown kinds.
func (k ShipKind) Length() int {
	switch k {
	case Carrier:
		return 5
	case Battleship:
		return 4
	case Destroyer, Submarine:
		return 3
	case PatrolBoat:
		return 2
	default:
		return 0
	}
}

func (k ShipKind) Valid() bool {
	return k.Length() > 0
}

// FleetCells is the number of cells covered by a complete fleet.
func FleetCells() int {
	n := 0
	for _, k := range kinds {
		n += k.Length()
	}
	return n
}

// Fleet maps each ship kind to its footprint.
type Fleet map[ShipKind][]int

// Clone returns a deep copy.
func (f Fleet) Clone() Fleet {
	if f == nil {
		return nil
	}
	out := make(Fleet, len(f))
	for k, cells := range f {
		out[k] = append([]int(nil), cells...)
	}
	return out
}

// Cells returns every occupied cell in ascending order.
func (f Fleet) Cells() []int {
	var out []int
	for _, cells := range f {
		out = append(out, cells...)
	}
	sort.Ints(out)
	return out
}

// KindAt returns the ship occupying cell, if any.
func (f Fleet) KindAt(cell int) (ShipKind, bool) {
	for k, cells := range f {
		for _, c := range cells {
			if c == cell {
				return k, true
			}
		}
	}
	return "", false
}

// Footprints returns the footprints in fixed kind order, skipping absent kinds.
func (f Fleet) Footprints() [][]int {
	out := make([][]int, 0, len(f))
	for _, k := range kinds {
		if cells, ok := f[k]; ok {
			out = append(out, cells)
		}
	}
	return out
}

// Shot is one cell fired at and whether it struck a ship.
type Shot struct {
	Cell int  `json:"cell"`
	Hit  bool `json:"hit"`
}
