package game

// ShotSet indexes fired cells for membership tests.
func ShotSet(cells []int) map[int]bool {
	set := make(map[int]bool, len(cells))
	for _, c := range cells {
		set[c] = true
	}
	return set
}

// ShotCells projects shots onto their cells.
func ShotCells(shots []Shot) []int {
	out := make([]int, len(shots))
	for i, s := range shots {
		out[i] = s.Cell
	}
	return out
}

// HitCells returns the distinct cells of shots that struck a ship.
func HitCells(shots []Shot) map[int]bool {
	hits := make(map[int]bool)
	for _, s := range shots {
		if s.Hit {
			hits[s.Cell] = true
		}
	}
	return hits
}

// Destroyed lists, in fixed kind order, the ships whose every cell is in shots.
func Destroyed(f Fleet, shots map[int]bool) []ShipKind {
	out := []ShipKind{}
	for _, k := range kinds {
		cells, ok := f[k]
		if !ok || len(cells) == 0 {
			continue
		}
		if covered(cells, shots) {
			out = append(out, k)
		}
	}
	return out
}

func covered(cells []int, shots map[int]bool) bool {
	for _, c := range cells {
		if !shots[c] {
			return false
		}
	}
	return true
}
