package game

// FireAt resolves a shot at cell against the defending fleet.
func FireAt(f Fleet, cell int) Shot {
	_, hit := f.KindAt(cell)
	return Shot{Cell: cell, Hit: hit}
}

// SunkCells returns the cells of every destroyed ship in f.
func SunkCells(f Fleet, shots map[int]bool) map[int]bool {
	out := make(map[int]bool)
	for _, k := range Destroyed(f, shots) {
		for _, c := range f[k] {
			out[c] = true
		}
	}
	return out
}
