package game

// Sunk reports whether the whole fleet footprint is a subset of shots.
// An empty fleet is never sunk.
func Sunk(f Fleet, shots map[int]bool) bool {
	if len(f) == 0 {
		return false
	}
	for _, cells := range f {
		if !covered(cells, shots) {
			return false
		}
	}
	return true
}
