package game

import (
	"errors"
	"math/rand"

	"battlefun/internal/config"
)

var dirs = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// ChooseShot picks the next cell for a bot that has already fired shots.
// Cells in sunk are hits on ships known to be destroyed and no longer
// attract follow-up shots. Ties are broken with rng.
func ChooseShot(shots []Shot, sunk map[int]bool, w config.Weights, rng *rand.Rand) (int, error) {
	fired := ShotSet(ShotCells(shots))
	open := HitCells(shots)
	for c := range sunk {
		delete(open, c)
	}

	var best []int
	bestScore := -1
	for cell := 0; cell < CellCount; cell++ {
		if fired[cell] {
			continue
		}
		score := HeuristicScore(cell, open, w)
		switch {
		case score > bestScore:
			bestScore = score
			best = append(best[:0], cell)
		case score == bestScore:
			best = append(best, cell)
		}
	}
	if len(best) == 0 {
		return 0, errors.New("no cells left to fire at")
	}
	return best[rng.Intn(len(best))], nil
}

// HeuristicScore rates cell given the unresolved hits.
func HeuristicScore(cell int, open map[int]bool, w config.Weights) int {
	r, c := cell/BoardSize, cell%BoardSize
	score := 0

	for _, d := range dirs {
		nr, nc := r+d[0], c+d[1]
		if !in(nr, nc) || !open[nr*BoardSize+nc] {
			continue
		}
		score += w.WHitNeighbor
		// Extending a line of two hits.
		fr, fc := nr+d[0], nc+d[1]
		if in(fr, fc) && open[fr*BoardSize+fc] {
			score += w.WLine
		}
	}

	// Every ship is at least two long, so a checkerboard sweep finds them all.
	if (r+c)%2 == 0 {
		score += w.WParity
	}

	score += w.WCenter * min(r, c, BoardSize-1-r, BoardSize-1-c)
	return score
}

func in(r, c int) bool {
	return r >= 0 && r < BoardSize && c >= 0 && c < BoardSize
}
