package game

import (
	"fmt"
	"math/rand"

	"battlefun/internal/apperrors"
)

// MaxPlacementAttempts bounds the random draws per ship.
const MaxPlacementAttempts = 20

// Generator produces random fleet layouts. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator whose layouts are reproducible for a seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate places every ship kind in order. A ship that cannot be placed
// within MaxPlacementAttempts fails the whole fleet with
// ErrPlacementGenerationFailed; partial layouts are never returned.
func (g *Generator) Generate() (Fleet, error) {
	fleet := make(Fleet, len(kinds))
	accepted := make([][]int, 0, len(kinds))
	for _, k := range kinds {
		placed := false
		for attempt := 0; attempt < MaxPlacementAttempts; attempt++ {
			start := g.rng.Intn(CellCount)
			vertical := g.rng.Intn(2) == 0
			fp := Footprint(start, k.Length(), vertical)
			if IsValid(fp, accepted) && (vertical || sameRow(fp)) {
				fleet[k] = fp
				accepted = append(accepted, fp)
				placed = true
				break
			}
		}
		if !placed {
			return nil, apperrors.WithMetadata(apperrors.CodePlacementGenerationFailed,
				fmt.Sprintf("exhausted %d attempts placing %s", MaxPlacementAttempts, k),
				map[string]string{"ship": string(k)})
		}
	}
	return fleet, nil
}

// GenerateWithRestarts restarts generation from scratch until a complete
// fleet is produced or maxRestarts extra passes have failed.
func (g *Generator) GenerateWithRestarts(maxRestarts int) (Fleet, error) {
	var err error
	for i := 0; i <= maxRestarts; i++ {
		var f Fleet
		if f, err = g.Generate(); err == nil {
			return f, nil
		}
	}
	return nil, err
}
