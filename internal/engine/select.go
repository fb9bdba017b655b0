package engine

import (
	"math/rand/v2"

	"github.com/roach88/stabdecomp/internal/zx"
)

// GroupSize is the largest number of T-vertices rewritten in one step.
const GroupSize = 6

// FirstTs returns up to GroupSize T-vertices in ascending vertex order.
func FirstTs(g *zx.Diagram) []zx.V {
	ts := g.TVertices()
	if len(ts) > GroupSize {
		ts = ts[:GroupSize]
	}
	return ts
}

// RandomTs draws up to GroupSize T-vertices uniformly without replacement.
// The order of the result is the draw order.
func RandomTs(g *zx.Diagram, rng *rand.Rand) []zx.V {
	pool := g.TVertices()
	picked := make([]zx.V, 0, min(len(pool), GroupSize))
	for len(picked) < GroupSize && len(pool) > 0 {
		i := rng.IntN(len(pool))
		picked = append(picked, pool[i])
		pool[i] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
	return picked
}
