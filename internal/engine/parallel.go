package engine

import (
	"log/slog"
	"math/rand/v2"

	"github.com/sourcegraph/conc/iter"

	"github.com/roach88/stabdecomp/internal/scalar"
)

// Split turns a Decomposer with N pending diagrams into N Decomposers with
// one pending diagram each, taken front to back. All of them share d's
// settings; the last one is d itself and keeps the accumulator and the saved
// diagrams. With nothing pending, Split returns just d.
//
// When selecting at random, each new Decomposer gets its own source seeded
// from d's, so a seeded run splits reproducibly.
func (d *Decomposer) Split() []*Decomposer {
	n := d.frontier.Len()
	out := make([]*Decomposer, 0, max(n, 1))
	for d.frontier.Len() > 1 {
		e, _ := d.frontier.PopFront()
		c := &Decomposer{
			frontier: newFrontier(),
			scalar:   scalar.Zero(),
			steps:    stepQuota{limit: d.settings.maxSteps},
			settings: d.settings.derive(),
		}
		c.frontier.PushBack(e)
		out = append(out, c)
	}
	return append(out, d)
}

func (s settings) derive() settings {
	if s.rng != nil {
		s.rng = rand.New(rand.NewPCG(s.rng.Uint64(), s.rng.Uint64()))
	}
	return s
}

// Merge folds ds into one Decomposer: scalars, term counts and incomplete
// counts are summed, frontiers and saved diagrams are concatenated in order.
// The result takes the settings of ds[0]. The inputs must not be used
// afterwards. Merging nothing gives Empty(). Merge panics if the summed
// scalar overflows; DecompParallel reports that as an error instead.
func Merge(ds []*Decomposer) *Decomposer {
	m, err := merge(ds)
	if err != nil {
		panic(err)
	}
	return m
}

func merge(ds []*Decomposer) (*Decomposer, error) {
	if len(ds) == 0 {
		return Empty(), nil
	}
	m := &Decomposer{
		frontier: newFrontier(),
		scalar:   scalar.Zero(),
		steps:    stepQuota{limit: ds[0].settings.maxSteps},
		settings: ds[0].settings,
	}
	for _, d := range ds {
		sum, err := m.scalar.TryAdd(d.scalar)
		if err != nil {
			return nil, NewScalarOverflowError(err)
		}
		m.scalar = sum
		m.nterms += d.nterms
		m.incomplete += d.incomplete
		m.steps.current += d.steps.current
		m.frontier.Append(d.frontier)
		m.done = append(m.done, d.done...)
	}
	return m, nil
}

// DecompParallel reduces breadth first to depth, splits the frontier into
// one Decomposer per pending diagram, runs DecompAll on each with a bounded
// number of goroutines, and merges the results. d is consumed.
func (d *Decomposer) DecompParallel(depth int) (*Decomposer, error) {
	if err := d.DecompUntilDepth(depth); err != nil {
		return nil, err
	}
	units := d.Split()
	workers := d.settings.workerCount()
	slog.Debug("parallel decomposition", "depth", depth, "units", len(units), "workers", workers)

	mapper := iter.Mapper[*Decomposer, *Decomposer]{MaxGoroutines: workers}
	done, err := mapper.MapErr(units, func(u **Decomposer) (*Decomposer, error) {
		if err := (*u).DecompAll(); err != nil {
			return nil, err
		}
		return *u, nil
	})
	if err != nil {
		return nil, err
	}
	return merge(done)
}
