package engine

import (
	"log/slog"
	"math/big"
	"math/rand/v2"
	"runtime"

	"github.com/roach88/stabdecomp/internal/scalar"
	"github.com/roach88/stabdecomp/internal/simplify"
	"github.com/roach88/stabdecomp/internal/zx"
)

// Simplifier rewrites a diagram in place without changing its value and
// without introducing T-vertices. Implementations must be safe to call from
// several goroutines at once.
type Simplifier interface {
	Simplify(g *zx.Diagram)
}

// settings is the configuration a Decomposer hands down through Split.
type settings struct {
	simp     Simplifier
	randomT  bool
	rng      *rand.Rand
	save     bool
	workers  int
	maxSteps int
}

// Decomposer reduces diagrams to sums of stabilizer diagrams.
//
// The frontier holds diagrams still carrying T-vertices. Each step takes
// one diagram, selects up to six T-vertices, and replaces the diagram by
// the terms of the matching family. Diagrams without T-vertices are
// terminal: their scalar is added to the accumulator and, when saving,
// the diagram is kept in Done().
//
// INVARIANTS:
//   - Scalar() plus the values of all pending diagrams equals the value of
//     the diagrams the Decomposer was seeded with
//   - No two frontier entries share a diagram; every rewrite clones
//   - Each step strictly lowers the T-count of the rewritten diagram
//
// A Decomposer is not safe for concurrent use. DecompParallel gets its
// concurrency by splitting into independent Decomposers.
type Decomposer struct {
	frontier   *frontier
	done       []*zx.Diagram
	scalar     scalar.Scalar
	nterms     int
	incomplete int
	steps      stepQuota
	settings   settings
}

// Option configures a Decomposer.
type Option func(*settings)

// WithSimplifier runs s on every child diagram before it is queued.
// A nil simplifier disables simplification.
func WithSimplifier(s Simplifier) Option {
	return func(c *settings) {
		c.simp = s
	}
}

// WithFullSimp is WithSimplifier(simplify.Full{}).
func WithFullSimp() Option {
	return WithSimplifier(simplify.Full{})
}

// WithRandomT selects T-vertices at random, drawing from a PCG source seeded
// with seed. The same seed gives the same decomposition.
func WithRandomT(seed uint64) Option {
	return func(c *settings) {
		c.randomT = true
		c.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithSave keeps every terminal diagram for Done().
func WithSave(save bool) Option {
	return func(c *settings) {
		c.save = save
	}
}

// WithWorkers bounds the goroutines DecompParallel uses.
//
// Default: runtime.GOMAXPROCS(0)
func WithWorkers(n int) Option {
	return func(c *settings) {
		c.workers = n
	}
}

// Empty returns a Decomposer with nothing pending and a zero accumulator.
func Empty(opts ...Option) *Decomposer {
	d := &Decomposer{
		frontier: newFrontier(),
		scalar:   scalar.Zero(),
	}
	for _, opt := range opts {
		opt(&d.settings)
	}
	d.steps.limit = d.settings.maxSteps
	return d
}

// New returns a Decomposer seeded with a copy of g at depth 0.
func New(g *zx.Diagram, opts ...Option) *Decomposer {
	d := Empty(opts...)
	d.frontier.PushBack(Entry{Depth: 0, Diagram: g.Clone()})
	return d
}

// Len returns the number of pending diagrams.
func (d *Decomposer) Len() int { return d.frontier.Len() }

// Frontier returns the pending entries front to back. The diagrams are
// shared with the Decomposer and must not be modified.
func (d *Decomposer) Frontier() []Entry { return d.frontier.Entries() }

// Done returns the saved terminal diagrams in the order they were reached.
func (d *Decomposer) Done() []*zx.Diagram {
	return append([]*zx.Diagram(nil), d.done...)
}

// Scalar returns the sum of the scalars of all terminal diagrams so far.
func (d *Decomposer) Scalar() scalar.Scalar { return d.scalar }

// NumTerms returns the number of terminal diagrams so far.
func (d *Decomposer) NumTerms() int { return d.nterms }

// Incomplete returns how many terminal diagrams still had vertices left.
// Nonzero means the simplifier did not fully reduce them, so Scalar() alone
// is not the value of an open or unsimplified diagram.
func (d *Decomposer) Incomplete() int { return d.incomplete }

// Stats summarises a Decomposer.
type Stats struct {
	Terms      int
	Incomplete int
	Pending    int
	Saved      int
	Steps      int
	MaxTerms   *big.Int
	Scalar     scalar.Scalar
}

// Stats returns a snapshot of the counters, the bound and the accumulated scalar.
func (d *Decomposer) Stats() Stats {
	return Stats{
		Terms:      d.nterms,
		Incomplete: d.incomplete,
		Pending:    d.frontier.Len(),
		Saved:      len(d.done),
		Steps:      d.steps.current,
		MaxTerms:   d.MaxTerms(),
		Scalar:     d.scalar,
	}
}

// PopGraph removes and returns the back diagram without reducing it.
func (d *Decomposer) PopGraph() (*zx.Diagram, error) {
	e, ok := d.frontier.PopBack()
	if !ok {
		return nil, NewEmptyFrontierError("PopGraph")
	}
	return e.Diagram, nil
}

// DecompTop reduces the back diagram one step, depth first.
func (d *Decomposer) DecompTop() error {
	e, ok := d.frontier.PopBack()
	if !ok {
		return NewEmptyFrontierError("DecompTop")
	}
	return d.DecompTS(e.Depth, e.Diagram, d.selectTs(e.Diagram))
}

// DecompAll reduces depth first until nothing is pending.
func (d *Decomposer) DecompAll() error {
	slog.Debug("decomposing", "pending", d.frontier.Len(), "max_terms", d.MaxTerms().String())
	for d.frontier.Len() > 0 {
		if err := d.DecompTop(); err != nil {
			return err
		}
	}
	slog.Debug("decomposed", "terms", d.nterms, "incomplete", d.incomplete)
	return nil
}

// DecompUntilDepth reduces breadth first until every pending diagram is at
// depth >= depth.
func (d *Decomposer) DecompUntilDepth(depth int) error {
	for {
		e, ok := d.frontier.PopFront()
		if !ok {
			return nil
		}
		if e.Depth >= depth {
			d.frontier.PushFront(e)
			slog.Debug("reached depth", "depth", depth, "pending", d.frontier.Len())
			return nil
		}
		if err := d.DecompTS(e.Depth, e.Diagram, d.selectTs(e.Diagram)); err != nil {
			return err
		}
	}
}

// DecompTS rewrites g, found at depth, on the selected T-vertices ts and
// queues the children at depth+1. Six vertices use BSS, two to five use Sym
// on the first two, one uses Single, and none makes g terminal.
func (d *Decomposer) DecompTS(depth int, g *zx.Diagram, ts []zx.V) error {
	if len(ts) > 0 {
		if err := d.steps.check(); err != nil {
			return err
		}
	}
	switch {
	case len(ts) == GroupSize:
		return d.push(depth+1, BSS, g, ts)
	case len(ts) >= 2:
		return d.push(depth+1, Sym, g, ts[:2])
	case len(ts) == 1:
		return d.push(depth+1, Single, g, ts)
	default:
		return d.finish(g)
	}
}

func (d *Decomposer) push(depth int, f Family, g *zx.Diagram, ts []zx.V) error {
	children, err := f.Apply(g, ts)
	if err != nil {
		return err
	}
	for _, h := range children {
		if d.settings.simp != nil {
			d.settings.simp.Simplify(h)
		}
		d.frontier.PushBack(Entry{Depth: depth, Diagram: h})
	}
	return nil
}

func (d *Decomposer) finish(g *zx.Diagram) error {
	sum, err := d.scalar.TryAdd(g.Scalar())
	if err != nil {
		return NewScalarOverflowError(err)
	}
	d.scalar = sum
	d.nterms++
	if n := g.NumVertices(); n != 0 {
		d.incomplete++
		slog.Warn("diagram was not fully reduced", "vertices", n, "edges", g.NumEdges(), "term", d.nterms)
	}
	if d.settings.save {
		d.done = append(d.done, g)
	}
	return nil
}

func (d *Decomposer) selectTs(g *zx.Diagram) []zx.V {
	if d.settings.randomT {
		return RandomTs(g, d.settings.rng)
	}
	return FirstTs(g)
}

func (s settings) workerCount() int {
	if s.workers > 0 {
		return s.workers
	}
	return runtime.GOMAXPROCS(0)
}
