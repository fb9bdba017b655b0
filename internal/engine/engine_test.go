package engine

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stabdecomp/internal/scalar"
	"github.com/roach88/stabdecomp/internal/tensor"
	"github.com/roach88/stabdecomp/internal/testutil"
	"github.com/roach88/stabdecomp/internal/zx"
)

// assertTermsSumTo checks that the saved terminal diagrams of d add up to g.
func assertTermsSumTo(t *testing.T, g *zx.Diagram, d *Decomposer) {
	t.Helper()
	want, err := tensor.Evaluate(g)
	require.NoError(t, err)
	have, err := tensor.Sum(d.Done())
	require.NoError(t, err)
	assert.True(t, want.Equal(have), "terms do not sum to the diagram")
}

func TestDecompAll_TermCounts(t *testing.T) {
	tests := []struct {
		tcount int
		terms  int
	}{
		{1, 2},
		{2, 2},
		{3, 4},
		{6, 7},
		{7, 14},
		{9, 28},
	}
	for _, tt := range tests {
		g := testutil.OpenTSpiders(tt.tcount)
		d := New(g, WithSave(true))
		assert.Equal(t, big.NewInt(int64(tt.terms)), d.MaxTerms(), "bound for %d T", tt.tcount)

		require.NoError(t, d.DecompAll())
		assert.Equal(t, tt.terms, d.NumTerms(), "terms for %d T", tt.tcount)
		assert.Len(t, d.Done(), tt.terms)
		assert.Equal(t, 0, d.Len())
		assert.Equal(t, 0, d.MaxTerms().Sign())
		assertTermsSumTo(t, g, d)
	}
}

func TestDecompAll_FullSimpGivesExactScalar(t *testing.T) {
	for _, n := range []int{1, 2, 6, 9} {
		g := testutil.TSpiders(n)
		want, err := tensor.ScalarValue(g)
		require.NoError(t, err)

		d := New(g, WithFullSimp())
		require.NoError(t, d.DecompAll())

		assert.Equal(t, want, d.Scalar(), "scalar for %d T", n)
		assert.Equal(t, 0, d.Incomplete())
	}
}

func TestDecompAll_ConnectedDiagram(t *testing.T) {
	for _, n := range []int{2, 5, 7} {
		g := testutil.TRing(n)
		d := New(g, WithSave(true))
		require.NoError(t, d.DecompAll())
		assertTermsSumTo(t, g, d)
	}
}

func TestDecompAll_WithSimplifierOnOpenDiagram(t *testing.T) {
	g := testutil.TRing(6)
	d := New(g, WithFullSimp(), WithSave(true))
	require.NoError(t, d.DecompAll())
	assertTermsSumTo(t, g, d)
	// Outputs survive simplification.
	assert.Equal(t, d.NumTerms(), d.Incomplete())
}

func TestDecompAll_IncompleteWithoutSimplifier(t *testing.T) {
	d := New(testutil.TSpiders(2))
	require.NoError(t, d.DecompAll())
	assert.Equal(t, 2, d.NumTerms())
	assert.Equal(t, 2, d.Incomplete())

	st := d.Stats()
	assert.Equal(t, 2, st.Terms)
	assert.Equal(t, 2, st.Incomplete)
	assert.Equal(t, 0, st.Pending)
	assert.Equal(t, 0, st.Saved)
}

func TestDecompUntilDepth(t *testing.T) {
	d := New(testutil.OpenTSpiders(9))
	require.NoError(t, d.DecompUntilDepth(2))

	entries := d.Frontier()
	require.Len(t, entries, 14)
	for _, e := range entries {
		assert.Equal(t, 2, e.Depth)
		assert.Equal(t, 1, e.Diagram.TCount())
	}
	assert.Equal(t, 0, d.NumTerms())
	assert.Equal(t, big.NewInt(28), d.MaxTerms())
}

func TestDecompUntilDepth_AbsorbsShallowTerminals(t *testing.T) {
	d := New(testutil.OpenTSpiders(1), WithSave(true))
	require.NoError(t, d.DecompUntilDepth(5))
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, 2, d.NumTerms())
}

func TestMaxTermsIsMonotone(t *testing.T) {
	d := New(testutil.TRing(9))
	prev := d.MaxTerms()
	for d.Len() > 0 {
		require.NoError(t, d.DecompTop())
		cur := d.MaxTerms()
		assert.LessOrEqual(t, cur.Cmp(prev), 0, "bound increased from %s to %s", prev, cur)
		prev = cur
	}
}

func TestTermBound(t *testing.T) {
	tests := map[int]int64{0: 1, 1: 2, 2: 2, 3: 4, 4: 4, 5: 8, 6: 7, 7: 14, 8: 14, 9: 28, 12: 49}
	for tc, want := range tests {
		assert.Equal(t, big.NewInt(want), TermBound(tc), "TermBound(%d)", tc)
	}
	// 7^20 does not fit in 32 bits and is exact.
	want := new(big.Int).Exp(big.NewInt(7), big.NewInt(20), nil)
	assert.Equal(t, want, TermBound(120))
}

func TestEmptyFrontier(t *testing.T) {
	d := Empty()
	err := d.DecompTop()
	assert.True(t, IsEmptyFrontierError(err))

	_, err = d.PopGraph()
	assert.True(t, IsEmptyFrontierError(err))
	assert.False(t, IsMalformedSelectionError(err))

	require.NoError(t, d.DecompAll())
	assert.Equal(t, scalar.Zero(), d.Scalar())
}

func TestPopGraph(t *testing.T) {
	g := testutil.TSpiders(3)
	d := New(g)
	h, err := d.PopGraph()
	require.NoError(t, err)
	assert.True(t, zx.Equal(g, h))
	assert.NotSame(t, g, h)
	assert.Equal(t, 0, d.Len())
}

func TestNewClonesInput(t *testing.T) {
	g := testutil.TSpiders(1)
	d := New(g)
	require.NoError(t, d.DecompAll())
	assert.Equal(t, 1, g.TCount())
	assert.Equal(t, 1, g.NumVertices())
}

func TestDecompTS_Dispatch(t *testing.T) {
	g := testutil.OpenTSpiders(6)
	ts := g.TVertices()

	tests := []struct {
		name     string
		ts       []zx.V
		children int
		terms    int
	}{
		{"six", ts, 7, 0},
		{"five uses first two", ts[:5], 2, 0},
		{"two", ts[:2], 2, 0},
		{"one", ts[:1], 2, 0},
		{"none is terminal", nil, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Empty()
			require.NoError(t, d.DecompTS(3, g, tt.ts))
			assert.Equal(t, tt.children, d.Len())
			assert.Equal(t, tt.terms, d.NumTerms())
			for _, e := range d.Frontier() {
				assert.Equal(t, 4, e.Depth)
			}
		})
	}

	// Five selected: only the first two are rewritten.
	d := Empty()
	require.NoError(t, d.DecompTS(0, g, ts[:5]))
	for _, e := range d.Frontier() {
		assert.Equal(t, 4, e.Diagram.TCount())
		for _, v := range ts[2:] {
			assert.True(t, e.Diagram.Phase(v).IsT())
		}
	}
}

func TestRandomT_IsReproducible(t *testing.T) {
	g := testutil.TRing(8)

	a := New(g, WithRandomT(7), WithSave(true))
	require.NoError(t, a.DecompAll())
	b := New(g, WithRandomT(7), WithSave(true))
	require.NoError(t, b.DecompAll())

	require.Equal(t, a.NumTerms(), b.NumTerms())
	for i, h := range a.Done() {
		assert.True(t, zx.Equal(h, b.Done()[i]), "term %d differs", i)
	}
	assertTermsSumTo(t, g, a)
}

func TestRandomT_ClosedScalar(t *testing.T) {
	g := testutil.TSpiders(9)
	want, err := tensor.ScalarValue(g)
	require.NoError(t, err)

	for _, seed := range []uint64{1, 2, 3} {
		d := New(g, WithRandomT(seed), WithFullSimp())
		require.NoError(t, d.DecompAll())
		assert.Equal(t, want, d.Scalar())
		assert.Equal(t, 28, d.NumTerms())
	}
}

func TestFinish_ScalarOverflow(t *testing.T) {
	d := Empty()
	require.NoError(t, d.DecompTS(0, zx.New(), nil))

	huge := zx.New()
	huge.SetScalar(scalar.Exact(70, [4]int64{1, 0, 0, 0}))
	err := d.DecompTS(0, huge, nil)
	require.Error(t, err)
	assert.True(t, IsScalarOverflowError(err))
	assert.ErrorIs(t, err, scalar.ErrOverflow)

	// The failed term is not counted.
	assert.Equal(t, 1, d.NumTerms())
	assert.Equal(t, scalar.One(), d.Scalar())
}
