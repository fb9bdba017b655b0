package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stabdecomp/internal/diagramfile"
	"github.com/roach88/stabdecomp/internal/ir"
	"github.com/roach88/stabdecomp/internal/testutil"
	"github.com/roach88/stabdecomp/internal/zx"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun builds a run record for g with minimal fields filled in.
func createTestRun(id string, g *zx.Diagram, terms int) ir.RunRecord {
	doc := diagramfile.Encode(g)
	return ir.RunRecord{
		ID:          id,
		DiagramHash: ir.MustDiagramHash(doc),
		Input:       doc,
		TCount:      g.TCount(),
		MaxTerms:    "7",
		Terms:       terms,
		Incomplete:  terms,
		Scalar:      ir.ScalarDoc{Pow: -2, Coeffs: [4]int64{3, 0, -1, 1}},
		Options:     ir.RunOptions{Simplify: "none", Save: true, Seed: 4, MaxComponent: 16},
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)
	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
	assert.NoError(t, s.verifyPragma("user_version", "1"))
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s1, err := Open(path)
	require.NoError(t, err)
	_, err = s1.WriteRun(context.Background(), createTestRun("r1", testutil.TSpiders(1), 0), nil)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	runs, err := s2.ListRuns(context.Background())
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestWriteReadRun(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	g := testutil.OpenTSpiders(6)
	run := createTestRun("run-1", g, 7)
	run.Label = "six open T"

	stored, err := s.WriteRun(ctx, run, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Seq)

	got, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, stored.Seq, got.Seq)
	assert.Equal(t, "six open T", got.Label)
	assert.Equal(t, run.DiagramHash, got.DiagramHash)
	assert.Equal(t, run.TCount, got.TCount)
	assert.Equal(t, run.MaxTerms, got.MaxTerms)
	assert.Equal(t, run.Terms, got.Terms)
	assert.Equal(t, run.Incomplete, got.Incomplete)
	assert.Equal(t, run.Scalar, got.Scalar)
	assert.Equal(t, run.Options, got.Options)

	// The stored input decodes back to the same diagram.
	assert.Equal(t, run.DiagramHash, ir.MustDiagramHash(got.Input))
	h, err := diagramfile.Decode(got.Input)
	require.NoError(t, err)
	assert.True(t, zx.Equal(g, h))
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.ReadRun(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestWriteRun_Errors(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, err := s.WriteRun(ctx, createTestRun("", testutil.TSpiders(1), 0), nil)
	require.Error(t, err)

	_, err = s.WriteRun(ctx, createTestRun("dup", testutil.TSpiders(1), 0), nil)
	require.NoError(t, err)
	_, err = s.WriteRun(ctx, createTestRun("dup", testutil.TSpiders(2), 0), nil)
	require.Error(t, err)

	// The failed write left nothing behind.
	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestListRuns_OrderedBySeq(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	empty, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, id := range []string{"zeta", "alpha", "mid"} {
		_, err := s.WriteRun(ctx, createTestRun(id, testutil.TSpiders(2), 2), nil)
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	for i, want := range []string{"zeta", "alpha", "mid"} {
		assert.Equal(t, want, runs[i].ID)
		assert.Equal(t, int64(i+1), runs[i].Seq)
	}
}

func TestTerms_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	var docs []ir.DiagramDoc
	for n := 1; n <= 3; n++ {
		docs = append(docs, diagramfile.Encode(testutil.TRing(n)))
	}
	_, err := s.WriteRun(ctx, createTestRun("with-terms", testutil.TRing(3), 3), docs)
	require.NoError(t, err)

	terms, err := s.ReadTerms(ctx, "with-terms")
	require.NoError(t, err)
	require.Len(t, terms, 3)
	for i, term := range terms {
		assert.Equal(t, "with-terms", term.RunID)
		assert.Equal(t, int64(i), term.Seq)
		assert.Equal(t, ir.MustDiagramHash(docs[i]), term.DiagramHash)
		assert.Equal(t, term.DiagramHash, ir.MustDiagramHash(term.Diagram))
	}

	n, err := s.CountTerms(ctx, "with-terms")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	none, err := s.ReadTerms(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFindRunsByDiagram(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	a := createTestRun("a", testutil.TSpiders(2), 2)
	b := createTestRun("b", testutil.TSpiders(3), 4)
	c := createTestRun("c", testutil.TSpiders(2), 2)
	for _, r := range []ir.RunRecord{a, b, c} {
		_, err := s.WriteRun(ctx, r, nil)
		require.NoError(t, err)
	}

	runs, err := s.FindRunsByDiagram(ctx, a.DiagramHash)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "a", runs[0].ID)
	assert.Equal(t, "c", runs[1].ID)
}

func TestDeleteRun_CascadesTerms(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	docs := []ir.DiagramDoc{diagramfile.Encode(testutil.TSpiders(1))}
	_, err := s.WriteRun(ctx, createTestRun("gone", testutil.TSpiders(1), 1), docs)
	require.NoError(t, err)

	require.NoError(t, s.DeleteRun(ctx, "gone"))
	require.NoError(t, s.DeleteRun(ctx, "gone"))

	_, err = s.ReadRun(ctx, "gone")
	assert.ErrorIs(t, err, ErrRunNotFound)
	n, err := s.CountTerms(ctx, "gone")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestUUIDv7Generator(t *testing.T) {
	var gen IDGenerator = UUIDv7Generator{}
	a := gen.Generate()
	b := gen.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
	assert.Equal(t, byte('7'), a[14], "version nibble")

	var fixed IDGenerator = testutil.NewFixedIDGenerator("run-1")
	assert.Equal(t, "run-1", fixed.Generate())
}
