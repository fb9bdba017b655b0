package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/stabdecomp/internal/zx"
)

func TestTSpiders(t *testing.T) {
	g := TSpiders(4)
	assert.Equal(t, 4, g.TCount())
	assert.Equal(t, 4, g.NumVertices())
	assert.True(t, g.IsClosed())
}

func TestOpenTSpiders(t *testing.T) {
	g := OpenTSpiders(3)
	assert.Equal(t, 3, g.TCount())
	assert.Equal(t, 6, g.NumVertices())
	assert.Len(t, g.Outputs(), 3)
	assert.Equal(t, 3, g.NumEdges())
}

func TestTRing(t *testing.T) {
	g := TRing(5)
	assert.Equal(t, 5, g.TCount())
	assert.Equal(t, 10, g.NumEdges())
	assert.Equal(t, zx.X, g.VertexType(g.TVertices()[2]))

	assert.Equal(t, 3, TRing(2).NumEdges())
	assert.Equal(t, 1, TRing(1).NumEdges())
}
