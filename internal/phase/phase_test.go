package phase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalizes(t *testing.T) {
	tests := []struct {
		name     string
		num, den int64
		wantNum  int64
		wantDen  int64
	}{
		{"zero", 0, 5, 0, 1},
		{"quarter", 1, 4, 1, 4},
		{"reduced", 2, 8, 1, 4},
		{"negative", -1, 4, 7, 4},
		{"negative denominator", 1, -4, 7, 4},
		{"wraps past two", 9, 4, 1, 4},
		{"two is zero", 2, 1, 0, 1},
		{"minus half", -1, 2, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.num, tt.den)
			assert.Equal(t, tt.wantNum, p.Num())
			assert.Equal(t, tt.wantDen, p.Denom())
		})
	}
}

func TestZeroValueIsZeroPhase(t *testing.T) {
	var p Phase
	assert.True(t, p.IsZero())
	assert.Equal(t, int64(1), p.Denom())
	assert.True(t, p.Equal(Zero()))
	assert.Equal(t, "0", p.String())
}

func TestAdd(t *testing.T) {
	assert.True(t, New(1, 4).Add(New(3, 4)).Equal(One()))
	assert.True(t, New(7, 4).Add(New(1, 4)).IsZero())
	assert.True(t, New(1, 4).Add(New(-1, 4)).IsZero())
	assert.True(t, New(1, 2).Add(New(1, 4)).Equal(New(3, 4)))
	assert.True(t, New(1, 4).Add(New(1, 4)).Equal(New(1, 2)))
}

func TestNeg(t *testing.T) {
	assert.True(t, New(1, 4).Neg().Equal(New(7, 4)))
	assert.True(t, Zero().Neg().IsZero())
	assert.True(t, One().Neg().Equal(One()))
}

func TestClassification(t *testing.T) {
	assert.True(t, New(1, 4).IsT())
	assert.True(t, New(7, 4).IsT())
	assert.False(t, New(1, 2).IsT())
	assert.True(t, New(1, 2).IsClifford())
	assert.True(t, One().IsClifford())
	assert.False(t, New(3, 4).IsClifford())
	assert.True(t, One().IsPauli())
	assert.False(t, New(3, 2).IsPauli())
}

func TestParse(t *testing.T) {
	p, err := Parse("3/4")
	require.NoError(t, err)
	assert.True(t, p.Equal(New(3, 4)))

	p, err = Parse(" -1/4 ")
	require.NoError(t, err)
	assert.True(t, p.Equal(New(7, 4)))

	p, err = Parse("1")
	require.NoError(t, err)
	assert.True(t, p.Equal(One()))

	p, err = Parse("")
	require.NoError(t, err)
	assert.True(t, p.IsZero())

	_, err = Parse("1/0")
	assert.Error(t, err)

	_, err = Parse("pi")
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	assert.Equal(t, "1/4", New(1, 4).String())
	assert.Equal(t, "1", One().String())
	assert.Equal(t, "3/2", New(-1, 2).String())
}
