package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIRObjectSortedKeys(t *testing.T) {
	obj := IRObject{
		"vertices": IRArray{},
		"edges":    IRArray{},
		"scalar":   IRObject{},
		"inputs":   IRArray{},
	}
	assert.Equal(t, []string{"edges", "inputs", "scalar", "vertices"}, obj.SortedKeys())
}

func TestIRObjectEmpty(t *testing.T) {
	assert.Empty(t, IRObject{}.SortedKeys())
}

func TestCompareUTF16(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"a", "b", -1},
		{"b", "a", 1},
		{"a", "a", 0},
		{"a", "ab", -1},
		{"ab", "a", 1},
		{"", "", 0},
		{"\U00010000", "\uE000", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, compareUTF16(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestInts(t *testing.T) {
	assert.Equal(t, IRArray{IRInt(1), IRInt(-2)}, Ints([]int{1, -2}))
	assert.Equal(t, IRArray{IRInt(7)}, Ints([]int64{7}))
	assert.Equal(t, IRArray{}, Ints([]int(nil)))
}
