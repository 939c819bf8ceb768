package peg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharClassMergesOverlappingAndAdjacent(t *testing.T) {
	c := NewCharClass([]CharRange{
		{'a', 'f'},
		{'0', '9'},
		{'g', 'z'}, // adjacent to a-f
		{'5', '7'}, // overlaps 0-9
	})
	assert.True(t, c.Contains('a'))
	assert.True(t, c.Contains('m'))
	assert.True(t, c.Contains('9'))
	assert.False(t, c.Contains('-'))
	assert.False(t, c.Contains('A'))
}

func TestCharClassEmpty(t *testing.T) {
	c := NewCharClass(nil)
	assert.False(t, c.Contains('a'))
}

func TestCharClassString(t *testing.T) {
	c := NewCharClass([]CharRange{{'a', 'z'}, {'_', '_'}})
	assert.Equal(t, "[_a-z]", c.String())
}
