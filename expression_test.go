package peg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSequenceSimplifiesSingleton(t *testing.T) {
	lit := NewLiteral("a")
	require.Same(t, lit, NewSequence(lit))
}

func TestNewSequencePanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { NewSequence() })
}

func TestNewChoicePanicsOnFewerThanTwo(t *testing.T) {
	assert.Panics(t, func() { NewChoice(NewLiteral("a")) })
}

func TestExprString(t *testing.T) {
	e := NewSequence(NewLiteral("a"), NewOptional(NewRef("b")), NewNot(NewDot()))
	assert.Equal(t, `"a" b? !.`, e.String())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Choice", KindChoice.String())
	assert.Contains(t, Kind(99).String(), "Kind(99)")
}
