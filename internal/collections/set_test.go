package collections_test

import (
	"testing"

	"github.com/PallasUI/panda-vscode-pallas/internal/collections"
	"github.com/stretchr/testify/assert"
)

func TestNewOrderedSet(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		s := collections.NewOrderedSet[string]()
		assert.Equal(t, 0, s.Len())
		assert.Empty(t, s.Members())
	})

	t.Run("duplicates keep first position", func(t *testing.T) {
		s := collections.NewOrderedSet("root", "control", "root", "label", "control")
		assert.Equal(t, 3, s.Len())
		assert.Equal(t, []string{"root", "control", "label"}, s.Members())
	})
}

func TestOrderedSetAdd(t *testing.T) {
	s := collections.NewOrderedSet[string]()
	s.Add("b")
	s.Add("a", "b", "c")
	assert.Equal(t, []string{"b", "a", "c"}, s.Members())
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("z"))
}

func TestOrderedSetNil(t *testing.T) {
	var s *collections.OrderedSet[int]
	assert.False(t, s.Has(1))
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Members())
}

func TestOrderedSetString(t *testing.T) {
	s := collections.NewOrderedSet(1, 2, 3)
	assert.Equal(t, "[1 2 3]", s.String())
}
