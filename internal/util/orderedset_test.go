package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Set_AddPreservesInsertionOrder(t *testing.T) {
	s := NewSet[string, int](0)

	assert.True(t, s.Add("b", 2))
	assert.True(t, s.Add("a", 1))
	assert.False(t, s.Add("b", 99), "re-adding an existing key should be a no-op")

	assert.Equal(t, []int{2, 1}, s.Values())
	assert.Equal(t, 2, s.Len())

	v, ok := s.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
}

func Test_Set_Contains(t *testing.T) {
	s := NewSet[int, string](0)
	s.Add(1, "one")

	assert.True(t, s.Contains(1))
	assert.False(t, s.Contains(2))
}

func Test_Set_AddAll(t *testing.T) {
	a := NewSet[int, int](0)
	a.Add(1, 1)
	a.Add(2, 2)

	b := NewSet[int, int](0)
	b.Add(2, 2)
	b.Add(3, 3)

	changed := a.AddAll(b, func(v int) int { return v })
	assert.True(t, changed)
	assert.Equal(t, []int{1, 2, 3}, a.Values())

	changed = a.AddAll(b, func(v int) int { return v })
	assert.False(t, changed)
}

func Test_Set_Clone(t *testing.T) {
	a := NewSet[int, int](0)
	a.Add(1, 10)
	b := a.Clone()
	b.Add(2, 20)

	assert.Equal(t, []int{10}, a.Values())
	assert.Equal(t, []int{10, 20}, b.Values())
}
