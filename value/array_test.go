package value_test

import (
	"testing"

	"github.com/on-the-ground/trackmemo/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArray_Access(t *testing.T) {
	a := value.Arr(10, 20)

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 20, a.Get(value.Index(1)))
	assert.Equal(t, 2, a.Get(value.LengthKey))
	assert.Nil(t, a.Get(value.Index(5)))
	assert.Nil(t, a.Get(value.Name("01")))
	assert.True(t, a.Has(value.Index(0)))
	assert.False(t, a.Has(value.Index(2)))
	assert.True(t, a.HasOwn(value.LengthKey))
	assert.Equal(t, []value.Key{value.Index(0), value.Index(1), value.LengthKey}, a.OwnKeys())

	p, ok := a.OwnProperty(value.LengthKey)
	require.True(t, ok)
	assert.False(t, p.Enumerable)
	assert.False(t, p.Locked())
}

func TestArray_SetGrowsAndTruncates(t *testing.T) {
	a := value.Arr(1)

	require.True(t, a.Set(value.Index(2), 3))
	assert.Equal(t, 3, a.Len())
	assert.Nil(t, a.At(1))

	require.True(t, a.Set(value.LengthKey, 1))
	assert.Equal(t, 1, a.Len())
	assert.False(t, a.Set(value.Name("x"), 1))

	require.True(t, a.Push(4, 5))
	assert.Equal(t, 3, a.Len())
}

func TestArray_Freeze(t *testing.T) {
	a := value.Arr(1, 2).Freeze()

	assert.True(t, a.HasLockedProperty())
	assert.False(t, a.Set(value.Index(0), 9))
	assert.False(t, a.Push(3))
	assert.Equal(t, 1, a.At(0))

	c, ok := a.CloneConfigurable().(*value.Array)
	require.True(t, ok)
	assert.False(t, c.HasLockedProperty())
	assert.Equal(t, 2, c.Len())
	require.True(t, c.Set(value.Index(0), 9))
	assert.Equal(t, 1, a.At(0), "clone must not share storage")
}
