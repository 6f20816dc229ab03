package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUint32s(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.Uint32s(100, 1000)

	assert.Len(t, v, 100)
	for _, x := range v {
		assert.Less(t, x, uint32(1000))
	}
}

func TestDense(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.Dense(100, 200, 1)
	assert.Len(t, v, 100)
	assert.Equal(t, uint32(100), v[0])
	assert.Equal(t, uint32(199), v[99])

	assert.Empty(t, rng.Dense(100, 200, 0))
}

func TestRuns(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.Runs(1, 10, 1000)

	assert.NotEmpty(t, v)
	assert.LessOrEqual(t, len(v), 10)
	for i := 1; i < len(v); i++ {
		assert.Equal(t, v[i-1]+1, v[i])
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	v1 := rng.Uint32s(10, 0)
	rng.Reset()
	v2 := rng.Uint32s(10, 0)

	assert.Equal(t, v1, v2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestReferenceOps(t *testing.T) {
	a := Distinct([]uint32{5, 1, 5, 1000000, 3})
	b := Distinct([]uint32{1000000, 2, 5})

	assert.Equal(t, []uint32{1, 3, 5, 1000000}, a)
	assert.Equal(t, []uint32{1, 2, 3, 5, 1000000}, Or(a, b))
	assert.Equal(t, []uint32{5, 1000000}, And(a, b))
	assert.Equal(t, []uint32{1, 3}, AndNot(a, b))
	assert.Equal(t, []uint32{1, 2, 3}, Xor(a, b))
}
