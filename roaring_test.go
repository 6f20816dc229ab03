package chunkset

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/chunkset/testutil"
)

func TestRoaringInterop(t *testing.T) {
	values := testutil.NewRNG(3).Mixed(30000)
	want := testutil.Distinct(values)

	rb := roaring.BitmapOf(values...)
	bm := FromRoaring(rb)
	assert.Equal(t, rb.GetCardinality(), bm.Cardinality())
	assert.Equal(t, want, bm.ToArray())

	back := ToRoaring(bm)
	assert.True(t, rb.Equals(back))
}

func TestRoaringInteropRuns(t *testing.T) {
	bm := FromRange(10, 200000)
	bm.RunOptimize()
	rb := ToRoaring(bm)
	assert.Equal(t, uint64(199990), rb.GetCardinality())
	assert.True(t, rb.HasRunCompression())
	assert.True(t, bm.Equals(FromRoaring(rb)))
}

func TestRoaringInteropNil(t *testing.T) {
	assert.True(t, FromRoaring(nil).IsEmpty())
	assert.True(t, ToRoaring(nil).IsEmpty())
}

// The set algebra agrees with the reference implementation.
func TestDifferentialAgainstRoaring(t *testing.T) {
	rng := testutil.NewRNG(11)
	for i := 0; i < 5; i++ {
		a := rng.Mixed(5000 + rng.Intn(5000))
		b := rng.Mixed(5000 + rng.Intn(5000))
		ca, cb := FromSlice(a), FromSlice(b)
		if i%2 == 1 {
			ca.RunOptimize()
		}
		ra, rb := roaring.BitmapOf(a...), roaring.BitmapOf(b...)

		assert.Equal(t, roaring.And(ra, rb).ToArray(), ca.And(cb).ToArray())
		assert.Equal(t, roaring.Or(ra, rb).ToArray(), ca.Or(cb).ToArray())
		assert.Equal(t, roaring.AndNot(ra, rb).ToArray(), ca.AndNot(cb).ToArray())
		assert.Equal(t, roaring.Xor(ra, rb).ToArray(), ca.Xor(cb).ToArray())

		assert.Equal(t, ra.AndCardinality(rb), ca.AndCardinality(cb))
		assert.Equal(t, ra.OrCardinality(rb), ca.OrCardinality(cb))
		assert.Equal(t, ra.Intersects(rb), ca.Intersects(cb))
	}
}
