package chunkset

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// interopBatch is the number of values moved per call between the two libraries.
const interopBatch = 4096

// FromRoaring returns a set holding the values of rb. rb is not modified.
func FromRoaring(rb *roaring.Bitmap) *Bitmap {
	out := New()
	if rb == nil {
		return out
	}
	buf := make([]uint32, interopBatch)
	it := rb.ManyIterator()
	for n := it.NextMany(buf); n > 0; n = it.NextMany(buf) {
		out.AddMany(buf[:n]...)
	}
	return out
}

// ToRoaring returns a roaring bitmap holding the values of bm, run-optimized
// when bm holds run chunks.
func ToRoaring(bm *Bitmap) *roaring.Bitmap {
	rb := roaring.New()
	if bm == nil {
		return rb
	}
	buf := make([]uint32, 0, interopBatch)
	bm.ForEach(func(v uint32) bool {
		buf = append(buf, v)
		if len(buf) == cap(buf) {
			rb.AddMany(buf)
			buf = buf[:0]
		}
		return true
	})
	rb.AddMany(buf)
	if bm.Stats().RunChunks > 0 {
		rb.RunOptimize()
	}
	return rb
}
