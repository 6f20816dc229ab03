package bitmap

import (
	"iter"

	"github.com/hupe1980/chunkset/internal/chunk"
)

// Iterator walks a bitmap in ascending order.
// The bitmap must not be modified while an iterator is in use.
type Iterator struct {
	b   *Bitmap
	i   int
	key uint32
	it  chunk.Iterator
}

// Iterator returns a fresh iterator positioned before the smallest value.
func (b *Bitmap) Iterator() *Iterator {
	it := &Iterator{b: b}
	it.load()
	return it
}

func (it *Iterator) load() {
	if it.i < len(it.b.chunks) {
		it.key = uint32(it.b.keys[it.i]) << 16
		it.it = it.b.chunks[it.i].Iterator()
	}
}

// HasNext reports whether Next will return a value.
func (it *Iterator) HasNext() bool {
	for it.i < len(it.b.chunks) {
		if it.it.HasNext() {
			return true
		}
		it.i++
		it.load()
	}
	return false
}

// Next returns the next value. HasNext must be true.
func (it *Iterator) Next() uint32 {
	return it.key | uint32(it.it.Next())
}

// AdvanceIfNeeded skips values smaller than minval.
func (it *Iterator) AdvanceIfNeeded(minval uint32) {
	key := highbits(minval)
	for it.i < len(it.b.chunks) && it.b.keys[it.i] < key {
		it.i++
		it.load()
	}
	if it.i < len(it.b.chunks) && it.b.keys[it.i] == key {
		it.it.AdvanceIfNeeded(lowbits(minval))
	}
}

// ForEach calls fn for every value in ascending order until fn returns false.
func (b *Bitmap) ForEach(fn func(uint32) bool) {
	for i, c := range b.chunks {
		key := uint32(b.keys[i]) << 16
		if !c.ForEach(func(low uint16) bool { return fn(key | uint32(low)) }) {
			return
		}
	}
}

// All returns an iterator over the values in ascending order.
func (b *Bitmap) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		b.ForEach(yield)
	}
}

// ToArray returns the values in ascending order.
func (b *Bitmap) ToArray() []uint32 {
	out := make([]uint32, 0, b.Cardinality())
	b.ForEach(func(v uint32) bool {
		out = append(out, v)
		return true
	})
	return out
}
