package chunk

import (
	"math/bits"

	"github.com/hupe1980/chunkset/internal/bitset"
)

// Iterator walks a chunk's residues in ascending order.
// The chunk must not be modified while an iterator is in use.
type Iterator struct {
	c    *Chunk
	i    int    // array index, word index or run index
	word uint64 // remaining bits of words[i]
	off  int    // offset within runs[i]
}

// Iterator returns a fresh iterator positioned before the first residue.
func (c *Chunk) Iterator() Iterator {
	it := Iterator{c: c}
	if c.kind == Bitmap {
		it.word = c.words[0]
		it.skipEmptyWords()
	}
	return it
}

func (it *Iterator) skipEmptyWords() {
	for it.word == 0 && it.i < bitset.Words-1 {
		it.i++
		it.word = it.c.words[it.i]
	}
}

// HasNext reports whether Next will return a residue.
func (it *Iterator) HasNext() bool {
	switch it.c.kind {
	case Array:
		return it.i < len(it.c.array)
	case Bitmap:
		return it.word != 0
	default:
		return it.i < len(it.c.runs)
	}
}

// Next returns the next residue. HasNext must be true.
func (it *Iterator) Next() uint16 {
	switch it.c.kind {
	case Array:
		v := it.c.array[it.i]
		it.i++
		return v
	case Bitmap:
		v := uint16(it.i<<6 + bits.TrailingZeros64(it.word))
		it.word &= it.word - 1
		it.skipEmptyWords()
		return v
	default:
		iv := it.c.runs[it.i]
		v := iv.Start + uint16(it.off)
		it.off++
		if it.off > int(iv.Length) {
			it.i++
			it.off = 0
		}
		return v
	}
}

// AdvanceIfNeeded skips residues smaller than minval.
func (it *Iterator) AdvanceIfNeeded(minval uint16) {
	switch it.c.kind {
	case Array:
		if it.i < len(it.c.array) && it.c.array[it.i] < minval {
			it.i += arraySearch(it.c.array[it.i:], minval)
		}
	case Bitmap:
		if !it.HasNext() {
			return
		}
		cur := it.i<<6 + bits.TrailingZeros64(it.word)
		if cur >= int(minval) {
			return
		}
		next := bitset.NextSet(it.c.words, int(minval))
		if next < 0 {
			it.i, it.word = bitset.Words-1, 0
			return
		}
		it.i = next >> 6
		it.word = it.c.words[it.i] & (^uint64(0) << (uint(next) & 63))
	default:
		for it.i < len(it.c.runs) {
			iv := it.c.runs[it.i]
			if iv.Last() < minval {
				it.i++
				it.off = 0
				continue
			}
			if cur := int(iv.Start) + it.off; cur < int(minval) {
				it.off = int(minval - iv.Start)
			}
			return
		}
	}
}
