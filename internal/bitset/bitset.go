package bitset

import (
	"math/bits"
)

const (
	// segmentBits determines the size of each segment.
	// 16 bits = 65536 bits per segment.
	segmentBits = 16
	segmentSize = 1 << segmentBits // 65536 bits

	// Words is the number of uint64 words in a segment.
	// 65536 bits / 64 bits/word = 1024 words.
	Words = segmentSize / 64

	// Bytes is the in-memory and serialized size of a segment.
	Bytes = Words * 8
)

// New allocates a zeroed segment.
func New() []uint64 {
	return make([]uint64, Words)
}

// Set sets bit i and reports whether it was previously clear.
func Set(w []uint64, i uint16) bool {
	idx := i >> 6
	mask := uint64(1) << (i & 63)
	prev := w[idx]
	w[idx] = prev | mask
	return prev&mask == 0
}

// Clear clears bit i and reports whether it was previously set.
func Clear(w []uint64, i uint16) bool {
	idx := i >> 6
	mask := uint64(1) << (i & 63)
	prev := w[idx]
	w[idx] = prev &^ mask
	return prev&mask != 0
}

// Test returns true if bit i is set.
func Test(w []uint64, i uint16) bool {
	return w[i>>6]&(uint64(1)<<(i&63)) != 0
}

// Count returns the number of set bits.
func Count(w []uint64) int {
	count := 0
	for _, v := range w {
		if v != 0 {
			count += bits.OnesCount64(v)
		}
	}
	return count
}

// AndInto stores a & b into dst and returns the cardinality of the result.
// dst may alias a or b.
func AndInto(dst, a, b []uint64) int {
	count := 0
	for i := range dst[:Words] {
		v := a[i] & b[i]
		dst[i] = v
		count += bits.OnesCount64(v)
	}
	return count
}

// OrInto stores a | b into dst and returns the cardinality of the result.
func OrInto(dst, a, b []uint64) int {
	count := 0
	for i := range dst[:Words] {
		v := a[i] | b[i]
		dst[i] = v
		count += bits.OnesCount64(v)
	}
	return count
}

// XorInto stores a ^ b into dst and returns the cardinality of the result.
func XorInto(dst, a, b []uint64) int {
	count := 0
	for i := range dst[:Words] {
		v := a[i] ^ b[i]
		dst[i] = v
		count += bits.OnesCount64(v)
	}
	return count
}

// AndNotInto stores a &^ b into dst and returns the cardinality of the result.
func AndNotInto(dst, a, b []uint64) int {
	count := 0
	for i := range dst[:Words] {
		v := a[i] &^ b[i]
		dst[i] = v
		count += bits.OnesCount64(v)
	}
	return count
}

// AndCount returns popcount(a & b) without storing the result.
func AndCount(a, b []uint64) int {
	count := 0
	for i := range a[:Words] {
		count += bits.OnesCount64(a[i] & b[i])
	}
	return count
}

// OrCount returns popcount(a | b) without storing the result.
func OrCount(a, b []uint64) int {
	count := 0
	for i := range a[:Words] {
		count += bits.OnesCount64(a[i] | b[i])
	}
	return count
}

// XorCount returns popcount(a ^ b) without storing the result.
func XorCount(a, b []uint64) int {
	count := 0
	for i := range a[:Words] {
		count += bits.OnesCount64(a[i] ^ b[i])
	}
	return count
}

// AndNotCount returns popcount(a &^ b) without storing the result.
func AndNotCount(a, b []uint64) int {
	count := 0
	for i := range a[:Words] {
		count += bits.OnesCount64(a[i] &^ b[i])
	}
	return count
}

// Intersects reports whether a & b has any bit set.
func Intersects(a, b []uint64) bool {
	for i := range a[:Words] {
		if a[i]&b[i] != 0 {
			return true
		}
	}
	return false
}

// rangeMasks returns the first/last word indexes and edge masks for the
// inclusive bit range [lo, hi].
func rangeMasks(lo, hi uint16) (first, last int, firstMask, lastMask uint64) {
	first = int(lo >> 6)
	last = int(hi >> 6)
	firstMask = ^uint64(0) << (lo & 63)
	lastMask = ^uint64(0) >> (63 - (hi & 63))
	return first, last, firstMask, lastMask
}

// SetRange sets the inclusive range [lo, hi] and returns the number of bits
// that changed from 0 to 1.
func SetRange(w []uint64, lo, hi uint16) int {
	first, last, fm, lm := rangeMasks(lo, hi)
	if first == last {
		m := fm & lm
		added := bits.OnesCount64(m &^ w[first])
		w[first] |= m
		return added
	}
	added := bits.OnesCount64(fm &^ w[first])
	w[first] |= fm
	for i := first + 1; i < last; i++ {
		added += 64 - bits.OnesCount64(w[i])
		w[i] = ^uint64(0)
	}
	added += bits.OnesCount64(lm &^ w[last])
	w[last] |= lm
	return added
}

// ClearRange clears the inclusive range [lo, hi] and returns the number of
// bits that changed from 1 to 0.
func ClearRange(w []uint64, lo, hi uint16) int {
	first, last, fm, lm := rangeMasks(lo, hi)
	if first == last {
		m := fm & lm
		removed := bits.OnesCount64(m & w[first])
		w[first] &^= m
		return removed
	}
	removed := bits.OnesCount64(fm & w[first])
	w[first] &^= fm
	for i := first + 1; i < last; i++ {
		removed += bits.OnesCount64(w[i])
		w[i] = 0
	}
	removed += bits.OnesCount64(lm & w[last])
	w[last] &^= lm
	return removed
}

// FlipRange inverts the inclusive range [lo, hi] and returns the change in
// cardinality.
func FlipRange(w []uint64, lo, hi uint16) int {
	before := CountRange(w, lo, hi)
	first, last, fm, lm := rangeMasks(lo, hi)
	if first == last {
		w[first] ^= fm & lm
	} else {
		w[first] ^= fm
		for i := first + 1; i < last; i++ {
			w[i] = ^w[i]
		}
		w[last] ^= lm
	}
	width := int(hi) - int(lo) + 1
	return width - 2*before
}

// CountRange returns the number of set bits in the inclusive range [lo, hi].
func CountRange(w []uint64, lo, hi uint16) int {
	first, last, fm, lm := rangeMasks(lo, hi)
	if first == last {
		return bits.OnesCount64(w[first] & fm & lm)
	}
	count := bits.OnesCount64(w[first] & fm)
	for i := first + 1; i < last; i++ {
		count += bits.OnesCount64(w[i])
	}
	return count + bits.OnesCount64(w[last]&lm)
}

// NumRuns returns the number of maximal runs of consecutive set bits.
func NumRuns(w []uint64) int {
	runs := 0
	next := w[0]
	for i := 0; i < Words-1; i++ {
		word := next
		next = w[i+1]
		runs += bits.OnesCount64((word << 1) &^ word)
		runs += int((word >> 63) &^ next)
	}
	word := w[Words-1]
	runs += bits.OnesCount64((word << 1) &^ word)
	runs += int(word >> 63)
	return runs
}

// NextSet returns the index of the next set bit at or after i, or -1.
func NextSet(w []uint64, i int) int {
	if i >= segmentSize {
		return -1
	}
	idx := i >> 6
	word := w[idx] & (^uint64(0) << (uint(i) & 63))
	for {
		if word != 0 {
			return idx<<6 + bits.TrailingZeros64(word)
		}
		idx++
		if idx >= Words {
			return -1
		}
		word = w[idx]
	}
}

// NextClear returns the index of the next clear bit at or after i, or -1.
func NextClear(w []uint64, i int) int {
	if i >= segmentSize {
		return -1
	}
	idx := i >> 6
	word := ^w[idx] & (^uint64(0) << (uint(i) & 63))
	for {
		if word != 0 {
			return idx<<6 + bits.TrailingZeros64(word)
		}
		idx++
		if idx >= Words {
			return -1
		}
		word = ^w[idx]
	}
}

// ForEach calls fn for every set bit in ascending order until fn returns false.
// It reports whether the iteration ran to completion.
func ForEach(w []uint64, fn func(uint16) bool) bool {
	for idx, word := range w[:Words] {
		base := idx << 6
		for word != 0 {
			t := bits.TrailingZeros64(word)
			if !fn(uint16(base + t)) {
				return false
			}
			word &= word - 1
		}
	}
	return true
}

// AppendTo appends the set bits in ascending order to dst.
func AppendTo(dst []uint16, w []uint64) []uint16 {
	for idx, word := range w[:Words] {
		base := idx << 6
		for word != 0 {
			dst = append(dst, uint16(base+bits.TrailingZeros64(word)))
			word &= word - 1
		}
	}
	return dst
}

// Select returns the index of the (r+1)-th set bit, or -1 if r >= Count(w).
func Select(w []uint64, r int) int {
	for idx, word := range w[:Words] {
		c := bits.OnesCount64(word)
		if r < c {
			for ; r > 0; r-- {
				word &= word - 1
			}
			return idx<<6 + bits.TrailingZeros64(word)
		}
		r -= c
	}
	return -1
}

// Rank returns the number of set bits in [0, i].
func Rank(w []uint64, i uint16) int {
	idx := int(i >> 6)
	count := 0
	for _, word := range w[:idx] {
		count += bits.OnesCount64(word)
	}
	return count + bits.OnesCount64(w[idx]&(^uint64(0)>>(63-(i&63))))
}
