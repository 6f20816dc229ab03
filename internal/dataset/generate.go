package dataset

import (
	"errors"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// ErrTooMany is returned when more distinct values are requested than the range holds.
var ErrTooMany = errors.New("cannot draw that many distinct values from the range")

// Rand is the source of randomness for the generators.
// *math/rand.Rand and testutil.RNG satisfy it.
type Rand interface {
	Uint32() uint32
	Float64() float64
}

// below returns a value in [0, bound) by masked rejection sampling.
func below(r Rand, bound uint32) uint32 {
	limit := bound - 1
	mask := limit
	mask |= mask >> 1
	mask |= mask >> 2
	mask |= mask >> 4
	mask |= mask >> 8
	mask |= mask >> 16
	for {
		if v := r.Uint32() & mask; v <= limit {
			return v
		}
	}
}

// Uniform returns n distinct values drawn uniformly from [0, limit), sorted.
func Uniform(r Rand, n, limit uint32) ([]uint32, error) {
	if n > limit {
		return nil, ErrTooMany
	}
	out := make([]uint32, 0, n)
	return appendUniform(r, out, n, 0, limit), nil
}

func appendUniform(r Rand, dst []uint32, n, lo, hi uint32) []uint32 {
	span := hi - lo
	switch {
	case n == 0:
		return dst
	case 2*uint64(n) > uint64(span):
		// Dense: draw the complement and emit what it misses.
		skip := bitset.New(uint(span))
		drawBits(r, skip, span-n, span)
		for v := range span {
			if !skip.Test(uint(v)) {
				dst = append(dst, lo+v)
			}
		}
		return dst
	case uint64(n)*1024 > uint64(span):
		picked := bitset.New(uint(span))
		drawBits(r, picked, n, span)
		for v, ok := picked.NextSet(0); ok; v, ok = picked.NextSet(v + 1) {
			dst = append(dst, lo+uint32(v))
		}
		return dst
	default:
		seen := make(map[uint32]struct{}, n)
		start := len(dst)
		for uint32(len(seen)) < n {
			v := below(r, span)
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				dst = append(dst, lo+v)
			}
		}
		slices.Sort(dst[start:])
		return dst
	}
}

func drawBits(r Rand, b *bitset.BitSet, n, span uint32) {
	for card := uint32(0); card < n; {
		v := uint(below(r, span))
		if !b.Test(v) {
			b.Set(v)
			card++
		}
	}
}

// Clustered returns n distinct values from [0, limit), sorted, following the
// Anh-Moffat clustered model: the range is split at a random cut and each
// half receives half the values, filled uniformly or recursively clustered.
func Clustered(r Rand, n, limit uint32) ([]uint32, error) {
	if n > limit {
		return nil, ErrTooMany
	}
	out := make([]uint32, 0, n)
	return appendClustered(r, out, n, 0, limit), nil
}

func appendClustered(r Rand, dst []uint32, n, lo, hi uint32) []uint32 {
	span := hi - lo
	if span == n || n < 10 {
		return appendUniform(r, dst, n, lo, hi)
	}

	// The cut leaves at least n-half values of room above it.
	half := n / 2
	cut := half + below(r, span-n+1)

	switch p := r.Float64(); {
	case p <= 0.25:
		dst = appendUniform(r, dst, half, lo, lo+cut)
		return appendClustered(r, dst, n-half, lo+cut, hi)
	case p <= 0.5:
		dst = appendClustered(r, dst, half, lo, lo+cut)
		return appendUniform(r, dst, n-half, lo+cut, hi)
	default:
		dst = appendClustered(r, dst, half, lo, lo+cut)
		return appendClustered(r, dst, n-half, lo+cut, hi)
	}
}
