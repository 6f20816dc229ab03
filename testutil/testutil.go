package testutil

import (
	"math/rand"
	"slices"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint32 returns a pseudo-random uint32.
func (r *RNG) Uint32() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint32()
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Uint32s returns n values drawn uniformly from [0, limit), duplicates included.
// A limit of 0 draws from the full uint32 range.
func (r *RNG) Uint32s(n int, limit uint32) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]uint32, n)
	for i := range out {
		if limit == 0 {
			out[i] = r.rand.Uint32()
		} else {
			out[i] = uint32(r.rand.Int63n(int64(limit)))
		}
	}
	return out
}

// Dense returns every value in [lo, hi) with probability p, in ascending order.
func (r *RNG) Dense(lo, hi uint32, p float64) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]uint32, 0, int(float64(hi-lo)*p)+1)
	for v := uint64(lo); v < uint64(hi); v++ {
		if r.rand.Float64() < p {
			out = append(out, uint32(v))
		}
	}
	return out
}

// Runs returns n stretches of consecutive values, each at most maxLen long,
// starting at random positions below limit.
// Stretches may overlap, so the result can contain duplicates.
func (r *RNG) Runs(n, maxLen int, limit uint32) []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []uint32
	for range n {
		start := uint64(r.rand.Int63n(int64(limit)))
		length := uint64(1 + r.rand.Intn(maxLen))
		for v := start; v < start+length && v <= 0xFFFFFFFF; v++ {
			out = append(out, uint32(v))
		}
	}
	return out
}

// Mixed concatenates sparse, dense and run-shaped values so a single set
// exercises all three chunk forms.
func (r *RNG) Mixed(n int) []uint32 {
	out := r.Uint32s(n, 1<<26)
	out = append(out, r.Dense(3<<16, 5<<16, 0.4)...)
	out = append(out, r.Runs(n/100+1, 5000, 1<<24)...)
	return out
}

// Distinct returns the sorted distinct values of values. The input is not modified.
func Distinct(values []uint32) []uint32 {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

func membership(sorted []uint32) map[uint32]struct{} {
	m := make(map[uint32]struct{}, len(sorted))
	for _, v := range sorted {
		m[v] = struct{}{}
	}
	return m
}

func filter(values []uint32, in map[uint32]struct{}, keep bool) []uint32 {
	out := make([]uint32, 0, len(values))
	for _, v := range values {
		if _, ok := in[v]; ok == keep {
			out = append(out, v)
		}
	}
	return out
}

// And returns the intersection of two sorted distinct slices.
func And(a, b []uint32) []uint32 {
	return filter(a, membership(b), true)
}

// Or returns the union of two sorted distinct slices.
func Or(a, b []uint32) []uint32 {
	return Distinct(append(slices.Clone(a), b...))
}

// AndNot returns the values of a missing from b.
func AndNot(a, b []uint32) []uint32 {
	return filter(a, membership(b), false)
}

// Xor returns the symmetric difference of two sorted distinct slices.
func Xor(a, b []uint32) []uint32 {
	return Distinct(append(AndNot(a, b), AndNot(b, a)...))
}
