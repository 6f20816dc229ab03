package chunk

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/chunkset/internal/bitset"
)

func sortedUnique(values []uint16) []uint16 {
	seen := make(map[uint16]struct{}, len(values))
	out := make([]uint16, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// newArr, newBmp and newRun force a representation regardless of size so
// every dispatch path is reachable from small fixtures.
func newArr(values ...uint16) *Chunk {
	return newArray(sortedUnique(values))
}

func newBmp(values ...uint16) *Chunk {
	w := bitset.New()
	for _, v := range values {
		bitset.Set(w, v)
	}
	return newBitmap(w, bitset.Count(w))
}

func newRunOf(values ...uint16) *Chunk {
	a := sortedUnique(values)
	return newRun(arrayToRuns(a), len(a))
}

func toSlice(c *Chunk) []uint16 {
	out := make([]uint16, 0, c.Cardinality())
	c.ForEach(func(v uint16) bool {
		out = append(out, v)
		return true
	})
	return out
}

func TestAddContainsRemove(t *testing.T) {
	c := New()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Add(7))
	assert.False(t, c.Add(7))
	assert.True(t, c.Add(3))
	assert.True(t, c.Contains(3))
	assert.True(t, c.Contains(7))
	assert.False(t, c.Contains(5))
	assert.Equal(t, []uint16{3, 7}, toSlice(c))

	assert.True(t, c.Remove(3))
	assert.False(t, c.Remove(3))
	assert.Equal(t, 1, c.Cardinality())
}

func TestArrayToBitmapThreshold(t *testing.T) {
	c := New()
	for i := 0; i < ArrayMax; i++ {
		require.True(t, c.Add(uint16(i*2)))
	}
	assert.Equal(t, Array, c.Kind())

	require.True(t, c.Add(1))
	assert.Equal(t, Bitmap, c.Kind())
	assert.Equal(t, ArrayMax+1, c.Cardinality())
	assert.Equal(t, ArrayMax+1, bitset.Count(c.words))

	require.True(t, c.Remove(1))
	assert.Equal(t, Array, c.Kind())
	assert.Equal(t, ArrayMax, c.Cardinality())
}

func TestFromSortedPicksForm(t *testing.T) {
	dense := make([]uint16, 5000)
	for i := range dense {
		dense[i] = uint16(i)
	}
	c := FromSorted(dense)
	assert.Equal(t, Bitmap, c.Kind())
	assert.Equal(t, 5000, c.Cardinality())
	assert.Equal(t, 8192+HeaderBytes, c.SizeInBytes())

	sparse := make([]uint16, 100)
	for i := range sparse {
		sparse[i] = uint16(i * 600)
	}
	c = FromSorted(sparse)
	assert.Equal(t, Array, c.Kind())
	assert.Equal(t, HeaderBytes+2+2*100, c.SizeInBytes())
}

func TestRepresentationTransparency(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := make([]uint16, 3000)
	for i := range values {
		values[i] = uint16(rng.Intn(1 << 16))
	}
	c := newArr(values...)
	ref := newArr(values...)

	c.toBitmap()
	require.Equal(t, Bitmap, c.Kind())
	require.Equal(t, ref.Cardinality(), bitset.Count(c.words))
	c.toArray()
	require.Equal(t, Array, c.Kind())

	for v := 0; v < MaxCardinality; v++ {
		if c.Contains(uint16(v)) != ref.Contains(uint16(v)) {
			t.Fatalf("Contains(%d) differs after array->bitmap->array", v)
		}
	}
}

type fixture struct {
	name string
	vals []uint16
}

func fixtures() []fixture {
	rng := rand.New(rand.NewSource(42))
	random := make([]uint16, 300)
	for i := range random {
		random[i] = uint16(rng.Intn(2000))
	}
	var runsy []uint16
	for s := 0; s < 60000; s += 3000 {
		for v := s; v < s+200; v++ {
			runsy = append(runsy, uint16(v))
		}
	}
	return []fixture{
		{"empty", nil},
		{"small", []uint16{1, 2, 3, 10}},
		{"boundary", []uint16{0, 1, 65535}},
		{"random", random},
		{"runs", runsy},
	}
}

func builders() map[string]func(...uint16) *Chunk {
	return map[string]func(...uint16) *Chunk{
		"arr": newArr,
		"bmp": newBmp,
		"run": newRunOf,
	}
}

func reference(op string, a, b []uint16) []uint16 {
	var inA, inB [MaxCardinality]bool
	for _, v := range a {
		inA[v] = true
	}
	for _, v := range b {
		inB[v] = true
	}
	out := []uint16{}
	for v := 0; v < MaxCardinality; v++ {
		x, y := inA[v], inB[v]
		var keep bool
		switch op {
		case "and":
			keep = x && y
		case "or":
			keep = x || y
		case "andnot":
			keep = x && !y
		case "xor":
			keep = x != y
		}
		if keep {
			out = append(out, uint16(v))
		}
	}
	return out
}

func TestPairwiseOps(t *testing.T) {
	fx := fixtures()
	for ak, abuild := range builders() {
		for bk, bbuild := range builders() {
			for _, fa := range fx {
				for _, fb := range fx {
					name := fmt.Sprintf("%s(%s)_%s(%s)", ak, fa.name, bk, fb.name)
					t.Run(name, func(t *testing.T) {
						a, b := abuild(fa.vals...), bbuild(fb.vals...)
						for _, op := range []string{"and", "or", "andnot", "xor"} {
							want := reference(op, toSlice(a), toSlice(b))
							var got *Chunk
							var card int
							switch op {
							case "and":
								got, card = a.And(b), a.AndCardinality(b)
							case "or":
								got, card = a.Or(b), a.OrCardinality(b)
							case "andnot":
								got, card = a.AndNot(b), a.AndNotCardinality(b)
							case "xor":
								got, card = a.Xor(b), a.XorCardinality(b)
							}
							require.Equal(t, want, toSlice(got), op)
							require.Equal(t, len(want), got.Cardinality(), op)
							require.Equal(t, len(want), card, "%s cardinality shortcut", op)
						}
						assert.Equal(t, a.AndCardinality(b) > 0, a.Intersects(b))
					})
				}
			}
		}
	}
}

func TestResultsAreCanonical(t *testing.T) {
	seq := func(lo, hi, step int) []uint16 {
		var out []uint16
		for v := lo; v <= hi; v += step {
			out = append(out, uint16(v))
		}
		return out
	}
	operands := map[string]*Chunk{
		"sparse":    FromSorted(seq(0, 65000, 650)),
		"dense":     FromSorted(seq(0, 20000, 2)),
		"denser":    FromSorted(seq(1, 30001, 3)),
		"halfarray": FromSorted(seq(10000, 14000, 1)),
		"range":     NewRange(5000, 40000),
		"tinyrange": NewRange(100, 110),
	}
	ops := map[string]func(a, b *Chunk) *Chunk{
		"and": (*Chunk).And, "or": (*Chunk).Or, "andnot": (*Chunk).AndNot, "xor": (*Chunk).Xor,
	}
	for an, a := range operands {
		for bn, b := range operands {
			for on, op := range ops {
				got := op(a, b)
				if got.Kind() == Run {
					assert.Less(t, got.SizeInBytes()-HeaderBytes, naturalBytes(got.Cardinality()),
						"%s %s %s", an, on, bn)
					continue
				}
				assert.Equal(t, got.Cardinality() <= ArrayMax, got.Kind() == Array,
					"%s %s %s -> %s card=%d", an, on, bn, got.Kind(), got.Cardinality())
			}
		}
	}
}

func TestOperandsAreNotModified(t *testing.T) {
	for _, op := range []func(a, b *Chunk) *Chunk{
		(*Chunk).And, (*Chunk).Or, (*Chunk).AndNot, (*Chunk).Xor,
	} {
		for _, build := range builders() {
			a := build(1, 2, 3, 500, 501, 502)
			b := newBmp(2, 3, 4, 9000)
			before := toSlice(a)
			beforeB := toSlice(b)
			_ = op(a, b)
			_ = op(b, a)
			assert.Equal(t, before, toSlice(a))
			assert.Equal(t, beforeB, toSlice(b))
		}
	}
}

func TestIOr(t *testing.T) {
	base := make([]uint16, 0, 5000)
	for i := 0; i < 5000; i++ {
		base = append(base, uint16(i*3))
	}
	for name, build := range builders() {
		t.Run(name, func(t *testing.T) {
			c := FromSorted(append([]uint16(nil), base...))
			require.Equal(t, Bitmap, c.Kind())
			o := build(1, 2, 60000, 60001, 60002)
			want := reference("or", toSlice(c), toSlice(o))

			got := c.IOr(o)
			assert.Same(t, c, got, "bitmap receiver is updated in place")
			assert.Equal(t, want, toSlice(got))
			assert.Equal(t, len(want), got.Cardinality())
		})
	}

	arr := newArr(1, 5)
	got := arr.IOr(newArr(2))
	assert.Equal(t, []uint16{1, 2, 5}, toSlice(got))
}

func TestRunOptimize(t *testing.T) {
	c := New()
	for v := 100; v < 4000; v++ {
		c.Add(uint16(v))
	}
	require.Equal(t, Array, c.Kind())
	before := c.SizeInBytes()

	assert.True(t, c.RunOptimize())
	assert.Equal(t, Run, c.Kind())
	assert.Less(t, c.SizeInBytes(), before)
	assert.Equal(t, HeaderBytes+2+4, c.SizeInBytes())
	size := c.SizeInBytes()

	assert.False(t, c.RunOptimize(), "second pass is a no-op")
	assert.Equal(t, size, c.SizeInBytes())
	assert.Equal(t, 3900, c.Cardinality())

	// scattered residues stay in array form
	s := newArr(1, 3, 5, 7, 9)
	assert.False(t, s.RunOptimize())
	assert.Equal(t, Array, s.Kind())

	// a dense bitmap with few runs becomes a run list
	b := FromSorted(toSlice(NewRange(0, 9999)))
	require.Equal(t, Bitmap, b.Kind())
	assert.True(t, b.RunOptimize())
	assert.Equal(t, []Interval{{Start: 0, Length: 9999}}, b.runs)

	// a run chunk that no longer benefits reverts to its canonical form
	r := newRunOf(1, 3, 5, 7)
	assert.True(t, r.RunOptimize())
	assert.Equal(t, Array, r.Kind())
}

func TestRunAddRemove(t *testing.T) {
	c := newRunOf(10, 11, 12, 20, 21)
	require.Equal(t, Run, c.Kind())

	assert.False(t, c.Add(11))
	assert.True(t, c.Add(13)) // extends first run
	assert.True(t, c.Add(19)) // extends second run downwards
	assert.True(t, c.Add(30)) // new run
	assert.Equal(t, []Interval{{10, 3}, {19, 2}, {30, 0}}, c.runs)

	for v := uint16(14); v <= 18; v++ {
		c.Add(v)
	}
	assert.Equal(t, []Interval{{10, 11}, {30, 0}}, c.runs)

	assert.True(t, c.Remove(15)) // split
	assert.True(t, c.Remove(10)) // trim start
	assert.True(t, c.Remove(21)) // trim end
	assert.True(t, c.Remove(30)) // drop single
	assert.False(t, c.Remove(30))
	assert.Equal(t, []Interval{{11, 3}, {16, 4}}, c.runs)
	assert.Equal(t, 9, c.Cardinality())
	assert.Equal(t, runsCardinality(c.runs), c.Cardinality())
}

func TestMinMaxRankSelect(t *testing.T) {
	for name, build := range builders() {
		t.Run(name, func(t *testing.T) {
			c := build(4, 5, 6, 100, 65535)
			assert.Equal(t, uint16(4), c.Minimum())
			assert.Equal(t, uint16(65535), c.Maximum())
			assert.Equal(t, 0, c.Rank(3))
			assert.Equal(t, 2, c.Rank(5))
			assert.Equal(t, 3, c.Rank(99))
			assert.Equal(t, 5, c.Rank(65535))

			for i, want := range []uint16{4, 5, 6, 100, 65535} {
				got, ok := c.Select(i)
				require.True(t, ok)
				assert.Equal(t, want, got)
			}
			_, ok := c.Select(5)
			assert.False(t, ok)
		})
	}
}

func TestIterator(t *testing.T) {
	want := []uint16{0, 1, 2, 64, 700, 701, 65535}
	for name, build := range builders() {
		t.Run(name, func(t *testing.T) {
			c := build(want...)
			for pass := 0; pass < 2; pass++ {
				it := c.Iterator()
				var got []uint16
				for it.HasNext() {
					got = append(got, it.Next())
				}
				assert.Equal(t, want, got, "pass %d", pass)
			}

			it := c.Iterator()
			it.AdvanceIfNeeded(65)
			require.True(t, it.HasNext())
			assert.Equal(t, uint16(700), it.Next())
			it.AdvanceIfNeeded(2)
			assert.Equal(t, uint16(701), it.Next())
			it.AdvanceIfNeeded(65535)
			assert.Equal(t, uint16(65535), it.Next())
			assert.False(t, it.HasNext())
		})
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	cases := map[string]*Chunk{
		"array":  newArr(1, 9, 4000),
		"bitmap": FromSorted(toSlice(NewRange(0, 4999))),
		"run":    newRunOf(0, 1, 2, 3, 100, 101, 65535),
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			buf := c.AppendPayload(nil)
			assert.Equal(t, c.SizeInBytes()-HeaderBytes, len(buf))

			got, n, err := DecodePayload(c.Kind(), append(buf, 0xFF))
			require.NoError(t, err)
			assert.Equal(t, len(buf), n)
			assert.True(t, c.Equals(got))
			assert.Equal(t, c.Kind(), got.Kind())

			_, _, err = DecodePayload(c.Kind(), buf[:len(buf)-1])
			assert.ErrorIs(t, err, ErrTruncated)
		})
	}
}

func TestDecodePayloadErrors(t *testing.T) {
	_, _, err := DecodePayload(Kind(9), []byte{1, 0})
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, _, err = DecodePayload(Array, []byte{0, 0})
	assert.ErrorIs(t, err, ErrEmpty)

	_, _, err = DecodePayload(Array, []byte{2, 0, 5, 0, 5, 0})
	assert.ErrorIs(t, err, ErrUnordered)

	// adjacent runs must have been merged
	_, _, err = DecodePayload(Run, []byte{2, 0, 0, 0, 1, 0, 2, 0, 0, 0})
	assert.ErrorIs(t, err, ErrUnordered)

	// run past the end of the chunk
	_, _, err = DecodePayload(Run, []byte{1, 0, 0xF0, 0xFF, 0xFF, 0x00})
	assert.ErrorIs(t, err, ErrUnordered)

	_, _, err = DecodePayload(Bitmap, make([]byte, bitset.Bytes))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestShareRelease(t *testing.T) {
	c := newArr(1, 2)
	assert.False(t, c.Shared())
	c.Share()
	assert.True(t, c.Shared())

	clone := c.Clone()
	assert.False(t, clone.Shared())
	c.Release()
	assert.False(t, c.Shared())

	clone.Add(3)
	assert.False(t, c.Contains(3))
}

func TestShrinkToFit(t *testing.T) {
	c := newArray(make([]uint16, 2, 64))
	c.array[1] = 1
	assert.Equal(t, 124, c.ShrinkToFit())
	assert.Equal(t, 0, c.ShrinkToFit())
	assert.Equal(t, 2, cap(c.array))
}

func BenchmarkAndCardinality(b *testing.B) {
	x := FromSorted(toSlice(NewRange(0, 30000)))
	y := newArr(1, 100, 20000, 40000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = x.AndCardinality(y)
	}
}

func TestAddRange(t *testing.T) {
	c := newArr(5, 100)
	assert.Equal(t, 10, c.AddRange(0, 10))
	assert.Equal(t, Array, c.Kind())
	assert.Equal(t, 12, c.Cardinality())

	assert.Equal(t, 5000, c.AddRange(1000, 5999))
	assert.Equal(t, Bitmap, c.Kind())
	assert.Equal(t, 5012, c.Cardinality())
	assert.Equal(t, 5012, bitset.Count(c.words))

	// overlapping range merges into the array
	s := newArr(1, 2, 3)
	assert.Equal(t, 1, s.AddRange(0, 3))
	assert.Equal(t, Array, s.Kind())
	assert.Equal(t, []uint16{0, 1, 2, 3}, s.array)

	r := newRunOf(10, 11, 12, 40)
	assert.Equal(t, 27, r.AddRange(13, 39))
	assert.Equal(t, Run, r.Kind())
	assert.Equal(t, []Interval{{Start: 10, Length: 30}}, r.runs)

	full := New()
	assert.Equal(t, MaxCardinality, full.AddRange(0, 65535))
	assert.Equal(t, MaxCardinality, full.Cardinality())
}

func TestPayloadSize(t *testing.T) {
	for name, c := range map[string]*Chunk{
		"array":  newArr(1, 2, 3),
		"bitmap": FromSorted(toSlice(NewRange(0, 4999))),
		"run":    newRunOf(1, 2, 3, 9),
	} {
		buf := c.AppendPayload(nil)
		n, err := PayloadSize(c.Kind(), buf[:PayloadPrefix])
		require.NoError(t, err, name)
		assert.Equal(t, len(buf), n, name)
	}
	_, err := PayloadSize(Array, []byte{1})
	assert.ErrorIs(t, err, ErrTruncated)
	_, err = PayloadSize(Kind(3), nil)
	assert.ErrorIs(t, err, ErrUnknownKind)
}
