package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetClearTest(t *testing.T) {
	w := New()
	require.Len(t, w, Words)

	assert.True(t, Set(w, 10))
	assert.False(t, Set(w, 10), "second set must report no change")
	assert.True(t, Test(w, 10))
	assert.Equal(t, 1, Count(w))

	assert.True(t, Clear(w, 10))
	assert.False(t, Clear(w, 10))
	assert.False(t, Test(w, 10))
	assert.Equal(t, 0, Count(w))

	Set(w, 0)
	Set(w, 65535)
	assert.Equal(t, 2, Count(w))
	assert.True(t, Test(w, 65535))
}

func TestRanges(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi uint16
	}{
		{"single bit", 5, 5},
		{"single word", 0, 63},
		{"cross word", 60, 70},
		{"many words", 3, 1000},
		{"full segment", 0, 65535},
		{"tail", 65500, 65535},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New()
			width := int(tt.hi) - int(tt.lo) + 1

			assert.Equal(t, width, SetRange(w, tt.lo, tt.hi))
			assert.Equal(t, 0, SetRange(w, tt.lo, tt.hi))
			assert.Equal(t, width, Count(w))
			assert.Equal(t, width, CountRange(w, tt.lo, tt.hi))
			assert.Equal(t, 1, NumRuns(w))

			assert.Equal(t, -width, FlipRange(w, tt.lo, tt.hi))
			assert.Equal(t, 0, Count(w))
			assert.Equal(t, width, FlipRange(w, tt.lo, tt.hi))

			assert.Equal(t, width, ClearRange(w, tt.lo, tt.hi))
			assert.Equal(t, 0, Count(w))
			assert.Equal(t, 0, NumRuns(w))
		})
	}
}

func TestCombine(t *testing.T) {
	a, b := New(), New()
	SetRange(a, 0, 99)
	SetRange(b, 50, 149)

	dst := New()
	assert.Equal(t, 50, AndInto(dst, a, b))
	assert.Equal(t, 50, AndCount(a, b))
	assert.Equal(t, 150, OrInto(dst, a, b))
	assert.Equal(t, 150, OrCount(a, b))
	assert.Equal(t, 100, XorInto(dst, a, b))
	assert.Equal(t, 100, XorCount(a, b))
	assert.Equal(t, 50, AndNotInto(dst, a, b))
	assert.Equal(t, 50, AndNotCount(a, b))
	assert.True(t, Intersects(a, b))

	// dst aliasing an operand
	assert.Equal(t, 150, OrInto(a, a, b))
	assert.Equal(t, 150, Count(a))
}

func TestNumRunsAcrossWords(t *testing.T) {
	w := New()
	SetRange(w, 60, 67) // spans word boundary
	Set(w, 100)
	Set(w, 102)
	SetRange(w, 65530, 65535)
	assert.Equal(t, 4, NumRuns(w))
}

func TestNextSetAndClear(t *testing.T) {
	w := New()
	Set(w, 3)
	Set(w, 700)

	assert.Equal(t, 3, NextSet(w, 0))
	assert.Equal(t, 700, NextSet(w, 4))
	assert.Equal(t, -1, NextSet(w, 701))
	assert.Equal(t, -1, NextSet(w, 65536))

	assert.Equal(t, 0, NextClear(w, 0))
	assert.Equal(t, 4, NextClear(w, 3))

	SetRange(w, 0, 65535)
	assert.Equal(t, -1, NextClear(w, 0))
}

func TestForEachSelectRank(t *testing.T) {
	w := New()
	want := []uint16{1, 64, 65, 4000, 65535}
	for _, v := range want {
		Set(w, v)
	}

	var got []uint16
	assert.True(t, ForEach(w, func(v uint16) bool {
		got = append(got, v)
		return true
	}))
	assert.Equal(t, want, got)
	assert.Equal(t, want, AppendTo(nil, w))

	calls := 0
	assert.False(t, ForEach(w, func(uint16) bool {
		calls++
		return calls < 2
	}))
	assert.Equal(t, 2, calls)

	for i, v := range want {
		assert.Equal(t, int(v), Select(w, i))
		assert.Equal(t, i+1, Rank(w, v))
	}
	assert.Equal(t, -1, Select(w, len(want)))
	assert.Equal(t, 0, Rank(w, 0))
}

func BenchmarkAndCount(b *testing.B) {
	x, y := New(), New()
	for i := 0; i < 65536; i += 3 {
		Set(x, uint16(i))
	}
	for i := 0; i < 65536; i += 5 {
		Set(y, uint16(i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = AndCount(x, y)
	}
}
