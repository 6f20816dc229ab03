package bitmap

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hupe1980/chunkset/internal/chunk"
)

// Bitmap is a compressed set of uint32 values.
type Bitmap struct {
	keys   []uint16
	chunks []*chunk.Chunk
	cow    bool
}

// New returns an empty bitmap.
func New() *Bitmap {
	return &Bitmap{}
}

// Of returns a bitmap holding the given values.
func Of(values ...uint32) *Bitmap {
	return FromSlice(values)
}

// FromSlice builds a bitmap from unordered values. Duplicates are ignored and
// values is not modified.
func FromSlice(values []uint32) *Bitmap {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	b := New()
	for i := 0; i < len(sorted); {
		key := highbits(sorted[i])
		j := i + 1
		for j < len(sorted) && highbits(sorted[j]) == key {
			j++
		}
		residues := make([]uint16, j-i)
		for k, v := range sorted[i:j] {
			residues[k] = lowbits(v)
		}
		b.keys = append(b.keys, key)
		b.chunks = append(b.chunks, chunk.FromSorted(residues))
		i = j
	}
	return b
}

func highbits(v uint32) uint16 { return uint16(v >> 16) }
func lowbits(v uint32) uint16  { return uint16(v) }
func combine(key, residue uint16) uint32 {
	return uint32(key)<<16 | uint32(residue)
}

// SetCopyOnWrite enables or disables chunk sharing for Clone and the binary
// operations of b.
func (b *Bitmap) SetCopyOnWrite(enabled bool) { b.cow = enabled }

// CopyOnWrite reports whether chunk sharing is enabled.
func (b *Bitmap) CopyOnWrite() bool { return b.cow }

func (b *Bitmap) search(key uint16) (int, bool) {
	return slices.BinarySearch(b.keys, key)
}

// writable returns chunk i, cloning it first if another bitmap holds it.
func (b *Bitmap) writable(i int) *chunk.Chunk {
	c := b.chunks[i]
	if c.Shared() {
		n := c.Clone()
		c.Release()
		b.chunks[i] = n
		return n
	}
	return c
}

// lend returns chunk i for inclusion in another bitmap.
func (b *Bitmap) lend(i int) *chunk.Chunk {
	if b.cow {
		return b.chunks[i].Share()
	}
	return b.chunks[i].Clone()
}

// drop gives up this bitmap's hold on c.
func drop(c *chunk.Chunk) {
	if c.Shared() {
		c.Release()
	}
}

func (b *Bitmap) insertAt(i int, key uint16, c *chunk.Chunk) {
	b.keys = slices.Insert(b.keys, i, key)
	b.chunks = slices.Insert(b.chunks, i, c)
}

func (b *Bitmap) removeAt(i int) {
	b.keys = slices.Delete(b.keys, i, i+1)
	b.chunks = slices.Delete(b.chunks, i, i+1)
}

// chunkFor returns the index of a writable chunk for key, creating it if needed.
func (b *Bitmap) chunkFor(key uint16) int {
	i, ok := b.search(key)
	if ok {
		b.writable(i)
		return i
	}
	b.insertAt(i, key, chunk.New())
	return i
}

// Add inserts v and reports whether it was absent.
func (b *Bitmap) Add(v uint32) bool {
	i := b.chunkFor(highbits(v))
	return b.chunks[i].Add(lowbits(v))
}

// AddMany inserts all values.
func (b *Bitmap) AddMany(values ...uint32) {
	idx := -1
	var last uint16
	for _, v := range values {
		if key := highbits(v); idx < 0 || key != last {
			idx, last = b.chunkFor(key), key
		}
		b.chunks[idx].Add(lowbits(v))
	}
}

// AddRange inserts the half-open range [lo, hi). hi may be 1<<32.
func (b *Bitmap) AddRange(lo, hi uint64) {
	if hi > 1<<32 {
		hi = 1 << 32
	}
	if lo >= hi {
		return
	}
	last := hi - 1
	for key := lo >> 16; key <= last>>16; key++ {
		from, to := uint16(0), uint16(0xFFFF)
		if key == lo>>16 {
			from = uint16(lo)
		}
		if key == last>>16 {
			to = uint16(last)
		}
		i := b.chunkFor(uint16(key))
		b.chunks[i].AddRange(from, to)
	}
}

// Remove deletes v and reports whether it was present.
func (b *Bitmap) Remove(v uint32) bool {
	i, ok := b.search(highbits(v))
	if !ok || !b.chunks[i].Contains(lowbits(v)) {
		return false
	}
	c := b.writable(i)
	c.Remove(lowbits(v))
	if c.IsEmpty() {
		b.removeAt(i)
	}
	return true
}

// Clear removes all values.
func (b *Bitmap) Clear() {
	for _, c := range b.chunks {
		drop(c)
	}
	clear(b.chunks)
	b.keys, b.chunks = b.keys[:0], b.chunks[:0]
}

// Contains reports whether v is in the set.
func (b *Bitmap) Contains(v uint32) bool {
	i, ok := b.search(highbits(v))
	return ok && b.chunks[i].Contains(lowbits(v))
}

// Cardinality returns the number of values in the set.
func (b *Bitmap) Cardinality() uint64 {
	var n uint64
	for _, c := range b.chunks {
		n += uint64(c.Cardinality())
	}
	return n
}

// IsEmpty reports whether the set holds no values.
func (b *Bitmap) IsEmpty() bool { return len(b.chunks) == 0 }

// Minimum returns the smallest value, or false if the set is empty.
func (b *Bitmap) Minimum() (uint32, bool) {
	if len(b.chunks) == 0 {
		return 0, false
	}
	return combine(b.keys[0], b.chunks[0].Minimum()), true
}

// Maximum returns the largest value, or false if the set is empty.
func (b *Bitmap) Maximum() (uint32, bool) {
	n := len(b.chunks)
	if n == 0 {
		return 0, false
	}
	return combine(b.keys[n-1], b.chunks[n-1].Maximum()), true
}

// Rank returns the number of values <= v.
func (b *Bitmap) Rank(v uint32) uint64 {
	key := highbits(v)
	var n uint64
	for i, k := range b.keys {
		if k > key {
			break
		}
		if k == key {
			return n + uint64(b.chunks[i].Rank(lowbits(v)))
		}
		n += uint64(b.chunks[i].Cardinality())
	}
	return n
}

// Select returns the value at 0-based position r in ascending order.
func (b *Bitmap) Select(r uint64) (uint32, bool) {
	for i, c := range b.chunks {
		card := uint64(c.Cardinality())
		if r < card {
			low, ok := c.Select(int(r))
			return combine(b.keys[i], low), ok
		}
		r -= card
	}
	return 0, false
}

// Clone returns a copy of b. With copy-on-write enabled the copy shares
// chunks with b until either side writes to them.
func (b *Bitmap) Clone() *Bitmap {
	n := &Bitmap{
		keys:   slices.Clone(b.keys),
		chunks: make([]*chunk.Chunk, len(b.chunks)),
		cow:    b.cow,
	}
	for i := range b.chunks {
		n.chunks[i] = b.lend(i)
	}
	return n
}

// Equals reports whether both bitmaps hold the same values.
func (b *Bitmap) Equals(o *Bitmap) bool {
	if !slices.Equal(b.keys, o.keys) {
		return false
	}
	for i, c := range b.chunks {
		if c != o.chunks[i] && !c.Equals(o.chunks[i]) {
			return false
		}
	}
	return true
}

// RunOptimize converts every chunk to run form where that is strictly
// smaller, and reports whether any chunk changed.
func (b *Bitmap) RunOptimize() bool {
	changed := false
	for i, c := range b.chunks {
		if c.Shared() {
			n := c.Clone()
			if n.RunOptimize() {
				c.Release()
				b.chunks[i] = n
				changed = true
			}
			continue
		}
		if c.RunOptimize() {
			changed = true
		}
	}
	return changed
}

// ShrinkToFit drops excess buffer capacity and returns the bytes reclaimed.
// Shared chunks are left alone.
func (b *Bitmap) ShrinkToFit() int {
	saved := 0
	if extra := cap(b.keys) - len(b.keys); extra > 0 {
		b.keys = slices.Clip(slices.Clone(b.keys))
		saved += extra * 2
	}
	if extra := cap(b.chunks) - len(b.chunks); extra > 0 {
		b.chunks = slices.Clip(slices.Clone(b.chunks))
		saved += extra * 8
	}
	for _, c := range b.chunks {
		if !c.Shared() {
			saved += c.ShrinkToFit()
		}
	}
	return saved
}

// SizeInBytes returns the exact serialized size of b.
func (b *Bitmap) SizeInBytes() uint64 {
	n := uint64(headerBytes)
	for _, c := range b.chunks {
		n += uint64(c.SizeInBytes())
	}
	return n
}

// Stats describes the chunk composition of a bitmap.
type Stats struct {
	Cardinality  uint64
	Chunks       int
	SharedChunks int

	ArrayChunks  int
	BitmapChunks int
	RunChunks    int

	ArrayValues  uint64
	BitmapValues uint64
	RunValues    uint64

	ArrayBytes  uint64
	BitmapBytes uint64
	RunBytes    uint64

	// Runs is the number of intervals across run chunks.
	Runs int

	SizeInBytes uint64
}

// Stats returns the chunk composition of b.
func (b *Bitmap) Stats() Stats {
	s := Stats{Chunks: len(b.chunks), SizeInBytes: headerBytes}
	for _, c := range b.chunks {
		card, size := uint64(c.Cardinality()), uint64(c.SizeInBytes())
		s.Cardinality += card
		s.SizeInBytes += size
		if c.Shared() {
			s.SharedChunks++
		}
		switch c.Kind() {
		case chunk.Array:
			s.ArrayChunks++
			s.ArrayValues += card
			s.ArrayBytes += size
		case chunk.Bitmap:
			s.BitmapChunks++
			s.BitmapValues += card
			s.BitmapBytes += size
		case chunk.Run:
			s.RunChunks++
			s.RunValues += card
			s.RunBytes += size
			s.Runs += c.NumRuns()
		}
	}
	return s
}

// String renders up to the first 32 values.
func (b *Bitmap) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	n := 0
	b.ForEach(func(v uint32) bool {
		if n > 0 {
			sb.WriteByte(',')
		}
		if n == 32 {
			sb.WriteString("...")
			return false
		}
		fmt.Fprintf(&sb, "%d", v)
		n++
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}
