package chunk

import (
	"fmt"
	"math/bits"
	"sort"
	"sync/atomic"

	"github.com/hupe1980/chunkset/internal/bitset"
)

// Kind is the representation tag of a chunk. Its value is the wire tag.
type Kind uint8

const (
	// Array stores sorted residues.
	Array Kind = iota
	// Bitmap stores a 65536-bit word array.
	Bitmap
	// Run stores sorted, non-adjacent intervals.
	Run
)

func (k Kind) String() string {
	switch k {
	case Array:
		return "array"
	case Bitmap:
		return "bitmap"
	case Run:
		return "run"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

const (
	// ArrayMax is the largest cardinality stored in array form.
	ArrayMax = 4096

	// MaxCardinality is the number of distinct residues.
	MaxCardinality = 1 << 16

	// HeaderBytes is the per-chunk record overhead: key (2) + tag (1).
	HeaderBytes = 3
)

// Interval is an inclusive range [Start, Start+Length].
// Length is stored as last-start so a full chunk fits in 16 bits.
type Interval struct {
	Start  uint16
	Length uint16
}

// Last returns the last value covered by the interval.
func (iv Interval) Last() uint16 { return iv.Start + iv.Length }

func (iv Interval) card() int { return int(iv.Length) + 1 }

// Chunk is one key's residues.
type Chunk struct {
	kind  Kind
	card  int
	array []uint16
	words []uint64
	runs  []Interval

	// refs counts holders beyond the first.
	refs atomic.Int32
}

// New returns an empty array-form chunk.
func New() *Chunk {
	return &Chunk{kind: Array}
}

// FromSorted builds a chunk from strictly increasing residues.
// The slice is retained when the array form is chosen.
func FromSorted(values []uint16) *Chunk {
	if len(values) <= ArrayMax {
		return newArray(values)
	}
	w := bitset.New()
	for _, v := range values {
		bitset.Set(w, v)
	}
	return newBitmap(w, len(values))
}

// NewRange returns a chunk holding the inclusive range [lo, hi].
func NewRange(lo, hi uint16) *Chunk {
	return fromRuns([]Interval{{Start: lo, Length: hi - lo}})
}

func newArray(values []uint16) *Chunk {
	return &Chunk{kind: Array, card: len(values), array: values}
}

func newBitmap(words []uint64, card int) *Chunk {
	return &Chunk{kind: Bitmap, card: card, words: words}
}

func newRun(runs []Interval, card int) *Chunk {
	return &Chunk{kind: Run, card: card, runs: runs}
}

// fromWords picks the canonical array or bitmap form for a word array.
// words is retained when the bitmap form is chosen.
func fromWords(words []uint64, card int) *Chunk {
	if card <= ArrayMax {
		return newArray(bitset.AppendTo(make([]uint16, 0, card), words))
	}
	return newBitmap(words, card)
}

// bestOfWords picks the smallest of the three forms for a word array.
func bestOfWords(words []uint64, card int) *Chunk {
	if card == 0 {
		return New()
	}
	if nruns := bitset.NumRuns(words); runBytes(nruns) < naturalBytes(card) {
		return newRun(wordsToRuns(words, nruns), card)
	}
	return fromWords(words, card)
}

// fromRuns picks the smallest of the three forms for normalized intervals.
func fromRuns(runs []Interval) *Chunk {
	card := runsCardinality(runs)
	if card == 0 {
		return New()
	}
	if runBytes(len(runs)) < naturalBytes(card) {
		return newRun(runs, card)
	}
	if card <= ArrayMax {
		return newArray(runsToArray(runs, card))
	}
	return newBitmap(runsToWords(runs), card)
}

// Kind returns the current representation.
func (c *Chunk) Kind() Kind { return c.kind }

// Cardinality returns the number of residues.
func (c *Chunk) Cardinality() int { return c.card }

// IsEmpty reports whether the chunk holds no residues.
func (c *Chunk) IsEmpty() bool { return c.card == 0 }

// NumRuns returns the number of maximal runs in the chunk.
func (c *Chunk) NumRuns() int {
	switch c.kind {
	case Array:
		return arrayNumRuns(c.array)
	case Bitmap:
		return bitset.NumRuns(c.words)
	default:
		return len(c.runs)
	}
}

// Share registers an additional holder and returns c.
func (c *Chunk) Share() *Chunk {
	c.refs.Add(1)
	return c
}

// Release drops one additional holder. Called by a holder that cloned away.
func (c *Chunk) Release() {
	c.refs.Add(-1)
}

// Shared reports whether more than one holder references c.
func (c *Chunk) Shared() bool {
	return c.refs.Load() > 0
}

// Clone returns an exclusively owned deep copy.
func (c *Chunk) Clone() *Chunk {
	n := &Chunk{kind: c.kind, card: c.card}
	switch c.kind {
	case Array:
		n.array = append([]uint16(nil), c.array...)
	case Bitmap:
		n.words = append([]uint64(nil), c.words...)
	case Run:
		n.runs = append([]Interval(nil), c.runs...)
	}
	return n
}

// Contains reports whether residue v is present.
func (c *Chunk) Contains(v uint16) bool {
	switch c.kind {
	case Array:
		i := arraySearch(c.array, v)
		return i < len(c.array) && c.array[i] == v
	case Bitmap:
		return bitset.Test(c.words, v)
	default:
		_, ok := runSearch(c.runs, v)
		return ok
	}
}

// Add inserts v and reports whether the cardinality changed.
// An array that would exceed ArrayMax is converted to bitmap form first.
func (c *Chunk) Add(v uint16) bool {
	switch c.kind {
	case Array:
		i := arraySearch(c.array, v)
		if i < len(c.array) && c.array[i] == v {
			return false
		}
		if len(c.array) >= ArrayMax {
			c.toBitmap()
			bitset.Set(c.words, v)
			c.card++
			return true
		}
		c.array = append(c.array, 0)
		copy(c.array[i+1:], c.array[i:])
		c.array[i] = v
		c.card++
		return true
	case Bitmap:
		if bitset.Set(c.words, v) {
			c.card++
			return true
		}
		return false
	default:
		return c.runAdd(v)
	}
}

// Remove deletes v and reports whether the cardinality changed.
// A bitmap that drops to ArrayMax is converted back to array form.
func (c *Chunk) Remove(v uint16) bool {
	switch c.kind {
	case Array:
		i := arraySearch(c.array, v)
		if i >= len(c.array) || c.array[i] != v {
			return false
		}
		c.array = append(c.array[:i], c.array[i+1:]...)
		c.card--
		return true
	case Bitmap:
		if !bitset.Clear(c.words, v) {
			return false
		}
		c.card--
		if c.card <= ArrayMax {
			c.toArray()
		}
		return true
	default:
		return c.runRemove(v)
	}
}

// AddRange inserts the inclusive range [lo, hi] and returns the number of
// residues added. A run chunk stays in run form.
func (c *Chunk) AddRange(lo, hi uint16) int {
	before := c.card
	switch c.kind {
	case Run:
		c.runs = unionRuns(c.runs, []Interval{{Start: lo, Length: hi - lo}})
		c.card = runsCardinality(c.runs)
	case Array:
		width := int(hi-lo) + 1
		if c.card+width <= ArrayMax {
			r := make([]uint16, 0, width)
			for v := int(lo); v <= int(hi); v++ {
				r = append(r, uint16(v))
			}
			c.array = unionArrays(c.array, r)
			c.card = len(c.array)
			break
		}
		c.toBitmap()
		fallthrough
	case Bitmap:
		c.card += bitset.SetRange(c.words, lo, hi)
		if c.card <= ArrayMax {
			c.toArray()
		}
	}
	return c.card - before
}

func (c *Chunk) toBitmap() {
	w := c.materialize()
	c.kind, c.words, c.array, c.runs = Bitmap, w, nil, nil
}

func (c *Chunk) toArray() {
	var a []uint16
	switch c.kind {
	case Array:
		return
	case Bitmap:
		a = bitset.AppendTo(make([]uint16, 0, c.card), c.words)
	case Run:
		a = runsToArray(c.runs, c.card)
	}
	c.kind, c.array, c.words, c.runs = Array, a, nil, nil
}

// materialize returns a fresh word array holding the chunk's residues.
func (c *Chunk) materialize() []uint64 {
	switch c.kind {
	case Bitmap:
		return append([]uint64(nil), c.words...)
	case Run:
		return runsToWords(c.runs)
	default:
		w := bitset.New()
		for _, v := range c.array {
			bitset.Set(w, v)
		}
		return w
	}
}

// wordsView returns the residues as words without copying when possible.
// The result must not be modified.
func (c *Chunk) wordsView() []uint64 {
	if c.kind == Bitmap {
		return c.words
	}
	return c.materialize()
}

// SizeInBytes returns the exact serialized footprint of the chunk record.
func (c *Chunk) SizeInBytes() int {
	switch c.kind {
	case Array:
		return HeaderBytes + arrayBytes(c.card)
	case Bitmap:
		return HeaderBytes + bitmapBytes
	default:
		return HeaderBytes + runBytes(len(c.runs))
	}
}

// ShrinkToFit drops excess slice capacity and returns the bytes reclaimed.
func (c *Chunk) ShrinkToFit() int {
	switch c.kind {
	case Array:
		if extra := cap(c.array) - len(c.array); extra > 0 {
			c.array = append(make([]uint16, 0, len(c.array)), c.array...)
			return extra * 2
		}
	case Run:
		if extra := cap(c.runs) - len(c.runs); extra > 0 {
			c.runs = append(make([]Interval, 0, len(c.runs)), c.runs...)
			return extra * 4
		}
	}
	return 0
}

// Minimum returns the smallest residue. The chunk must not be empty.
func (c *Chunk) Minimum() uint16 {
	switch c.kind {
	case Array:
		return c.array[0]
	case Bitmap:
		return uint16(bitset.NextSet(c.words, 0))
	default:
		return c.runs[0].Start
	}
}

// Maximum returns the largest residue. The chunk must not be empty.
func (c *Chunk) Maximum() uint16 {
	switch c.kind {
	case Array:
		return c.array[len(c.array)-1]
	case Bitmap:
		for i := bitset.Words - 1; i >= 0; i-- {
			if w := c.words[i]; w != 0 {
				return uint16(i<<6 + 63 - bits.LeadingZeros64(w))
			}
		}
		return 0
	default:
		return c.runs[len(c.runs)-1].Last()
	}
}

// Rank returns the number of residues <= v.
func (c *Chunk) Rank(v uint16) int {
	switch c.kind {
	case Array:
		return sort.Search(len(c.array), func(i int) bool { return c.array[i] > v })
	case Bitmap:
		return bitset.Rank(c.words, v)
	default:
		n := 0
		for _, iv := range c.runs {
			if iv.Start > v {
				break
			}
			if v <= iv.Last() {
				return n + int(v-iv.Start) + 1
			}
			n += iv.card()
		}
		return n
	}
}

// Select returns the residue at position r (0-based) in ascending order.
func (c *Chunk) Select(r int) (uint16, bool) {
	if r < 0 || r >= c.card {
		return 0, false
	}
	switch c.kind {
	case Array:
		return c.array[r], true
	case Bitmap:
		return uint16(bitset.Select(c.words, r)), true
	default:
		for _, iv := range c.runs {
			if r < iv.card() {
				return iv.Start + uint16(r), true
			}
			r -= iv.card()
		}
		return 0, false
	}
}

// ForEach calls fn for every residue in ascending order until fn returns false.
// It reports whether the iteration ran to completion.
func (c *Chunk) ForEach(fn func(uint16) bool) bool {
	switch c.kind {
	case Array:
		for _, v := range c.array {
			if !fn(v) {
				return false
			}
		}
		return true
	case Bitmap:
		return bitset.ForEach(c.words, fn)
	default:
		for _, iv := range c.runs {
			for v := int(iv.Start); v <= int(iv.Last()); v++ {
				if !fn(uint16(v)) {
					return false
				}
			}
		}
		return true
	}
}

// Equals reports whether both chunks hold the same residues.
func (c *Chunk) Equals(o *Chunk) bool {
	if c.card != o.card {
		return false
	}
	if c.kind == o.kind {
		switch c.kind {
		case Array:
			return equalSlices(c.array, o.array)
		case Bitmap:
			return equalSlices(c.words, o.words)
		default:
			return equalSlices(c.runs, o.runs)
		}
	}
	return c.AndCardinality(o) == c.card
}

func equalSlices[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (c *Chunk) String() string {
	return fmt.Sprintf("chunk{%s card=%d bytes=%d}", c.kind, c.card, c.SizeInBytes())
}
