package bench

import (
	"fmt"
	"slices"

	"github.com/hupe1980/chunkset/internal/queue"
)

// Config controls how an Encoding builds its sets.
type Config struct {
	// RunOptimize converts chunks to run form where that is smaller.
	RunOptimize bool
	// CopyOnWrite lets results share chunks with their inputs.
	CopyOnWrite bool
}

// Set is one encoded integer list. Binary operations only accept sets built
// by the same Encoding.
type Set interface {
	Contains(v uint32) bool
	Cardinality() uint64
	// SizeInBytes is the serialized or estimated in-memory size.
	SizeInBytes() uint64

	And(o Set) Set
	Or(o Set) Set
	AndNot(o Set) Set
	Xor(o Set) Set

	AndCardinality(o Set) uint64
	OrCardinality(o Set) uint64
	AndNotCardinality(o Set) uint64
	XorCardinality(o Set) uint64

	// ForEach calls fn for every value in ascending order, or in
	// unspecified order for unordered encodings.
	ForEach(fn func(uint32))
}

// Encoding builds sets of one representation.
type Encoding interface {
	Name() string
	Build(values []uint32, cfg Config) Set
	// WideUnion returns the union of all sets by the encoding's sequential method.
	WideUnion(sets []Set) Set
	// WideUnionHeap returns the union of all sets, merging the smallest first.
	WideUnionHeap(sets []Set) Set
}

// Shrinker is implemented by sets that can release spare capacity.
type Shrinker interface {
	// ShrinkToFit returns the number of bytes released.
	ShrinkToFit() int
}

var encodings = map[string]Encoding{
	"chunkset": chunksetEncoding{},
	"roaring":  roaringEncoding{},
	"bitset":   bitsetEncoding{},
	"hashset":  hashsetEncoding{},
	"vector":   vectorEncoding{},
}

// EncodingByName returns a registered encoding.
func EncodingByName(name string) (Encoding, error) {
	e, ok := encodings[name]
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q, try one of %v", name, EncodingNames())
	}
	return e, nil
}

// EncodingNames returns the registered encoding names, sorted.
func EncodingNames() []string {
	names := make([]string, 0, len(encodings))
	for name := range encodings {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// heapUnion merges the two sets of smallest cardinality until one remains.
func heapUnion(sets []Set, empty func() Set) Set {
	if len(sets) == 0 {
		return empty()
	}
	q := queue.New[Set](len(sets))
	for _, s := range sets {
		q.Push(s, s.Cardinality())
	}
	for q.Len() > 1 {
		x, _ := q.Pop()
		y, _ := q.Pop()
		m := x.Value.Or(y.Value)
		q.Push(m, m.Cardinality())
	}
	last, _ := q.Pop()
	return last.Value
}
