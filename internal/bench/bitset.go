package bench

import (
	"github.com/bits-and-blooms/bitset"
)

// bitsetEncoding is an uncompressed bit vector sized to the largest value.
type bitsetEncoding struct{}

func (bitsetEncoding) Name() string { return "bitset" }

func (bitsetEncoding) Build(values []uint32, _ Config) Set {
	b := bitset.New(0)
	for _, v := range values {
		b.Set(uint(v))
	}
	return &bitsetSet{b: b}
}

func (bitsetEncoding) WideUnion(sets []Set) Set {
	if len(sets) == 0 {
		return &bitsetSet{b: bitset.New(0)}
	}
	acc := bs(sets[0]).Clone()
	for _, s := range sets[1:] {
		acc.InPlaceUnion(bs(s))
	}
	return &bitsetSet{b: acc}
}

func (bitsetEncoding) WideUnionHeap(sets []Set) Set {
	return heapUnion(sets, func() Set { return &bitsetSet{b: bitset.New(0)} })
}

type bitsetSet struct {
	b *bitset.BitSet
}

func bs(o Set) *bitset.BitSet { return o.(*bitsetSet).b }

func (s *bitsetSet) Contains(v uint32) bool { return s.b.Test(uint(v)) }
func (s *bitsetSet) Cardinality() uint64    { return uint64(s.b.Count()) }
func (s *bitsetSet) SizeInBytes() uint64    { return uint64(s.b.BinaryStorageSize()) }

func (s *bitsetSet) And(o Set) Set    { return &bitsetSet{b: s.b.Intersection(bs(o))} }
func (s *bitsetSet) Or(o Set) Set     { return &bitsetSet{b: s.b.Union(bs(o))} }
func (s *bitsetSet) AndNot(o Set) Set { return &bitsetSet{b: s.b.Difference(bs(o))} }
func (s *bitsetSet) Xor(o Set) Set    { return &bitsetSet{b: s.b.SymmetricDifference(bs(o))} }

func (s *bitsetSet) AndCardinality(o Set) uint64 {
	return uint64(s.b.IntersectionCardinality(bs(o)))
}

func (s *bitsetSet) OrCardinality(o Set) uint64 {
	return uint64(s.b.UnionCardinality(bs(o)))
}

func (s *bitsetSet) AndNotCardinality(o Set) uint64 {
	return uint64(s.b.DifferenceCardinality(bs(o)))
}

func (s *bitsetSet) XorCardinality(o Set) uint64 {
	return uint64(s.b.SymmetricDifferenceCardinality(bs(o)))
}

func (s *bitsetSet) ForEach(fn func(uint32)) {
	for i, ok := s.b.NextSet(0); ok; i, ok = s.b.NextSet(i + 1) {
		fn(uint32(i))
	}
}
