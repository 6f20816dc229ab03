package bench

import (
	"github.com/RoaringBitmap/roaring/v2"
)

type roaringEncoding struct{}

func (roaringEncoding) Name() string { return "roaring" }

func (roaringEncoding) Build(values []uint32, cfg Config) Set {
	rb := roaring.BitmapOf(values...)
	rb.SetCopyOnWrite(cfg.CopyOnWrite)
	if cfg.RunOptimize {
		rb.RunOptimize()
	}
	return &roaringSet{rb: rb}
}

func (roaringEncoding) WideUnion(sets []Set) Set {
	return &roaringSet{rb: roaring.FastOr(unwrapRoaring(sets)...)}
}

func (roaringEncoding) WideUnionHeap(sets []Set) Set {
	return &roaringSet{rb: roaring.HeapOr(unwrapRoaring(sets)...)}
}

func unwrapRoaring(sets []Set) []*roaring.Bitmap {
	out := make([]*roaring.Bitmap, len(sets))
	for i, s := range sets {
		out[i] = s.(*roaringSet).rb
	}
	return out
}

type roaringSet struct {
	rb *roaring.Bitmap
}

func rs(o Set) *roaring.Bitmap { return o.(*roaringSet).rb }

func (s *roaringSet) Contains(v uint32) bool { return s.rb.Contains(v) }
func (s *roaringSet) Cardinality() uint64    { return s.rb.GetCardinality() }
func (s *roaringSet) SizeInBytes() uint64    { return s.rb.GetSerializedSizeInBytes() }

func (s *roaringSet) And(o Set) Set    { return &roaringSet{rb: roaring.And(s.rb, rs(o))} }
func (s *roaringSet) Or(o Set) Set     { return &roaringSet{rb: roaring.Or(s.rb, rs(o))} }
func (s *roaringSet) AndNot(o Set) Set { return &roaringSet{rb: roaring.AndNot(s.rb, rs(o))} }
func (s *roaringSet) Xor(o Set) Set    { return &roaringSet{rb: roaring.Xor(s.rb, rs(o))} }

func (s *roaringSet) AndCardinality(o Set) uint64 { return s.rb.AndCardinality(rs(o)) }
func (s *roaringSet) OrCardinality(o Set) uint64  { return s.rb.OrCardinality(rs(o)) }

func (s *roaringSet) AndNotCardinality(o Set) uint64 {
	return s.rb.GetCardinality() - s.rb.AndCardinality(rs(o))
}

func (s *roaringSet) XorCardinality(o Set) uint64 {
	other := rs(o)
	return s.rb.GetCardinality() + other.GetCardinality() - 2*s.rb.AndCardinality(other)
}

func (s *roaringSet) ForEach(fn func(uint32)) {
	s.rb.Iterate(func(v uint32) bool {
		fn(v)
		return true
	})
}
