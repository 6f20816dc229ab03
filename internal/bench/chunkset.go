package bench

import (
	"github.com/hupe1980/chunkset/internal/bitmap"
)

type chunksetEncoding struct{}

func (chunksetEncoding) Name() string { return "chunkset" }

func (chunksetEncoding) Build(values []uint32, cfg Config) Set {
	b := bitmap.FromSlice(values)
	b.SetCopyOnWrite(cfg.CopyOnWrite)
	if cfg.RunOptimize {
		b.RunOptimize()
	}
	return &chunksetSet{b: b}
}

func (chunksetEncoding) WideUnion(sets []Set) Set {
	return &chunksetSet{b: bitmap.OrMany(unwrapChunksets(sets)...)}
}

func (chunksetEncoding) WideUnionHeap(sets []Set) Set {
	return &chunksetSet{b: bitmap.HeapOr(unwrapChunksets(sets)...)}
}

func unwrapChunksets(sets []Set) []*bitmap.Bitmap {
	out := make([]*bitmap.Bitmap, len(sets))
	for i, s := range sets {
		out[i] = s.(*chunksetSet).b
	}
	return out
}

type chunksetSet struct {
	b *bitmap.Bitmap
}

func cs(o Set) *bitmap.Bitmap { return o.(*chunksetSet).b }

func (s *chunksetSet) Contains(v uint32) bool { return s.b.Contains(v) }
func (s *chunksetSet) Cardinality() uint64    { return s.b.Cardinality() }
func (s *chunksetSet) SizeInBytes() uint64    { return s.b.SizeInBytes() }
func (s *chunksetSet) ShrinkToFit() int       { return s.b.ShrinkToFit() }

func (s *chunksetSet) And(o Set) Set    { return &chunksetSet{b: s.b.And(cs(o))} }
func (s *chunksetSet) Or(o Set) Set     { return &chunksetSet{b: s.b.Or(cs(o))} }
func (s *chunksetSet) AndNot(o Set) Set { return &chunksetSet{b: s.b.AndNot(cs(o))} }
func (s *chunksetSet) Xor(o Set) Set    { return &chunksetSet{b: s.b.Xor(cs(o))} }

func (s *chunksetSet) AndCardinality(o Set) uint64    { return s.b.AndCardinality(cs(o)) }
func (s *chunksetSet) OrCardinality(o Set) uint64     { return s.b.OrCardinality(cs(o)) }
func (s *chunksetSet) AndNotCardinality(o Set) uint64 { return s.b.AndNotCardinality(cs(o)) }
func (s *chunksetSet) XorCardinality(o Set) uint64    { return s.b.XorCardinality(cs(o)) }

func (s *chunksetSet) ForEach(fn func(uint32)) {
	s.b.ForEach(func(v uint32) bool {
		fn(v)
		return true
	})
}
