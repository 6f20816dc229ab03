package bench

import (
	"slices"
)

// vectorEncoding is a sorted slice of distinct values.
type vectorEncoding struct{}

func (vectorEncoding) Name() string { return "vector" }

func (vectorEncoding) Build(values []uint32, _ Config) Set {
	v := slices.Clone(values)
	slices.Sort(v)
	return vector(slices.Compact(v))
}

func (vectorEncoding) WideUnion(sets []Set) Set {
	var acc vector
	for _, s := range sets {
		acc = merge(acc, s.(vector), true, true, true)
	}
	return acc
}

func (vectorEncoding) WideUnionHeap(sets []Set) Set {
	return heapUnion(sets, func() Set { return vector(nil) })
}

type vector []uint32

// merge walks both sorted slices and keeps values found only in a
// (onlyA), only in b (onlyB), or in both.
func merge(a, b vector, onlyA, both, onlyB bool) vector {
	out := make(vector, 0, max(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			if onlyA {
				out = append(out, a[i])
			}
			i++
		case a[i] > b[j]:
			if onlyB {
				out = append(out, b[j])
			}
			j++
		default:
			if both {
				out = append(out, a[i])
			}
			i++
			j++
		}
	}
	if onlyA {
		out = append(out, a[i:]...)
	}
	if onlyB {
		out = append(out, b[j:]...)
	}
	return out
}

// intersectCount counts the values present in both sorted slices.
func intersectCount(a, b vector) uint64 {
	var n uint64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			n++
			i++
			j++
		}
	}
	return n
}

func (s vector) Contains(v uint32) bool {
	_, ok := slices.BinarySearch(s, v)
	return ok
}

func (s vector) Cardinality() uint64 { return uint64(len(s)) }
func (s vector) SizeInBytes() uint64 { return uint64(len(s)) * 4 }

func (s vector) And(o Set) Set    { return merge(s, o.(vector), false, true, false) }
func (s vector) Or(o Set) Set     { return merge(s, o.(vector), true, true, true) }
func (s vector) AndNot(o Set) Set { return merge(s, o.(vector), true, false, false) }
func (s vector) Xor(o Set) Set    { return merge(s, o.(vector), true, false, true) }

func (s vector) AndCardinality(o Set) uint64 { return intersectCount(s, o.(vector)) }

func (s vector) OrCardinality(o Set) uint64 {
	other := o.(vector)
	return uint64(len(s)+len(other)) - intersectCount(s, other)
}

func (s vector) AndNotCardinality(o Set) uint64 {
	return uint64(len(s)) - intersectCount(s, o.(vector))
}

func (s vector) XorCardinality(o Set) uint64 {
	other := o.(vector)
	return uint64(len(s)+len(other)) - 2*intersectCount(s, other)
}

func (s vector) ForEach(fn func(uint32)) {
	for _, v := range s {
		fn(v)
	}
}
