package bench

import (
	"fmt"
	"strings"
)

// Mode selects the operation a benchmark run repeats.
type Mode string

// Pairwise modes combine each set with its successor in file order.
const (
	Intersection       Mode = "intersection"
	IntersectionCount  Mode = "intersectioncount"
	Union              Mode = "union"
	UnionCount         Mode = "unioncount"
	Difference         Mode = "difference"
	DifferenceCount    Mode = "differencecount"
	SymDifference      Mode = "symdifference"
	SymDifferenceCount Mode = "symdifferencecount"
	WideUnion          Mode = "wideunion"
	WideUnionHeap      Mode = "wideunionheap"
	Access             Mode = "access"
	Iterate            Mode = "iterate"
)

// Modes lists every mode in display order.
var Modes = []Mode{
	Intersection, IntersectionCount,
	Union, UnionCount,
	Difference, DifferenceCount,
	SymDifference, SymDifferenceCount,
	WideUnion, WideUnionHeap,
	Access, Iterate,
}

// ParseMode resolves a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return "", fmt.Errorf("mode: %q, try one of %s", s, strings.Join(names, ", "))
}

// pass runs one repetition of mode over sets and returns a checksum that
// keeps the work observable.
func pass(mode Mode, enc Encoding, sets []Set, maxValue uint32) uint64 {
	var sum uint64
	pairs := func(fn func(a, b Set) uint64) {
		for i := 0; i+1 < len(sets); i++ {
			sum += fn(sets[i], sets[i+1])
		}
	}

	switch mode {
	case Intersection:
		pairs(func(a, b Set) uint64 { return a.And(b).Cardinality() })
	case IntersectionCount:
		pairs(func(a, b Set) uint64 { return a.AndCardinality(b) })
	case Union:
		pairs(func(a, b Set) uint64 { return a.Or(b).Cardinality() })
	case UnionCount:
		pairs(func(a, b Set) uint64 { return a.OrCardinality(b) })
	case Difference:
		pairs(func(a, b Set) uint64 { return a.AndNot(b).Cardinality() })
	case DifferenceCount:
		pairs(func(a, b Set) uint64 { return a.AndNotCardinality(b) })
	case SymDifference:
		pairs(func(a, b Set) uint64 { return a.Xor(b).Cardinality() })
	case SymDifferenceCount:
		pairs(func(a, b Set) uint64 { return a.XorCardinality(b) })
	case WideUnion:
		sum = enc.WideUnion(sets).Cardinality()
	case WideUnionHeap:
		sum = enc.WideUnionHeap(sets).Cardinality()
	case Access:
		probes := [3]uint32{maxValue / 4, maxValue / 2, uint32(3 * uint64(maxValue) / 4)}
		for _, s := range sets {
			for _, p := range probes {
				if s.Contains(p) {
					sum++
				}
			}
		}
	case Iterate:
		for _, s := range sets {
			s.ForEach(func(uint32) { sum++ })
		}
	}
	return sum
}
