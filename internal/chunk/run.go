package chunk

import (
	"github.com/hupe1980/chunkset/internal/bitset"
)

// runSearch returns the index of the last interval starting at or before v
// (-1 if none) and whether that interval contains v.
func runSearch(runs []Interval, v uint16) (int, bool) {
	lo, hi := 0, len(runs)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if runs[mid].Start <= v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	i := lo - 1
	return i, i >= 0 && v <= runs[i].Last()
}

func runsCardinality(runs []Interval) int {
	n := 0
	for _, iv := range runs {
		n += iv.card()
	}
	return n
}

func runsToWords(runs []Interval) []uint64 {
	w := bitset.New()
	for _, iv := range runs {
		bitset.SetRange(w, iv.Start, iv.Last())
	}
	return w
}

func runsToArray(runs []Interval, card int) []uint16 {
	a := make([]uint16, 0, card)
	for _, iv := range runs {
		for v := int(iv.Start); v <= int(iv.Last()); v++ {
			a = append(a, uint16(v))
		}
	}
	return a
}

// wordsToRuns extracts the maximal runs of set bits.
func wordsToRuns(w []uint64, nruns int) []Interval {
	runs := make([]Interval, 0, nruns)
	for start := bitset.NextSet(w, 0); start >= 0; {
		end := bitset.NextClear(w, start)
		if end < 0 {
			end = MaxCardinality
		}
		runs = append(runs, Interval{Start: uint16(start), Length: uint16(end - 1 - start)})
		if end >= MaxCardinality {
			break
		}
		start = bitset.NextSet(w, end)
	}
	return runs
}

// appendInterval appends iv to runs, merging with the last interval when
// they overlap or touch. Intervals must arrive ordered by Start.
func appendInterval(runs []Interval, iv Interval) []Interval {
	if n := len(runs); n > 0 {
		last := &runs[n-1]
		if int(iv.Start) <= int(last.Last())+1 {
			if iv.Last() > last.Last() {
				last.Length = iv.Last() - last.Start
			}
			return runs
		}
	}
	return append(runs, iv)
}

func unionRuns(a, b []Interval) []Interval {
	out := make([]Interval, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		if j >= len(b) || (i < len(a) && a[i].Start <= b[j].Start) {
			out = appendInterval(out, a[i])
			i++
		} else {
			out = appendInterval(out, b[j])
			j++
		}
	}
	return out
}

func intersectRuns(a, b []Interval) []Interval {
	var out []Interval
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		lo := max(a[i].Start, b[j].Start)
		hi := min(a[i].Last(), b[j].Last())
		if lo <= hi {
			out = append(out, Interval{Start: lo, Length: hi - lo})
		}
		if a[i].Last() < b[j].Last() {
			i++
		} else {
			j++
		}
	}
	return out
}

func intersectRunsCount(a, b []Interval) int {
	n, i, j := 0, 0, 0
	for i < len(a) && j < len(b) {
		lo := max(a[i].Start, b[j].Start)
		hi := min(a[i].Last(), b[j].Last())
		if lo <= hi {
			n += int(hi-lo) + 1
		}
		if a[i].Last() < b[j].Last() {
			i++
		} else {
			j++
		}
	}
	return n
}

// countInRuns returns the number of set bits of w covered by runs.
func countInRuns(w []uint64, runs []Interval) int {
	n := 0
	for _, iv := range runs {
		n += bitset.CountRange(w, iv.Start, iv.Last())
	}
	return n
}

func (c *Chunk) runAdd(v uint16) bool {
	i, found := runSearch(c.runs, v)
	if found {
		return false
	}
	prevAdj := i >= 0 && int(c.runs[i].Last())+1 == int(v)
	nextAdj := i+1 < len(c.runs) && int(c.runs[i+1].Start) == int(v)+1
	switch {
	case prevAdj && nextAdj:
		c.runs[i].Length += c.runs[i+1].Length + 2
		c.runs = append(c.runs[:i+1], c.runs[i+2:]...)
	case prevAdj:
		c.runs[i].Length++
	case nextAdj:
		c.runs[i+1].Start--
		c.runs[i+1].Length++
	default:
		c.runs = append(c.runs, Interval{})
		copy(c.runs[i+2:], c.runs[i+1:])
		c.runs[i+1] = Interval{Start: v}
	}
	c.card++
	return true
}

func (c *Chunk) runRemove(v uint16) bool {
	i, found := runSearch(c.runs, v)
	if !found {
		return false
	}
	iv := c.runs[i]
	switch {
	case iv.Length == 0:
		c.runs = append(c.runs[:i], c.runs[i+1:]...)
	case v == iv.Start:
		c.runs[i].Start++
		c.runs[i].Length--
	case v == iv.Last():
		c.runs[i].Length--
	default:
		c.runs[i].Length = v - 1 - iv.Start
		c.runs = append(c.runs, Interval{})
		copy(c.runs[i+2:], c.runs[i+1:])
		c.runs[i+1] = Interval{Start: v + 1, Length: iv.Last() - v - 1}
	}
	c.card--
	return true
}
