package chunk

import (
	"github.com/hupe1980/chunkset/internal/bitset"
)

// And returns the intersection of c and o as a new chunk.
func (c *Chunk) And(o *Chunk) *Chunk {
	switch {
	case c.kind == Array && o.kind == Array:
		return newArray(intersectArrays(c.array, o.array))
	case c.kind == Array:
		return newArray(filterArray(c.array, o, true))
	case o.kind == Array:
		return newArray(filterArray(o.array, c, true))
	case c.kind == Bitmap && o.kind == Bitmap:
		w := bitset.New()
		return fromWords(w, bitset.AndInto(w, c.words, o.words))
	case c.kind == Run && o.kind == Run:
		return fromRuns(intersectRuns(c.runs, o.runs))
	default:
		w := c.materialize()
		return bestOfWords(w, bitset.AndInto(w, w, o.wordsView()))
	}
}

// Or returns the union of c and o as a new chunk.
func (c *Chunk) Or(o *Chunk) *Chunk {
	switch {
	case c.kind == Array && o.kind == Array:
		if c.card+o.card <= ArrayMax {
			return newArray(unionArrays(c.array, o.array))
		}
		w := c.materialize()
		card := c.card
		for _, v := range o.array {
			if bitset.Set(w, v) {
				card++
			}
		}
		return fromWords(w, card)
	case c.kind == Run || o.kind == Run:
		return orWithRun(c, o)
	case c.kind == Bitmap && o.kind == Bitmap:
		w := bitset.New()
		return newBitmap(w, bitset.OrInto(w, c.words, o.words))
	default:
		bm, arr := c, o
		if c.kind == Array {
			bm, arr = o, c
		}
		w := bm.materialize()
		card := bm.card
		for _, v := range arr.array {
			if bitset.Set(w, v) {
				card++
			}
		}
		return newBitmap(w, card)
	}
}

func orWithRun(c, o *Chunk) *Chunk {
	r, other := c, o
	if c.kind != Run {
		r, other = o, c
	}
	switch other.kind {
	case Run:
		return fromRuns(unionRuns(r.runs, other.runs))
	case Array:
		return fromRuns(unionRuns(r.runs, arrayToRuns(other.array)))
	default:
		w := other.materialize()
		card := other.card
		for _, iv := range r.runs {
			card += bitset.SetRange(w, iv.Start, iv.Last())
		}
		return bestOfWords(w, card)
	}
}

// AndNot returns the residues of c not present in o as a new chunk.
func (c *Chunk) AndNot(o *Chunk) *Chunk {
	switch {
	case c.kind == Array && o.kind == Array:
		return newArray(differenceArrays(c.array, o.array))
	case c.kind == Array:
		return newArray(filterArray(c.array, o, false))
	}

	w := c.materialize()
	card := c.card
	switch o.kind {
	case Array:
		for _, v := range o.array {
			if bitset.Clear(w, v) {
				card--
			}
		}
	case Run:
		for _, iv := range o.runs {
			card -= bitset.ClearRange(w, iv.Start, iv.Last())
		}
	default:
		card = bitset.AndNotInto(w, w, o.words)
	}
	if c.kind == Run || o.kind == Run {
		return bestOfWords(w, card)
	}
	return fromWords(w, card)
}

// Xor returns the symmetric difference of c and o as a new chunk.
func (c *Chunk) Xor(o *Chunk) *Chunk {
	if c.kind == Array && o.kind == Array && c.card+o.card <= ArrayMax {
		return newArray(symmetricDifferenceArrays(c.array, o.array))
	}

	// flip the smaller-footprint operand into a copy of the other
	base, flip := c, o
	if o.kind == Bitmap && c.kind != Bitmap {
		base, flip = o, c
	}
	w := base.materialize()
	card := base.card
	switch flip.kind {
	case Array:
		for _, v := range flip.array {
			if bitset.Set(w, v) {
				card++
			} else {
				bitset.Clear(w, v)
				card--
			}
		}
	case Run:
		for _, iv := range flip.runs {
			card += bitset.FlipRange(w, iv.Start, iv.Last())
		}
	default:
		card = bitset.XorInto(w, w, flip.words)
	}
	if c.kind == Run || o.kind == Run {
		return bestOfWords(w, card)
	}
	return fromWords(w, card)
}

// AndCardinality returns |c ∩ o| without materializing the intersection.
func (c *Chunk) AndCardinality(o *Chunk) int {
	switch {
	case c.kind == Array && o.kind == Array:
		return intersectArraysCount(c.array, o.array)
	case c.kind == Array:
		return countContained(c.array, o)
	case o.kind == Array:
		return countContained(o.array, c)
	case c.kind == Bitmap && o.kind == Bitmap:
		return bitset.AndCount(c.words, o.words)
	case c.kind == Run && o.kind == Run:
		return intersectRunsCount(c.runs, o.runs)
	case c.kind == Bitmap:
		return countInRuns(c.words, o.runs)
	default:
		return countInRuns(o.words, c.runs)
	}
}

// OrCardinality returns |c ∪ o| without materializing the union.
func (c *Chunk) OrCardinality(o *Chunk) int {
	return c.card + o.card - c.AndCardinality(o)
}

// AndNotCardinality returns |c \ o| without materializing the difference.
func (c *Chunk) AndNotCardinality(o *Chunk) int {
	return c.card - c.AndCardinality(o)
}

// XorCardinality returns |c ∆ o| without materializing the result.
func (c *Chunk) XorCardinality(o *Chunk) int {
	return c.card + o.card - 2*c.AndCardinality(o)
}

// Intersects reports whether c and o share at least one residue.
func (c *Chunk) Intersects(o *Chunk) bool {
	switch {
	case c.kind == Array:
		for _, v := range c.array {
			if o.Contains(v) {
				return true
			}
		}
		return false
	case o.kind == Array:
		return o.Intersects(c)
	case c.kind == Bitmap && o.kind == Bitmap:
		return bitset.Intersects(c.words, o.words)
	default:
		return c.AndCardinality(o) > 0
	}
}

// IOr merges o into c and returns the result, which is c itself when the
// union could be applied in place. c must be exclusively owned; o is only read.
func (c *Chunk) IOr(o *Chunk) *Chunk {
	if c.kind != Bitmap {
		return c.Or(o)
	}
	switch o.kind {
	case Array:
		for _, v := range o.array {
			if bitset.Set(c.words, v) {
				c.card++
			}
		}
	case Bitmap:
		c.card = bitset.OrInto(c.words, c.words, o.words)
	default:
		for _, iv := range o.runs {
			c.card += bitset.SetRange(c.words, iv.Start, iv.Last())
		}
		if c.card == MaxCardinality {
			return NewRange(0, MaxCardinality-1)
		}
	}
	return c
}
