package chunk

import (
	"github.com/hupe1980/chunkset/internal/bitset"
)

const bitmapBytes = bitset.Bytes

// arrayBytes is the payload size of an array: count (2) + 2 per residue.
func arrayBytes(card int) int { return 2 + 2*card }

// runBytes is the payload size of a run list: count (2) + 4 per interval.
func runBytes(nruns int) int { return 2 + 4*nruns }

// naturalBytes is the payload size of the canonical non-run form.
func naturalBytes(card int) int {
	if card <= ArrayMax {
		return arrayBytes(card)
	}
	return bitmapBytes
}

// RunOptimize rewrites the chunk into run form when that is strictly smaller
// than its canonical form, and back to the canonical form otherwise.
// It never changes the content and reports whether the form changed.
func (c *Chunk) RunOptimize() bool {
	if c.card == 0 {
		return false
	}
	nruns := c.NumRuns()
	useRuns := runBytes(nruns) < naturalBytes(c.card)

	switch c.kind {
	case Array:
		if !useRuns {
			return false
		}
		c.kind, c.runs, c.array = Run, arrayToRuns(c.array), nil
	case Bitmap:
		if !useRuns {
			return false
		}
		c.kind, c.runs, c.words = Run, wordsToRuns(c.words, nruns), nil
	case Run:
		if useRuns {
			return false
		}
		if c.card <= ArrayMax {
			c.toArray()
		} else {
			c.toBitmap()
		}
	}
	return true
}
