package chunkset

import (
	"context"
	"time"

	"github.com/hupe1980/chunkset/internal/bitmap"
)

type (
	// Bitmap is a compressed set of uint32 values.
	Bitmap = bitmap.Bitmap
	// Iterator walks a Bitmap in ascending order.
	Iterator = bitmap.Iterator
	// Stats describes the chunk layout of a Bitmap.
	Stats = bitmap.Stats
	// DecodeError reports malformed serialized input.
	DecodeError = bitmap.DecodeError
)

// New returns an empty set.
func New() *Bitmap { return bitmap.New() }

// Of returns a set holding the given values.
func Of(values ...uint32) *Bitmap { return bitmap.Of(values...) }

// FromSlice builds a set from unordered values, duplicates allowed.
func FromSlice(values []uint32) *Bitmap { return bitmap.FromSlice(values) }

// FromRange returns the set of all values in [lo, hi).
func FromRange(lo, hi uint64) *Bitmap {
	b := bitmap.New()
	b.AddRange(lo, hi)
	return b
}

// OrMany returns the union of all sets, folded left to right.
func OrMany(sets ...*Bitmap) *Bitmap { return bitmap.OrMany(sets...) }

// HeapOr returns the union of all sets, merging the two smallest first.
func HeapOr(sets ...*Bitmap) *Bitmap { return bitmap.HeapOr(sets...) }

// ParOr returns the union of all sets using a parallel reduction tree.
// The worker count comes from WithResourceController; without a controller
// GOMAXPROCS workers are used. Inputs are only read.
func ParOr(ctx context.Context, sets []*Bitmap, opts ...Option) (*Bitmap, error) {
	o := applyOptions(opts)
	start := time.Now()

	out, err := bitmap.ParOr(ctx, o.rc.Workers(), sets...)
	err = translateError(err)

	o.metricsCollector.RecordUnion(len(sets), time.Since(start), err)
	var card uint64
	if out != nil {
		card = out.Cardinality()
	}
	o.logger.LogUnion(ctx, "parallel", len(sets), card, err)
	return out, err
}
