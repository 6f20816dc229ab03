package bitmap

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/chunkset/internal/queue"
)

// ownership tells whether a union step may mutate an operand.
type ownership uint8

const (
	// borrowed operands belong to the caller and are read-only.
	borrowed ownership = iota
	// owned operands were created by the union and may be updated in place.
	owned
)

type operand struct {
	bm  *Bitmap
	own ownership
}

// merge unions two operands, reusing an owned one as the accumulator.
func merge(a, b operand) operand {
	switch {
	case a.own == owned:
		a.bm.IOr(b.bm)
		return a
	case b.own == owned:
		b.bm.IOr(a.bm)
		return b
	default:
		return operand{bm: a.bm.Or(b.bm), own: owned}
	}
}

// finish hands the last operand to the caller as a fresh bitmap.
func finish(op operand) *Bitmap {
	if op.own == borrowed {
		return op.bm.Clone()
	}
	return op.bm
}

// OrMany returns the union of all bitmaps by folding them left to right into
// one accumulator.
func OrMany(bitmaps ...*Bitmap) *Bitmap {
	if len(bitmaps) == 0 {
		return New()
	}
	acc := operand{bm: bitmaps[0]}
	for _, b := range bitmaps[1:] {
		acc = merge(acc, operand{bm: b})
	}
	return finish(acc)
}

// HeapOr returns the union of all bitmaps, always merging the two smallest
// operands first. Operand size is SizeInBytes.
func HeapOr(bitmaps ...*Bitmap) *Bitmap {
	if len(bitmaps) == 0 {
		return New()
	}
	q := queue.New[operand](len(bitmaps))
	for _, b := range bitmaps {
		q.Push(operand{bm: b}, b.SizeInBytes())
	}
	for q.Len() > 1 {
		x, _ := q.Pop()
		y, _ := q.Pop()
		m := merge(x.Value, y.Value)
		q.Push(m, m.bm.SizeInBytes())
	}
	last, _ := q.Pop()
	return finish(last.Value)
}

// ParOr returns the union of all bitmaps using a pairwise reduction tree.
// Each level merges adjacent pairs concurrently on at most workers
// goroutines; workers <= 0 means GOMAXPROCS. Inputs are only read.
func ParOr(ctx context.Context, workers int, bitmaps ...*Bitmap) (*Bitmap, error) {
	if len(bitmaps) == 0 {
		return New(), nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	level := make([]operand, len(bitmaps))
	for i, b := range bitmaps {
		level[i] = operand{bm: b}
	}

	for len(level) > 1 {
		next := make([]operand, (len(level)+1)/2)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := 0; i+1 < len(level); i += 2 {
			a, b, slot := level[i], level[i+1], i/2
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				next[slot] = merge(a, b)
				return nil
			})
		}
		if len(level)%2 == 1 {
			next[len(next)-1] = level[len(level)-1]
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		level = next
	}
	return finish(level[0]), nil
}
