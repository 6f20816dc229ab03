package chunkset

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/chunkset/blobstore"
	"github.com/hupe1980/chunkset/codec"
	"github.com/hupe1980/chunkset/internal/bitmap"
	"github.com/hupe1980/chunkset/internal/chunk"
	"github.com/hupe1980/chunkset/resource"
)

var (
	// ErrNotFound is returned when a snapshot does not exist.
	ErrNotFound = blobstore.ErrNotFound
	// ErrInvalidName is returned for a snapshot name the store cannot hold.
	ErrInvalidName = blobstore.ErrInvalidName
	// ErrInvalidCodec is returned for a snapshot framed with an unknown codec.
	ErrInvalidCodec = codec.ErrInvalidCodec
	// ErrMemoryLimitExceeded is returned when decoding a snapshot would exceed
	// the memory budget of the resource controller.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
	// ErrCorruptSnapshot is returned when a snapshot fails to decompress or decode.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
	// ErrChecksumMismatch is returned, wrapped with ErrCorruptSnapshot, when a
	// blob does not match the checksum recorded in the catalog.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
	// ErrCanceled is returned when the context ends before an operation completes.
	ErrCanceled = errors.New("operation canceled")
)

// Decoding causes, matched with errors.Is against a *DecodeError.
var (
	ErrTruncated     = chunk.ErrTruncated
	ErrUnknownKind   = chunk.ErrUnknownKind
	ErrEmptyChunk    = chunk.ErrEmpty
	ErrUnordered     = chunk.ErrUnordered
	ErrTrailingBytes = bitmap.ErrTrailingBytes
	ErrKeyOrder      = bitmap.ErrKeyOrder
	ErrTooManyChunks = bitmap.ErrTooManyChunks
)

// ErrCardinalityMismatch indicates that a loaded snapshot does not hold the
// number of values its catalog entry recorded.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrCardinalityMismatch struct {
	Name     string
	Expected uint64
	Actual   uint64
	cause    error
}

func (e *ErrCardinalityMismatch) Error() string {
	return fmt.Sprintf("snapshot %q: cardinality mismatch: expected %d, got %d", e.Name, e.Expected, e.Actual)
}

func (e *ErrCardinalityMismatch) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Store and codec sentinels are shared with the subpackages; keep them.
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidCodec) || errors.Is(err, ErrMemoryLimitExceeded) {
		return err
	}

	// Cancellation unification.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}

	// Decoding failures.
	var de *bitmap.DecodeError
	if errors.As(err, &de) {
		return fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	if errors.Is(err, codec.ErrCorruptFrame) {
		return fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	return err
}
