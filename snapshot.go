package chunkset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/chunkset/blobstore"
	"github.com/hupe1980/chunkset/codec"
	"github.com/hupe1980/chunkset/internal/hash"
)

// Save serializes bm, frames it with the configured codec and writes it to
// store under name. With WithCatalog the snapshot is also recorded in the
// catalog; a failed catalog write fails the save but leaves the blob in place.
func Save(ctx context.Context, store blobstore.Store, name string, bm *Bitmap, opts ...Option) (err error) {
	o := applyOptions(opts)
	start := time.Now()
	if bm == nil {
		bm = New()
	}

	var (
		frame []byte
		used  codec.Codec
	)
	defer func() {
		err = translateError(err)
		o.metricsCollector.RecordSave(len(frame), time.Since(start), err)
		codecName := ""
		if used != nil {
			codecName = used.Name()
		}
		o.logger.LogSave(ctx, name, bm.Cardinality(), len(frame), codecName, err)
	}()

	raw, err := bm.MarshalBinary()
	if err != nil {
		return err
	}
	frame, err = codec.Frame(o.codec, raw)
	if err != nil {
		return err
	}
	used, _ = codec.ByID(frame[0])

	if err := o.rc.AcquireIO(ctx, len(frame)); err != nil {
		return err
	}
	if err := store.Put(ctx, name, frame); err != nil {
		return fmt.Errorf("put snapshot %q: %w", name, err)
	}

	if o.catalog != nil {
		entry := blobstore.Entry{
			Name:        name,
			Cardinality: bm.Cardinality(),
			Bytes:       int64(len(frame)),
			Codec:       used.Name(),
			Checksum:    hash.CRC32C(frame),
			SavedAt:     time.Now().UTC(),
		}
		if err := o.catalog.Record(ctx, entry); err != nil {
			return fmt.Errorf("record snapshot %q: %w", name, err)
		}
	}
	return nil
}

// Load reads the snapshot name from store and decodes it. Stores that
// implement blobstore.Opener are read without an intermediate copy.
//
// With WithCatalog the blob is checked against the checksum and cardinality
// recorded by Save. Snapshots without a catalog entry load unchecked.
//
// With WithResourceController the decompressed size is reserved against the
// memory budget while decoding; an oversized snapshot fails with
// ErrMemoryLimitExceeded.
func Load(ctx context.Context, store blobstore.Store, name string, opts ...Option) (bm *Bitmap, err error) {
	o := applyOptions(opts)
	start := time.Now()

	var size int
	defer func() {
		err = translateError(err)
		o.metricsCollector.RecordLoad(size, time.Since(start), err)
		var card uint64
		if bm != nil {
			card = bm.Cardinality()
		}
		o.logger.LogLoad(ctx, name, card, size, err)
	}()

	frame, release, err := read(ctx, store, name)
	if err != nil {
		return nil, err
	}
	defer release()
	size = len(frame)

	if err := o.rc.AcquireIO(ctx, size); err != nil {
		return nil, err
	}

	var (
		entry   blobstore.Entry
		checked bool
	)
	if o.catalog != nil {
		var lerr error
		entry, lerr = o.catalog.Lookup(ctx, name)
		switch {
		case lerr == nil:
			checked = true
			if entry.Checksum != 0 {
				if sum := hash.CRC32C(frame); sum != entry.Checksum {
					return nil, fmt.Errorf("snapshot %q: %w: %w: crc32c %08x, want %08x", name, ErrCorruptSnapshot, ErrChecksumMismatch, sum, entry.Checksum)
				}
			}
		case !errors.Is(lerr, blobstore.ErrNotFound):
			return nil, fmt.Errorf("lookup snapshot %q: %w", name, lerr)
		}
	}

	bm, err = decode(frame, o)
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", name, err)
	}

	if checked {
		if card := bm.Cardinality(); card != entry.Cardinality {
			return nil, &ErrCardinalityMismatch{Name: name, Expected: entry.Cardinality, Actual: card, cause: ErrCorruptSnapshot}
		}
	}
	return bm, nil
}

// Remove deletes the snapshot name from store and, with WithCatalog, its
// catalog entry. Removing a missing snapshot is not an error.
func Remove(ctx context.Context, store blobstore.Store, name string, opts ...Option) (err error) {
	o := applyOptions(opts)
	defer func() {
		err = translateError(err)
		o.logger.LogRemove(ctx, name, err)
	}()

	if err := store.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", name, err)
	}
	if o.catalog != nil {
		if err := o.catalog.Remove(ctx, name); err != nil && !errors.Is(err, blobstore.ErrNotFound) {
			return fmt.Errorf("remove catalog entry %q: %w", name, err)
		}
	}
	return nil
}

// read returns the framed snapshot and a function releasing it.
func read(ctx context.Context, store blobstore.Store, name string) ([]byte, func(), error) {
	if op, ok := store.(blobstore.Opener); ok {
		blob, err := op.Open(ctx, name)
		if err != nil {
			return nil, nil, err
		}
		return blob.Bytes(), func() { _ = blob.Close() }, nil
	}
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	return data, func() {}, nil
}

// decode unframes and decodes a snapshot. The result never aliases frame.
func decode(frame []byte, o options) (*Bitmap, error) {
	raw, _, err := codec.Unframe(frame)
	if err != nil {
		return nil, err
	}

	mem := int64(len(raw))
	if err := o.rc.AcquireMemory(mem); err != nil {
		return nil, err
	}
	defer o.rc.ReleaseMemory(mem)

	bm := New()
	if err := bm.UnmarshalBinary(raw); err != nil {
		return nil, err
	}
	bm.SetCopyOnWrite(o.copyOnWrite)
	return bm, nil
}
