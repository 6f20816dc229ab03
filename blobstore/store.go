package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ErrInvalidName is returned for a blob name that cannot be stored.
var ErrInvalidName = errors.New("invalid blob name")

// Store is a flat namespace of immutable blobs.
type Store interface {
	// Get returns the contents of a blob. The result must be treated as read-only.
	Get(ctx context.Context, name string) ([]byte, error)
	// Put writes a blob atomically, replacing any previous version.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names of all blobs starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Opener is an optional interface for stores that can expose a blob without copying it.
type Opener interface {
	Open(ctx context.Context, name string) (Blob, error)
}

// Blob is a read-only handle to a data blob.
type Blob interface {
	io.Closer
	// Bytes returns the blob contents.
	// The slice is valid until the Blob is closed.
	Bytes() []byte
	// Size returns the size of the blob in bytes.
	Size() int64
}

// Entry describes a saved snapshot.
type Entry struct {
	Name        string
	Cardinality uint64
	Bytes       int64
	Codec       string
	Checksum    uint32 // CRC32-C of the stored blob; zero if not recorded
	SavedAt     time.Time
}

// Catalog records snapshot metadata next to a Store.
type Catalog interface {
	Record(ctx context.Context, e Entry) error
	Lookup(ctx context.Context, name string) (Entry, error)
	Remove(ctx context.Context, name string) error
	// Entries returns the entries whose name starts with prefix, sorted by name.
	Entries(ctx context.Context, prefix string) ([]Entry, error)
}

// NotFound wraps ErrNotFound with the blob name, for use by Store implementations.
func NotFound(name string) error {
	return fmt.Errorf("blob %q: %w", name, ErrNotFound)
}
