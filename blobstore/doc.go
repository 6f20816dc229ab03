// Package blobstore provides storage for serialized set snapshots.
//
// Store is the interface for reading and writing named blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and scratch work
//   - LocalStore: local filesystem, mmap reads and atomic rename writes
//   - CachingStore: byte-budget LRU in front of any Store
//   - s3.Store: Amazon S3 with multipart uploads
//   - minio.Store: MinIO and other S3-compatible systems
//
// Stores that can expose a blob without copying it also implement Opener.
//
// # Catalog
//
// A Catalog keeps one Entry per saved snapshot (cardinality, stored size,
// codec) so listings do not need to download payloads. MemoryCatalog keeps
// entries in process; s3.Catalog keeps them in DynamoDB.
package blobstore
