// Package chunkset provides a compressed set of uint32 values for Go.
//
// A set is partitioned into chunks of 65536 values keyed by the high 16 bits.
// Each chunk picks the smallest of three forms (sorted array, 65536-bit
// bitmap, run-length intervals) and set algebra runs directly on the
// compressed forms, so intersections and unions of large sets touch only
// the chunks both sides share.
//
// # Quick Start
//
//	a := chunkset.Of(1, 2, 3, 1000000)
//	b := chunkset.FromSlice([]uint32{3, 4, 1000000})
//
//	a.And(b).ToArray()               // [3 1000000]
//	a.OrCardinality(b)               // 5
//	for v := range a.All() { ... }   // ascending
//
// # Many-way Unions
//
//	chunkset.OrMany(sets...)                // sequential fold
//	chunkset.HeapOr(sets...)                // smallest operands first
//	chunkset.ParOr(ctx, sets)               // parallel reduction tree
//
// # Snapshots
//
// Save and Load persist a set through any blobstore.Store, optionally
// compressed with a codec:
//
//	store := blobstore.NewLocalStore("./sets")
//	err := chunkset.Save(ctx, store, "users/active", bm, chunkset.WithCodec(codec.LZ4{}))
//	bm, err := chunkset.Load(ctx, store, "users/active")
//
// Cloud mode works the same way with blobstore/s3 or blobstore/minio, and a
// blobstore.Catalog (for example the DynamoDB-backed s3.Catalog) can record
// cardinality and size of each snapshot.
//
// # Interop
//
// FromRoaring and ToRoaring convert from and to
// github.com/RoaringBitmap/roaring/v2 bitmaps.
//
// # Key Features
//
//   - Array, bitmap and run chunks with automatic conversion
//   - Cardinality-only operations without materializing results
//   - Copy-on-write sharing of chunks between sets
//   - Little-endian wire format whose size is known before writing
//   - Snapshot storage on local disk, S3 and MinIO
package chunkset
