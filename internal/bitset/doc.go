// Package bitset provides word-level primitives over fixed 65536-bit segments.
//
// Architecture:
//   - One segment is 1024 uint64 words (8 KiB), the bitmap form of a chunk
//   - Pure functions over []uint64, no allocation, no locking
//   - Combining operations report the resulting cardinality so callers
//     can pick the cheapest representation without a second pass
//
// Used internally for:
//   - Bitmap-form chunks (membership, set algebra, popcount)
//   - Run detection during run optimization
package bitset
