// Package bitmap implements a compressed set of uint32 values.
//
// # Layout
//
// A Bitmap is an ordered sequence of chunks keyed by the high 16 bits of each
// value. Every chunk stores the low 16 bits ("residues") of its values in one
// of three forms, see package chunk:
//
//	keys:   [ 0x0000 ][ 0x000F ][ 0x0010 ] ...   strictly increasing
//	chunks: [ array  ][ bitmap ][ run    ] ...   never empty
//
// Construction picks array form up to 4096 residues and bitmap form above.
// Run form is only introduced by RunOptimize, or by set operations with a run
// operand whose result is smallest as runs.
//
// # Set algebra
//
// Binary operations merge-join the two key sequences. Keys present on one
// side only are copied (Or, Xor, AndNot) or dropped (And); shared keys are
// combined chunk by chunk. Cardinality-only variants never materialize a
// result chunk.
//
// Many-way unions come in three flavors:
//
//	OrMany   sequential fold into one owned accumulator
//	HeapOr   smallest-first merging through a min-heap keyed by SizeInBytes
//	ParOr    pairwise reduction tree over an errgroup
//
// Inputs of the many-way unions are never modified.
//
// # Copy-on-write
//
// With SetCopyOnWrite(true), Clone and the binary operations share chunks by
// reference count instead of copying them. A shared chunk is cloned before
// its first write, so a mutation is never visible through another Bitmap.
//
// A Bitmap is not safe for concurrent mutation. Concurrent reads are safe.
//
// # Example
//
//	a := bitmap.Of(5, 1, 5, 1000000, 3)
//	b := bitmap.Of(1000000, 2, 5)
//
//	a.Or(b).ToArray()     // [1 2 3 5 1000000]
//	a.And(b).ToArray()    // [5 1000000]
//	a.AndNot(b).ToArray() // [1 3]
package bitmap
