// Package chunk implements the per-key storage unit of a compressed bitmap.
//
// A Chunk holds the low 16 bits ("residues") of every value sharing one
// high-16-bit key, in one of three forms:
//
//	Array   sorted []uint16, at most ArrayMax residues
//	Bitmap  1024 x uint64 words, used above ArrayMax residues
//	Run     sorted []Interval, produced by RunOptimize or by operations
//	        with a run-form operand when that is the smallest encoding
//
// Dispatch is a switch on the Kind tag rather than an interface, so the hot
// paths stay inlinable. Array and bitmap forms are kept canonical: a
// non-run chunk is an array if and only if its cardinality is <= ArrayMax.
//
// Chunks are reference counted for copy-on-write sharing between bitmaps.
// A holder must call Shared before writing and clone when it returns true.
package chunk
