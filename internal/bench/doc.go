// Package bench runs set-operation benchmarks over interchangeable encodings.
//
// A Suite holds one Set per input list. Pairwise modes combine every set with
// its successor; wide unions merge all sets at once; access probes three
// values per set; iterate visits every value.
//
//	enc, _ := bench.EncodingByName("roaring")
//	s := bench.NewSuite(enc, lists, bench.Config{RunOptimize: true})
//	res, _ := s.Run(ctx, bench.Intersection, time.Second, nil)
//
// Encodings: chunkset, roaring (RoaringBitmap), bitset (bits-and-blooms),
// hashset (Go map) and vector (sorted slice).
package bench
