// Package fs abstracts the file system writes of the local blob store so
// tests can inject failures.
//
// Production code uses [Default], which is [LocalFS]. Tests wrap it in a
// [FaultyFS]:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailAfterBytes: 1024})
//
// Reads go through mmap and are not covered.
package fs
