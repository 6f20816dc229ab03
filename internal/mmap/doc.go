// Package mmap maps snapshot files read-only into memory.
//
// A local snapshot is decoded straight out of the mapping, so loading a set
// from disk does not copy the file through a read buffer first:
//
//	m, err := mmap.Open("users.cks")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix uses mmap(2) and madvise(2). Windows uses
// CreateFileMapping/MapViewOfFile, and Advise is a no-op there.
//
// Close is idempotent. Bytes must not be used after Close returns.
package mmap
