// Package hash computes the snapshot checksums kept in the catalog.
//
// Checksums use CRC32-Castagnoli, which the crc32 package computes with
// hardware instructions on amd64 and arm64:
//
//	sum := hash.CRC32C(frame)
package hash
