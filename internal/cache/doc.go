// Package cache provides a byte-budget LRU for decoded-from blobs.
//
// The LRU charges every cached value against its own capacity and, when a
// resource.Controller is attached, against the shared memory limit. A value
// the controller refuses is simply not cached.
package cache
