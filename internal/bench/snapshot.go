package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/chunkset"
	"github.com/hupe1980/chunkset/blobstore"
	"github.com/hupe1980/chunkset/internal/dataset"
)

// SnapshotStats summarizes a snapshot round trip.
type SnapshotStats struct {
	Sets     int
	RawBytes uint64 // serialized size before compression
	Save     time.Duration
	Load     time.Duration
}

// Snapshot saves every list as a chunkset snapshot named prefix+list name,
// loads it back and checks that the loaded set is equal.
func Snapshot(ctx context.Context, store blobstore.Store, prefix string, lists []dataset.List, cfg Config, opts ...chunkset.Option) (SnapshotStats, error) {
	var st SnapshotStats
	for _, l := range lists {
		bm := chunkset.FromSlice(l.Values)
		if cfg.RunOptimize {
			bm.RunOptimize()
		}
		name := prefix + l.Name

		start := time.Now()
		if err := chunkset.Save(ctx, store, name, bm, opts...); err != nil {
			return st, err
		}
		st.Save += time.Since(start)

		start = time.Now()
		got, err := chunkset.Load(ctx, store, name, opts...)
		if err != nil {
			return st, err
		}
		st.Load += time.Since(start)

		if !bm.Equals(got) {
			return st, fmt.Errorf("snapshot %q: loaded set differs from saved set", name)
		}
		st.Sets++
		st.RawBytes += bm.SerializedSizeInBytes()
	}
	return st, nil
}
