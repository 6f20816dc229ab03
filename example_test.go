package chunkset_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/chunkset"
	"github.com/hupe1980/chunkset/blobstore"
	"github.com/hupe1980/chunkset/codec"
)

func Example() {
	a := chunkset.Of(5, 1, 5, 1000000, 3)
	b := chunkset.Of(1000000, 2, 5)

	fmt.Println(a.Or(b).ToArray())
	fmt.Println(a.And(b).ToArray())
	fmt.Println(a.AndNot(b).ToArray())
	fmt.Println(a.XorCardinality(b))
	// Output:
	// [1 2 3 5 1000000]
	// [5 1000000]
	// [1 3]
	// 3
}

func ExampleSave() {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	bm := chunkset.FromRange(0, 100000)
	bm.RunOptimize()
	if err := chunkset.Save(ctx, store, "ranges/first", bm, chunkset.WithCodec(codec.LZ4{})); err != nil {
		fmt.Println(err)
		return
	}

	loaded, err := chunkset.Load(ctx, store, "ranges/first")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(loaded.Cardinality(), loaded.Stats().RunChunks)
	// Output:
	// 100000 2
}

func ExampleHeapOr() {
	u := chunkset.HeapOr(chunkset.Of(1, 2), chunkset.Of(2, 3), chunkset.Of(70000))
	fmt.Println(u)
	// Output:
	// {1,2,3,70000}
}
