package minio

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/chunkset/blobstore"
)

func TestStore_Keys(t *testing.T) {
	s := NewStore(nil, "bucket", "sets/")

	assert.Equal(t, "sets/users.cks", s.key("users.cks"))
	assert.Equal(t, "sets", s.key(""))
	assert.Equal(t, "users.cks", s.name("sets/users.cks"))
	assert.Equal(t, "a/b", s.name("sets/a/b"))

	bare := NewStore(nil, "bucket", "")
	assert.Equal(t, "users.cks", bare.key("users.cks"))
	assert.Equal(t, "users.cks", bare.name("users.cks"))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NotFound"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("boom")))

	s := NewStore(nil, "bucket", "")
	assert.ErrorIs(t, s.translate("x", minio.ErrorResponse{Code: "NoSuchKey"}), blobstore.ErrNotFound)
}

// TestStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestStore_Integration(t *testing.T) {
	client, err := minio.New("localhost:9000", &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	bucket := "test-chunkset"
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, fmt.Sprintf("run-%d/", time.Now().UnixNano()))

	require.NoError(t, store.Put(ctx, "a.cks", []byte("hello minio")))
	data, err := store.Get(ctx, "a.cks")
	require.NoError(t, err)
	assert.Equal(t, "hello minio", string(data))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.cks"}, names)

	require.NoError(t, store.Delete(ctx, "a.cks"))
	_, err = store.Get(ctx, "a.cks")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
