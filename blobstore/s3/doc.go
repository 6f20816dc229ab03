// Package s3 stores set snapshots in Amazon S3 and indexes them in DynamoDB.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket", s3.Options{Prefix: "sets/"})
//	if err != nil { ... }
//
//	err = chunkset.Save(ctx, store, "users.cks", bm, chunkset.WithCodec(codec.Zstd{}))
//
// Uploads go through the multipart upload manager, so large snapshots are
// split into parts and sent concurrently.
//
// # Catalog
//
// Catalog records one DynamoDB item per saved snapshot. Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name chunkset-snapshots \
//	  --attribute-definitions AttributeName=namespace,AttributeType=S AttributeName=name,AttributeType=S \
//	  --key-schema AttributeName=namespace,KeyType=HASH AttributeName=name,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package s3
