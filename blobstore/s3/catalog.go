package s3

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/chunkset/blobstore"
)

// DDBClient is the subset of the DynamoDB API used by Catalog.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Item attribute names.
const (
	attrNamespace   = "namespace"
	attrName        = "name"
	attrCardinality = "cardinality"
	attrBytes       = "bytes"
	attrCodec       = "codec"
	attrChecksum    = "checksum"
	attrSavedAt     = "saved_at"
)

// Catalog implements blobstore.Catalog on a DynamoDB table keyed by
// (namespace, name). One catalog namespace usually mirrors one store prefix.
type Catalog struct {
	client    DDBClient
	table     string
	namespace string
}

// NewCatalog creates a Catalog writing to table under namespace.
func NewCatalog(client DDBClient, table, namespace string) *Catalog {
	return &Catalog{client: client, table: table, namespace: namespace}
}

func (c *Catalog) key(name string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrNamespace: &types.AttributeValueMemberS{Value: c.namespace},
		attrName:      &types.AttributeValueMemberS{Value: name},
	}
}

// Record writes e, replacing any previous entry with the same name.
func (c *Catalog) Record(ctx context.Context, e blobstore.Entry) error {
	if e.Name == "" {
		return blobstore.ErrInvalidName
	}
	item := c.key(e.Name)
	item[attrCardinality] = &types.AttributeValueMemberN{Value: strconv.FormatUint(e.Cardinality, 10)}
	item[attrBytes] = &types.AttributeValueMemberN{Value: strconv.FormatInt(e.Bytes, 10)}
	item[attrCodec] = &types.AttributeValueMemberS{Value: e.Codec}
	if e.Checksum != 0 {
		item[attrChecksum] = &types.AttributeValueMemberN{Value: strconv.FormatUint(uint64(e.Checksum), 10)}
	}
	item[attrSavedAt] = &types.AttributeValueMemberN{Value: strconv.FormatInt(e.SavedAt.UnixNano(), 10)}

	_, err := c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to record %q in DynamoDB: %w", e.Name, err)
	}
	return nil
}

// Lookup reads the entry for name.
func (c *Catalog) Lookup(ctx context.Context, name string) (blobstore.Entry, error) {
	resp, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(c.table),
		Key:            c.key(name),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return blobstore.Entry{}, fmt.Errorf("failed to look up %q in DynamoDB: %w", name, err)
	}
	if len(resp.Item) == 0 {
		return blobstore.Entry{}, blobstore.NotFound(name)
	}
	return decodeEntry(resp.Item)
}

// Remove deletes the entry for name.
func (c *Catalog) Remove(ctx context.Context, name string) error {
	_, err := c.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(c.table),
		Key:       c.key(name),
	})
	if err != nil {
		return fmt.Errorf("failed to remove %q from DynamoDB: %w", name, err)
	}
	return nil
}

// Entries returns the entries of the namespace whose name starts with prefix.
// DynamoDB returns them in sort key order.
func (c *Catalog) Entries(ctx context.Context, prefix string) ([]blobstore.Entry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(c.table),
		KeyConditionExpression: aws.String("#ns = :ns"),
		ExpressionAttributeNames: map[string]string{
			"#ns": attrNamespace,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ns": &types.AttributeValueMemberS{Value: c.namespace},
		},
	}
	if prefix != "" {
		input.KeyConditionExpression = aws.String("#ns = :ns AND begins_with(#name, :prefix)")
		input.ExpressionAttributeNames["#name"] = attrName
		input.ExpressionAttributeValues[":prefix"] = &types.AttributeValueMemberS{Value: prefix}
	}

	var entries []blobstore.Entry
	paginator := dynamodb.NewQueryPaginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query DynamoDB: %w", err)
		}
		for _, item := range page.Items {
			e, err := decodeEntry(item)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func decodeEntry(item map[string]types.AttributeValue) (blobstore.Entry, error) {
	name, ok := item[attrName].(*types.AttributeValueMemberS)
	if !ok {
		return blobstore.Entry{}, fmt.Errorf("invalid %s attribute in DynamoDB", attrName)
	}
	e := blobstore.Entry{Name: name.Value}

	if codec, ok := item[attrCodec].(*types.AttributeValueMemberS); ok {
		e.Codec = codec.Value
	}

	var err error
	if _, ok := item[attrChecksum]; ok {
		sum, err := numberAttr(item, attrChecksum, strconv.ParseUint)
		if err != nil {
			return blobstore.Entry{}, err
		}
		e.Checksum = uint32(sum) //nolint:gosec // written from a uint32
	}
	if e.Cardinality, err = numberAttr(item, attrCardinality, strconv.ParseUint); err != nil {
		return blobstore.Entry{}, err
	}
	if e.Bytes, err = numberAttr(item, attrBytes, strconv.ParseInt); err != nil {
		return blobstore.Entry{}, err
	}
	nanos, err := numberAttr(item, attrSavedAt, strconv.ParseInt)
	if err != nil {
		return blobstore.Entry{}, err
	}
	e.SavedAt = time.Unix(0, nanos).UTC()
	return e, nil
}

func numberAttr[T int64 | uint64](item map[string]types.AttributeValue, attr string, parse func(string, int, int) (T, error)) (T, error) {
	n, ok := item[attr].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("invalid %s attribute in DynamoDB", attr)
	}
	v, err := parse(n.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", attr, err)
	}
	return v, nil
}
