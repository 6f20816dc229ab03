package s3

import (
	"context"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/chunkset/blobstore"
)

// mockDDBClient is an in-memory DynamoDB table keyed by (namespace, name).
type mockDDBClient struct {
	mu    sync.RWMutex
	items map[string]map[string]types.AttributeValue
}

func newMockDDBClient() *mockDDBClient {
	return &mockDDBClient{items: make(map[string]map[string]types.AttributeValue)}
}

func itemKey(key map[string]types.AttributeValue) string {
	ns := key[attrNamespace].(*types.AttributeValueMemberS).Value
	name := key[attrName].(*types.AttributeValueMemberS).Value
	return ns + "\x00" + name
}

func (m *mockDDBClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[itemKey(params.Item)] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDDBClient) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return &dynamodb.GetItemOutput{Item: m.items[itemKey(params.Key)]}, nil
}

func (m *mockDDBClient) DeleteItem(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, itemKey(params.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func (m *mockDDBClient) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ns := params.ExpressionAttributeValues[":ns"].(*types.AttributeValueMemberS).Value
	prefix := ""
	if p, ok := params.ExpressionAttributeValues[":prefix"]; ok {
		prefix = p.(*types.AttributeValueMemberS).Value
	}

	var items []map[string]types.AttributeValue
	for _, item := range m.items {
		if item[attrNamespace].(*types.AttributeValueMemberS).Value != ns {
			continue
		}
		if strings.HasPrefix(item[attrName].(*types.AttributeValueMemberS).Value, prefix) {
			items = append(items, item)
		}
	}
	slices.SortFunc(items, func(a, b map[string]types.AttributeValue) int {
		return strings.Compare(
			a[attrName].(*types.AttributeValueMemberS).Value,
			b[attrName].(*types.AttributeValueMemberS).Value,
		)
	})
	return &dynamodb.QueryOutput{Items: items}, nil
}

func TestCatalog_RecordLookup(t *testing.T) {
	ctx := context.Background()
	c := NewCatalog(newMockDDBClient(), "chunkset-snapshots", "prod")

	saved := time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC)
	want := blobstore.Entry{Name: "users.cks", Cardinality: 1 << 40, Bytes: 8195, Codec: "zstd", Checksum: 0xe3069283, SavedAt: saved}
	require.NoError(t, c.Record(ctx, want))

	got, err := c.Lookup(ctx, "users.cks")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = c.Lookup(ctx, "missing.cks")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	assert.ErrorIs(t, c.Record(ctx, blobstore.Entry{}), blobstore.ErrInvalidName)
}

func TestCatalog_Entries(t *testing.T) {
	ctx := context.Background()
	ddb := newMockDDBClient()
	prod := NewCatalog(ddb, "chunkset-snapshots", "prod")
	dev := NewCatalog(ddb, "chunkset-snapshots", "dev")

	for _, name := range []string{"users/b", "events/a", "users/a"} {
		require.NoError(t, prod.Record(ctx, blobstore.Entry{Name: name, Codec: "none"}))
	}
	require.NoError(t, dev.Record(ctx, blobstore.Entry{Name: "users/c", Codec: "none"}))

	all, err := prod.Entries(ctx, "")
	require.NoError(t, err)
	names := make([]string, len(all))
	for i, e := range all {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"events/a", "users/a", "users/b"}, names)

	users, err := prod.Entries(ctx, "users/")
	require.NoError(t, err)
	assert.Len(t, users, 2)

	require.NoError(t, prod.Remove(ctx, "users/a"))
	users, err = prod.Entries(ctx, "users/")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "users/b", users[0].Name)

	devEntries, err := dev.Entries(ctx, "")
	require.NoError(t, err)
	assert.Len(t, devEntries, 1)
}

func TestCatalog_InvalidItem(t *testing.T) {
	ctx := context.Background()
	ddb := newMockDDBClient()
	c := NewCatalog(ddb, "chunkset-snapshots", "prod")

	key := c.key("broken")
	key[attrCardinality] = &types.AttributeValueMemberS{Value: "not a number"}
	_, err := ddb.PutItem(ctx, &dynamodb.PutItemInput{Item: key})
	require.NoError(t, err)

	_, err = c.Lookup(ctx, "broken")
	assert.ErrorContains(t, err, "invalid cardinality attribute")
}
