package bitmap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/chunkset/internal/chunk"
	"github.com/hupe1980/chunkset/testutil"
)

func TestSerializationRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(21)
	for _, s := range shapes() {
		t.Run(s.name, func(t *testing.T) {
			b := FromSlice(s.gen(rng))
			for _, optimize := range []bool{false, true} {
				if optimize {
					b.RunOptimize()
				}
				data, err := b.MarshalBinary()
				require.NoError(t, err)
				assert.Equal(t, b.SizeInBytes(), uint64(len(data)))
				assert.Equal(t, b.SerializedSizeInBytes(), uint64(len(data)))

				got := New()
				require.NoError(t, got.UnmarshalBinary(data))
				assert.True(t, b.Equals(got))
				assert.Equal(t, b.Stats(), got.Stats())

				var buf bytes.Buffer
				n, err := b.WriteTo(&buf)
				require.NoError(t, err)
				assert.Equal(t, int64(len(data)), n)
				assert.Equal(t, data, buf.Bytes())

				viaReader := New()
				m, err := viaReader.ReadFrom(&buf)
				require.NoError(t, err)
				assert.Equal(t, n, m)
				assert.True(t, b.Equals(viaReader))
			}
		})
	}
}

func TestEmptySerialization(t *testing.T) {
	data, err := New().MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, data)

	b := Of(1, 2)
	require.NoError(t, b.UnmarshalBinary(data))
	assert.True(t, b.IsEmpty())
}

func TestWireLayout(t *testing.T) {
	b := Of(1, 3, 65536+7)
	data, err := b.MarshalBinary()
	require.NoError(t, err)

	want := []byte{
		2, 0, 0, 0, // chunk count
		0, 0, 0, // key 0, array
		2, 0, 1, 0, 3, 0, // two residues
		1, 0, 0, // key 1, array
		1, 0, 7, 0, // one residue
	}
	assert.Equal(t, want, data)

	b = New()
	b.AddRange(0, 1000)
	b.RunOptimize()
	data, err = b.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 2, 1, 0, 0, 0, 0xE7, 0x03}, data)
}

func TestReadFromConsumesOneBitmap(t *testing.T) {
	a, b := Of(1, 2, 3), Of(1<<20, 1<<21)
	var buf bytes.Buffer
	_, err := a.WriteTo(&buf)
	require.NoError(t, err)
	_, err = b.WriteTo(&buf)
	require.NoError(t, err)

	first, second := New(), New()
	_, err = first.ReadFrom(&buf)
	require.NoError(t, err)
	_, err = second.ReadFrom(&buf)
	require.NoError(t, err)
	assert.True(t, a.Equals(first))
	assert.True(t, b.Equals(second))
	assert.Zero(t, buf.Len())
}

func TestDecodeErrors(t *testing.T) {
	valid, err := Of(1, 3, 65536+7).MarshalBinary()
	require.NoError(t, err)

	withCount := func(n uint32) []byte {
		return binary.LittleEndian.AppendUint32(nil, n)
	}

	cases := []struct {
		name   string
		data   []byte
		cause  error
		offset int64
	}{
		{"short header", []byte{1, 0}, chunk.ErrTruncated, 0},
		{"too many chunks", withCount(70000), ErrTooManyChunks, 0},
		{"missing chunk", withCount(1), chunk.ErrTruncated, 4},
		{"truncated payload", valid[:len(valid)-1], chunk.ErrTruncated, 16},
		{"trailing bytes", append(bytes.Clone(valid), 0), ErrTrailingBytes, int64(len(valid))},
		{"unknown tag", append(withCount(1), 0, 0, 9, 1, 0, 0, 0), chunk.ErrUnknownKind, 7},
		{"empty array", append(withCount(1), 0, 0, 0, 0, 0), chunk.ErrEmpty, 7},
		{"unordered residues", append(withCount(1), 0, 0, 0, 2, 0, 5, 0, 4, 0), chunk.ErrUnordered, 7},
		{"unordered keys", append(withCount(2), 1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 0, 1, 0), ErrKeyOrder, 11},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := Of(42)
			err := b.UnmarshalBinary(tc.data)
			var de *DecodeError
			require.True(t, errors.As(err, &de), "got %v", err)
			assert.ErrorIs(t, err, tc.cause)
			assert.Equal(t, tc.offset, de.Offset)
			assert.Equal(t, []uint32{42}, b.ToArray(), "receiver unchanged on error")

			if tc.name == "trailing bytes" {
				return
			}
			_, err = b.ReadFrom(bytes.NewReader(tc.data))
			assert.ErrorIs(t, err, tc.cause)
			assert.Equal(t, []uint32{42}, b.ToArray())
		})
	}
}
