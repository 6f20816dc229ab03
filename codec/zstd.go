package codec

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Zstd is block compression with github.com/klauspost/compress/zstd.
// Better ratio than LZ4, good for cold snapshots in object storage.
type Zstd struct{}

// Encode appends the zstd frame of src to dst.
func (Zstd) Encode(dst, src []byte) ([]byte, error) {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return enc.EncodeAll(src, dst), nil
}

// Decode expands a zstd frame to rawLen bytes.
func (Zstd) Decode(src []byte, rawLen int) ([]byte, error) {
	dec := getZstdDecoder()
	defer putZstdDecoder(dec)

	out, err := dec.DecodeAll(src, make([]byte, 0, rawLen))
	if err != nil {
		return nil, err
	}
	if len(out) != rawLen {
		return nil, fmt.Errorf("decompressed %d bytes, want %d", len(out), rawLen)
	}
	return out, nil
}

// Name returns "zstd".
func (Zstd) Name() string { return "zstd" }

// ID returns the frame tag 2.
func (Zstd) ID() uint8 { return zstdID }
