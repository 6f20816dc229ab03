// Package codec centralizes block compression of serialized sets.
//
// Every compressed blob is framed as
//
//	[codec-id u8][raw-len u32 LE][payload]
//
// so a reader can pick the matching codec without outside configuration.
// Codec ids are a persistence boundary: changing them breaks stored blobs.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/chunkset/internal/conv"
)

var (
	// ErrInvalidCodec is returned for an unknown codec id or name.
	ErrInvalidCodec = errors.New("invalid codec")
	// ErrCorruptFrame is returned when a frame is malformed or fails to decompress.
	ErrCorruptFrame = errors.New("corrupt frame")
)

// Codec compresses and decompresses byte blocks.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Encode appends the compressed form of src to dst. A nil result means
	// src is incompressible with this codec.
	Encode(dst, src []byte) ([]byte, error)
	// Decode decompresses src, which expands to exactly rawLen bytes.
	Decode(src []byte, rawLen int) ([]byte, error)
	// Name is the stable name of the codec.
	Name() string
	// ID is the stable frame tag of the codec.
	ID() uint8
}

const frameHeaderSize = 5

// maxRawLen bounds the decompressed size a frame may declare.
const maxRawLen = 1 << 31

// Default is the codec used when none is configured.
var Default Codec = None{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "none", "":
		return None{}, true
	case "lz4":
		return LZ4{}, true
	case "zstd":
		return Zstd{}, true
	default:
		return nil, false
	}
}

// ByID returns a built-in codec by its frame tag.
func ByID(id uint8) (Codec, bool) {
	switch id {
	case noneID:
		return None{}, true
	case lz4ID:
		return LZ4{}, true
	case zstdID:
		return Zstd{}, true
	default:
		return nil, false
	}
}

// Frame compresses data with c and returns the framed block.
// When compression saves less than 10%, the block is stored uncompressed.
func Frame(c Codec, data []byte) ([]byte, error) {
	if c == nil {
		c = Default
	}
	rawLen, err := conv.IntToUint32(len(data))
	if err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}
	if c.ID() != noneID && len(data) > 0 {
		out := appendHeader(make([]byte, 0, frameHeaderSize+len(data)), c.ID(), rawLen)
		out, err := c.Encode(out, data)
		if err != nil {
			return nil, fmt.Errorf("codec %s encode failed: %w", c.Name(), err)
		}
		if out != nil && float64(len(out)-frameHeaderSize) <= float64(len(data))*0.9 {
			return out, nil
		}
	}
	out := appendHeader(make([]byte, 0, frameHeaderSize+len(data)), noneID, rawLen)
	return append(out, data...), nil
}

func appendHeader(dst []byte, id uint8, rawLen uint32) []byte {
	dst = append(dst, id)
	return binary.LittleEndian.AppendUint32(dst, rawLen)
}

// Unframe decodes a framed block and reports the codec that produced it.
func Unframe(frame []byte) ([]byte, Codec, error) {
	if len(frame) < frameHeaderSize {
		return nil, nil, fmt.Errorf("frame of %d bytes: %w", len(frame), ErrCorruptFrame)
	}
	c, ok := ByID(frame[0])
	if !ok {
		return nil, nil, fmt.Errorf("codec id %d: %w", frame[0], ErrInvalidCodec)
	}
	rawLen := int64(binary.LittleEndian.Uint32(frame[1:]))
	if rawLen > maxRawLen {
		return nil, nil, fmt.Errorf("raw length %d: %w", rawLen, ErrCorruptFrame)
	}
	data, err := c.Decode(frame[frameHeaderSize:], int(rawLen))
	if err != nil {
		return nil, nil, fmt.Errorf("codec %s decode failed: %w", c.Name(), errors.Join(ErrCorruptFrame, err))
	}
	return data, c, nil
}

const (
	noneID uint8 = 0
	lz4ID  uint8 = 1
	zstdID uint8 = 2
)

// None stores blocks as they are.
type None struct{}

// Encode appends src unchanged.
func (None) Encode(dst, src []byte) ([]byte, error) { return append(dst, src...), nil }

// Decode returns src after checking its length.
func (None) Decode(src []byte, rawLen int) ([]byte, error) {
	if len(src) != rawLen {
		return nil, fmt.Errorf("stored block is %d bytes, want %d", len(src), rawLen)
	}
	return src, nil
}

// Name returns "none".
func (None) Name() string { return "none" }

// ID returns the frame tag 0.
func (None) ID() uint8 { return noneID }
