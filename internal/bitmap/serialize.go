package bitmap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/chunkset/internal/chunk"
)

const (
	headerBytes = 4
	maxChunks   = 1 << 16
)

// ErrTrailingBytes is returned when input continues past the last chunk.
var ErrTrailingBytes = errors.New("trailing bytes after last chunk")

// ErrKeyOrder is returned when chunk keys are not strictly increasing.
var ErrKeyOrder = errors.New("chunk keys not strictly increasing")

// ErrTooManyChunks is returned when the header declares more than 65536 chunks.
var ErrTooManyChunks = errors.New("chunk count exceeds 65536")

// DecodeError reports malformed serialized input.
//
// The underlying cause can be accessed via errors.Unwrap.
type DecodeError struct {
	// Offset is the byte position at which decoding failed.
	Offset int64
	// Reason names the part of the input being decoded.
	Reason string
	cause  error
}

func (e *DecodeError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("decode error at offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("decode error at offset %d: %s: %v", e.Offset, e.Reason, e.cause)
}

func (e *DecodeError) Unwrap() error { return e.cause }

// SerializedSizeInBytes returns the length of MarshalBinary's output.
// It always equals SizeInBytes.
func (b *Bitmap) SerializedSizeInBytes() uint64 { return b.SizeInBytes() }

// AppendBinary appends the serialized form of b to dst.
func (b *Bitmap) AppendBinary(dst []byte) ([]byte, error) {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(b.chunks)))
	for i, c := range b.chunks {
		dst = binary.LittleEndian.AppendUint16(dst, b.keys[i])
		dst = append(dst, byte(c.Kind()))
		dst = c.AppendPayload(dst)
	}
	return dst, nil
}

// MarshalBinary returns the serialized form of b.
func (b *Bitmap) MarshalBinary() ([]byte, error) {
	return b.AppendBinary(make([]byte, 0, b.SizeInBytes()))
}

// WriteTo writes the serialized form of b to w.
func (b *Bitmap) WriteTo(w io.Writer) (int64, error) {
	buf, err := b.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf)
	return int64(n), err
}

// UnmarshalBinary replaces the content of b with the decoded data.
// On error b is left unchanged.
func (b *Bitmap) UnmarshalBinary(data []byte) error {
	if len(data) < headerBytes {
		return &DecodeError{Offset: 0, Reason: "header", cause: chunk.ErrTruncated}
	}
	count := binary.LittleEndian.Uint32(data)
	if count > maxChunks {
		return &DecodeError{Offset: 0, Reason: "header", cause: ErrTooManyChunks}
	}
	keys := make([]uint16, 0, count)
	chunks := make([]*chunk.Chunk, 0, count)

	off := headerBytes
	for i := uint32(0); i < count; i++ {
		if len(data)-off < chunk.HeaderBytes {
			return &DecodeError{Offset: int64(off), Reason: "chunk header", cause: chunk.ErrTruncated}
		}
		key := binary.LittleEndian.Uint16(data[off:])
		if len(keys) > 0 && key <= keys[len(keys)-1] {
			return &DecodeError{Offset: int64(off), Reason: "chunk key", cause: ErrKeyOrder}
		}
		kind := chunk.Kind(data[off+2])
		off += chunk.HeaderBytes

		c, n, err := chunk.DecodePayload(kind, data[off:])
		if err != nil {
			return &DecodeError{Offset: int64(off), Reason: kind.String() + " payload", cause: err}
		}
		keys = append(keys, key)
		chunks = append(chunks, c)
		off += n
	}
	if off != len(data) {
		return &DecodeError{Offset: int64(off), Reason: "end of input", cause: ErrTrailingBytes}
	}

	b.Clear()
	b.keys, b.chunks = keys, chunks
	return nil
}

// ReadFrom replaces the content of b with one serialized bitmap read from r.
// It reads exactly the bytes of that bitmap. On error b is left unchanged.
func (b *Bitmap) ReadFrom(r io.Reader) (int64, error) {
	var off int64
	var hdr [headerBytes]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return off, &DecodeError{Offset: off, Reason: "header", cause: readErr(err)}
	}
	off += headerBytes
	count := binary.LittleEndian.Uint32(hdr[:])
	if count > maxChunks {
		return off, &DecodeError{Offset: 0, Reason: "header", cause: ErrTooManyChunks}
	}

	keys := make([]uint16, 0, count)
	chunks := make([]*chunk.Chunk, 0, count)
	buf := make([]byte, 0, chunk.HeaderBytes+chunk.PayloadPrefix)

	for i := uint32(0); i < count; i++ {
		var rec [chunk.HeaderBytes + chunk.PayloadPrefix]byte
		head := rec[:chunk.HeaderBytes]
		if _, err := io.ReadFull(r, head); err != nil {
			return off, &DecodeError{Offset: off, Reason: "chunk header", cause: readErr(err)}
		}
		key := binary.LittleEndian.Uint16(head)
		if len(keys) > 0 && key <= keys[len(keys)-1] {
			return off, &DecodeError{Offset: off, Reason: "chunk key", cause: ErrKeyOrder}
		}
		kind := chunk.Kind(head[2])
		off += chunk.HeaderBytes

		prefix := rec[chunk.HeaderBytes:]
		if kind != chunk.Bitmap {
			if _, err := io.ReadFull(r, prefix); err != nil {
				return off, &DecodeError{Offset: off, Reason: kind.String() + " payload", cause: readErr(err)}
			}
		}
		size, err := chunk.PayloadSize(kind, prefix)
		if err != nil {
			return off, &DecodeError{Offset: off, Reason: "chunk tag", cause: err}
		}

		buf = buf[:0]
		if kind != chunk.Bitmap {
			buf = append(buf, prefix...)
		}
		start := len(buf)
		buf = append(buf, make([]byte, size-start)...)
		if _, err := io.ReadFull(r, buf[start:]); err != nil {
			return off, &DecodeError{Offset: off, Reason: kind.String() + " payload", cause: readErr(err)}
		}

		c, _, err := chunk.DecodePayload(kind, buf)
		if err != nil {
			return off, &DecodeError{Offset: off, Reason: kind.String() + " payload", cause: err}
		}
		keys = append(keys, key)
		chunks = append(chunks, c)
		off += int64(size)
	}

	b.Clear()
	b.keys, b.chunks = keys, chunks
	return off, nil
}

func readErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return chunk.ErrTruncated
	}
	return err
}
