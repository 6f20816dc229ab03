package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/chunkset/internal/bitset"
)

var (
	// ErrTruncated is returned when a payload is shorter than its declared size.
	ErrTruncated = errors.New("truncated payload")
	// ErrUnknownKind is returned for a representation tag outside {0,1,2}.
	ErrUnknownKind = errors.New("unknown representation tag")
	// ErrEmpty is returned for a payload that declares zero residues.
	ErrEmpty = errors.New("empty chunk payload")
	// ErrUnordered is returned when residues or runs are not strictly increasing.
	ErrUnordered = errors.New("unordered or overlapping payload")
)

// PayloadPrefix is the number of leading payload bytes PayloadSize inspects.
const PayloadPrefix = 2

// PayloadSize returns the payload length of a record of the given kind from
// its first PayloadPrefix bytes. The prefix is ignored for Bitmap.
func PayloadSize(kind Kind, prefix []byte) (int, error) {
	switch kind {
	case Bitmap:
		return bitmapBytes, nil
	case Array, Run:
		if len(prefix) < PayloadPrefix {
			return 0, ErrTruncated
		}
		n := int(binary.LittleEndian.Uint16(prefix))
		if kind == Array {
			return arrayBytes(n), nil
		}
		return runBytes(n), nil
	default:
		return 0, ErrUnknownKind
	}
}

// AppendPayload appends the representation payload (without key and tag).
func (c *Chunk) AppendPayload(dst []byte) []byte {
	switch c.kind {
	case Array:
		dst = binary.LittleEndian.AppendUint16(dst, uint16(len(c.array)))
		for _, v := range c.array {
			dst = binary.LittleEndian.AppendUint16(dst, v)
		}
	case Bitmap:
		for _, w := range c.words {
			dst = binary.LittleEndian.AppendUint64(dst, w)
		}
	default:
		dst = binary.LittleEndian.AppendUint16(dst, uint16(len(c.runs)))
		for _, iv := range c.runs {
			dst = binary.LittleEndian.AppendUint16(dst, iv.Start)
			dst = binary.LittleEndian.AppendUint16(dst, iv.Length)
		}
	}
	return dst
}

// DecodePayload decodes a payload of the given kind from the front of buf.
// It returns the chunk and the number of bytes consumed.
func DecodePayload(kind Kind, buf []byte) (*Chunk, int, error) {
	switch kind {
	case Array:
		if len(buf) < 2 {
			return nil, 0, ErrTruncated
		}
		n := int(binary.LittleEndian.Uint16(buf))
		if n == 0 {
			return nil, 0, ErrEmpty
		}
		if n > ArrayMax {
			return nil, 0, fmt.Errorf("array count %d exceeds %d: %w", n, ArrayMax, ErrUnordered)
		}
		size := arrayBytes(n)
		if len(buf) < size {
			return nil, 0, ErrTruncated
		}
		a := make([]uint16, n)
		for i := range a {
			a[i] = binary.LittleEndian.Uint16(buf[2+2*i:])
			if i > 0 && a[i] <= a[i-1] {
				return nil, 0, ErrUnordered
			}
		}
		return newArray(a), size, nil
	case Bitmap:
		if len(buf) < bitmapBytes {
			return nil, 0, ErrTruncated
		}
		w := bitset.New()
		for i := range w {
			w[i] = binary.LittleEndian.Uint64(buf[8*i:])
		}
		card := bitset.Count(w)
		if card == 0 {
			return nil, 0, ErrEmpty
		}
		return fromWords(w, card), bitmapBytes, nil
	case Run:
		if len(buf) < 2 {
			return nil, 0, ErrTruncated
		}
		n := int(binary.LittleEndian.Uint16(buf))
		if n == 0 {
			return nil, 0, ErrEmpty
		}
		size := runBytes(n)
		if len(buf) < size {
			return nil, 0, ErrTruncated
		}
		runs := make([]Interval, n)
		card := 0
		for i := range runs {
			p := buf[2+4*i:]
			iv := Interval{Start: binary.LittleEndian.Uint16(p), Length: binary.LittleEndian.Uint16(p[2:])}
			if int(iv.Start)+int(iv.Length) >= MaxCardinality {
				return nil, 0, fmt.Errorf("run %d overflows chunk: %w", i, ErrUnordered)
			}
			if i > 0 && int(iv.Start) <= int(runs[i-1].Last())+1 {
				return nil, 0, ErrUnordered
			}
			runs[i] = iv
			card += iv.card()
		}
		return newRun(runs, card), size, nil
	default:
		return nil, 0, ErrUnknownKind
	}
}
