package bitmap

import (
	"github.com/hupe1980/chunkset/internal/chunk"
)

func (b *Bitmap) appendChunk(key uint16, c *chunk.Chunk) {
	if c.IsEmpty() {
		return
	}
	b.keys = append(b.keys, key)
	b.chunks = append(b.chunks, c)
}

func (b *Bitmap) result(o *Bitmap, capacity int) *Bitmap {
	return &Bitmap{
		keys:   make([]uint16, 0, capacity),
		chunks: make([]*chunk.Chunk, 0, capacity),
		cow:    b.cow && o.cow,
	}
}

// And returns b ∩ o.
func (b *Bitmap) And(o *Bitmap) *Bitmap {
	r := b.result(o, min(len(b.keys), len(o.keys)))
	i, j := 0, 0
	for i < len(b.keys) && j < len(o.keys) {
		switch kb, ko := b.keys[i], o.keys[j]; {
		case kb < ko:
			i++
		case kb > ko:
			j++
		default:
			r.appendChunk(kb, b.chunks[i].And(o.chunks[j]))
			i++
			j++
		}
	}
	return r
}

// Or returns b ∪ o.
func (b *Bitmap) Or(o *Bitmap) *Bitmap {
	r := b.result(o, len(b.keys)+len(o.keys))
	i, j := 0, 0
	for i < len(b.keys) && j < len(o.keys) {
		switch kb, ko := b.keys[i], o.keys[j]; {
		case kb < ko:
			r.appendChunk(kb, b.lend(i))
			i++
		case kb > ko:
			r.appendChunk(ko, o.lend(j))
			j++
		default:
			r.appendChunk(kb, b.chunks[i].Or(o.chunks[j]))
			i++
			j++
		}
	}
	for ; i < len(b.keys); i++ {
		r.appendChunk(b.keys[i], b.lend(i))
	}
	for ; j < len(o.keys); j++ {
		r.appendChunk(o.keys[j], o.lend(j))
	}
	return r
}

// AndNot returns b \ o.
func (b *Bitmap) AndNot(o *Bitmap) *Bitmap {
	r := b.result(o, len(b.keys))
	i, j := 0, 0
	for i < len(b.keys) && j < len(o.keys) {
		switch kb, ko := b.keys[i], o.keys[j]; {
		case kb < ko:
			r.appendChunk(kb, b.lend(i))
			i++
		case kb > ko:
			j++
		default:
			r.appendChunk(kb, b.chunks[i].AndNot(o.chunks[j]))
			i++
			j++
		}
	}
	for ; i < len(b.keys); i++ {
		r.appendChunk(b.keys[i], b.lend(i))
	}
	return r
}

// Xor returns the symmetric difference of b and o.
func (b *Bitmap) Xor(o *Bitmap) *Bitmap {
	r := b.result(o, len(b.keys)+len(o.keys))
	i, j := 0, 0
	for i < len(b.keys) && j < len(o.keys) {
		switch kb, ko := b.keys[i], o.keys[j]; {
		case kb < ko:
			r.appendChunk(kb, b.lend(i))
			i++
		case kb > ko:
			r.appendChunk(ko, o.lend(j))
			j++
		default:
			r.appendChunk(kb, b.chunks[i].Xor(o.chunks[j]))
			i++
			j++
		}
	}
	for ; i < len(b.keys); i++ {
		r.appendChunk(b.keys[i], b.lend(i))
	}
	for ; j < len(o.keys); j++ {
		r.appendChunk(o.keys[j], o.lend(j))
	}
	return r
}

// IOr adds every value of o to b.
func (b *Bitmap) IOr(o *Bitmap) {
	if b == o || len(o.keys) == 0 {
		return
	}
	keys := make([]uint16, 0, len(b.keys)+len(o.keys))
	chunks := make([]*chunk.Chunk, 0, cap(keys))
	i, j := 0, 0
	for i < len(b.keys) && j < len(o.keys) {
		switch kb, ko := b.keys[i], o.keys[j]; {
		case kb < ko:
			keys, chunks = append(keys, kb), append(chunks, b.chunks[i])
			i++
		case kb > ko:
			keys, chunks = append(keys, ko), append(chunks, o.lend(j))
			j++
		default:
			keys, chunks = append(keys, kb), append(chunks, orInto(b.chunks[i], o.chunks[j]))
			i++
			j++
		}
	}
	keys, chunks = append(keys, b.keys[i:]...), append(chunks, b.chunks[i:]...)
	for ; j < len(o.keys); j++ {
		keys, chunks = append(keys, o.keys[j]), append(chunks, o.lend(j))
	}
	b.keys, b.chunks = keys, chunks
}

// orInto merges o into c, in place when c is exclusively held.
func orInto(c, o *chunk.Chunk) *chunk.Chunk {
	if c.Shared() {
		r := c.Or(o)
		c.Release()
		return r
	}
	return c.IOr(o)
}

// IAnd removes every value of b that is not in o.
func (b *Bitmap) IAnd(o *Bitmap) {
	if b == o {
		return
	}
	n := 0
	i, j := 0, 0
	for i < len(b.keys) && j < len(o.keys) {
		switch kb, ko := b.keys[i], o.keys[j]; {
		case kb < ko:
			drop(b.chunks[i])
			i++
		case kb > ko:
			j++
		default:
			c := b.chunks[i].And(o.chunks[j])
			drop(b.chunks[i])
			if !c.IsEmpty() {
				b.keys[n], b.chunks[n] = kb, c
				n++
			}
			i++
			j++
		}
	}
	for ; i < len(b.keys); i++ {
		drop(b.chunks[i])
	}
	b.truncate(n)
}

// IAndNot removes every value of o from b.
func (b *Bitmap) IAndNot(o *Bitmap) {
	if b == o {
		b.Clear()
		return
	}
	n := 0
	i, j := 0, 0
	for i < len(b.keys) && j < len(o.keys) {
		switch kb, ko := b.keys[i], o.keys[j]; {
		case kb < ko:
			b.keys[n], b.chunks[n] = kb, b.chunks[i]
			n++
			i++
		case kb > ko:
			j++
		default:
			c := b.chunks[i].AndNot(o.chunks[j])
			drop(b.chunks[i])
			if !c.IsEmpty() {
				b.keys[n], b.chunks[n] = kb, c
				n++
			}
			i++
			j++
		}
	}
	for ; i < len(b.keys); i++ {
		b.keys[n], b.chunks[n] = b.keys[i], b.chunks[i]
		n++
	}
	b.truncate(n)
}

// IXor replaces b with the symmetric difference of b and o.
func (b *Bitmap) IXor(o *Bitmap) {
	if b == o {
		b.Clear()
		return
	}
	keys := make([]uint16, 0, len(b.keys)+len(o.keys))
	chunks := make([]*chunk.Chunk, 0, cap(keys))
	i, j := 0, 0
	for i < len(b.keys) && j < len(o.keys) {
		switch kb, ko := b.keys[i], o.keys[j]; {
		case kb < ko:
			keys, chunks = append(keys, kb), append(chunks, b.chunks[i])
			i++
		case kb > ko:
			keys, chunks = append(keys, ko), append(chunks, o.lend(j))
			j++
		default:
			c := b.chunks[i].Xor(o.chunks[j])
			drop(b.chunks[i])
			if !c.IsEmpty() {
				keys, chunks = append(keys, kb), append(chunks, c)
			}
			i++
			j++
		}
	}
	keys, chunks = append(keys, b.keys[i:]...), append(chunks, b.chunks[i:]...)
	for ; j < len(o.keys); j++ {
		keys, chunks = append(keys, o.keys[j]), append(chunks, o.lend(j))
	}
	b.keys, b.chunks = keys, chunks
}

func (b *Bitmap) truncate(n int) {
	clear(b.chunks[n:])
	b.keys, b.chunks = b.keys[:n], b.chunks[:n]
}

// AndCardinality returns |b ∩ o| without building the intersection.
func (b *Bitmap) AndCardinality(o *Bitmap) uint64 {
	var n uint64
	i, j := 0, 0
	for i < len(b.keys) && j < len(o.keys) {
		switch kb, ko := b.keys[i], o.keys[j]; {
		case kb < ko:
			i++
		case kb > ko:
			j++
		default:
			n += uint64(b.chunks[i].AndCardinality(o.chunks[j]))
			i++
			j++
		}
	}
	return n
}

// OrCardinality returns |b ∪ o| without building the union.
func (b *Bitmap) OrCardinality(o *Bitmap) uint64 {
	return b.Cardinality() + o.Cardinality() - b.AndCardinality(o)
}

// AndNotCardinality returns |b \ o| without building the difference.
func (b *Bitmap) AndNotCardinality(o *Bitmap) uint64 {
	return b.Cardinality() - b.AndCardinality(o)
}

// XorCardinality returns the size of the symmetric difference of b and o.
func (b *Bitmap) XorCardinality(o *Bitmap) uint64 {
	return b.Cardinality() + o.Cardinality() - 2*b.AndCardinality(o)
}

// Intersects reports whether b and o share at least one value.
func (b *Bitmap) Intersects(o *Bitmap) bool {
	i, j := 0, 0
	for i < len(b.keys) && j < len(o.keys) {
		switch kb, ko := b.keys[i], o.keys[j]; {
		case kb < ko:
			i++
		case kb > ko:
			j++
		default:
			if b.chunks[i].Intersects(o.chunks[j]) {
				return true
			}
			i++
			j++
		}
	}
	return false
}
