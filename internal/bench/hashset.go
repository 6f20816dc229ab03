package bench

// hashEntryBytes estimates the memory per element of a Go map of uint32 keys:
// key, tophash byte and amortized bucket overhead.
const hashEntryBytes = 8

type hashsetEncoding struct{}

func (hashsetEncoding) Name() string { return "hashset" }

func (hashsetEncoding) Build(values []uint32, _ Config) Set {
	m := make(hashset, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

func (hashsetEncoding) WideUnion(sets []Set) Set {
	out := make(hashset)
	for _, s := range sets {
		for v := range s.(hashset) {
			out[v] = struct{}{}
		}
	}
	return out
}

func (hashsetEncoding) WideUnionHeap(sets []Set) Set {
	return heapUnion(sets, func() Set { return make(hashset) })
}

type hashset map[uint32]struct{}

// smaller orders two sets so the first is the one to iterate.
func smaller(a, b hashset) (hashset, hashset) {
	if len(a) > len(b) {
		return b, a
	}
	return a, b
}

func (s hashset) Contains(v uint32) bool {
	_, ok := s[v]
	return ok
}

func (s hashset) Cardinality() uint64 { return uint64(len(s)) }
func (s hashset) SizeInBytes() uint64 { return uint64(len(s)) * hashEntryBytes }

func (s hashset) And(o Set) Set {
	small, large := smaller(s, o.(hashset))
	out := make(hashset)
	for v := range small {
		if _, ok := large[v]; ok {
			out[v] = struct{}{}
		}
	}
	return out
}

func (s hashset) Or(o Set) Set {
	other := o.(hashset)
	out := make(hashset, len(s)+len(other))
	for v := range s {
		out[v] = struct{}{}
	}
	for v := range other {
		out[v] = struct{}{}
	}
	return out
}

func (s hashset) AndNot(o Set) Set {
	other := o.(hashset)
	out := make(hashset)
	for v := range s {
		if _, ok := other[v]; !ok {
			out[v] = struct{}{}
		}
	}
	return out
}

func (s hashset) Xor(o Set) Set {
	other := o.(hashset)
	out := make(hashset)
	for v := range s {
		if _, ok := other[v]; !ok {
			out[v] = struct{}{}
		}
	}
	for v := range other {
		if _, ok := s[v]; !ok {
			out[v] = struct{}{}
		}
	}
	return out
}

func (s hashset) AndCardinality(o Set) uint64 {
	small, large := smaller(s, o.(hashset))
	var n uint64
	for v := range small {
		if _, ok := large[v]; ok {
			n++
		}
	}
	return n
}

func (s hashset) OrCardinality(o Set) uint64 {
	return uint64(len(s)+len(o.(hashset))) - s.AndCardinality(o)
}

func (s hashset) AndNotCardinality(o Set) uint64 {
	return uint64(len(s)) - s.AndCardinality(o)
}

func (s hashset) XorCardinality(o Set) uint64 {
	return uint64(len(s)+len(o.(hashset))) - 2*s.AndCardinality(o)
}

func (s hashset) ForEach(fn func(uint32)) {
	for v := range s {
		fn(v)
	}
}
