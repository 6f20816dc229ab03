package chunk

// arraySearch returns the index of the first element >= v.
func arraySearch(a []uint16, v uint16) int {
	lo, hi := 0, len(a)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if a[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func arrayNumRuns(a []uint16) int {
	if len(a) == 0 {
		return 0
	}
	runs := 1
	for i := 1; i < len(a); i++ {
		if a[i] != a[i-1]+1 {
			runs++
		}
	}
	return runs
}

func intersectArrays(a, b []uint16) []uint16 {
	out := make([]uint16, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

func intersectArraysCount(a, b []uint16) int {
	n, i, j := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			n++
			i++
			j++
		}
	}
	return n
}

func unionArrays(a, b []uint16) []uint16 {
	out := make([]uint16, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

func differenceArrays(a, b []uint16) []uint16 {
	out := make([]uint16, 0, len(a))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			j++
		default:
			i++
			j++
		}
	}
	return append(out, a[i:]...)
}

func symmetricDifferenceArrays(a, b []uint16) []uint16 {
	out := make([]uint16, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// filterArray keeps the elements of a whose membership in o equals keep.
func filterArray(a []uint16, o *Chunk, keep bool) []uint16 {
	out := make([]uint16, 0, len(a))
	for _, v := range a {
		if o.Contains(v) == keep {
			out = append(out, v)
		}
	}
	return out
}

func countContained(a []uint16, o *Chunk) int {
	n := 0
	for _, v := range a {
		if o.Contains(v) {
			n++
		}
	}
	return n
}

func arrayToRuns(a []uint16) []Interval {
	runs := make([]Interval, 0, arrayNumRuns(a))
	for i := 0; i < len(a); {
		j := i
		for j+1 < len(a) && a[j+1] == a[j]+1 {
			j++
		}
		runs = append(runs, Interval{Start: a[i], Length: a[j] - a[i]})
		i = j + 1
	}
	return runs
}
