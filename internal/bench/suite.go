package bench

import (
	"context"
	"slices"
	"time"
)

// budgetFactor is how many times the build time a run spends when no budget
// is given.
const budgetFactor = 100

// Recorder observes the duration of every pass of a run.
type Recorder interface {
	Observe(encoding string, mode Mode, d time.Duration)
}

// Suite is a collection of sets of one encoding, built from integer lists.
type Suite struct {
	enc       Encoding
	sets      []Set
	maxValue  uint32
	totalCard uint64
	size      uint64
	shrunk    int
	buildTime time.Duration
}

// NewSuite builds one set per list.
func NewSuite(enc Encoding, lists [][]uint32, cfg Config) *Suite {
	start := time.Now()
	s := &Suite{enc: enc, sets: make([]Set, 0, len(lists))}
	for _, values := range lists {
		set := enc.Build(values, cfg)
		if sh, ok := set.(Shrinker); ok {
			s.shrunk += sh.ShrinkToFit()
		}
		s.sets = append(s.sets, set)
		s.size += set.SizeInBytes()
		s.totalCard += set.Cardinality()
		if len(values) > 0 {
			s.maxValue = max(s.maxValue, slices.Max(values))
		}
	}
	s.buildTime = time.Since(start)
	return s
}

// Encoding returns the encoding of the sets.
func (s *Suite) Encoding() Encoding { return s.enc }

// Len returns the number of sets.
func (s *Suite) Len() int { return len(s.sets) }

// Sets returns the sets in input order.
func (s *Suite) Sets() []Set { return s.sets }

// SizeInBytes is the summed size of all sets.
func (s *Suite) SizeInBytes() uint64 { return s.size }

// Cardinality is the summed cardinality of all sets.
func (s *Suite) Cardinality() uint64 { return s.totalCard }

// BitsPerValue is the storage cost per stored value.
func (s *Suite) BitsPerValue() float64 {
	if s.totalCard == 0 {
		return 0
	}
	return float64(s.size) * 8 / float64(s.totalCard)
}

// Shrunk is the number of bytes released by ShrinkToFit after building.
func (s *Suite) Shrunk() int { return s.shrunk }

// BuildTime is how long building the sets took.
func (s *Suite) BuildTime() time.Duration { return s.buildTime }

// Result summarizes a run.
type Result struct {
	Mode     Mode
	Encoding string
	Loops    int
	Elapsed  time.Duration
	Checksum uint64 // result of the last pass
}

// PerLoop is the mean duration of one pass.
func (r Result) PerLoop() time.Duration {
	if r.Loops == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Loops)
}

// Run repeats mode until budget is spent, at least once. A budget of zero
// means a hundred times the build time. rec may be nil.
func (s *Suite) Run(ctx context.Context, mode Mode, budget time.Duration, rec Recorder) (Result, error) {
	if budget <= 0 {
		budget = budgetFactor * s.buildTime
	}
	res := Result{Mode: mode, Encoding: s.enc.Name()}
	for res.Loops == 0 || res.Elapsed < budget {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		start := time.Now()
		res.Checksum = pass(mode, s.enc, s.sets, s.maxValue)
		d := time.Since(start)

		res.Elapsed += d
		res.Loops++
		if rec != nil {
			rec.Observe(res.Encoding, mode, d)
		}
	}
	return res, nil
}
