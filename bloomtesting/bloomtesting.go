// Package bloomtesting provides a statistical measurement harness for Bloom
// filters: it drives membership queries for keys known to be absent from a
// filter's insertion history and reports the empirical false-positive rate.
//
// The harness is a pure observer. It queries through the filter's public
// interface only and never mutates it.
package bloomtesting

import (
	"iter"

	"github.com/wjleon/bloom-filter-project/bloom"
)

// DefaultSampleLimit bounds how many positive keys Measure retains for
// diagnostic display.
const DefaultSampleLimit = 10

// Result aggregates one measurement run.
type Result struct {
	// FalsePositives is the number of keys the filter reported present.
	FalsePositives int
	// Checks is the total number of keys queried.
	Checks int
	// Rate is FalsePositives / Checks, or 0 for an empty run.
	Rate float64
	// Samples holds the first few positive keys, for diagnostics.
	Samples [][]byte
}

// Measure queries f for every key in keys and aggregates the positives.
// The caller must guarantee that no key in keys was ever inserted into f;
// under that guarantee every positive is a false positive.
//
// Up to sampleLimit positive keys are retained in Result.Samples, in
// encounter order. A sampleLimit <= 0 selects DefaultSampleLimit.
func Measure(f *bloom.Filter, keys iter.Seq[[]byte], sampleLimit int) Result {
	if sampleLimit <= 0 {
		sampleLimit = DefaultSampleLimit
	}

	var r Result
	for key := range keys {
		r.Checks++
		if !f.MightContain(key) {
			continue
		}
		r.FalsePositives++
		if len(r.Samples) < sampleLimit {
			sample := make([]byte, len(key))
			copy(sample, key)
			r.Samples = append(r.Samples, sample)
		}
	}
	if r.Checks > 0 {
		r.Rate = float64(r.FalsePositives) / float64(r.Checks)
	}
	return r
}
