package bloom

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/wjleon/bloom-filter-project/bitset"
)

// Filter is a classic Bloom filter: m bits probed k times per operation.
// m and k are fixed at construction (New or DecodeV1) and never change.
//
// Insert and MightContain are safe for concurrent use on a shared Filter.
// A Filter must be fully constructed before being shared between goroutines.
type Filter struct {
	m    uint64
	k    uint32
	bits *bitset.BitSet

	// inserted counts Insert calls. Advisory only: it feeds the rate
	// diagnostics and is never used for correctness. It is not persisted.
	inserted atomic.Uint64
}

// New returns a zeroed filter sized for n expected distinct elements at
// target false-positive probability p.
func New(n int, p float64) (*Filter, error) {
	m, k, err := EstimateParameters(n, p)
	if err != nil {
		return nil, err
	}
	return &Filter{m: m, k: k, bits: bitset.New(m)}, nil
}

// M returns the bit-array length.
func (f *Filter) M() uint64 { return f.m }

// K returns the number of hash probes per operation.
func (f *Filter) K() uint32 { return f.k }

// InsertedCount returns the number of Insert calls on this instance.
func (f *Filter) InsertedCount() uint64 { return f.inserted.Load() }

// Insert adds elem to the set. Any byte sequence is a valid element.
func (f *Filter) Insert(elem []byte) {
	h1, h2 := hashPairV1(elem)
	for i := uint64(0); i < uint64(f.k); i++ {
		if err := f.bits.Set(indexV1(h1, h2, i, f.m)); err != nil {
			// The hasher reduces every index mod m; an out of range
			// index here is a corrupted filter, not a caller error.
			panic(fmt.Errorf("bloom: probe index escaped [0, m): %w", err))
		}
	}
	f.inserted.Add(1)
}

// MightContain reports whether elem may have been inserted. A false result
// is definitive; a true result is correct for every inserted element and a
// false positive otherwise.
func (f *Filter) MightContain(elem []byte) bool {
	h1, h2 := hashPairV1(elem)
	for i := uint64(0); i < uint64(f.k); i++ {
		ok, err := f.bits.Test(indexV1(h1, h2, i, f.m))
		if err != nil {
			panic(fmt.Errorf("bloom: probe index escaped [0, m): %w", err))
		}
		if !ok {
			return false
		}
	}
	return true
}

// FillRatio returns the fraction of bits currently set.
func (f *Filter) FillRatio() float64 {
	return float64(f.bits.Count()) / float64(f.m)
}

// EstimatedFalsePositiveRate returns the probability that MightContain
// reports true for a never-inserted element, given the current load:
// (1 - e^(-k*inserted/m))^k. For a filter restored by DecodeV1, where the
// insert count is unknown, the observed fill ratio substitutes for the
// expected one.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	fill := 1 - math.Exp(-float64(f.k)*float64(f.inserted.Load())/float64(f.m))
	if observed := f.FillRatio(); observed > fill {
		fill = observed
	}
	return math.Pow(fill, float64(f.k))
}
