package bloom

import "github.com/spaolacci/murmur3"

// hashPairV1 returns the two 64-bit base hashes for elem under format V1:
// the low and high halves of the murmur3 128-bit (x64) sum. h2 is forced
// nonzero so the double-hash probe stride never degenerates to a single
// index.
func hashPairV1(elem []byte) (h1 uint64, h2 uint64) {
	h1, h2 = murmur3.Sum128(elem)
	if h2 == 0 {
		h2 = 1
	}
	return h1, h2
}

// indexV1 returns the i'th probe index via Kirsch-Mitzenmacher double
// hashing: (h1 + i*h2) mod m.
func indexV1(h1, h2, i, m uint64) uint64 {
	return (h1 + i*h2) % m
}

// IndicesV1 returns the k probe indices for elem in a filter of m bits.
// The sequence is deterministic for a given (elem, m, k), including across
// process restarts and serialization round-trips.
func IndicesV1(elem []byte, m uint64, k uint32) []uint64 {
	h1, h2 := hashPairV1(elem)
	out := make([]uint64, k)
	for i := range out {
		out[i] = indexV1(h1, h2, uint64(i), m)
	}
	return out
}
