package bloom

import "math"

// ln2Sq is ln(2)^2, the denominator of the optimal bit-count equation.
var ln2Sq = math.Ln2 * math.Ln2

// EstimateParameters returns the bit-array length m and hash count k for a
// filter expected to hold n distinct elements with false-positive probability
// p once full:
//
//	m = ceil(-(n * ln(p)) / ln(2)^2)
//	k = round((m / n) * ln(2)), minimum 1
func EstimateParameters(n int, p float64) (m uint64, k uint32, err error) {
	if n <= 0 {
		return 0, 0, ErrBadCapacity
	}
	if !(p > 0 && p < 1) {
		return 0, 0, ErrBadFPRate
	}

	m = uint64(math.Ceil(-(float64(n) * math.Log(p)) / ln2Sq))
	k = uint32(math.Round(float64(m) / float64(n) * math.Ln2))
	if k == 0 {
		k = 1
	}
	return m, k, nil
}

// PayloadBytesV1 returns ceil(m/8), the serialized bit payload size.
func PayloadBytesV1(m uint64) uint64 {
	return (m + 7) / 8
}

// EncodedBytesV1 returns the total serialized size for a filter of m bits.
func EncodedBytesV1(m uint64) uint64 {
	return HeaderBytesV1 + PayloadBytesV1(m)
}
