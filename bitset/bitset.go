// Package bitset provides a fixed-length bit vector safe for concurrent use.
//
// Bits are numbered LSB0: bit i lives in word i/64 at position i%64, and in
// the serialized byte form at byte i/8, position i%8. Set is an atomic OR on
// the containing word, so concurrent setters never lose each other's bits.
// Bits are never cleared; a reader racing a setter can only observe fewer
// bits than have been set, never more.
package bitset

import (
	"errors"
	"math/bits"
	"sync/atomic"
)

var ErrBitRange = errors.New("bitset: bit index out of range")

// BitSet is a fixed-length vector of single-bit flags. The zero value is not
// usable; construct with New.
type BitSet struct {
	mBits uint64
	words []uint64
}

// New returns a zeroed bit set of exactly mBits bits.
func New(mBits uint64) *BitSet {
	return &BitSet{
		mBits: mBits,
		words: make([]uint64, (mBits+63)/64),
	}
}

// Len returns the number of bits in the set.
func (b *BitSet) Len() uint64 { return b.mBits }

// Set flips bit i to 1. Setting a bit that is already 1 is a no-op.
func (b *BitSet) Set(i uint64) error {
	if i >= b.mBits {
		return ErrBitRange
	}
	mask := uint64(1) << (i & 63)
	word := &b.words[i>>6]
	if atomic.LoadUint64(word)&mask == 0 {
		atomic.OrUint64(word, mask)
	}
	return nil
}

// Test reports whether bit i is set.
func (b *BitSet) Test(i uint64) (bool, error) {
	if i >= b.mBits {
		return false, ErrBitRange
	}
	return atomic.LoadUint64(&b.words[i>>6])&(1<<(i&63)) != 0, nil
}

// Count returns the number of set bits.
func (b *BitSet) Count() uint64 {
	var n uint64
	for i := range b.words {
		n += uint64(bits.OnesCount64(atomic.LoadUint64(&b.words[i])))
	}
	return n
}

// Bytes returns the LSB0 byte serialization of the set: ceil(mBits/8) bytes,
// bit i at byte i/8, position i%8. Trailing pad bits in the final byte are
// always zero.
func (b *BitSet) Bytes() []byte {
	out := make([]byte, (b.mBits+7)/8)
	for i := range b.words {
		w := atomic.LoadUint64(&b.words[i])
		off := i * 8
		for j := 0; j < 8 && off+j < len(out); j++ {
			out[off+j] = byte(w >> (8 * j))
		}
	}
	return out
}

// SetBytes overwrites the set's contents from an LSB0 byte serialization as
// produced by Bytes. The payload must be exactly ceil(Len()/8) bytes.
//
// SetBytes is not safe to call concurrently with any other operation; it is
// intended for filling a freshly constructed set during decode.
func (b *BitSet) SetBytes(payload []byte) error {
	if uint64(len(payload)) != (b.mBits+7)/8 {
		return ErrBitRange
	}
	for i := range b.words {
		var w uint64
		off := i * 8
		for j := 0; j < 8 && off+j < len(payload); j++ {
			w |= uint64(payload[off+j]) << (8 * j)
		}
		b.words[i] = w
	}
	// Mask any pad bits so Count and Bytes stay canonical.
	if rem := b.mBits & 63; rem != 0 {
		b.words[len(b.words)-1] &= (1 << rem) - 1
	}
	return nil
}
