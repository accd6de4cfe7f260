/*

# Bloom filter engine

This package implements a classic Bloom filter from first principles: sizing
from a target capacity and false-positive rate, double-hashed membership,
concurrency-safe bit mutation, and a bit-exact serialized form.

## What Bloom filters are (and are not)

Bloom filters provide a *probabilistic prefilter*:

- If the filter says "definitely not present", then the element is not present.
- If the filter says "maybe present", then the element may or may not be
  present (false positives are possible).

There are no false negatives: every element ever passed to Insert is reported
present by MightContain for the lifetime of the filter. The false-positive
rate converges on the rate requested at construction as the filter fills
toward its planned capacity, and exceeds it beyond that.

Filters do not support deletion or resizing, and the hashing is not
cryptographic.

## Sizing

New computes the two structural parameters from the caller's capacity n and
target false-positive probability p using the standard equations:

	m = ceil(-(n * ln(p)) / ln(2)^2)
	k = round((m / n) * ln(2)), minimum 1

m and k are fixed for the lifetime of a filter, whether it was built by New
or restored by DecodeV1.

## Hashing and index derivation (format V1)

The base hash for format version 1 is murmur3 128-bit (x64 variant). The two
64-bit halves of the sum are h1 and h2 (h2 is forced to 1 if it hashes to
zero), and the k probe indices are derived with deterministic double-hashing:

	index_i = (h1 + i*h2) mod m    for i in 0..k

The base hash is part of the persisted format contract: two processes can
share a serialized filter only if they agree on both the byte layout and the
hash scheme, so the scheme is fixed per format version.

## Serialized form (format V1)

	offset 0:  4 bytes  magic "BLM1"
	offset 4:  1 byte   format version = 1
	offset 5:  8 bytes  m (unsigned, big-endian)
	offset 13: 4 bytes  k (unsigned, big-endian)
	offset 17: ceil(m/8) bytes  bit payload, bit i at byte i/8, position i%8
	                            (LSB-first within each byte)

EncodeV1 is pure and deterministic; DecodeV1(EncodeV1(f)) answers every
MightContain query exactly as f does.

## API versioning: why the `V1` suffix exists

The codec functions are suffixed with a format version (EncodeV1, DecodeV1,
WriteV1, ReadV1). The suffix means: this function implements serialized
format version 1 — a specific magic/version/field layout, bit numbering
convention, and hashing scheme. Incompatible future changes can be introduced
as V2 side-by-side without silently breaking previously persisted data.

## Concurrency

Insert and MightContain are safe to call concurrently on a shared filter.
Bit sets are atomic per word, so concurrent inserts never lose bits; a query
racing an insert may observe fewer bits than have been set, which can only
delay a positive, never produce a false negative for a completed insert.

*/
package bloom
