package bloom

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildFilter(t *testing.T, n int, p float64, inserted int) *Filter {
	t.Helper()
	f, err := New(n, p)
	require.NoError(t, err)
	for i := 0; i < inserted; i++ {
		f.Insert([]byte(fmt.Sprintf("element%d", i)))
	}
	return f
}

func TestEncodeV1Layout(t *testing.T) {
	f := buildFilter(t, 1000, 0.01, 10)

	data := EncodeV1(f)
	require.Equal(t, uint64(len(data)), EncodedBytesV1(f.M()))

	require.Equal(t, []byte("BLM1"), data[0:4])
	require.Equal(t, byte(0x42), data[0]) // magic is 0x424C4D31 big-endian
	require.Equal(t, VersionV1, data[4])
	require.Equal(t, f.M(), readU64BE(data[5:13]))
	require.Equal(t, f.K(), readU32BE(data[13:17]))

	// Pure and deterministic.
	require.Equal(t, data, EncodeV1(f))
}

func TestRoundTrip(t *testing.T) {
	const n = 10_000

	f := buildFilter(t, n, 0.01, n)
	g, err := DecodeV1(EncodeV1(f))
	require.NoError(t, err)

	require.Equal(t, f.M(), g.M())
	require.Equal(t, f.K(), g.K())

	// The restored filter answers every query identically: probe with the
	// full inserted set and as many known-distinct extra keys.
	for i := 0; i < 2*n; i++ {
		key := []byte(fmt.Sprintf("element%d", i))
		require.Equal(t, f.MightContain(key), g.MightContain(key), "key %s", key)
	}

	// Bit-for-bit identical on re-encode.
	require.Equal(t, EncodeV1(f), EncodeV1(g))
}

func TestRoundTripEmptyFilter(t *testing.T) {
	f := buildFilter(t, 100, 0.1, 0)
	g, err := DecodeV1(EncodeV1(f))
	require.NoError(t, err)
	require.False(t, g.MightContain([]byte("element1")))
}

func TestDecodeV1RejectsCorruptData(t *testing.T) {
	f := buildFilter(t, 100, 0.01, 100)
	good := EncodeV1(f)

	// Flipped magic.
	bad := bytes.Clone(good)
	bad[0] ^= 0xFF
	_, err := DecodeV1(bad)
	require.ErrorIs(t, err, ErrBadMagic)

	// Unknown version.
	bad = bytes.Clone(good)
	bad[4] = 2
	_, err = DecodeV1(bad)
	require.ErrorIs(t, err, ErrBadVersion)

	// Zeroed structural parameters.
	bad = bytes.Clone(good)
	writeU64BE(bad[5:13], 0)
	_, err = DecodeV1(bad)
	require.ErrorIs(t, err, ErrBadM)

	bad = bytes.Clone(good)
	writeU32BE(bad[13:17], 0)
	_, err = DecodeV1(bad)
	require.ErrorIs(t, err, ErrBadK)
}

func v1Header(m uint64, k uint32) []byte {
	header := make([]byte, HeaderBytesV1)
	copy(header[0:4], MagicV1)
	header[4] = VersionV1
	writeU64BE(header[5:13], m)
	writeU32BE(header[13:17], k)
	return header
}

func TestDecodeV1RejectsOverflowingM(t *testing.T) {
	// With m near 2^64, (m+7)/8 wraps to a tiny payload length, so a bare
	// header would otherwise slip past the truncation check and corrupt
	// the bitset sizing. Decode must fail cleanly, never panic.
	for _, m := range []uint64{^uint64(0), ^uint64(0) - 6, MaxMBitsV1 + 1} {
		_, err := DecodeV1(v1Header(m, 1))
		require.ErrorIs(t, err, ErrMBitsOverflow, "m=%d", m)

		_, err = ReadV1(bytes.NewReader(v1Header(m, 1)))
		require.ErrorIs(t, err, ErrMBitsOverflow, "m=%d", m)
	}
}

func TestReadV1HugeDeclaredPayload(t *testing.T) {
	// An in-range m can still declare a petabyte payload. The reader must
	// fail once the stream ends short rather than allocate it up front.
	_, err := ReadV1(bytes.NewReader(v1Header(uint64(1)<<50, 7)))
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeV1RejectsTruncatedData(t *testing.T) {
	f := buildFilter(t, 100, 0.01, 100)
	good := EncodeV1(f)

	// Truncation anywhere: inside the header and inside the payload.
	for _, cut := range []int{0, 1, HeaderBytesV1 - 1, HeaderBytesV1, len(good) - 1} {
		_, err := DecodeV1(good[:cut])
		require.ErrorIs(t, err, ErrTruncated, "cut at %d", cut)
	}
}

func TestWriteReadV1(t *testing.T) {
	const n = 1000

	f := buildFilter(t, n, 0.01, n)

	var buf bytes.Buffer
	require.NoError(t, WriteV1(&buf, f))
	require.Equal(t, EncodeV1(f), buf.Bytes())

	g, err := ReadV1(&buf)
	require.NoError(t, err)
	require.Equal(t, EncodeV1(f), EncodeV1(g))
}

func TestReadV1ShortStream(t *testing.T) {
	f := buildFilter(t, 100, 0.01, 100)
	good := EncodeV1(f)

	for _, cut := range []int{0, 3, HeaderBytesV1, len(good) - 1} {
		_, err := ReadV1(bytes.NewReader(good[:cut]))
		require.ErrorIs(t, err, ErrTruncated, "cut at %d", cut)
	}

	bad := bytes.Clone(good)
	bad[0] = 'X'
	_, err := ReadV1(bytes.NewReader(bad))
	require.ErrorIs(t, err, ErrBadMagic)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteV1FailureLeavesFilterUsable(t *testing.T) {
	f := buildFilter(t, 100, 0.01, 100)

	err := WriteV1(failWriter{}, f)
	require.Error(t, err)

	// The live filter is unaffected by the failed save.
	for i := 0; i < 100; i++ {
		require.True(t, f.MightContain([]byte(fmt.Sprintf("element%d", i))))
	}
	var buf bytes.Buffer
	require.NoError(t, WriteV1(&buf, f))
}
