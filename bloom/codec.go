package bloom

import (
	"fmt"
	"io"

	"github.com/wjleon/bloom-filter-project/bitset"
)

// readChunkV1 bounds per-read buffering in ReadV1 so a corrupt header
// cannot force a large allocation ahead of the bytes actually arriving.
const readChunkV1 = 1 << 20

// EncodeV1 serializes f into the V1 byte layout. The encoding is pure and
// deterministic: two filters with identical m, k and bit contents encode to
// identical bytes.
//
// EncodeV1 must not run concurrently with Insert if the caller needs a
// point-in-time snapshot; a racing insert may be only partially captured.
func EncodeV1(f *Filter) []byte {
	out := make([]byte, HeaderBytesV1, EncodedBytesV1(f.m))
	copy(out[0:4], MagicV1)
	out[4] = VersionV1
	writeU64BE(out[5:13], f.m)
	writeU32BE(out[13:17], f.k)
	return append(out, f.bits.Bytes()...)
}

// DecodeV1 reconstructs a filter from data produced by EncodeV1. The result
// answers MightContain identically to the encoded filter.
func DecodeV1(data []byte) (*Filter, error) {
	if len(data) < HeaderBytesV1 {
		return nil, ErrTruncated
	}
	if string(data[0:4]) != MagicV1 {
		return nil, ErrBadMagic
	}
	if data[4] != VersionV1 {
		return nil, fmt.Errorf("%w: version %d", ErrBadVersion, data[4])
	}

	m := readU64BE(data[5:13])
	k := readU32BE(data[13:17])
	if m == 0 {
		return nil, ErrBadM
	}
	if m > MaxMBitsV1 {
		return nil, fmt.Errorf("%w: %d bits", ErrMBitsOverflow, m)
	}
	if k == 0 {
		return nil, ErrBadK
	}

	payload := data[HeaderBytesV1:]
	if uint64(len(payload)) < PayloadBytesV1(m) {
		return nil, ErrTruncated
	}

	f := &Filter{m: m, k: k, bits: bitset.New(m)}
	if err := f.bits.SetBytes(payload[:PayloadBytesV1(m)]); err != nil {
		return nil, err
	}
	return f, nil
}

// WriteV1 writes the V1 serialization of f to w. The filter's in-memory
// state is unaffected by the outcome; a failed write leaves f fully usable.
func WriteV1(w io.Writer, f *Filter) error {
	if _, err := w.Write(EncodeV1(f)); err != nil {
		return fmt.Errorf("bloom: writing serialized filter: %w", err)
	}
	return nil
}

// ReadV1 reads a V1 serialization from r until the encoded length is
// satisfied and reconstructs the filter. Short streams fail with
// ErrTruncated.
func ReadV1(r io.Reader) (*Filter, error) {
	header := make([]byte, HeaderBytesV1)
	if _, err := io.ReadFull(r, header); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrTruncated
		}
		return nil, fmt.Errorf("bloom: reading serialized header: %w", err)
	}

	// Validate the header before trusting the payload length it declares.
	if string(header[0:4]) != MagicV1 {
		return nil, ErrBadMagic
	}
	if header[4] != VersionV1 {
		return nil, fmt.Errorf("%w: version %d", ErrBadVersion, header[4])
	}
	m := readU64BE(header[5:13])
	if m == 0 {
		return nil, ErrBadM
	}
	if m > MaxMBitsV1 {
		return nil, fmt.Errorf("%w: %d bits", ErrMBitsOverflow, m)
	}
	if readU32BE(header[13:17]) == 0 {
		return nil, ErrBadK
	}

	// Read the payload in bounded chunks: the header's declared length is
	// untrusted, so the stream must deliver bytes before they are held.
	need := PayloadBytesV1(m)
	payload := make([]byte, 0, min(need, readChunkV1))
	chunk := make([]byte, min(need, readChunkV1))
	for uint64(len(payload)) < need {
		n := min(need-uint64(len(payload)), uint64(len(chunk)))
		if _, err := io.ReadFull(r, chunk[:n]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, ErrTruncated
			}
			return nil, fmt.Errorf("bloom: reading serialized payload: %w", err)
		}
		payload = append(payload, chunk[:n]...)
	}
	return DecodeV1(append(header, payload...))
}
