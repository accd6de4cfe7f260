package bloom

import "errors"

const (
	MagicV1         = "BLM1"
	VersionV1 uint8 = 1

	// HeaderBytesV1 is the fixed header size preceding the bit payload.
	HeaderBytesV1 = 4 + 1 + 8 + 4

	// MaxMBitsV1 bounds the bit length a V1 header may declare, keeping
	// ceil(m/8) and the total encoded size representable. Larger values
	// can only come from corrupt data.
	MaxMBitsV1 = uint64(1) << 61
)

var (
	ErrBadCapacity = errors.New("bloom: expected element count must be positive")
	ErrBadFPRate   = errors.New("bloom: false positive rate must be in (0, 1)")

	ErrBadMagic      = errors.New("bloom: serialized magic invalid")
	ErrBadVersion    = errors.New("bloom: serialized format version unsupported")
	ErrTruncated     = errors.New("bloom: serialized data truncated")
	ErrBadM          = errors.New("bloom: serialized bit length invalid")
	ErrMBitsOverflow = errors.New("bloom: serialized bit length overflows supported range")
	ErrBadK          = errors.New("bloom: serialized hash count invalid")
)
