package scaledecode

import (
	"math/big"
)

// compactMode is the 2-bit tag held in the low bits of a compact
// integer's first byte.
const (
	compactModeSingle = 0b00
	compactModeTwo    = 0b01
	compactModeFour   = 0b10
	compactModeBig    = 0b11
)

// decodeCompactBigInt reads a SCALE compact-encoded unsigned integer
// of unbounded width (up to 2^536) and advances the reader past it.
// Grounded on jam/decode.go's decodeUint, which derives the trailing
// byte count from the leading zero bits of the first byte; SCALE's
// mode tag sits in the low 2 bits rather than JAM's high bits, so the
// derivation differs even though the "count trailing bytes from the
// prefix byte" idiom is the same.
func decodeCompactBigInt(r *reader) (*big.Int, error) {
	first, err := r.TakeByte()
	if err != nil {
		return nil, err
	}

	switch first & 0b11 {
	case compactModeSingle:
		return big.NewInt(int64(first >> 2)), nil
	case compactModeTwo:
		rest, err := r.Take(1)
		if err != nil {
			return nil, err
		}
		v := uint16(first) | uint16(rest[0])<<8
		return big.NewInt(int64(v >> 2)), nil
	case compactModeFour:
		rest, err := r.Take(3)
		if err != nil {
			return nil, err
		}
		v := uint32(first) | uint32(rest[0])<<8 | uint32(rest[1])<<16 | uint32(rest[2])<<24
		return big.NewInt(int64(v >> 2)), nil
	default: // compactModeBig
		n := int(first>>2) + 4
		bytes, err := r.Take(n)
		if err != nil {
			return nil, err
		}
		// Reverse into big-endian for big.Int.SetBytes.
		be := make([]byte, n)
		for i, b := range bytes {
			be[n-1-i] = b
		}
		return new(big.Int).SetBytes(be), nil
	}
}

// decodeCompactUint64 is the fixed-width-friendly fast path: decode
// into a uint64, erroring with ErrCompactOverflow if the encoded
// magnitude doesn't fit the requested bit width.
func decodeCompactUint64(r *reader, bitWidth int) (uint64, error) {
	v, err := decodeCompactBigInt(r)
	if err != nil {
		return 0, err
	}
	if bitWidth < 64 && v.BitLen() > bitWidth {
		return 0, ErrCompactOverflow
	}
	if !v.IsUint64() {
		return 0, ErrCompactOverflow
	}
	return v.Uint64(), nil
}

// encodeCompactUint64 is used only by tests (via encodeCompact, to
// build fixtures for round-trip checks); the library itself never
// re-encodes (spec Non-goal).
func encodeCompactUint64(v uint64) []byte {
	switch {
	case v < 1<<6:
		return []byte{byte(v) << 2}
	case v < 1<<14:
		x := uint16(v)<<2 | compactModeTwo
		return []byte{byte(x), byte(x >> 8)}
	case v < 1<<30:
		x := uint32(v)<<2 | compactModeFour
		return []byte{byte(x), byte(x >> 8), byte(x >> 16), byte(x >> 24)}
	default:
		var buf []byte
		for v > 0 {
			buf = append(buf, byte(v))
			v >>= 8
		}
		n := len(buf)
		prefix := byte((n-4)<<2) | compactModeBig
		return append([]byte{prefix}, buf...)
	}
}
