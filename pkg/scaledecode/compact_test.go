package scaledecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactSingleByteForm(t *testing.T) {
	r := newReader([]byte{0xFC})
	v, err := decodeCompactUint64(r, 64)
	require.NoError(t, err)
	assert.Equal(t, uint64(63), v)
}

func TestCompactTwoByteForm(t *testing.T) {
	r := newReader(encodeCompact(1000))
	v, err := decodeCompactUint64(r, 64)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), v)
}

func TestCompactFourByteForm(t *testing.T) {
	r := newReader(encodeCompact(1_000_000))
	v, err := decodeCompactUint64(r, 64)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), v)
}

func TestCompactBigForm(t *testing.T) {
	r := newReader(encodeCompact(1 << 40))
	v, err := decodeCompactUint64(r, 64)
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<40), v)
}

func TestCompactOverflowOnNarrowTarget(t *testing.T) {
	// 0x4003 in the four-byte form: 0x4003<<2 | 0b10 = 0x0001000E, LE.
	r := newReader([]byte{0x0E, 0x00, 0x01, 0x00})
	_, err := decodeCompactUint64(r, 8)
	assert.ErrorIs(t, err, ErrCompactOverflow)
}

func TestCompactBigIntUnbounded(t *testing.T) {
	// first byte 0x03: low 2 bits = big form, (0x03>>2)+4 = 4 trailing bytes.
	big := append([]byte{0x03}, []byte{0x01, 0x02, 0x03, 0x04}...)
	r := newReader(big)
	v, err := decodeCompactBigInt(r)
	require.NoError(t, err)
	assert.Equal(t, "67305985", v.String()) // 0x04030201 little-endian
}

func TestCompactRoundTripAcrossWidths(t *testing.T) {
	values := []uint64{0, 1, 63, 64, 16383, 16384, 1 << 29, 1 << 30, 1 << 40}
	for _, v := range values {
		r := newReader(encodeCompact(v))
		got, err := decodeCompactUint64(r, 64)
		require.NoError(t, err)
		assert.Equal(t, v, got, "value %d", v)
		assert.Equal(t, 0, r.Remaining())
	}
}
