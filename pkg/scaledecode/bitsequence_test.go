package scaledecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bitSeqResolver(store BitStoreKind, order BitOrderKind) fixtureResolver {
	return fixtureResolver{
		0: {Kind: KindBitSequence, BitStore: store, BitOrder: order},
	}
}

func TestBitSequenceLsb0U8(t *testing.T) {
	// 5 bits, lsb0 order: bit i is (byte >> i) & 1. Byte 0b00010101 =
	// 0x15 gives bits [1,0,1,0,1].
	data := concatBytes(encodeCompact(5), []byte{0x15})
	val, rest, err := DecodeWithVisitor[any](data, 0, bitSeqResolver(BitStoreU8, BitOrderLsb0), JSONVisitor{})
	require.NoError(t, err)
	assert.Equal(t, []any{true, false, true, false, true}, val)
	assert.Empty(t, rest)
}

func TestBitSequenceMsb0U8(t *testing.T) {
	// same byte, msb0 order: bit i is (byte >> (width-1-i)) & 1.
	data := concatBytes(encodeCompact(5), []byte{0x15})
	val, rest, err := DecodeWithVisitor[any](data, 0, bitSeqResolver(BitStoreU8, BitOrderMsb0), JSONVisitor{})
	require.NoError(t, err)
	assert.Equal(t, []any{false, false, false, true, false}, val)
	assert.Empty(t, rest)
}

func TestBitSequenceSpansMultipleStores(t *testing.T) {
	// 12 bits over a u8 store needs 2 stores (2 bytes); only the low 4
	// bits of the second store are meaningful.
	data := concatBytes(encodeCompact(12), []byte{0xFF, 0x0F})
	val, rest, err := DecodeWithVisitor[any](data, 0, bitSeqResolver(BitStoreU8, BitOrderLsb0), JSONVisitor{})
	require.NoError(t, err)
	bits := val.([]any)
	assert.Len(t, bits, 12)
	for i := 0; i < 12; i++ {
		assert.True(t, bits[i].(bool), "bit %d", i)
	}
	assert.Empty(t, rest)
}

func TestBitSequenceEmpty(t *testing.T) {
	data := encodeCompact(0)
	val, rest, err := DecodeWithVisitor[any](data, 0, bitSeqResolver(BitStoreU8, BitOrderLsb0), JSONVisitor{})
	require.NoError(t, err)
	assert.Equal(t, []any{}, val)
	assert.Empty(t, rest)
}
