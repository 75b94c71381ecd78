package scaledecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderTakeUintLittleEndian(t *testing.T) {
	r := newReader([]byte{0x2A, 0x00, 0x00, 0x00})
	v, err := r.TakeUint(4)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)
	assert.Equal(t, 4, r.Offset())
	assert.Equal(t, 0, r.Remaining())
}

func TestReaderNotEnoughInput(t *testing.T) {
	r := newReader([]byte{0x01})
	_, err := r.Take(2)
	assert.ErrorIs(t, err, ErrNotEnoughInput)
}

func TestReaderPeekDoesNotAdvance(t *testing.T) {
	r := newReader([]byte{0x01, 0x02, 0x03})
	b, err := r.Peek(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, b)
	assert.Equal(t, 0, r.Offset())
}

func TestReaderRest(t *testing.T) {
	r := newReader([]byte{0x01, 0x02, 0x03})
	_, err := r.Take(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x03}, r.Rest())
}
