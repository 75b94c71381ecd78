package scaledecode_test

import (
	"testing"

	"github.com/eigerco/scaledecode/pkg/scaledecode"
	"github.com/eigerco/scaledecode/pkg/scaledecode/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These exercise the shared fixture registry against randomized input,
// covering its composite, array, compact and transparent-wrapper
// entries, rather than the hand-built
// per-test registries in decode_test.go.

func TestFixtureRegistryCompositeRoundTrip(t *testing.T) {
	reg := testutils.NewFixtureRegistry()
	a := testutils.RandomBytes(t, 1)[0]
	b := testutils.RandomU32(t, 1<<30)

	data := append([]byte{a}, encodeU32(t, b)...)
	val, rest, err := scaledecode.DecodeWithVisitor[any](data, 8, reg, scaledecode.JSONVisitor{})
	require.NoError(t, err)
	m := val.(map[string]any)
	assert.Equal(t, a, m["a"])
	assert.Equal(t, b, m["b"])
	assert.Empty(t, rest)
}

func TestFixtureRegistryArrayRoundTrip(t *testing.T) {
	reg := testutils.NewFixtureRegistry()
	data := testutils.RandomBytes(t, 4)

	val, rest, err := scaledecode.DecodeWithVisitor[any](data, 5, reg, scaledecode.JSONVisitor{})
	require.NoError(t, err)
	out := val.([]any)
	require.Len(t, out, 4)
	for i, b := range data {
		assert.Equal(t, b, out[i])
	}
	assert.Empty(t, rest)
}

func TestFixtureRegistryCompactRoundTrip(t *testing.T) {
	reg := testutils.NewFixtureRegistry()
	v := testutils.RandomU32(t, 1<<20)

	data := encodeCompactForFixture(uint64(v))
	val, rest, err := scaledecode.DecodeWithVisitor[any](data, 9, reg, scaledecode.JSONVisitor{})
	require.NoError(t, err)
	assert.Equal(t, v, val)
	assert.Empty(t, rest)
}

func TestFixtureRegistryTransparentWrapperMatchesDirect(t *testing.T) {
	reg := testutils.NewFixtureRegistry()
	v := testutils.RandomU32(t, 1<<16)
	data := encodeU32(t, v)

	direct, _, err := scaledecode.DecodeWithVisitor[any](data, 2, reg, scaledecode.JSONVisitor{})
	require.NoError(t, err)
	wrapped, rest, err := scaledecode.DecodeWithVisitor[any](data, 10, reg, scaledecode.JSONVisitor{})
	require.NoError(t, err)

	assert.Equal(t, direct, wrapped)
	assert.Empty(t, rest)
}

func encodeU32(t *testing.T, v uint32) []byte {
	t.Helper()
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

// encodeCompactForFixture builds the single/two/four-byte compact form
// matching compact.go's own encoding, duplicated here (rather than
// exported from the core package, which never re-encodes SCALE) since
// this file lives in the external scaledecode_test package.
func encodeCompactForFixture(v uint64) []byte {
	switch {
	case v < 1<<6:
		return []byte{byte(v << 2)}
	case v < 1<<14:
		x := uint16(v<<2) | 0b01
		return []byte{byte(x), byte(x >> 8)}
	case v < 1<<30:
		x := uint32(v<<2) | 0b10
		return []byte{byte(x), byte(x >> 8), byte(x >> 16), byte(x >> 24)}
	default:
		panic("value too large for this fixture helper")
	}
}
