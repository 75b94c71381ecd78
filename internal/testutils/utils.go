package testutils

import (
	"crypto/rand"
	"testing"

	"github.com/eigerco/scaledecode/internal/crypto"
	"github.com/stretchr/testify/require"
)

// RandomHash returns a random blake2b-sized digest without hashing
// real data, used by internal/crypto's tests.
func RandomHash(t *testing.T) crypto.Hash {
	hash := make([]byte, crypto.HashSize)
	_, err := rand.Read(hash)
	require.NoError(t, err)
	return crypto.Hash(hash)
}

// RandomBytes returns n random bytes, used by internal/crypto's tests
// as hash input.
func RandomBytes(t *testing.T, n int) []byte {
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}
