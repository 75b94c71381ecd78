package crypto

import (
	"golang.org/x/crypto/blake2b"
)

type Hash [HashSize]byte

// HashData returns the blake2b-256 digest of data, used by
// pkg/registry's shape cache to derive pebble keys.
func HashData(data []byte) Hash {
	return blake2b.Sum256(data)
}
