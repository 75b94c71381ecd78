package scaledecode

import "encoding/binary"

// The library never re-encodes SCALE (a library-level Non-goal), so
// tests that need wire bytes build them with these small encoders
// rather than a public API.

func encodeBool(b bool) []byte {
	if b {
		return []byte{0x01}
	}
	return []byte{0x00}
}

func encodeU8(v uint8) []byte  { return []byte{v} }
func encodeU16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}
func encodeU32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}
func encodeU64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func encodeCompact(v uint64) []byte {
	return encodeCompactUint64(v)
}

func encodeStr(s string) []byte {
	return append(encodeCompact(uint64(len(s))), []byte(s)...)
}

func encodeBytesWithCompactLen(b []byte) []byte {
	return append(encodeCompact(uint64(len(b))), b...)
}

func concatBytes(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
