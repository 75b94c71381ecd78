package scaledecode

import (
	"encoding/binary"
	"fmt"
)

// reader is a mutable cursor over an input byte slice. It only ever
// advances; nothing in this package rewinds it. Single-pass decoding
// falls directly out of that property.
type reader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

// Offset returns the number of bytes already consumed.
func (r *reader) Offset() int {
	return r.pos
}

// Remaining returns the number of unconsumed bytes.
func (r *reader) Remaining() int {
	return len(r.data) - r.pos
}

// Rest returns the unconsumed tail without advancing the cursor.
func (r *reader) Rest() []byte {
	return r.data[r.pos:]
}

// Peek returns the next n bytes without advancing the cursor.
func (r *reader) Peek(n int) ([]byte, error) {
	if n > r.Remaining() {
		return nil, fmt.Errorf("%w: wanted %d bytes, %d remaining", ErrNotEnoughInput, n, r.Remaining())
	}
	return r.data[r.pos : r.pos+n], nil
}

// Take returns the next n bytes and advances the cursor past them.
func (r *reader) Take(n int) ([]byte, error) {
	b, err := r.Peek(n)
	if err != nil {
		return nil, err
	}
	r.pos += n
	return b, nil
}

// TakeByte reads and advances past a single byte.
func (r *reader) TakeByte() (byte, error) {
	b, err := r.Take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// TakeUint reads a little-endian unsigned integer of the given byte
// width (1, 2, 4 or 8) and advances past it.
func (r *reader) TakeUint(width int) (uint64, error) {
	b, err := r.Take(width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	case 8:
		return binary.LittleEndian.Uint64(b), nil
	default:
		return 0, fmt.Errorf(errUnsupportedWidth, width)
	}
}
