package scaledecode

import "math/big"

// JSONVisitor decodes any resolved shape into a plain `any` tree built
// from the types encoding/json already knows how to marshal: map[string]any
// for composites (unnamed fields keyed by position) and variants
// ({"variant", "fields"}), []any for sequences/arrays/tuples/bit
// sequences, and Go primitives otherwise. It has no compile-time knowledge of the decode
// target's shape, which makes it the visitor cmd/scaledecode reaches
// for when printing a value whose registered type isn't wired to a Go
// struct.
type JSONVisitor struct{}

var _ Visitor[any] = JSONVisitor{}

func (JSONVisitor) VisitBool(v bool, _ TypeID) (any, error) { return v, nil }
func (JSONVisitor) VisitChar(v rune, _ TypeID) (any, error) { return string(v), nil }
func (JSONVisitor) VisitU8(v uint8, _ TypeID) (any, error)  { return v, nil }
func (JSONVisitor) VisitU16(v uint16, _ TypeID) (any, error) { return v, nil }
func (JSONVisitor) VisitU32(v uint32, _ TypeID) (any, error) { return v, nil }
func (JSONVisitor) VisitU64(v uint64, _ TypeID) (any, error) { return v, nil }

// VisitU128/VisitU256 box into decimal strings rather than JSON
// numbers: encoding/json's float64 round-trip loses precision well
// before 2^128, the same reason jam/decode.go's decodeCustomPrimitive
// boxes big values through an intermediate representation instead of a
// native numeric type.
func (JSONVisitor) VisitU128(v [16]byte, _ TypeID) (any, error) {
	return leBytesToBigInt(v[:]).String(), nil
}
func (JSONVisitor) VisitU256(v [32]byte, _ TypeID) (any, error) {
	return leBytesToBigInt(v[:]).String(), nil
}

func (JSONVisitor) VisitI8(v int8, _ TypeID) (any, error)   { return v, nil }
func (JSONVisitor) VisitI16(v int16, _ TypeID) (any, error) { return v, nil }
func (JSONVisitor) VisitI32(v int32, _ TypeID) (any, error) { return v, nil }
func (JSONVisitor) VisitI64(v int64, _ TypeID) (any, error) { return v, nil }

func (JSONVisitor) VisitI128(v [16]byte, _ TypeID) (any, error) {
	return leBytesToSignedBigInt(v[:]).String(), nil
}
func (JSONVisitor) VisitI256(v [32]byte, _ TypeID) (any, error) {
	return leBytesToSignedBigInt(v[:]).String(), nil
}

func (JSONVisitor) VisitStr(s *Str, _ TypeID) (any, error) {
	return s.AsString()
}

func (j JSONVisitor) VisitSequence(s *Sequence, _ TypeID) (any, error) {
	out := make([]any, 0, s.Len())
	for {
		val, ok, err := DecodeSequenceItem[any](s, j)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, val)
	}
	return out, nil
}

func (j JSONVisitor) VisitArray(a *Array, _ TypeID) (any, error) {
	out := make([]any, 0, a.Len())
	for {
		val, ok, err := DecodeArrayItem[any](a, j)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, val)
	}
	return out, nil
}

func (j JSONVisitor) VisitTuple(t *Tuple, _ TypeID) (any, error) {
	out := make([]any, 0, t.Len())
	for {
		val, ok, err := DecodeTupleItem[any](t, j)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, val)
	}
	return out, nil
}

func (j JSONVisitor) VisitComposite(c *Composite, _ TypeID) (any, error) {
	out := make(map[string]any, c.Len())
	idx := 0
	for {
		val, name, ok, err := DecodeCompositeItem[any](c, j)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if name == "" {
			name = itoaField(idx)
		}
		out[name] = val
		idx++
	}
	return out, nil
}

func (j JSONVisitor) VisitVariant(v *Variant, _ TypeID) (any, error) {
	fields, err := j.VisitComposite(v.Fields(), 0)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"variant": v.Name(),
		"fields":  fields,
	}, nil
}

func (JSONVisitor) VisitBitSequence(b *BitSequence, _ TypeID) (any, error) {
	bits, err := b.Decode()
	if err != nil {
		return nil, err
	}
	out := make([]any, len(bits))
	for i, bit := range bits {
		out[i] = bit
	}
	return out, nil
}

func itoaField(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

func leBytesToBigInt(le []byte) *big.Int {
	be := make([]byte, len(le))
	for i, b := range le {
		be[len(le)-1-i] = b
	}
	return new(big.Int).SetBytes(be)
}

func leBytesToSignedBigInt(le []byte) *big.Int {
	n := leBytesToBigInt(le)
	topByte := le[len(le)-1]
	if topByte&0x80 != 0 {
		max := new(big.Int).Lsh(big.NewInt(1), uint(len(le)*8))
		n.Sub(n, max)
	}
	return n
}
