package scaledecode

import (
	"errors"
	"fmt"
)

// DecodeWithVisitor decodes data according to the type identified by
// id in the given Resolver, calling exactly one method on v for the
// top-level resolved shape. It returns the decoded value and the
// unconsumed tail of data; it does not require the input to be fully
// consumed (see DecodeAsType for the exhausting variant).
func DecodeWithVisitor[V any](data []byte, id TypeID, r Resolver, v Visitor[V]) (V, []byte, error) {
	rd := newReader(data)
	val, err := decodeWithVisitor(rd, id, r, v)
	return val, rd.Rest(), err
}

// decodeWithVisitor is the orchestrator's single re-entry point. Every
// compound handle's DecodeXItem function calls back into this with a
// fresh type parameter for the child being decoded, so recursion
// doesn't have to flow through a single concrete V.
func decodeWithVisitor[V any](r *reader, outerID TypeID, reg Resolver, v Visitor[V]) (V, error) {
	var zero V

	curID := outerID
	for depth := 0; ; depth++ {
		if depth > MaxResolveDepth {
			return zero, newDecodeError(r.Offset(), ErrTypeResolveError)
		}

		shape, err := reg.Resolve(curID)
		if err != nil {
			return zero, newDecodeError(r.Offset(), fmt.Errorf("%w: id %d: %v", ErrTypeNotFound, curID, err))
		}

		if shape.Kind == KindCompact {
			return decodeCompactRouted(r, outerID, reg, shape.Inner, v)
		}

		if innerID, ok := transparentInner(shape); ok {
			curID = innerID
			continue
		}

		return dispatch(r, outerID, reg, shape, v)
	}
}

// transparentInner reports whether shape is a transparent wrapper (a
// 1-field Tuple/Composite, or a 1-element Array) and, if so, the type
// id of its sole inner type.
func transparentInner(shape Shape) (TypeID, bool) {
	switch shape.Kind {
	case KindTuple:
		if len(shape.Fields) == 1 {
			return shape.Fields[0], true
		}
	case KindComposite:
		if len(shape.CompositeFields) == 1 {
			return shape.CompositeFields[0].Type, true
		}
	case KindArray:
		if shape.Len == 1 {
			return shape.Elem, true
		}
	}
	return 0, false
}

// dispatch invokes the Visitor method matching shape.Kind, constructing
// a compound handle where applicable, then drains any bytes the
// visitor chose not to consume before returning.
func dispatch[V any](r *reader, outerID TypeID, reg Resolver, shape Shape, v Visitor[V]) (V, error) {
	var zero V

	switch shape.Kind {
	case KindPrimitive:
		return decodePrimitive(r, outerID, shape.Primitive, v, false)

	case KindSequence:
		length64, err := decodeCompactUint64(r, 64)
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		seq := newSequence(r, reg, shape.Elem, int(length64))
		val, verr := v.VisitSequence(seq, outerID)
		if derr := seq.drain(); derr != nil && verr == nil {
			return zero, derr
		}
		return finish(val, verr)

	case KindArray:
		arr := newArray(r, reg, shape.Elem, int(shape.Len))
		val, verr := v.VisitArray(arr, outerID)
		if derr := arr.drain(); derr != nil && verr == nil {
			return zero, derr
		}
		return finish(val, verr)

	case KindTuple:
		tup := newTuple(r, reg, append([]TypeID(nil), shape.Fields...))
		val, verr := v.VisitTuple(tup, outerID)
		if derr := tup.drain(); derr != nil && verr == nil {
			return zero, derr
		}
		return finish(val, verr)

	case KindComposite:
		comp := newComposite(r, reg, append([]CompositeField(nil), shape.CompositeFields...), shape.Path, shape.StructName)
		val, verr := v.VisitComposite(comp, outerID)
		if derr := comp.drain(); derr != nil && verr == nil {
			return zero, derr
		}
		return finish(val, verr)

	case KindVariant:
		variant, err := decodeVariantHandle(r, reg, shape)
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		val, verr := v.VisitVariant(variant, outerID)
		if derr := variant.drain(); derr != nil && verr == nil {
			return zero, derr
		}
		return finish(val, verr)

	case KindBitSequence:
		bs, err := decodeBitSequenceValue(r, shape.BitStore, shape.BitOrder)
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		val, verr := v.VisitBitSequence(bs, outerID)
		return finish(val, verr)

	default:
		return zero, newDecodeError(r.Offset(), fmt.Errorf("%w: unknown shape kind %d", ErrWrongShape, shape.Kind))
	}
}

// finish normalizes the error a Visitor method returns: a *DecodeError
// (produced by a nested decodeWithVisitor call the visitor propagated
// verbatim) passes through, anything else is a visitor-authored error
// and gets wrapped so callers can tell the two apart.
func finish[V any](val V, err error) (V, error) {
	if err == nil {
		return val, nil
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return val, err
	}
	return val, &VisitorError{Err: err}
}

func decodeVariantHandle(r *reader, reg Resolver, shape Shape) (*Variant, error) {
	idx, err := r.TakeByte()
	if err != nil {
		return nil, err
	}
	for _, def := range shape.Variants {
		if def.Index == idx {
			fields := newComposite(r, reg, append([]CompositeField(nil), def.Fields...), shape.Path, def.Name)
			return newVariant(idx, def.Name, fields), nil
		}
	}
	return nil, fmt.Errorf("%w: index %d", ErrVariantOutOfRange, idx)
}

// decodePrimitive reads the raw (non-compact) wire encoding of a
// primitive kind and dispatches to the matching Visit method.
func decodePrimitive[V any](r *reader, id TypeID, kind PrimitiveKind, v Visitor[V], _ bool) (V, error) {
	var zero V

	switch kind {
	case PrimitiveBool:
		b, err := r.TakeByte()
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		switch b {
		case 0x00:
			return finish(v.VisitBool(false, id))
		case 0x01:
			return finish(v.VisitBool(true, id))
		default:
			return zero, newDecodeError(r.Offset()-1, ErrInvalidBool)
		}

	case PrimitiveChar:
		n, err := r.TakeUint(4)
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		if !isValidScalarValue(uint32(n)) {
			return zero, newDecodeError(r.Offset()-4, ErrInvalidChar)
		}
		return finish(v.VisitChar(rune(n), id))

	case PrimitiveStr:
		length64, err := decodeCompactUint64(r, 64)
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		raw, err := r.Take(int(length64))
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		s := &Str{raw: raw, after: r.Rest()}
		return finish(v.VisitStr(s, id))

	case PrimitiveU8:
		n, err := r.TakeUint(1)
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		return finish(v.VisitU8(uint8(n), id))
	case PrimitiveU16:
		n, err := r.TakeUint(2)
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		return finish(v.VisitU16(uint16(n), id))
	case PrimitiveU32:
		n, err := r.TakeUint(4)
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		return finish(v.VisitU32(uint32(n), id))
	case PrimitiveU64:
		n, err := r.TakeUint(8)
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		return finish(v.VisitU64(n, id))
	case PrimitiveU128:
		b, err := r.Take(16)
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		var arr [16]byte
		copy(arr[:], b)
		return finish(v.VisitU128(arr, id))
	case PrimitiveU256:
		b, err := r.Take(32)
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		var arr [32]byte
		copy(arr[:], b)
		return finish(v.VisitU256(arr, id))

	case PrimitiveI8:
		n, err := r.TakeUint(1)
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		return finish(v.VisitI8(int8(n), id))
	case PrimitiveI16:
		n, err := r.TakeUint(2)
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		return finish(v.VisitI16(int16(n), id))
	case PrimitiveI32:
		n, err := r.TakeUint(4)
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		return finish(v.VisitI32(int32(n), id))
	case PrimitiveI64:
		n, err := r.TakeUint(8)
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		return finish(v.VisitI64(int64(n), id))
	case PrimitiveI128:
		b, err := r.Take(16)
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		var arr [16]byte
		copy(arr[:], b)
		return finish(v.VisitI128(arr, id))
	case PrimitiveI256:
		b, err := r.Take(32)
		if err != nil {
			return zero, newDecodeError(r.Offset(), err)
		}
		var arr [32]byte
		copy(arr[:], b)
		return finish(v.VisitI256(arr, id))

	default:
		return zero, newDecodeError(r.Offset(), fmt.Errorf("%w: unknown primitive kind %d", ErrWrongShape, kind))
	}
}

func isValidScalarValue(n uint32) bool {
	if n > 0x10FFFF {
		return false
	}
	if n >= 0xD800 && n <= 0xDFFF {
		return false
	}
	return true
}

// decodeCompactRouted implements spec §4.2's compact routing: peel
// transparent wrappers around the compact's inner type until a
// primitive unsigned integer turns up, then read it via the compact
// codec and dispatch to the ordinary (non-compact) Visit method for
// that width, passing the outer type id unchanged.
func decodeCompactRouted[V any](r *reader, outerID TypeID, reg Resolver, innerID TypeID, v Visitor[V]) (V, error) {
	var zero V

	curID := innerID
	for depth := 0; ; depth++ {
		if depth > MaxResolveDepth {
			return zero, newDecodeError(r.Offset(), ErrTypeResolveError)
		}
		shape, err := reg.Resolve(curID)
		if err != nil {
			return zero, newDecodeError(r.Offset(), fmt.Errorf("%w: id %d: %v", ErrTypeNotFound, curID, err))
		}
		if id, ok := transparentInner(shape); ok {
			curID = id
			continue
		}
		if shape.Kind != KindPrimitive {
			return zero, atCompact(r.Offset(), ErrInvalidCompactTarget)
		}

		switch shape.Primitive {
		case PrimitiveU8:
			n, err := decodeCompactUint64(r, 8)
			if err != nil {
				return zero, newDecodeError(r.Offset(), err)
			}
			return finish(v.VisitU8(uint8(n), outerID))
		case PrimitiveU16:
			n, err := decodeCompactUint64(r, 16)
			if err != nil {
				return zero, newDecodeError(r.Offset(), err)
			}
			return finish(v.VisitU16(uint16(n), outerID))
		case PrimitiveU32:
			n, err := decodeCompactUint64(r, 32)
			if err != nil {
				return zero, newDecodeError(r.Offset(), err)
			}
			return finish(v.VisitU32(uint32(n), outerID))
		case PrimitiveU64:
			n, err := decodeCompactUint64(r, 64)
			if err != nil {
				return zero, newDecodeError(r.Offset(), err)
			}
			return finish(v.VisitU64(n, outerID))
		case PrimitiveU128:
			big, err := decodeCompactBigInt(r)
			if err != nil {
				return zero, newDecodeError(r.Offset(), err)
			}
			if big.BitLen() > 128 {
				return zero, newDecodeError(r.Offset(), ErrCompactOverflow)
			}
			return finish(v.VisitU128(bigIntToLE16(big), outerID))
		case PrimitiveU256:
			big, err := decodeCompactBigInt(r)
			if err != nil {
				return zero, newDecodeError(r.Offset(), err)
			}
			if big.BitLen() > 256 {
				return zero, newDecodeError(r.Offset(), ErrCompactOverflow)
			}
			be := big.Bytes()
			var arr [32]byte
			for i, b := range be {
				arr[len(be)-1-i] = b
			}
			return finish(v.VisitU256(arr, outerID))
		default:
			return zero, atCompact(r.Offset(), ErrInvalidCompactTarget)
		}
	}
}

func bigIntToLE16(v interface{ Bytes() []byte }) [16]byte {
	be := v.Bytes()
	var out [16]byte
	for i, b := range be {
		out[len(be)-1-i] = b
	}
	return out
}
