package scaledecode

// Visitor is implemented by callers and passed to DecodeWithVisitor. It
// is handed back exactly one call per top-level resolved shape; what it
// does with the value is entirely up to the implementation.
//
// There is deliberately no VisitCompactU32 (etc.) distinct from
// VisitU32: compact routing is a pre-visit wire transformation, not a
// distinct shape the visitor needs to know about (see decode.go). An
// earlier generation of this design had dedicated compact callbacks;
// they were dropped because compact integers can be nested arbitrarily
// behind transparent wrapper types, and a visitor that only handles
// "compact at the top level" would miss them.
type Visitor[V any] interface {
	VisitBool(value bool, id TypeID) (V, error)
	VisitChar(value rune, id TypeID) (V, error)
	VisitU8(value uint8, id TypeID) (V, error)
	VisitU16(value uint16, id TypeID) (V, error)
	VisitU32(value uint32, id TypeID) (V, error)
	VisitU64(value uint64, id TypeID) (V, error)
	VisitU128(value [16]byte, id TypeID) (V, error)
	VisitU256(value [32]byte, id TypeID) (V, error)
	VisitI8(value int8, id TypeID) (V, error)
	VisitI16(value int16, id TypeID) (V, error)
	VisitI32(value int32, id TypeID) (V, error)
	VisitI64(value int64, id TypeID) (V, error)
	VisitI128(value [16]byte, id TypeID) (V, error)
	VisitI256(value [32]byte, id TypeID) (V, error)

	VisitStr(value *Str, id TypeID) (V, error)
	VisitSequence(value *Sequence, id TypeID) (V, error)
	VisitArray(value *Array, id TypeID) (V, error)
	VisitTuple(value *Tuple, id TypeID) (V, error)
	VisitComposite(value *Composite, id TypeID) (V, error)
	VisitVariant(value *Variant, id TypeID) (V, error)
	VisitBitSequence(value *BitSequence, id TypeID) (V, error)
}

// BaseVisitor gives every Visitor method a WrongShape-returning default
// body. Embed it in a struct and override only the methods a given
// decode target actually needs — the same "implement the slice of the
// interface you care about, let the rest fall through" composition the
// teacher's EnumType/EncodeEnum pair models for its codec enums.
type BaseVisitor[V any] struct{}

func (BaseVisitor[V]) VisitBool(bool, TypeID) (V, error)         { return wrongShape[V]() }
func (BaseVisitor[V]) VisitChar(rune, TypeID) (V, error)         { return wrongShape[V]() }
func (BaseVisitor[V]) VisitU8(uint8, TypeID) (V, error)          { return wrongShape[V]() }
func (BaseVisitor[V]) VisitU16(uint16, TypeID) (V, error)        { return wrongShape[V]() }
func (BaseVisitor[V]) VisitU32(uint32, TypeID) (V, error)        { return wrongShape[V]() }
func (BaseVisitor[V]) VisitU64(uint64, TypeID) (V, error)        { return wrongShape[V]() }
func (BaseVisitor[V]) VisitU128([16]byte, TypeID) (V, error)     { return wrongShape[V]() }
func (BaseVisitor[V]) VisitU256([32]byte, TypeID) (V, error)     { return wrongShape[V]() }
func (BaseVisitor[V]) VisitI8(int8, TypeID) (V, error)           { return wrongShape[V]() }
func (BaseVisitor[V]) VisitI16(int16, TypeID) (V, error)         { return wrongShape[V]() }
func (BaseVisitor[V]) VisitI32(int32, TypeID) (V, error)         { return wrongShape[V]() }
func (BaseVisitor[V]) VisitI64(int64, TypeID) (V, error)         { return wrongShape[V]() }
func (BaseVisitor[V]) VisitI128([16]byte, TypeID) (V, error)     { return wrongShape[V]() }
func (BaseVisitor[V]) VisitI256([32]byte, TypeID) (V, error)     { return wrongShape[V]() }
func (BaseVisitor[V]) VisitStr(*Str, TypeID) (V, error) { return wrongShape[V]() }
func (BaseVisitor[V]) VisitSequence(*Sequence, TypeID) (V, error) {
	return wrongShape[V]()
}
func (BaseVisitor[V]) VisitArray(*Array, TypeID) (V, error) { return wrongShape[V]() }
func (BaseVisitor[V]) VisitTuple(*Tuple, TypeID) (V, error) { return wrongShape[V]() }
func (BaseVisitor[V]) VisitComposite(*Composite, TypeID) (V, error) {
	return wrongShape[V]()
}
func (BaseVisitor[V]) VisitVariant(*Variant, TypeID) (V, error) {
	return wrongShape[V]()
}
func (BaseVisitor[V]) VisitBitSequence(*BitSequence, TypeID) (V, error) {
	return wrongShape[V]()
}

func wrongShape[V any]() (V, error) {
	var zero V
	return zero, ErrWrongShape
}
