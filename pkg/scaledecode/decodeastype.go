package scaledecode

// IntoVisitor is implemented by a type that knows how to build its own
// Visitor, binding the decode target to the wire type it expects.
// DecodeAsType is the single-shot convenience that spares a caller
// writing the Resolve/dispatch boilerplate by hand.
type IntoVisitor[T any] interface {
	IntoVisitor() Visitor[T]
}

// DecodeAsType decodes data as type id using r, dispatching to the
// Visitor T.IntoVisitor() returns, and requires the input be fully
// consumed: unlike DecodeWithVisitor, a caller reaching for a concrete
// Go type has nothing further to do with trailing bytes, so leftover
// input is an error rather than a silently discarded tail.
func DecodeAsType[T IntoVisitor[T]](data []byte, id TypeID, r Resolver) (T, error) {
	var zero T
	val, rest, err := DecodeWithVisitor(data, id, r, zero.IntoVisitor())
	if err != nil {
		return zero, err
	}
	if len(rest) > 0 {
		return zero, newDecodeError(len(data)-len(rest), ErrTrailingBytes)
	}
	return val, nil
}

// FieldSpec names one position of a flat record decoded by
// DecodeAsFields: a call's argument list, an extrinsic's payload, or
// any other sequence of (name, type) pairs that isn't itself backed by
// a single registry Composite type.
type FieldSpec struct {
	Name *string
	Type TypeID
}

// DecodeAsFieldsVisitor is implemented by a type that knows how to
// consume a flat list of named/positional fields one at a time,
// mirroring how Variant.Fields()/Composite already hand fields to a
// caller, but driven by caller-supplied specs instead of a resolved
// Composite shape.
type DecodeAsFieldsVisitor[T any] interface {
	DecodeAsFields(fields *Composite) (T, error)
}

// DecodeAsFields decodes data against the given field specs using r,
// delegating field-by-field consumption to T.DecodeAsFields, and
// requires full exhaustion of the input.
func DecodeAsFields[T DecodeAsFieldsVisitor[T]](data []byte, fields []FieldSpec, r Resolver) (T, error) {
	var zero T
	rd := newReader(data)

	compositeFields := make([]CompositeField, len(fields))
	for i, f := range fields {
		compositeFields[i] = CompositeField{Name: f.Name, Type: f.Type}
	}
	comp := newComposite(rd, r, compositeFields, nil, "")

	val, err := zero.DecodeAsFields(comp)
	if err != nil {
		return zero, err
	}
	if derr := comp.drain(); derr != nil {
		return zero, derr
	}
	if rd.Remaining() > 0 {
		return zero, newDecodeError(rd.Offset(), ErrTrailingBytes)
	}
	return val, nil
}
