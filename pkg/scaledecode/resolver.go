package scaledecode

// TypeID identifies a type within a Resolver's universe. It matches
// scale-info's PortableRegistry id space: a plain uint32 index.
type TypeID uint32

// PrimitiveKind enumerates the primitive shapes a Resolver can report.
type PrimitiveKind uint8

const (
	PrimitiveBool PrimitiveKind = iota
	PrimitiveChar
	PrimitiveStr
	PrimitiveU8
	PrimitiveU16
	PrimitiveU32
	PrimitiveU64
	PrimitiveU128
	PrimitiveU256
	PrimitiveI8
	PrimitiveI16
	PrimitiveI32
	PrimitiveI64
	PrimitiveI128
	PrimitiveI256
)

// BitStoreKind is the integer width backing a packed bit sequence.
type BitStoreKind uint8

const (
	BitStoreU8 BitStoreKind = iota
	BitStoreU16
	BitStoreU32
	BitStoreU64
)

// BitOrderKind is the bit-within-byte numbering of a packed bit
// sequence.
type BitOrderKind uint8

const (
	BitOrderLsb0 BitOrderKind = iota
	BitOrderMsb0
)

// ShapeKind is the tag of the closed union Shape represents. Go has no
// sum types, so Shape is a struct carrying one populated payload per
// Kind, mirroring scale-info's TypeDef enum.
type ShapeKind uint8

const (
	KindPrimitive ShapeKind = iota
	KindSequence
	KindArray
	KindTuple
	KindComposite
	KindVariant
	KindBitSequence
	KindCompact
)

// CompositeField describes one field of a Composite or Variant shape.
type CompositeField struct {
	Name     *string
	Type     TypeID
	TypeName *string
}

// VariantDef describes one variant of a Variant shape.
type VariantDef struct {
	Index  uint8
	Name   string
	Fields []CompositeField
}

// Shape is what a Resolver reports for a TypeID: the wire shape the
// bytes at that type must follow. Exactly one of the payload fields is
// meaningful, selected by Kind.
type Shape struct {
	Kind ShapeKind

	Primitive PrimitiveKind // KindPrimitive

	Elem TypeID // KindSequence, KindArray
	Len  uint64 // KindArray

	Fields []TypeID // KindTuple (unnamed)

	CompositeFields []CompositeField // KindComposite
	Path            []string         // KindComposite, KindVariant (optional; may be nil)
	StructName      string           // KindComposite, KindVariant (optional; may be "")

	Variants []VariantDef // KindVariant

	BitStore BitStoreKind // KindBitSequence
	BitOrder BitOrderKind // KindBitSequence

	Inner TypeID // KindCompact
}

// Resolver adapts an external type registry to the shape this package
// understands. Implementations live in pkg/registry; the core package
// only ever consumes this interface.
type Resolver interface {
	Resolve(id TypeID) (Shape, error)
}

// MaxResolveDepth bounds how many times transparent-wrapper peeling or
// compact-inner resolution may recurse before TypeResolveError is
// raised, guarding against a resolver reporting a cycle.
const MaxResolveDepth = 64
