// Package registry provides Resolver implementations for scaledecode:
// an in-memory registry loadable from this package's own JSON format,
// a blake2b-keyed persistent cache wrapping pebble,
// and (in the remote subpackage) a QUIC client that fetches shapes
// from a registry server on demand.
package registry

import (
	"encoding/json"
	"fmt"

	"github.com/eigerco/scaledecode/pkg/scaledecode"
)

// rawShape is the JSON wire form of a scaledecode.Shape. The format is
// this package's own; it is not scale-info's portable registry format,
// and a chain's metadata export cannot be loaded with it directly.
type rawShape struct {
	Kind ShapeKindJSON `json:"kind"`

	Primitive string `json:"primitive,omitempty"`

	Elem scaledecode.TypeID `json:"elem,omitempty"`
	Len  uint64             `json:"len,omitempty"`

	Fields []scaledecode.TypeID `json:"fields,omitempty"`

	CompositeFields []rawField `json:"compositeFields,omitempty"`
	Path            []string   `json:"path,omitempty"`
	StructName      string     `json:"structName,omitempty"`

	Variants []rawVariant `json:"variants,omitempty"`

	BitStore string `json:"bitStore,omitempty"`
	BitOrder string `json:"bitOrder,omitempty"`

	Inner scaledecode.TypeID `json:"inner,omitempty"`
}

type rawField struct {
	Name     *string            `json:"name,omitempty"`
	Type     scaledecode.TypeID `json:"type"`
	TypeName *string            `json:"typeName,omitempty"`
}

type rawVariant struct {
	Index  uint8      `json:"index"`
	Name   string     `json:"name"`
	Fields []rawField `json:"fields,omitempty"`
}

// ShapeKindJSON is the wire spelling of scaledecode.ShapeKind.
type ShapeKindJSON string

const (
	KindPrimitive   ShapeKindJSON = "primitive"
	KindSequence    ShapeKindJSON = "sequence"
	KindArray       ShapeKindJSON = "array"
	KindTuple       ShapeKindJSON = "tuple"
	KindComposite   ShapeKindJSON = "composite"
	KindVariant     ShapeKindJSON = "variant"
	KindBitSequence ShapeKindJSON = "bitSequence"
	KindCompact     ShapeKindJSON = "compact"
)

// MemoryRegistry is a Resolver backed by a fixed, fully-loaded map of
// TypeID to Shape. It has no locking: concurrent Resolve calls are
// safe as long as no Put runs at the same time.
type MemoryRegistry struct {
	shapes map[scaledecode.TypeID]scaledecode.Shape
}

// NewMemoryRegistry builds an empty registry; use Put to populate it
// (LoadJSON builds an already-populated one).
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{shapes: make(map[scaledecode.TypeID]scaledecode.Shape)}
}

// Put registers a single shape, overwriting any previous entry at id.
func (m *MemoryRegistry) Put(id scaledecode.TypeID, shape scaledecode.Shape) {
	m.shapes[id] = shape
}

// Resolve implements scaledecode.Resolver.
func (m *MemoryRegistry) Resolve(id scaledecode.TypeID) (scaledecode.Shape, error) {
	shape, ok := m.shapes[id]
	if !ok {
		return scaledecode.Shape{}, fmt.Errorf("registry: type %d not registered", id)
	}
	return shape, nil
}

// LoadJSON populates the registry from a JSON document mapping decimal
// type-id strings to rawShape entries. Grounded on cmd/strawberry's loadFullValidatorInfos,
// which reads a JSON blob into a map keyed by an id and converts each
// entry into the domain type it needs.
func LoadJSON(data []byte) (*MemoryRegistry, error) {
	var entries map[string]rawShape
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("registry: decoding json: %w", err)
	}

	reg := NewMemoryRegistry()
	for idStr, raw := range entries {
		var id uint32
		if _, err := fmt.Sscanf(idStr, "%d", &id); err != nil {
			return nil, fmt.Errorf("registry: bad type id %q: %w", idStr, err)
		}
		shape, err := raw.toShape()
		if err != nil {
			return nil, fmt.Errorf("registry: type %s: %w", idStr, err)
		}
		reg.Put(scaledecode.TypeID(id), shape)
	}
	return reg, nil
}

func (r rawShape) toShape() (scaledecode.Shape, error) {
	shape := scaledecode.Shape{
		Elem:       r.Elem,
		Len:        r.Len,
		Fields:     r.Fields,
		Path:       r.Path,
		StructName: r.StructName,
		Inner:      r.Inner,
	}

	for _, f := range r.CompositeFields {
		shape.CompositeFields = append(shape.CompositeFields, scaledecode.CompositeField{
			Name: f.Name, Type: f.Type, TypeName: f.TypeName,
		})
	}
	for _, v := range r.Variants {
		def := scaledecode.VariantDef{Index: v.Index, Name: v.Name}
		for _, f := range v.Fields {
			def.Fields = append(def.Fields, scaledecode.CompositeField{
				Name: f.Name, Type: f.Type, TypeName: f.TypeName,
			})
		}
		shape.Variants = append(shape.Variants, def)
	}

	switch r.Kind {
	case KindPrimitive:
		shape.Kind = scaledecode.KindPrimitive
		kind, err := primitiveFromJSON(r.Primitive)
		if err != nil {
			return shape, err
		}
		shape.Primitive = kind
	case KindSequence:
		shape.Kind = scaledecode.KindSequence
	case KindArray:
		shape.Kind = scaledecode.KindArray
	case KindTuple:
		shape.Kind = scaledecode.KindTuple
	case KindComposite:
		shape.Kind = scaledecode.KindComposite
	case KindVariant:
		shape.Kind = scaledecode.KindVariant
	case KindBitSequence:
		shape.Kind = scaledecode.KindBitSequence
		store, err := bitStoreFromJSON(r.BitStore)
		if err != nil {
			return shape, err
		}
		order, err := bitOrderFromJSON(r.BitOrder)
		if err != nil {
			return shape, err
		}
		shape.BitStore = store
		shape.BitOrder = order
	case KindCompact:
		shape.Kind = scaledecode.KindCompact
	default:
		return shape, fmt.Errorf("registry: unknown shape kind %q", r.Kind)
	}
	return shape, nil
}

func primitiveFromJSON(s string) (scaledecode.PrimitiveKind, error) {
	switch s {
	case "bool":
		return scaledecode.PrimitiveBool, nil
	case "char":
		return scaledecode.PrimitiveChar, nil
	case "str":
		return scaledecode.PrimitiveStr, nil
	case "u8":
		return scaledecode.PrimitiveU8, nil
	case "u16":
		return scaledecode.PrimitiveU16, nil
	case "u32":
		return scaledecode.PrimitiveU32, nil
	case "u64":
		return scaledecode.PrimitiveU64, nil
	case "u128":
		return scaledecode.PrimitiveU128, nil
	case "u256":
		return scaledecode.PrimitiveU256, nil
	case "i8":
		return scaledecode.PrimitiveI8, nil
	case "i16":
		return scaledecode.PrimitiveI16, nil
	case "i32":
		return scaledecode.PrimitiveI32, nil
	case "i64":
		return scaledecode.PrimitiveI64, nil
	case "i128":
		return scaledecode.PrimitiveI128, nil
	case "i256":
		return scaledecode.PrimitiveI256, nil
	default:
		return 0, fmt.Errorf("unknown primitive %q", s)
	}
}

func bitStoreFromJSON(s string) (scaledecode.BitStoreKind, error) {
	switch s {
	case "u8":
		return scaledecode.BitStoreU8, nil
	case "u16":
		return scaledecode.BitStoreU16, nil
	case "u32":
		return scaledecode.BitStoreU32, nil
	case "u64":
		return scaledecode.BitStoreU64, nil
	default:
		return 0, fmt.Errorf("unknown bit store %q", s)
	}
}

func bitOrderFromJSON(s string) (scaledecode.BitOrderKind, error) {
	switch s {
	case "lsb0":
		return scaledecode.BitOrderLsb0, nil
	case "msb0":
		return scaledecode.BitOrderMsb0, nil
	default:
		return 0, fmt.Errorf("unknown bit order %q", s)
	}
}
