// Package testutils provides random fixture generators for
// pkg/scaledecode's tests, grounded on internal/testutils's
// RandomHash/RandomBytes pattern (require.NoError on every crypto/rand
// read rather than ignoring the error).
package testutils

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eigerco/scaledecode/pkg/registry"
	"github.com/eigerco/scaledecode/pkg/scaledecode"
)

// RandomBytes returns n random bytes.
func RandomBytes(t *testing.T, n int) []byte {
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

// RandomU32 returns a random uint32 in [0, bound).
func RandomU32(t *testing.T, bound uint32) uint32 {
	if bound == 0 {
		return 0
	}
	b := RandomBytes(t, 4)
	v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return v % bound
}

// NewFixtureRegistry builds a MemoryRegistry preloaded with a small
// battery of shapes exercising every ShapeKind except BitSequence, for tests that need a
// resolver but don't care about its exact contents. Type ids:
//
//	0: bool      1: u8        2: u32         3: str
//	4: Option<u32> (variant)  5: [u8; 4] (array)
//	6: sequence of u8         7: (u8, u32) tuple
//	8: composite{a: u8, b: u32}
//	9: compact<u32>           10: single-field wrapper around 2 (transparent)
func NewFixtureRegistry() *registry.MemoryRegistry {
	reg := registry.NewMemoryRegistry()
	reg.Put(0, scaledecode.Shape{Kind: scaledecode.KindPrimitive, Primitive: scaledecode.PrimitiveBool})
	reg.Put(1, scaledecode.Shape{Kind: scaledecode.KindPrimitive, Primitive: scaledecode.PrimitiveU8})
	reg.Put(2, scaledecode.Shape{Kind: scaledecode.KindPrimitive, Primitive: scaledecode.PrimitiveU32})
	reg.Put(3, scaledecode.Shape{Kind: scaledecode.KindPrimitive, Primitive: scaledecode.PrimitiveStr})

	none := "None"
	some := "Some"
	reg.Put(4, scaledecode.Shape{
		Kind: scaledecode.KindVariant,
		Variants: []scaledecode.VariantDef{
			{Index: 0, Name: none},
			{Index: 1, Name: some, Fields: []scaledecode.CompositeField{{Type: 2}}},
		},
	})

	reg.Put(5, scaledecode.Shape{Kind: scaledecode.KindArray, Elem: 1, Len: 4})
	reg.Put(6, scaledecode.Shape{Kind: scaledecode.KindSequence, Elem: 1})
	reg.Put(7, scaledecode.Shape{Kind: scaledecode.KindTuple, Fields: []scaledecode.TypeID{1, 2}})

	fieldA, fieldB := "a", "b"
	reg.Put(8, scaledecode.Shape{
		Kind:       scaledecode.KindComposite,
		StructName: "Pair",
		CompositeFields: []scaledecode.CompositeField{
			{Name: &fieldA, Type: 1},
			{Name: &fieldB, Type: 2},
		},
	})

	reg.Put(9, scaledecode.Shape{Kind: scaledecode.KindCompact, Inner: 2})
	reg.Put(10, scaledecode.Shape{Kind: scaledecode.KindTuple, Fields: []scaledecode.TypeID{2}})

	return reg
}
