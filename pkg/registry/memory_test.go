package registry

import (
	"testing"

	"github.com/eigerco/scaledecode/pkg/scaledecode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRegistryPutResolve(t *testing.T) {
	reg := NewMemoryRegistry()
	reg.Put(7, scaledecode.Shape{Kind: scaledecode.KindPrimitive, Primitive: scaledecode.PrimitiveU32})

	shape, err := reg.Resolve(7)
	require.NoError(t, err)
	assert.Equal(t, scaledecode.KindPrimitive, shape.Kind)
	assert.Equal(t, scaledecode.PrimitiveU32, shape.Primitive)
}

func TestMemoryRegistryResolveUnknownID(t *testing.T) {
	reg := NewMemoryRegistry()
	_, err := reg.Resolve(99)
	assert.Error(t, err)
}

func TestLoadJSONPrimitiveAndComposite(t *testing.T) {
	doc := []byte(`{
		"0": {"kind": "primitive", "primitive": "u32"},
		"1": {
			"kind": "composite",
			"structName": "Point",
			"compositeFields": [
				{"name": "x", "type": 0},
				{"name": "y", "type": 0}
			]
		}
	}`)

	reg, err := LoadJSON(doc)
	require.NoError(t, err)

	u32, err := reg.Resolve(0)
	require.NoError(t, err)
	assert.Equal(t, scaledecode.PrimitiveU32, u32.Primitive)

	point, err := reg.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, scaledecode.KindComposite, point.Kind)
	assert.Equal(t, "Point", point.StructName)
	require.Len(t, point.CompositeFields, 2)
	assert.Equal(t, "x", *point.CompositeFields[0].Name)
	assert.Equal(t, scaledecode.TypeID(0), point.CompositeFields[0].Type)
}

func TestLoadJSONVariant(t *testing.T) {
	doc := []byte(`{
		"0": {"kind": "primitive", "primitive": "u32"},
		"1": {
			"kind": "variant",
			"variants": [
				{"index": 0, "name": "None"},
				{"index": 1, "name": "Some", "fields": [{"type": 0}]}
			]
		}
	}`)

	reg, err := LoadJSON(doc)
	require.NoError(t, err)

	opt, err := reg.Resolve(1)
	require.NoError(t, err)
	require.Len(t, opt.Variants, 2)
	assert.Equal(t, "Some", opt.Variants[1].Name)
	assert.Equal(t, scaledecode.TypeID(0), opt.Variants[1].Fields[0].Type)
}

func TestLoadJSONBitSequence(t *testing.T) {
	doc := []byte(`{"0": {"kind": "bitSequence", "bitStore": "u8", "bitOrder": "lsb0"}}`)

	reg, err := LoadJSON(doc)
	require.NoError(t, err)

	bits, err := reg.Resolve(0)
	require.NoError(t, err)
	assert.Equal(t, scaledecode.BitStoreU8, bits.BitStore)
	assert.Equal(t, scaledecode.BitOrderLsb0, bits.BitOrder)
}

func TestLoadJSONUnknownKindErrors(t *testing.T) {
	doc := []byte(`{"0": {"kind": "nonsense"}}`)
	_, err := LoadJSON(doc)
	assert.Error(t, err)
}

func TestLoadJSONUnknownPrimitiveErrors(t *testing.T) {
	doc := []byte(`{"0": {"kind": "primitive", "primitive": "u512"}}`)
	_, err := LoadJSON(doc)
	assert.Error(t, err)
}

func TestLoadJSONMalformedIDErrors(t *testing.T) {
	doc := []byte(`{"not-a-number": {"kind": "primitive", "primitive": "u8"}}`)
	_, err := LoadJSON(doc)
	assert.Error(t, err)
}
