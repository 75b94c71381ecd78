package registry

import (
	"path/filepath"
	"testing"

	"github.com/eigerco/scaledecode/pkg/scaledecode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingResolver counts Resolve calls so tests can assert a cache hit
// didn't reach the upstream.
type countingResolver struct {
	shape scaledecode.Shape
	calls int
}

func (c *countingResolver) Resolve(scaledecode.TypeID) (scaledecode.Shape, error) {
	c.calls++
	return c.shape, nil
}

func TestCachedResolverMissThenHit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	upstream := &countingResolver{shape: scaledecode.Shape{Kind: scaledecode.KindPrimitive, Primitive: scaledecode.PrimitiveU32}}

	c, err := NewCachedResolver(dir, upstream, "v1")
	require.NoError(t, err)
	defer c.Close()

	shape, err := c.Resolve(5)
	require.NoError(t, err)
	assert.Equal(t, scaledecode.PrimitiveU32, shape.Primitive)
	assert.Equal(t, 1, upstream.calls)

	shape, err = c.Resolve(5)
	require.NoError(t, err)
	assert.Equal(t, scaledecode.PrimitiveU32, shape.Primitive)
	assert.Equal(t, 1, upstream.calls, "second resolve should be served from cache")
}

func TestCachedResolverPersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	upstream := &countingResolver{shape: scaledecode.Shape{Kind: scaledecode.KindPrimitive, Primitive: scaledecode.PrimitiveStr}}

	c1, err := NewCachedResolver(dir, upstream, "v1")
	require.NoError(t, err)
	_, err = c1.Resolve(1)
	require.NoError(t, err)
	require.NoError(t, c1.Close())

	c2, err := NewCachedResolver(dir, upstream, "v1")
	require.NoError(t, err)
	defer c2.Close()

	shape, err := c2.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, scaledecode.PrimitiveStr, shape.Primitive)
	assert.Equal(t, 1, upstream.calls, "reopened cache should still serve the persisted entry")
}

func TestCachedResolverSchemaVersionNamespacesKeys(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	upstream := &countingResolver{shape: scaledecode.Shape{Kind: scaledecode.KindPrimitive, Primitive: scaledecode.PrimitiveBool}}

	c1, err := NewCachedResolver(dir, upstream, "v1")
	require.NoError(t, err)
	_, err = c1.Resolve(1)
	require.NoError(t, err)
	require.NoError(t, c1.Close())

	c2, err := NewCachedResolver(dir, upstream, "v2")
	require.NoError(t, err)
	defer c2.Close()

	_, err = c2.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls, "a different schema version must not hit v1's cache entries")
}

func TestCachedResolverResolveAfterCloseErrors(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	upstream := &countingResolver{shape: scaledecode.Shape{Kind: scaledecode.KindPrimitive, Primitive: scaledecode.PrimitiveU8}}

	c, err := NewCachedResolver(dir, upstream, "v1")
	require.NoError(t, err)
	require.NoError(t, c.Close())

	_, err = c.Resolve(1)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestEncodeDecodeShapeRoundTrip(t *testing.T) {
	original := scaledecode.Shape{
		Kind:       scaledecode.KindComposite,
		StructName: "Point",
		CompositeFields: []scaledecode.CompositeField{
			{Type: 0},
		},
	}

	encoded, err := EncodeShape(original)
	require.NoError(t, err)

	decoded, err := DecodeShape(encoded)
	require.NoError(t, err)
	assert.Equal(t, original.Kind, decoded.Kind)
	assert.Equal(t, original.StructName, decoded.StructName)
	require.Len(t, decoded.CompositeFields, 1)
}
