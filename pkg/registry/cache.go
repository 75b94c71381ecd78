package registry

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/eigerco/scaledecode/internal/crypto"
	"github.com/eigerco/scaledecode/pkg/log"
	"github.com/eigerco/scaledecode/pkg/scaledecode"
)

// ErrClosed is returned by CachedResolver operations after Close.
var ErrClosed = errors.New("registry: cache is closed")

// CachedResolver wraps a slow upstream Resolver (typically a remote
// one) with a pebble-backed persistent cache keyed by the blake2b hash
// of the schema version plus type id, so a process restart doesn't
// have to refetch shapes it already resolved. Grounded on
// pkg/db/pebble's PebbleStore Get/Put/ErrNotFound shape; this package
// doesn't carry pkg/db's separate interface+impl split forward because
// this cache is its only consumer here, and that split would be
// premature layering for one caller.
type CachedResolver struct {
	upstream scaledecode.Resolver
	db       *pebble.DB
	schema   [32]byte

	mu     sync.RWMutex
	closed bool
}

// NewCachedResolver opens (or creates) a pebble database at path and
// wraps upstream with it. schemaVersion namespaces cache entries so
// switching a resolver's metadata doesn't serve stale shapes under the
// same type ids.
func NewCachedResolver(path string, upstream scaledecode.Resolver, schemaVersion string) (*CachedResolver, error) {
	db, err := pebble.Open(path, &pebble.Options{
		Cache:        pebble.NewCache(64 * 1024 * 1024),
		MemTableSize: 32 * 1024 * 1024,
	})
	if err != nil {
		return nil, err
	}
	return &CachedResolver{
		upstream: upstream,
		db:       db,
		schema:   crypto.HashData([]byte(schemaVersion)),
	}, nil
}

func (c *CachedResolver) cacheKey(id scaledecode.TypeID) []byte {
	var idBytes [4]byte
	binary.LittleEndian.PutUint32(idBytes[:], uint32(id))
	h := crypto.HashData(append(c.schema[:], idBytes[:]...))
	return h[:]
}

// Resolve implements scaledecode.Resolver: a cache hit is served
// directly from pebble; a miss falls through to upstream and the
// result is persisted before being returned.
func (c *CachedResolver) Resolve(id scaledecode.TypeID) (scaledecode.Shape, error) {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return scaledecode.Shape{}, ErrClosed
	}

	key := c.cacheKey(id)

	if cached, closer, err := c.db.Get(key); err == nil {
		defer closer.Close()
		var shape scaledecode.Shape
		if derr := json.Unmarshal(cached, &shapeWire{shape: &shape}); derr == nil {
			log.Registry.Debug().Uint32("type_id", uint32(id)).Msg("resolved from cache")
			return shape, nil
		}
	} else if err != pebble.ErrNotFound {
		return scaledecode.Shape{}, err
	}

	shape, err := c.upstream.Resolve(id)
	if err != nil {
		return scaledecode.Shape{}, err
	}

	encoded, err := json.Marshal(shapeWire{shape: &shape})
	if err == nil {
		if perr := c.db.Set(key, encoded, pebble.Sync); perr != nil {
			log.Registry.Warn().Err(perr).Uint32("type_id", uint32(id)).Msg("failed to persist cache entry")
		}
	}

	log.Registry.Debug().Uint32("type_id", uint32(id)).Msg("resolved from upstream")
	return shape, nil
}

// Close releases the underlying pebble database. Further calls to
// Resolve return ErrClosed.
func (c *CachedResolver) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.db.Close()
}

// EncodeShape marshals a Shape to the same JSON wire form LoadJSON
// reads, for callers (such as the remote registry server) that need to
// put a Shape on the wire without depending on pebble or a cache.
func EncodeShape(s scaledecode.Shape) ([]byte, error) {
	return json.Marshal(shapeToRaw(s))
}

// DecodeShape is the inverse of EncodeShape.
func DecodeShape(data []byte) (scaledecode.Shape, error) {
	var raw rawShape
	if err := json.Unmarshal(data, &raw); err != nil {
		return scaledecode.Shape{}, err
	}
	return raw.toShape()
}

// shapeWire adapts scaledecode.Shape (which has no json tags, since
// the core package carries no serialization opinion) to the rawShape
// wire format this package already defines for MemoryRegistry.LoadJSON.
type shapeWire struct {
	shape *scaledecode.Shape
}

func (w shapeWire) MarshalJSON() ([]byte, error) {
	return EncodeShape(*w.shape)
}

func (w *shapeWire) UnmarshalJSON(data []byte) error {
	shape, err := DecodeShape(data)
	if err != nil {
		return err
	}
	*w.shape = shape
	return nil
}

func shapeToRaw(s scaledecode.Shape) rawShape {
	raw := rawShape{
		Elem:       s.Elem,
		Len:        s.Len,
		Fields:     s.Fields,
		Path:       s.Path,
		StructName: s.StructName,
		Inner:      s.Inner,
	}
	for _, f := range s.CompositeFields {
		raw.CompositeFields = append(raw.CompositeFields, rawField{Name: f.Name, Type: f.Type, TypeName: f.TypeName})
	}
	for _, v := range s.Variants {
		rv := rawVariant{Index: v.Index, Name: v.Name}
		for _, f := range v.Fields {
			rv.Fields = append(rv.Fields, rawField{Name: f.Name, Type: f.Type, TypeName: f.TypeName})
		}
		raw.Variants = append(raw.Variants, rv)
	}

	switch s.Kind {
	case scaledecode.KindPrimitive:
		raw.Kind = KindPrimitive
		raw.Primitive = primitiveToJSON(s.Primitive)
	case scaledecode.KindSequence:
		raw.Kind = KindSequence
	case scaledecode.KindArray:
		raw.Kind = KindArray
	case scaledecode.KindTuple:
		raw.Kind = KindTuple
	case scaledecode.KindComposite:
		raw.Kind = KindComposite
	case scaledecode.KindVariant:
		raw.Kind = KindVariant
	case scaledecode.KindBitSequence:
		raw.Kind = KindBitSequence
		raw.BitStore = bitStoreToJSON(s.BitStore)
		raw.BitOrder = bitOrderToJSON(s.BitOrder)
	case scaledecode.KindCompact:
		raw.Kind = KindCompact
	}
	return raw
}

func primitiveToJSON(k scaledecode.PrimitiveKind) string {
	names := [...]string{"bool", "char", "str", "u8", "u16", "u32", "u64", "u128", "u256",
		"i8", "i16", "i32", "i64", "i128", "i256"}
	if int(k) < len(names) {
		return names[k]
	}
	return ""
}

func bitStoreToJSON(k scaledecode.BitStoreKind) string {
	names := [...]string{"u8", "u16", "u32", "u64"}
	if int(k) < len(names) {
		return names[k]
	}
	return ""
}

func bitOrderToJSON(k scaledecode.BitOrderKind) string {
	names := [...]string{"lsb0", "msb0"}
	if int(k) < len(names) {
		return names[k]
	}
	return ""
}
