package interaction

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/gropc-project/gropc-go/pkg/adapter"
	"github.com/gropc-project/gropc-go/pkg/wire"
)

// TypeCache remembers the native data type of nodes. A node's type is
// fetched from the adapter at most once for the lifetime of the cache;
// concurrent lookups of the same unknown node share a single read.
type TypeCache struct {
	adapter adapter.Adapter

	mu    sync.RWMutex
	types map[string]adapter.DataType

	group singleflight.Group
}

// NewTypeCache creates an empty cache backed by a.
func NewTypeCache(a adapter.Adapter) *TypeCache {
	return &TypeCache{
		adapter: a,
		types:   make(map[string]adapter.DataType),
	}
}

// Lookup returns a cached type.
func (c *TypeCache) Lookup(node string) (adapter.DataType, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.types[node]
	return t, ok
}

// Store records the type of node. Unknown types are not cached.
func (c *TypeCache) Store(node string, t adapter.DataType) {
	if t == adapter.DataTypeUnknown {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.types[node]; !ok {
		c.types[node] = t
	}
}

// Resolve returns the type of node, reading it from the adapter on a miss.
func (c *TypeCache) Resolve(ctx context.Context, node string) (adapter.DataType, error) {
	if t, ok := c.Lookup(node); ok {
		return t, nil
	}

	v, err, _ := c.group.Do(node, func() (any, error) {
		if t, ok := c.Lookup(node); ok {
			return t, nil
		}
		dv, err := c.adapter.Read(ctx, node)
		if err != nil {
			return adapter.DataTypeUnknown, err
		}
		c.Store(node, dv.Type)
		return dv.Type, nil
	})
	if err != nil {
		return adapter.DataTypeUnknown, err
	}
	return v.(adapter.DataType), nil
}

// Len returns the number of cached nodes.
func (c *TypeCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.types)
}

// compatible reports whether a value of the declared kind may be written
// to a node of native type t.
func compatible(kind wire.Kind, t adapter.DataType) bool {
	switch kind {
	case wire.KindInt:
		return t.IsInteger()
	case wire.KindDouble:
		return t.IsFloat()
	case wire.KindBool:
		return t == adapter.DataTypeBoolean
	case wire.KindString:
		return t == adapter.DataTypeString
	}
	return false
}
