package vend

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// lookupTable is a name -> value table filled from a full listing on first use.
// Concurrent first lookups share a single load; a failed load is not cached,
// so the next lookup tries again. A successful load is kept for the lifetime
// of the table. The shared load runs detached from any one caller's
// cancellation; each caller stops waiting when its own context ends.
type lookupTable[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
	sf      singleflight.Group
	load    func(ctx context.Context) (map[string]V, error)
}

func newLookupTable[V any](load func(ctx context.Context) (map[string]V, error)) *lookupTable[V] {
	return &lookupTable[V]{load: load}
}

// resolve returns the value stored under key, loading the table if needed.
func (t *lookupTable[V]) resolve(ctx context.Context, key string) (V, bool, error) {
	entries, err := t.table(ctx)
	if err != nil {
		var zero V
		return zero, false, err
	}
	v, ok := entries[key]
	return v, ok, nil
}

func (t *lookupTable[V]) table(ctx context.Context) (map[string]V, error) {
	t.mu.RLock()
	entries := t.entries
	t.mu.RUnlock()
	if entries != nil {
		return entries, nil
	}

	fill := context.WithoutCancel(ctx)
	ch := t.sf.DoChan("load", func() (any, error) {
		t.mu.RLock()
		existing := t.entries
		t.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		loaded, err := t.load(fill)
		if err != nil {
			return nil, err
		}
		if loaded == nil {
			loaded = map[string]V{}
		}

		t.mu.Lock()
		t.entries = loaded
		t.mu.Unlock()
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(map[string]V), nil
	}
}
