package cache

import "context"

// Cache is a named region of cached values. Writers invalidate the whole
// region; there is no per-key eviction.
type Cache interface {
	// Get decodes the cached value for key into dest. It reports false on a miss.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Put(ctx context.Context, key string, value any) error
	InvalidateAll(ctx context.Context) error
}

// Nop is used when no cache backend is reachable.
type Nop struct{}

func (Nop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Nop) Put(context.Context, string, any) error         { return nil }
func (Nop) InvalidateAll(context.Context) error            { return nil }

var _ Cache = Nop{}
