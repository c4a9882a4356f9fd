package store

import "context"

// Backend holds the raw snapshot bytes. Implementations are keyed stores
// with exactly one slot per key; the scheduler only ever uses StateKey.
type Backend interface {
	// Load returns the stored snapshot and whether one exists.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, data []byte) error
	Clear(ctx context.Context, key string) error
	Close()
}
