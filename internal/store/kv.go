package store

import (
	"context"
	"errors"
)

// DefaultKey names the persistence slot the todo list lives in.
const DefaultKey = "todo-storage"

// ErrNotFound is returned by KV.Get when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// KV is a durable key-value slot provider. Implementations live in the
// jsonstore, sqlitestore and memstore subpackages.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
