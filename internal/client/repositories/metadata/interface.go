// Package metadata is the client's local key/value store. It keeps small
// pieces of state that must survive restarts, such as the session token.
package metadata

import (
	"context"
	"time"
)

// Item is one stored value with the time it was last written.
type Item struct {
	Value     string
	UpdatedAt time.Time
}

type Repository interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]Item, error)
	Clear(ctx context.Context) error
}
