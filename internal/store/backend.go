// Package store holds player history and the backends that persist it.
package store

import "context"

// Backend loads and saves a complete History.
//
// Save always rewrites everything; a failed Save leaves the previous contents in place.
type Backend interface {
	Load(ctx context.Context) (History, error)
	Save(ctx context.Context, h History) error
	Close() error
}
