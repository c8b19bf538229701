package repository

import "context"

// ISnapshot is an object store for gzip JSON listing snapshots.
type ISnapshot interface {
	PutSnapshot(ctx context.Context, key string, body []byte) error
	// GetSnapshot returns model.ErrNotFound for a missing key.
	GetSnapshot(ctx context.Context, key string) ([]byte, error)
	// ListKeys returns up to limit keys under prefix that sort strictly after
	// startAfter, in ascending order.
	ListKeys(ctx context.Context, prefix, startAfter string, limit int) ([]string, error)
}
