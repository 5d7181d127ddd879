package storage

import "context"

// Ref points at a stored object. Key is the storage-side identifier, URL
// is what clients fetch.
type Ref struct {
	Key string
	URL string
}

// Store is the object storage contract consumed by the photo flow. The
// core persists references only; bytes never touch the database.
type Store interface {
	Put(ctx context.Context, key, contentType string, content []byte) (Ref, error)
	Delete(ctx context.Context, key string) error
}
