package storage

import (
	"context"
	"io"
	"time"
)

// StoredObject is the durable reference returned by the object store.
// Key is the opaque identifier used for later removal; URL is a stable
// public-style locator persisted alongside the file record.
type StoredObject struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
}

// PutOptions carries the declared metadata for an upload
type PutOptions struct {
	CourseID    string // Used to namespace object keys
	Filename    string // Declared filename; only the extension is used for the key
	ContentType string
}

// ObjectStore abstracts the external media storage collaborator.
// Put is not idempotent: a retried call after a transient failure may create
// a duplicate remote object, which the caller must treat as garbage unless
// its key was committed to a file record.
type ObjectStore interface {
	// Put streams the content to the remote store and returns its reference
	Put(ctx context.Context, content io.Reader, size int64, opts PutOptions) (*StoredObject, error)

	// Remove deletes the remote object. Best-effort from the caller's
	// perspective: failures must not block local record deletion.
	Remove(ctx context.Context, key string) error

	// PresignedURL returns a short-lived download URL for the object
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
