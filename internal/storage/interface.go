package storage

import (
	"context"
	"io"
	"time"
)

// UploadTarget is what a client needs to push one receipt: a short-lived
// signed PUT URL and the durable public URL that will resolve the object
// after the upload completes.
type UploadTarget struct {
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

// Storage is the receipt-object collaborator. The ledger core only ever asks
// for upload targets; the remaining methods exist for the serving routes and
// the stale-upload sweep.
type Storage interface {
	// RequestUploadTarget signs a PUT URL for the object key. The public URL
	// always carries the configured public hostname, even when signing
	// happened over an internal endpoint.
	RequestUploadTarget(ctx context.Context, objectKey, contentType string) (*UploadTarget, error)

	SaveFile(key string, reader io.Reader) error
	ReadFile(key string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, key string) error

	// ListObjects returns every stored key with its modification time,
	// used to find orphaned uploads.
	ListObjects(ctx context.Context) (map[string]time.Time, error)
}
