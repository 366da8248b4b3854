package storage

import "context"

// ObjectStorage captures the single operation ingestion needs: archiving
// the raw bytes of a successfully imported export.
type ObjectStorage interface {
	UploadObject(ctx context.Context, key string, data []byte) error
}
