package repositories

import "io"

// StorageStrategy abstracts where result artifacts live (local disk or S3).
type StorageStrategy interface {
	Save(key string, r io.Reader) (string, error)
	Open(key string) (io.ReadCloser, error)
	Delete(key string) error
}
