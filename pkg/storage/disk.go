// Package storage abstracts where product images live.
//
// Two drivers are available:
//   - "local" — local filesystem (default, served under /storage)
//   - "s3"    — S3-compatible object storage (AWS S3, MinIO, R2)
//
// Boot once in the server bootstrap with storage.Connect(), then:
//
//	storage.PutStream("products/663a.../0.webp", file)
//	url := storage.URL("products/663a.../0.webp")
package storage

import "io"

// Disk is the driver interface for a single storage backend.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
