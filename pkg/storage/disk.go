// Package storage holds uploaded files behind a disk abstraction. Product
// and category images go through the default disk: the local filesystem out
// of the box, or any S3-compatible store (AWS, MinIO, R2) once S3_BUCKET is
// configured.
//
//	storage.Connect()
//
//	storage.Put("images/products/a1b2.jpg", data)
//	url := storage.URL("images/products/a1b2.jpg")
//
//	storage.Use("s3").Put("backups/dump.sql.gz", data)
package storage

import (
	"io"
	"time"
)

// Disk is the driver interface. Paths are slash separated and relative to
// the disk root.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error
	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)
	// GetStream returns a ReadCloser the caller must close.
	GetStream(path string) (io.ReadCloser, error)

	Exists(path string) bool
	Missing(path string) bool
	Size(path string) (int64, error)
	LastModified(path string) (time.Time, error)

	// URL returns the public URL for path.
	URL(path string) string

	// Delete removes a file; a missing file is not an error.
	Delete(path string) error

	Copy(src, dst string) error
	Move(src, dst string) error

	// Files lists filenames directly inside directory; AllFiles recurses.
	Files(directory string) ([]string, error)
	AllFiles(directory string) ([]string, error)
	Directories(directory string) ([]string, error)
	MakeDirectory(path string) error
	DeleteDirectory(path string) error
}
