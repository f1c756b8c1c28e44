package ports

import "io"

// StoragePort abstracts where attachment blobs live (local disk, MinIO/S3).
type StoragePort interface {
	// UploadFile stores the content under path and returns a public URL.
	UploadFile(file io.Reader, path string, contentType string) (string, error)

	DeleteFile(path string) error

	// GetFileContent returns the blob and its content type.
	GetFileContent(path string) (io.ReadCloser, string, error)

	GetFileURL(path string) string

	GetProviderName() string
}
