package filestorage

import (
	"mime/multipart"
)

// FileInfo describes a stored file.
type FileInfo struct {
	Path     string // Relative path under the storage root
	URL      string // Public URL for the file
	Filename string // Original filename
	FileSize int64  // Size in bytes
	MimeType string // MIME type of the file
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves a file under the storage root and returns its info
	SaveFile(fileHeader *multipart.FileHeader) (*FileInfo, error)

	// SaveFileWithPath saves a file into a subdirectory of the storage root
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (*FileInfo, error)

	// DeleteFile removes a stored file given its relative path
	DeleteFile(filePath string) error

	// GetFullPath returns the full filesystem path for a stored file
	GetFullPath(filePath string) string
}
