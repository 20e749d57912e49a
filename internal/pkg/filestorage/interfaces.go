package filestorage

import "mime/multipart"

// StoredFile describes a file after it has been written to storage.
type StoredFile struct {
	Name         string // Generated storage filename: "{uuid}_{sanitized-original}"
	OriginalName string // Sanitized user-supplied filename
	Path         string // Path of the file relative to the process working directory
	Size         int64  // Size in bytes
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Save writes an uploaded file under a generated collision-free name
	// and returns information about where it was stored.
	Save(fileHeader *multipart.FileHeader) (*StoredFile, error)

	// Delete removes a stored file by its generated name. Deleting a file
	// that is already absent is not an error.
	Delete(storedName string) error

	// FullPath returns the filesystem path for a generated storage name.
	FullPath(storedName string) string
}
