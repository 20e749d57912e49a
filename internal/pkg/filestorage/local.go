package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ShriShintre/Exam-Buddy/internal/pkg/logger"
)

// LocalStorage handles saving uploaded note files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath,
// creating the directory if it does not exist.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{basePath: basePath}, nil
}

// SanitizeFilename strips path components and unsafe characters from a
// user-supplied filename. Spaces become underscores; anything outside
// letters, digits, dot, dash and underscore is dropped. Returns "" when
// nothing safe remains.
func SanitizeFilename(name string) string {
	// Strip directory components from either separator convention.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}

	sanitized := strings.Trim(b.String(), "._")
	if sanitized == "." || sanitized == ".." {
		return ""
	}
	return sanitized
}

// Save writes the uploaded file into the storage directory under a
// generated unique name so identical original filenames never collide.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("no file header provided")
	}

	sanitized := SanitizeFilename(fileHeader.Filename)
	if sanitized == "" {
		return nil, fmt.Errorf("filename %q has no safe characters", fileHeader.Filename)
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Random prefix keeps storage names globally unique even when users
	// upload the same filename twice.
	storedName := uuid.New().String() + "_" + sanitized
	dstPath := filepath.Join(ls.basePath, storedName)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		// Attempt to remove the partially created file
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", storedName).Int64("size", size).Msg("File saved")
	return &StoredFile{
		Name:         storedName,
		OriginalName: sanitized,
		Path:         dstPath,
		Size:         size,
	}, nil
}

// Delete removes a stored file by its generated name.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) Delete(storedName string) error {
	if storedName == "" {
		return nil // Nothing to delete
	}

	// Only the filename portion is honored; stored names never contain
	// directories.
	filename := filepath.Base(storedName)
	if filename == "" || filename == "." || filename == "/" {
		return fmt.Errorf("invalid storage name: %s", storedName)
	}

	physicalPath := filepath.Join(ls.basePath, filename)

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil // Idempotent delete
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// FullPath returns the filesystem path for a generated storage name.
func (ls *LocalStorage) FullPath(storedName string) string {
	filename := filepath.Base(storedName)
	if filename == "" || filename == "." || filename == "/" {
		return ""
	}
	return filepath.Join(ls.basePath, filename)
}
