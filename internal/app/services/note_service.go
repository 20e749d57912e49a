package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ShriShintre/Exam-Buddy/internal/app/models"
	"github.com/ShriShintre/Exam-Buddy/internal/app/repositories"
	"github.com/ShriShintre/Exam-Buddy/internal/config"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/apperrors"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/filestorage"
)

// noteServiceImpl implements NoteService
type noteServiceImpl struct {
	noteRepo    *repositories.NoteRepository
	examRepo    *repositories.ExamRepository
	fileStorage filestorage.FileStorage
	cfg         *config.Config
	logger      zerolog.Logger
}

// NewNoteService creates a new NoteService
func NewNoteService(
	noteRepo *repositories.NoteRepository,
	examRepo *repositories.ExamRepository,
	fileStorage filestorage.FileStorage,
	cfg *config.Config,
	logger zerolog.Logger,
) NoteService {
	return &noteServiceImpl{
		noteRepo:    noteRepo,
		examRepo:    examRepo,
		fileStorage: fileStorage,
		cfg:         cfg,
		logger:      logger,
	}
}

// validateUpload rejects a file before anything touches storage or the
// database: it must exist, carry a name, fit the size cap and have an
// allow-listed extension.
func (s *noteServiceImpl) validateUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil || fileHeader.Filename == "" {
		return apperrors.ErrNoFileProvided
	}

	if fileHeader.Size > s.cfg.Storage.MaxUploadSize {
		return apperrors.ErrFileTooLarge
	}

	ext := filepath.Ext(fileHeader.Filename)
	if ext == "" || !s.cfg.IsAllowedExtension(ext) {
		return apperrors.ErrUnsupportedMedia
	}

	return nil
}

// Upload validates the file, writes it under a generated unique name and
// records the note row. A failed insert removes the written file so a
// rejected upload leaves no trace.
func (s *noteServiceImpl) Upload(ctx context.Context, examID int64, fileHeader *multipart.FileHeader) (*models.Note, error) {
	if _, err := s.examRepo.GetByID(ctx, examID); err != nil {
		return nil, err
	}

	if err := s.validateUpload(fileHeader); err != nil {
		return nil, err
	}

	stored, err := s.fileStorage.Save(fileHeader)
	if err != nil {
		return nil, apperrors.NewStorageError(err, "error saving uploaded file")
	}

	note := &models.Note{
		Filename:         stored.Name,
		OriginalFilename: stored.OriginalName,
		FilePath:         stored.Path,
		FileSize:         stored.Size,
		UploadedAt:       time.Now().UTC(),
		ExamID:           examID,
	}

	id, err := s.noteRepo.Create(ctx, note)
	if err != nil {
		if rmErr := s.fileStorage.Delete(stored.Name); rmErr != nil {
			s.logger.Error().Err(rmErr).Str("filename", stored.Name).
				Msg("Failed to remove file after note insert failure")
		}
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	note.ID = id
	return note, nil
}

// Download resolves a note and the path of its backing file. A note whose
// file has gone missing from storage is reported as not found.
func (s *noteServiceImpl) Download(ctx context.Context, noteID int64) (*models.Note, string, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, "", err
	}

	fullPath := s.fileStorage.FullPath(note.Filename)
	if _, err := os.Stat(fullPath); err != nil {
		s.logger.Warn().Err(err).Int64("noteId", noteID).Str("path", fullPath).
			Msg("Note row exists but backing file is missing")
		return nil, "", apperrors.ErrNoteNotFound
	}

	return note, fullPath, nil
}

// Delete removes the backing file best-effort, then the note row. A file
// removal failure is logged and never blocks the row delete.
func (s *noteServiceImpl) Delete(ctx context.Context, noteID int64) (int64, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return 0, err
	}

	if err := s.fileStorage.Delete(note.Filename); err != nil {
		s.logger.Error().Err(err).Int64("noteId", noteID).Str("filename", note.Filename).
			Msg("Failed to remove note file, deleting row anyway")
	}

	if err := s.noteRepo.Delete(ctx, noteID); err != nil {
		return 0, fmt.Errorf("error deleting note: %w", err)
	}
	return note.ExamID, nil
}
