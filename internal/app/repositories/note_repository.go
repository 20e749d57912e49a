package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ShriShintre/Exam-Buddy/internal/app/models"
	"github.com/ShriShintre/Exam-Buddy/internal/db"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/apperrors"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/logger"
)

// NoteRepository handles database operations for Note.
type NoteRepository struct {
	store *db.Store
}

// NewNoteRepository creates a new instance of NoteRepository.
func NewNoteRepository(store *db.Store) *NoteRepository {
	return &NoteRepository{store: store}
}

func selectNoteQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "filename", "original_filename", "file_path", "file_size", "uploaded_at", "exam_id",
	).From("notes").
		PlaceholderFormat(squirrel.Dollar)
}

func scanNote(row rowScanner) (*models.Note, error) {
	var (
		note       models.Note
		uploadedAt string
	)
	err := row.Scan(&note.ID, &note.Filename, &note.OriginalFilename, &note.FilePath, &note.FileSize, &uploadedAt, &note.ExamID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Msg("Error scanning note row")
		return nil, err
	}

	note.UploadedAt, err = time.Parse(time.RFC3339Nano, uploadedAt)
	if err != nil {
		return nil, fmt.Errorf("malformed note uploaded_at %q: %w", uploadedAt, err)
	}
	return &note, nil
}

// Create inserts a new note row and returns its id.
func (r *NoteRepository) Create(ctx context.Context, note *models.Note) (int64, error) {
	sqlStr, args, err := squirrel.Insert("notes").
		Columns("filename", "original_filename", "file_path", "file_size", "uploaded_at", "exam_id").
		Values(
			note.Filename,
			note.OriginalFilename,
			note.FilePath,
			note.FileSize,
			note.UploadedAt.UTC().Format(time.RFC3339Nano),
			note.ExamID,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create note SQL")
		return 0, err
	}

	var id int64
	if err := r.store.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create note query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a single note.
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	sqlStr, args, err := selectNoteQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get note by ID SQL")
		return nil, err
	}
	return scanNote(r.store.DB.QueryRowContext(ctx, sqlStr, args...))
}

// ListByExam retrieves all notes of an exam, oldest first.
func (r *NoteRepository) ListByExam(ctx context.Context, examID int64) ([]*models.Note, error) {
	sqlStr, args, err := selectNoteQuery().
		Where(squirrel.Eq{"exam_id": examID}).
		OrderBy("uploaded_at ASC", "id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list notes SQL")
		return nil, err
	}

	rows, err := r.store.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list notes query")
		return nil, err
	}
	defer rows.Close()

	notes := make([]*models.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through note rows")
		return nil, fmt.Errorf("database iteration error: %w", err)
	}
	return notes, nil
}

// Delete removes a note row by its ID.
func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := squirrel.Delete("notes").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete note SQL")
		return err
	}

	result, err := r.store.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete note query")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}
