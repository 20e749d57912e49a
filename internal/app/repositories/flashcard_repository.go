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

// FlashcardRepository handles database operations for Flashcard.
type FlashcardRepository struct {
	store *db.Store
}

// NewFlashcardRepository creates a new instance of FlashcardRepository.
func NewFlashcardRepository(store *db.Store) *FlashcardRepository {
	return &FlashcardRepository{store: store}
}

func selectFlashcardQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "topic", "summary", "created_at", "exam_id",
	).From("flashcards").
		PlaceholderFormat(squirrel.Dollar)
}

func scanFlashcard(row rowScanner) (*models.Flashcard, error) {
	var (
		card      models.Flashcard
		createdAt string
	)
	err := row.Scan(&card.ID, &card.Topic, &card.Summary, &createdAt, &card.ExamID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrFlashcardNotFound
		}
		logger.Error().Err(err).Msg("Error scanning flashcard row")
		return nil, err
	}

	card.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("malformed flashcard created_at %q: %w", createdAt, err)
	}
	return &card, nil
}

// Create inserts a new flashcard and returns its id.
func (r *FlashcardRepository) Create(ctx context.Context, card *models.Flashcard) (int64, error) {
	sqlStr, args, err := squirrel.Insert("flashcards").
		Columns("topic", "summary", "created_at", "exam_id").
		Values(
			card.Topic,
			card.Summary,
			card.CreatedAt.UTC().Format(time.RFC3339Nano),
			card.ExamID,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create flashcard SQL")
		return 0, err
	}

	var id int64
	if err := r.store.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create flashcard query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a single flashcard.
func (r *FlashcardRepository) GetByID(ctx context.Context, id int64) (*models.Flashcard, error) {
	sqlStr, args, err := selectFlashcardQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get flashcard by ID SQL")
		return nil, err
	}
	return scanFlashcard(r.store.DB.QueryRowContext(ctx, sqlStr, args...))
}

// ListByExam retrieves all flashcards of an exam, oldest first.
func (r *FlashcardRepository) ListByExam(ctx context.Context, examID int64) ([]*models.Flashcard, error) {
	sqlStr, args, err := selectFlashcardQuery().
		Where(squirrel.Eq{"exam_id": examID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list flashcards SQL")
		return nil, err
	}

	rows, err := r.store.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list flashcards query")
		return nil, err
	}
	defer rows.Close()

	cards := make([]*models.Flashcard, 0)
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through flashcard rows")
		return nil, fmt.Errorf("database iteration error: %w", err)
	}
	return cards, nil
}

// Delete removes a flashcard by its ID.
func (r *FlashcardRepository) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := squirrel.Delete("flashcards").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete flashcard SQL")
		return err
	}

	result, err := r.store.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete flashcard query")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrFlashcardNotFound
	}
	return nil
}
