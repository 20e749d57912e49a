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
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/helpers"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/logger"
)

// Exam list orderings accepted by the catalog. Anything else falls back
// to newest-first by creation time.
const (
	SortByDate  = "date"
	SortByTitle = "title"
)

// ExamRepository handles database operations for Exam.
type ExamRepository struct {
	store *db.Store
}

// NewExamRepository creates a new instance of ExamRepository.
func NewExamRepository(store *db.Store) *ExamRepository {
	return &ExamRepository{store: store}
}

func selectExamQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "title", "subject", "exam_date", "exam_time", "description", "created_at",
	).From("exams").
		PlaceholderFormat(squirrel.Dollar)
}

// scanExam scans a row into an Exam, parsing the text-encoded date and
// creation timestamp.
func scanExam(row rowScanner) (*models.Exam, error) {
	var (
		exam      models.Exam
		dateStr   string
		timeNull  sql.NullString
		createdAt string
	)
	err := row.Scan(&exam.ID, &exam.Title, &exam.Subject, &dateStr, &timeNull, &exam.Description, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrExamNotFound
		}
		logger.Error().Err(err).Msg("Error scanning exam row")
		return nil, err
	}

	exam.Date, err = time.Parse(models.DateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("malformed exam date %q: %w", dateStr, err)
	}
	exam.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("malformed exam created_at %q: %w", createdAt, err)
	}
	exam.Time = helpers.StringPtr(timeNull)
	return &exam, nil
}

// Create inserts a new exam and returns its id.
func (r *ExamRepository) Create(ctx context.Context, exam *models.Exam) (int64, error) {
	sqlStr, args, err := squirrel.Insert("exams").
		Columns("title", "subject", "exam_date", "exam_time", "description", "created_at").
		Values(
			exam.Title,
			exam.Subject,
			exam.Date.Format(models.DateLayout),
			helpers.GetNullString(exam.Time),
			exam.Description,
			exam.CreatedAt.UTC().Format(time.RFC3339Nano),
		).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create exam SQL")
		return 0, err
	}

	var id int64
	if err := r.store.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create exam query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a single exam without its children.
func (r *ExamRepository) GetByID(ctx context.Context, id int64) (*models.Exam, error) {
	sqlStr, args, err := selectExamQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get exam by ID SQL")
		return nil, err
	}
	return scanExam(r.store.DB.QueryRowContext(ctx, sqlStr, args...))
}

// List retrieves exams matching an optional case-sensitive substring
// search on title or subject, in the requested order.
func (r *ExamRepository) List(ctx context.Context, search, sortBy string) ([]*models.Exam, error) {
	builder := selectExamQuery()

	if search != "" {
		builder = builder.Where(squirrel.Or{
			squirrel.Expr(r.store.ContainsExpr("title"), search),
			squirrel.Expr(r.store.ContainsExpr("subject"), search),
		})
	}

	switch sortBy {
	case SortByDate:
		builder = builder.OrderBy("exam_date ASC", "id ASC")
	case SortByTitle:
		builder = builder.OrderBy("title ASC", "id ASC")
	default:
		builder = builder.OrderBy("created_at DESC", "id DESC")
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list exams SQL")
		return nil, err
	}

	return r.queryExams(ctx, sqlStr, args...)
}

// ListUpcoming retrieves exams dated today-or-later, soonest first.
func (r *ExamRepository) ListUpcoming(ctx context.Context, today time.Time) ([]*models.Exam, error) {
	sqlStr, args, err := selectExamQuery().
		Where(squirrel.GtOrEq{"exam_date": today.Format(models.DateLayout)}).
		OrderBy("exam_date ASC", "id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building upcoming exams SQL")
		return nil, err
	}
	return r.queryExams(ctx, sqlStr, args...)
}

func (r *ExamRepository) queryExams(ctx context.Context, sqlStr string, args ...interface{}) ([]*models.Exam, error) {
	rows, err := r.store.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing exams query")
		return nil, err
	}
	defer rows.Close()

	exams := make([]*models.Exam, 0)
	for rows.Next() {
		exam, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, exam)
	}

	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through exam rows")
		return nil, fmt.Errorf("database iteration error: %w", err)
	}
	return exams, nil
}

// Update replaces an exam's editable fields.
func (r *ExamRepository) Update(ctx context.Context, exam *models.Exam) error {
	sqlStr, args, err := squirrel.Update("exams").
		Set("title", exam.Title).
		Set("subject", exam.Subject).
		Set("exam_date", exam.Date.Format(models.DateLayout)).
		Set("exam_time", helpers.GetNullString(exam.Time)).
		Set("description", exam.Description).
		Where(squirrel.Eq{"id": exam.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update exam SQL")
		return err
	}

	result, err := r.store.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update exam query")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrExamNotFound
	}
	return nil
}

// Delete removes an exam and all of its children in one transaction,
// children first. Note files must be removed by the caller beforehand.
func (r *ExamRepository) Delete(ctx context.Context, id int64) error {
	return r.store.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for _, table := range []string{"flashcards", "notes", "tasks"} {
			if _, err := tx.ExecContext(ctx,
				fmt.Sprintf("DELETE FROM %s WHERE exam_id = $1", table), id); err != nil {
				return fmt.Errorf("failed to delete %s for exam %d: %w", table, id, err)
			}
		}

		result, err := tx.ExecContext(ctx, "DELETE FROM exams WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete exam %d: %w", id, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperrors.ErrExamNotFound
		}
		return nil
	})
}
