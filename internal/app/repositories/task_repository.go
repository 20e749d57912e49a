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

// TaskRepository handles database operations for Task.
type TaskRepository struct {
	store *db.Store
}

// NewTaskRepository creates a new instance of TaskRepository.
func NewTaskRepository(store *db.Store) *TaskRepository {
	return &TaskRepository{store: store}
}

func selectTaskQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "description", "completed", "priority", "created_at", "exam_id",
	).From("tasks").
		PlaceholderFormat(squirrel.Dollar)
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		task      models.Task
		completed int
		createdAt string
	)
	err := row.Scan(&task.ID, &task.Description, &completed, &task.Priority, &createdAt, &task.ExamID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrTaskNotFound
		}
		logger.Error().Err(err).Msg("Error scanning task row")
		return nil, err
	}

	task.Completed = completed != 0
	task.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("malformed task created_at %q: %w", createdAt, err)
	}
	return &task, nil
}

// Create inserts a new task owned by an exam and returns its id.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) (int64, error) {
	completed := 0
	if task.Completed {
		completed = 1
	}

	sqlStr, args, err := squirrel.Insert("tasks").
		Columns("description", "completed", "priority", "created_at", "exam_id").
		Values(
			task.Description,
			completed,
			task.Priority,
			task.CreatedAt.UTC().Format(time.RFC3339Nano),
			task.ExamID,
		).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create task SQL")
		return 0, err
	}

	var id int64
	if err := r.store.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create task query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a single task.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	sqlStr, args, err := selectTaskQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get task by ID SQL")
		return nil, err
	}
	return scanTask(r.store.DB.QueryRowContext(ctx, sqlStr, args...))
}

// ListByExam retrieves all tasks of an exam, oldest first.
func (r *TaskRepository) ListByExam(ctx context.Context, examID int64) ([]*models.Task, error) {
	sqlStr, args, err := selectTaskQuery().
		Where(squirrel.Eq{"exam_id": examID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list tasks SQL")
		return nil, err
	}

	rows, err := r.store.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list tasks query")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err = rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through task rows")
		return nil, fmt.Errorf("database iteration error: %w", err)
	}
	return tasks, nil
}

// SetCompleted persists a task's completion flag.
func (r *TaskRepository) SetCompleted(ctx context.Context, id int64, completed bool) error {
	value := 0
	if completed {
		value = 1
	}

	sqlStr, args, err := squirrel.Update("tasks").
		Set("completed", value).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building toggle task SQL")
		return err
	}

	result, err := r.store.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing toggle task query")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by its ID.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	sqlStr, args, err := squirrel.Delete("tasks").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete task SQL")
		return err
	}

	result, err := r.store.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete task query")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

// CountByExam returns the total and completed task counts for an exam in
// one query, so progress reflects live state.
func (r *TaskRepository) CountByExam(ctx context.Context, examID int64) (total, completed int, err error) {
	sqlStr, args, err := squirrel.Select("COUNT(*)", "COALESCE(SUM(completed), 0)").
		From("tasks").
		Where(squirrel.Eq{"exam_id": examID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count tasks SQL")
		return 0, 0, err
	}

	if err := r.store.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&total, &completed); err != nil {
		logger.Error().Err(err).Msg("Error executing count tasks query")
		return 0, 0, err
	}
	return total, completed, nil
}
