package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ShriShintre/Exam-Buddy/internal/app/models"
	"github.com/ShriShintre/Exam-Buddy/internal/app/models/dto"
	"github.com/ShriShintre/Exam-Buddy/internal/app/repositories"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/apperrors"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/filestorage"
)

// examServiceImpl implements ExamService
type examServiceImpl struct {
	examRepo      *repositories.ExamRepository
	taskRepo      *repositories.TaskRepository
	noteRepo      *repositories.NoteRepository
	flashcardRepo *repositories.FlashcardRepository
	fileStorage   filestorage.FileStorage
	logger        zerolog.Logger
}

// NewExamService creates a new ExamService
func NewExamService(
	examRepo *repositories.ExamRepository,
	taskRepo *repositories.TaskRepository,
	noteRepo *repositories.NoteRepository,
	flashcardRepo *repositories.FlashcardRepository,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) ExamService {
	return &examServiceImpl{
		examRepo:      examRepo,
		taskRepo:      taskRepo,
		noteRepo:      noteRepo,
		flashcardRepo: flashcardRepo,
		fileStorage:   fileStorage,
		logger:        logger,
	}
}

// List retrieves exams filtered by an optional search term and ordered by
// the requested sort key.
func (s *examServiceImpl) List(ctx context.Context, query *dto.ListExamsQuery) ([]*models.Exam, error) {
	exams, err := s.examRepo.List(ctx, query.Search, query.Sort)
	if err != nil {
		return nil, fmt.Errorf("error listing exams: %w", err)
	}
	return exams, nil
}

// parseExamFields validates and converts the shared date/time form fields.
func parseExamFields(dateStr, timeStr string) (date time.Time, examTime *string, err error) {
	date, err = time.Parse(models.DateLayout, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, nil, apperrors.NewValidationError("date must be in YYYY-MM-DD format")
	}

	timeStr = strings.TrimSpace(timeStr)
	if timeStr != "" {
		parsed, err := time.Parse(models.TimeLayout, timeStr)
		if err != nil {
			return time.Time{}, nil, apperrors.NewValidationError("time must be in 24-hour HH:MM format")
		}
		normalized := parsed.Format(models.TimeLayout)
		examTime = &normalized
	}

	return date, examTime, nil
}

// Create validates the form, derives the exam title from subject and date
// and persists the new exam.
func (s *examServiceImpl) Create(ctx context.Context, req *dto.CreateExamRequest) (*models.Exam, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	date, examTime, err := parseExamFields(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	exam := &models.Exam{
		Title:       models.DeriveExamTitle(req.Subject, date),
		Subject:     req.Subject,
		Date:        date,
		Time:        examTime,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}

	id, err := s.examRepo.Create(ctx, exam)
	if err != nil {
		return nil, fmt.Errorf("error creating exam: %w", err)
	}
	exam.ID = id
	return exam, nil
}

// Get retrieves an exam with all of its children loaded.
func (s *examServiceImpl) Get(ctx context.Context, id int64) (*models.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if exam.Tasks, err = s.taskRepo.ListByExam(ctx, id); err != nil {
		return nil, fmt.Errorf("error loading tasks for exam %d: %w", id, err)
	}
	if exam.Notes, err = s.noteRepo.ListByExam(ctx, id); err != nil {
		return nil, fmt.Errorf("error loading notes for exam %d: %w", id, err)
	}
	if exam.Flashcards, err = s.flashcardRepo.ListByExam(ctx, id); err != nil {
		return nil, fmt.Errorf("error loading flashcards for exam %d: %w", id, err)
	}
	return exam, nil
}

// Update replaces the editable fields of an existing exam.
func (s *examServiceImpl) Update(ctx context.Context, id int64, req *dto.UpdateExamRequest) error {
	if err := dto.Validate(req); err != nil {
		return err
	}

	date, examTime, err := parseExamFields(req.Date, req.Time)
	if err != nil {
		return err
	}

	// Existence check first so a missing exam is NotFound, not a no-op.
	if _, err := s.examRepo.GetByID(ctx, id); err != nil {
		return err
	}

	exam := &models.Exam{
		ID:          id,
		Title:       req.Title,
		Subject:     req.Subject,
		Date:        date,
		Time:        examTime,
		Description: req.Description,
	}
	if err := s.examRepo.Update(ctx, exam); err != nil {
		return fmt.Errorf("error updating exam: %w", err)
	}
	return nil
}

// Delete removes an exam and everything it owns. Note files are removed
// from storage first, best-effort: a failed file removal is logged and
// never blocks the row deletes.
func (s *examServiceImpl) Delete(ctx context.Context, id int64) error {
	notes, err := s.noteRepo.ListByExam(ctx, id)
	if err != nil {
		return fmt.Errorf("error loading notes for exam %d: %w", id, err)
	}

	for _, note := range notes {
		if err := s.fileStorage.Delete(note.Filename); err != nil {
			s.logger.Error().Err(err).Int64("noteId", note.ID).Str("filename", note.Filename).
				Msg("Failed to remove note file during exam delete, continuing")
		}
	}

	return s.examRepo.Delete(ctx, id)
}

// Upcoming retrieves exams dated today or later, soonest first.
func (s *examServiceImpl) Upcoming(ctx context.Context) ([]*models.Exam, error) {
	exams, err := s.examRepo.ListUpcoming(ctx, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("error listing upcoming exams: %w", err)
	}
	return exams, nil
}
