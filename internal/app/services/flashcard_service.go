package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ShriShintre/Exam-Buddy/internal/app/models"
	"github.com/ShriShintre/Exam-Buddy/internal/app/models/dto"
	"github.com/ShriShintre/Exam-Buddy/internal/app/repositories"
)

// flashcardServiceImpl implements FlashcardService
type flashcardServiceImpl struct {
	flashcardRepo *repositories.FlashcardRepository
	examRepo      *repositories.ExamRepository
}

// NewFlashcardService creates a new FlashcardService
func NewFlashcardService(flashcardRepo *repositories.FlashcardRepository, examRepo *repositories.ExamRepository) FlashcardService {
	return &flashcardServiceImpl{
		flashcardRepo: flashcardRepo,
		examRepo:      examRepo,
	}
}

// Create validates the request and attaches a new flashcard to the exam.
func (s *flashcardServiceImpl) Create(ctx context.Context, examID int64, req *dto.CreateFlashcardRequest) (*models.Flashcard, error) {
	if _, err := s.examRepo.GetByID(ctx, examID); err != nil {
		return nil, err
	}

	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	flashcard := &models.Flashcard{
		Topic:     req.Topic,
		Summary:   req.Summary,
		CreatedAt: time.Now().UTC(),
		ExamID:    examID,
	}

	id, err := s.flashcardRepo.Create(ctx, flashcard)
	if err != nil {
		return nil, fmt.Errorf("error creating flashcard: %w", err)
	}
	flashcard.ID = id
	return flashcard, nil
}

// Delete removes a flashcard and reports the exam it belonged to.
func (s *flashcardServiceImpl) Delete(ctx context.Context, flashcardID int64) (int64, error) {
	flashcard, err := s.flashcardRepo.GetByID(ctx, flashcardID)
	if err != nil {
		return 0, err
	}

	if err := s.flashcardRepo.Delete(ctx, flashcardID); err != nil {
		return 0, fmt.Errorf("error deleting flashcard: %w", err)
	}
	return flashcard.ExamID, nil
}

// ListByExam returns the exam together with its flashcards in creation order.
func (s *flashcardServiceImpl) ListByExam(ctx context.Context, examID int64) (*models.Exam, []*models.Flashcard, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, nil, err
	}

	flashcards, err := s.flashcardRepo.ListByExam(ctx, examID)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing flashcards: %w", err)
	}
	return exam, flashcards, nil
}

// Overview returns every exam ordered by date with flashcards loaded.
func (s *flashcardServiceImpl) Overview(ctx context.Context) ([]*models.Exam, error) {
	exams, err := s.examRepo.List(ctx, "", repositories.SortByDate)
	if err != nil {
		return nil, fmt.Errorf("error listing exams: %w", err)
	}

	for _, exam := range exams {
		if exam.Flashcards, err = s.flashcardRepo.ListByExam(ctx, exam.ID); err != nil {
			return nil, fmt.Errorf("error loading flashcards for exam %d: %w", exam.ID, err)
		}
	}
	return exams, nil
}
