package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ShriShintre/Exam-Buddy/internal/app/models"
	"github.com/ShriShintre/Exam-Buddy/internal/app/models/dto"
	"github.com/ShriShintre/Exam-Buddy/internal/app/repositories"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/apperrors"
)

// taskServiceImpl implements TaskService
type taskServiceImpl struct {
	taskRepo *repositories.TaskRepository
	examRepo *repositories.ExamRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo *repositories.TaskRepository, examRepo *repositories.ExamRepository) TaskService {
	return &taskServiceImpl{
		taskRepo: taskRepo,
		examRepo: examRepo,
	}
}

// Create validates the form and persists a new task owned by the exam.
func (s *taskServiceImpl) Create(ctx context.Context, examID int64, req *dto.CreateTaskRequest) (*models.Task, error) {
	if _, err := s.examRepo.GetByID(ctx, examID); err != nil {
		return nil, err
	}

	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	priority, ok := models.ParsePriority(req.Priority)
	if !ok {
		return nil, apperrors.NewValidationError("priority must be one of: low medium high")
	}

	task := &models.Task{
		Description: req.Description,
		Completed:   false,
		Priority:    priority,
		CreatedAt:   time.Now().UTC(),
		ExamID:      examID,
	}

	id, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	task.ID = id
	return task, nil
}

// Toggle flips a task's completed flag and returns the owning exam id.
func (s *taskServiceImpl) Toggle(ctx context.Context, taskID int64) (int64, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return 0, err
	}

	if err := s.taskRepo.SetCompleted(ctx, taskID, !task.Completed); err != nil {
		return 0, fmt.Errorf("error toggling task: %w", err)
	}
	return task.ExamID, nil
}

// Delete removes a task and returns the owning exam id.
func (s *taskServiceImpl) Delete(ctx context.Context, taskID int64) (int64, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return 0, err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return 0, fmt.Errorf("error deleting task: %w", err)
	}
	return task.ExamID, nil
}

// Progress computes the live completion summary for an exam's tasks.
func (s *taskServiceImpl) Progress(ctx context.Context, examID int64) (*dto.ExamProgressResponse, error) {
	if _, err := s.examRepo.GetByID(ctx, examID); err != nil {
		return nil, err
	}

	total, completed, err := s.taskRepo.CountByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("error counting tasks: %w", err)
	}

	return &dto.ExamProgressResponse{
		Progress:       models.ProgressPercentage(completed, total),
		CompletedTasks: completed,
		TotalTasks:     total,
	}, nil
}
