package services

import (
	"context"
	"mime/multipart"

	"github.com/ShriShintre/Exam-Buddy/internal/app/models"
	"github.com/ShriShintre/Exam-Buddy/internal/app/models/dto"
)

// ExamService defines the interface for exam catalog operations
type ExamService interface {
	List(ctx context.Context, query *dto.ListExamsQuery) ([]*models.Exam, error)
	Create(ctx context.Context, req *dto.CreateExamRequest) (*models.Exam, error)
	Get(ctx context.Context, id int64) (*models.Exam, error)
	Update(ctx context.Context, id int64, req *dto.UpdateExamRequest) error
	Delete(ctx context.Context, id int64) error
	Upcoming(ctx context.Context) ([]*models.Exam, error)
}

// TaskService defines the interface for task operations
type TaskService interface {
	Create(ctx context.Context, examID int64, req *dto.CreateTaskRequest) (*models.Task, error)
	// Toggle flips a task's completion flag and returns the owning exam id.
	Toggle(ctx context.Context, taskID int64) (int64, error)
	// Delete removes a task and returns the owning exam id.
	Delete(ctx context.Context, taskID int64) (int64, error)
	Progress(ctx context.Context, examID int64) (*dto.ExamProgressResponse, error)
}

// NoteService defines the interface for note attachment operations
type NoteService interface {
	Upload(ctx context.Context, examID int64, fileHeader *multipart.FileHeader) (*models.Note, error)
	// Download resolves a note and the filesystem path of its backing file.
	Download(ctx context.Context, noteID int64) (*models.Note, string, error)
	// Delete removes a note (file best-effort, then row) and returns the
	// owning exam id.
	Delete(ctx context.Context, noteID int64) (int64, error)
}

// FlashcardService defines the interface for flashcard operations
type FlashcardService interface {
	Create(ctx context.Context, examID int64, req *dto.CreateFlashcardRequest) (*models.Flashcard, error)
	// Delete removes a flashcard and returns the owning exam id.
	Delete(ctx context.Context, flashcardID int64) (int64, error)
	// ListByExam returns the exam and its flashcards in creation order.
	ListByExam(ctx context.Context, examID int64) (*models.Exam, []*models.Flashcard, error)
	// Overview returns every exam with its flashcards loaded, ordered by
	// exam date.
	Overview(ctx context.Context) ([]*models.Exam, error)
}
