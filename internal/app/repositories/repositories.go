package repositories

import (
	"github.com/ShriShintre/Exam-Buddy/internal/db"
)

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Repositories is a container for all application repositories.
type Repositories struct {
	ExamRepository      *ExamRepository
	TaskRepository      *TaskRepository
	NoteRepository      *NoteRepository
	FlashcardRepository *FlashcardRepository
}

// NewRepositories creates all repositories over one store.
func NewRepositories(store *db.Store) *Repositories {
	return &Repositories{
		ExamRepository:      NewExamRepository(store),
		TaskRepository:      NewTaskRepository(store),
		NoteRepository:      NewNoteRepository(store),
		FlashcardRepository: NewFlashcardRepository(store),
	}
}
