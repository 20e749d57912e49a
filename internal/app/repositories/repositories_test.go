package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ShriShintre/Exam-Buddy/internal/app/migrations"
	"github.com/ShriShintre/Exam-Buddy/internal/app/models"
	"github.com/ShriShintre/Exam-Buddy/internal/config"
	"github.com/ShriShintre/Exam-Buddy/internal/db"
)

// newTestStore opens a sqlite store on a fresh temp file with the schema
// applied.
func newTestStore(t *testing.T) *db.Store {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Driver = "sqlite"
	cfg.Database.Path = filepath.Join(t.TempDir(), "test.db")

	store, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := migrations.NewMigrator(store).Apply(context.Background()); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return store
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateLayout, value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return d
}

// mustCreateExam inserts an exam with a derived title and returns it.
func mustCreateExam(t *testing.T, repo *ExamRepository, subject, date string) *models.Exam {
	t.Helper()

	d := mustDate(t, date)
	exam := &models.Exam{
		Title:     models.DeriveExamTitle(subject, d),
		Subject:   subject,
		Date:      d,
		CreatedAt: time.Now().UTC(),
	}
	id, err := repo.Create(context.Background(), exam)
	if err != nil {
		t.Fatalf("create exam %q: %v", subject, err)
	}
	exam.ID = id
	return exam
}

func mustCreateTask(t *testing.T, repo *TaskRepository, examID int64, description string, completed bool) *models.Task {
	t.Helper()

	task := &models.Task{
		Description: description,
		Completed:   completed,
		Priority:    models.PriorityMedium,
		CreatedAt:   time.Now().UTC(),
		ExamID:      examID,
	}
	id, err := repo.Create(context.Background(), task)
	if err != nil {
		t.Fatalf("create task %q: %v", description, err)
	}
	task.ID = id
	return task
}
