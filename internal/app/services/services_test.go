package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ShriShintre/Exam-Buddy/internal/app/migrations"
	"github.com/ShriShintre/Exam-Buddy/internal/app/repositories"
	"github.com/ShriShintre/Exam-Buddy/internal/config"
	"github.com/ShriShintre/Exam-Buddy/internal/db"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/filestorage"
)

// testEnv wires real repositories and services over a temp sqlite file.
type testEnv struct {
	cfg        *config.Config
	storage    *filestorage.LocalStorage
	repos      *repositories.Repositories
	exams      ExamService
	tasks      TaskService
	notes      NoteService
	flashcards FlashcardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Driver = "sqlite"
	cfg.Database.Path = filepath.Join(t.TempDir(), "test.db")
	cfg.Storage.UploadDir = t.TempDir()
	cfg.Storage.MaxUploadSize = 1 << 20
	cfg.Storage.AllowedExtensions = []string{"txt", "pdf", "png", "jpg", "jpeg", "gif", "doc", "docx"}

	store, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := migrations.NewMigrator(store).Apply(context.Background()); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	storage, err := filestorage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}

	repos := repositories.NewRepositories(store)
	lgr := zerolog.Nop()
	return &testEnv{
		cfg:        cfg,
		storage:    storage,
		repos:      repos,
		exams:      NewExamService(repos.ExamRepository, repos.TaskRepository, repos.NoteRepository, repos.FlashcardRepository, storage, lgr),
		tasks:      NewTaskService(repos.TaskRepository, repos.ExamRepository),
		notes:      NewNoteService(repos.NoteRepository, repos.ExamRepository, storage, cfg, lgr),
		flashcards: NewFlashcardService(repos.FlashcardRepository, repos.ExamRepository),
	}
}

// uploadHeader builds a real multipart.FileHeader like gin hands to a
// controller.
func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse multipart form: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}
