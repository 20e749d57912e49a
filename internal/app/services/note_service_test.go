package services

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/ShriShintre/Exam-Buddy/internal/app/models/dto"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/apperrors"
)

func TestNoteUpload(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	exam, err := env.exams.Create(ctx, &dto.CreateExamRequest{Subject: "Physics", Date: "2030-06-01"})
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}

	note, err := env.notes.Upload(ctx, exam.ID, uploadHeader(t, "my exam notes.txt", "some content"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if note.OriginalFilename != "my_exam_notes.txt" {
		t.Errorf("original filename = %q", note.OriginalFilename)
	}
	if !strings.HasSuffix(note.Filename, "_my_exam_notes.txt") || note.Filename == note.OriginalFilename {
		t.Errorf("storage filename = %q, want unique prefix", note.Filename)
	}
	if note.FileSize != int64(len("some content")) {
		t.Errorf("size = %d", note.FileSize)
	}
	if _, err := os.Stat(note.FilePath); err != nil {
		t.Errorf("stored file missing: %v", err)
	}

	// Same original name twice gets distinct storage names.
	second, err := env.notes.Upload(ctx, exam.ID, uploadHeader(t, "my exam notes.txt", "other"))
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if second.Filename == note.Filename {
		t.Errorf("storage names collide: %q", second.Filename)
	}
}

func TestNoteUploadRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	exam, err := env.exams.Create(ctx, &dto.CreateExamRequest{Subject: "Physics", Date: "2030-06-01"})
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}

	t.Run("missing exam", func(t *testing.T) {
		_, err := env.notes.Upload(ctx, 999, uploadHeader(t, "notes.txt", "x"))
		if !errors.Is(err, apperrors.ErrExamNotFound) {
			t.Errorf("err = %v, want ErrExamNotFound", err)
		}
	})

	t.Run("no file", func(t *testing.T) {
		_, err := env.notes.Upload(ctx, exam.ID, nil)
		if !errors.Is(err, apperrors.ErrNoFileProvided) {
			t.Errorf("err = %v, want ErrNoFileProvided", err)
		}
	})

	t.Run("disallowed extension", func(t *testing.T) {
		_, err := env.notes.Upload(ctx, exam.ID, uploadHeader(t, "virus.exe", "x"))
		if !errors.Is(err, apperrors.ErrUnsupportedMedia) {
			t.Errorf("err = %v, want ErrUnsupportedMedia", err)
		}
	})

	t.Run("no extension", func(t *testing.T) {
		_, err := env.notes.Upload(ctx, exam.ID, uploadHeader(t, "README", "x"))
		if !errors.Is(err, apperrors.ErrUnsupportedMedia) {
			t.Errorf("err = %v, want ErrUnsupportedMedia", err)
		}
	})

	t.Run("extension check ignores case", func(t *testing.T) {
		if _, err := env.notes.Upload(ctx, exam.ID, uploadHeader(t, "NOTES.PDF", "x")); err != nil {
			t.Errorf("uppercase extension rejected: %v", err)
		}
	})

	t.Run("over size cap", func(t *testing.T) {
		env.cfg.Storage.MaxUploadSize = 4
		defer func() { env.cfg.Storage.MaxUploadSize = 1 << 20 }()
		_, err := env.notes.Upload(ctx, exam.ID, uploadHeader(t, "notes.txt", "way past the cap"))
		if !errors.Is(err, apperrors.ErrFileTooLarge) {
			t.Errorf("err = %v, want ErrFileTooLarge", err)
		}
	})
}

func TestNoteDownload(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	exam, err := env.exams.Create(ctx, &dto.CreateExamRequest{Subject: "Physics", Date: "2030-06-01"})
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}
	note, err := env.notes.Upload(ctx, exam.ID, uploadHeader(t, "notes.txt", "content"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	got, path, err := env.notes.Download(ctx, note.ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if got.OriginalFilename != "notes.txt" {
		t.Errorf("original filename = %q", got.OriginalFilename)
	}
	content, err := os.ReadFile(path)
	if err != nil || string(content) != "content" {
		t.Errorf("content = %q, err = %v", content, err)
	}

	// A note whose backing file vanished is reported as not found.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, _, err := env.notes.Download(ctx, note.ID); !errors.Is(err, apperrors.ErrNoteNotFound) {
		t.Errorf("missing file: err = %v, want ErrNoteNotFound", err)
	}

	if _, _, err := env.notes.Download(ctx, 999); !errors.Is(err, apperrors.ErrNoteNotFound) {
		t.Errorf("missing row: err = %v, want ErrNoteNotFound", err)
	}
}

func TestNoteDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	exam, err := env.exams.Create(ctx, &dto.CreateExamRequest{Subject: "Physics", Date: "2030-06-01"})
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}
	note, err := env.notes.Upload(ctx, exam.ID, uploadHeader(t, "notes.txt", "content"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	examID, err := env.notes.Delete(ctx, note.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if examID != exam.ID {
		t.Errorf("delete returned exam %d, want %d", examID, exam.ID)
	}
	if _, err := os.Stat(note.FilePath); !os.IsNotExist(err) {
		t.Error("file still on disk after delete")
	}
	if _, err := env.notes.Delete(ctx, note.ID); !errors.Is(err, apperrors.ErrNoteNotFound) {
		t.Errorf("second delete: err = %v, want ErrNoteNotFound", err)
	}
}
