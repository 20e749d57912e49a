package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/ShriShintre/Exam-Buddy/internal/pkg/apperrors"
)

func TestTaskSetCompleted(t *testing.T) {
	store := newTestStore(t)
	examRepo := NewExamRepository(store)
	taskRepo := NewTaskRepository(store)
	ctx := context.Background()

	exam := mustCreateExam(t, examRepo, "Physics", "2030-06-01")
	task := mustCreateTask(t, taskRepo, exam.ID, "read chapter one", false)

	if err := taskRepo.SetCompleted(ctx, task.ID, true); err != nil {
		t.Fatalf("set completed: %v", err)
	}
	got, err := taskRepo.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Completed {
		t.Error("task not marked completed")
	}

	if err := taskRepo.SetCompleted(ctx, task.ID, false); err != nil {
		t.Fatalf("unset completed: %v", err)
	}
	got, err = taskRepo.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Completed {
		t.Error("task still marked completed")
	}

	if err := taskRepo.SetCompleted(ctx, 999, true); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("missing task: err = %v, want ErrTaskNotFound", err)
	}
}

func TestTaskCountByExam(t *testing.T) {
	store := newTestStore(t)
	examRepo := NewExamRepository(store)
	taskRepo := NewTaskRepository(store)
	ctx := context.Background()

	exam := mustCreateExam(t, examRepo, "Physics", "2030-06-01")

	total, completed, err := taskRepo.CountByExam(ctx, exam.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 0 || completed != 0 {
		t.Errorf("empty exam counts = (%d, %d), want (0, 0)", total, completed)
	}

	mustCreateTask(t, taskRepo, exam.ID, "done already", true)
	mustCreateTask(t, taskRepo, exam.ID, "pending", false)
	mustCreateTask(t, taskRepo, exam.ID, "also pending", false)

	total, completed, err = taskRepo.CountByExam(ctx, exam.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 3 || completed != 1 {
		t.Errorf("counts = (%d, %d), want (3, 1)", total, completed)
	}
}

func TestTaskDelete(t *testing.T) {
	store := newTestStore(t)
	examRepo := NewExamRepository(store)
	taskRepo := NewTaskRepository(store)
	ctx := context.Background()

	exam := mustCreateExam(t, examRepo, "Physics", "2030-06-01")
	task := mustCreateTask(t, taskRepo, exam.ID, "read chapter one", false)

	if err := taskRepo.Delete(ctx, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := taskRepo.GetByID(ctx, task.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("get after delete: err = %v, want ErrTaskNotFound", err)
	}
	if err := taskRepo.Delete(ctx, task.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("second delete: err = %v, want ErrTaskNotFound", err)
	}
}
