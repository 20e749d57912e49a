package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ShriShintre/Exam-Buddy/internal/app/models/dto"
	"github.com/ShriShintre/Exam-Buddy/internal/pkg/apperrors"
)

func TestFlashcardCreateAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	exam, err := env.exams.Create(ctx, &dto.CreateExamRequest{Subject: "Physics", Date: "2030-06-01"})
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}

	card, err := env.flashcards.Create(ctx, exam.ID, &dto.CreateFlashcardRequest{Topic: "Newton", Summary: "three laws"})
	if err != nil {
		t.Fatalf("create flashcard: %v", err)
	}
	if card.ExamID != exam.ID {
		t.Errorf("examID = %d, want %d", card.ExamID, exam.ID)
	}

	gotExam, cards, err := env.flashcards.ListByExam(ctx, exam.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotExam.ID != exam.ID || len(cards) != 1 || cards[0].Topic != "Newton" {
		t.Errorf("list = (%v, %v)", gotExam, cards)
	}

	if _, err := env.flashcards.Create(ctx, exam.ID, &dto.CreateFlashcardRequest{Topic: "Newton"}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("missing summary: err = %v, want validation failure", err)
	}
	if _, err := env.flashcards.Create(ctx, 999, &dto.CreateFlashcardRequest{Topic: "x", Summary: "y"}); !errors.Is(err, apperrors.ErrExamNotFound) {
		t.Errorf("missing exam: err = %v, want ErrExamNotFound", err)
	}
	if _, _, err := env.flashcards.ListByExam(ctx, 999); !errors.Is(err, apperrors.ErrExamNotFound) {
		t.Errorf("list missing exam: err = %v, want ErrExamNotFound", err)
	}
}

func TestFlashcardDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	exam, err := env.exams.Create(ctx, &dto.CreateExamRequest{Subject: "Physics", Date: "2030-06-01"})
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}
	card, err := env.flashcards.Create(ctx, exam.ID, &dto.CreateFlashcardRequest{Topic: "Newton", Summary: "three laws"})
	if err != nil {
		t.Fatalf("create flashcard: %v", err)
	}

	examID, err := env.flashcards.Delete(ctx, card.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if examID != exam.ID {
		t.Errorf("delete returned exam %d, want %d", examID, exam.ID)
	}
	if _, err := env.flashcards.Delete(ctx, card.ID); !errors.Is(err, apperrors.ErrFlashcardNotFound) {
		t.Errorf("second delete: err = %v, want ErrFlashcardNotFound", err)
	}
}

func TestFlashcardOverview(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	later, err := env.exams.Create(ctx, &dto.CreateExamRequest{Subject: "Physics", Date: "2030-06-15"})
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}
	sooner, err := env.exams.Create(ctx, &dto.CreateExamRequest{Subject: "Algebra", Date: "2030-06-01"})
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}
	if _, err := env.flashcards.Create(ctx, later.ID, &dto.CreateFlashcardRequest{Topic: "Newton", Summary: "three laws"}); err != nil {
		t.Fatalf("create flashcard: %v", err)
	}

	exams, err := env.flashcards.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(exams) != 2 || exams[0].ID != sooner.ID || exams[1].ID != later.ID {
		t.Fatalf("overview order wrong: %v", exams)
	}
	if len(exams[0].Flashcards) != 0 || len(exams[1].Flashcards) != 1 {
		t.Errorf("flashcards not loaded per exam: %d, %d", len(exams[0].Flashcards), len(exams[1].Flashcards))
	}
}
