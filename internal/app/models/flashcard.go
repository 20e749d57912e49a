package models

import "time"

// Flashcard is a topic/summary study card belonging to an exam.
type Flashcard struct {
	ID        int64     `db:"id" json:"id"`
	Topic     string    `db:"topic" json:"topic"`
	Summary   string    `db:"summary" json:"summary"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	ExamID    int64     `db:"exam_id" json:"examId"`
}
