package models

import (
	"fmt"
	"time"
)

// Storage layouts for calendar and wall-clock fields. Dates and times are
// persisted as text so lexicographic ordering matches chronological order
// across both supported dialects.
const (
	DateLayout        = "2006-01-02"
	TimeLayout        = "15:04"
	DateDisplayLayout = "January 02, 2006"
)

// Exam represents a registered upcoming exam. It owns its tasks, notes
// and flashcards; deleting an exam removes all of them.
type Exam struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Subject     string    `db:"subject" json:"subject"`
	Date        time.Time `db:"exam_date" json:"date"`
	Time        *string   `db:"exam_time" json:"time,omitempty"` // "HH:MM", nil when unset
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`

	Tasks      []*Task      `json:"tasks,omitempty"`
	Notes      []*Note      `json:"notes,omitempty"`
	Flashcards []*Flashcard `json:"flashcards,omitempty"`
}

// DeriveExamTitle builds the display title for an exam created from a
// subject and date, e.g. "Physics Exam - June 01, 2025".
func DeriveExamTitle(subject string, date time.Time) string {
	return fmt.Sprintf("%s Exam - %s", subject, date.Format(DateDisplayLayout))
}

// DisplayDate formats the exam date for rendering.
func (e *Exam) DisplayDate() string {
	return e.Date.Format(DateDisplayLayout)
}

// FormDate formats the exam date for an HTML date input value.
func (e *Exam) FormDate() string {
	return e.Date.Format(DateLayout)
}

// CompletedTaskCount returns how many of the exam's loaded tasks are done.
func (e *Exam) CompletedTaskCount() int {
	completed := 0
	for _, t := range e.Tasks {
		if t.Completed {
			completed++
		}
	}
	return completed
}

// ProgressPercentage returns the completion percentage of the exam's
// loaded tasks. The reference behavior truncates toward zero and an exam
// with no tasks reports 0.
func (e *Exam) ProgressPercentage() int {
	return ProgressPercentage(e.CompletedTaskCount(), len(e.Tasks))
}

// ProgressPercentage computes completed/total as a truncated integer
// percentage, 0 when there are no tasks.
func ProgressPercentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return completed * 100 / total
}
