package models

import "time"

// Priority is the urgency bucket of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority maps a raw form value to a Priority, defaulting to medium
// for the empty string. The second return is false for unknown values.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), true
	case "":
		return PriorityMedium, true
	default:
		return "", false
	}
}

// Task is an actionable checklist item belonging to an exam.
type Task struct {
	ID          int64     `db:"id" json:"id"`
	Description string    `db:"description" json:"description"`
	Completed   bool      `db:"completed" json:"completed"`
	Priority    Priority  `db:"priority" json:"priority"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	ExamID      int64     `db:"exam_id" json:"examId"`
}
