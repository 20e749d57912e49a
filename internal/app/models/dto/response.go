package dto

// APIResponse is the envelope for JSON endpoints.
type APIResponse struct {
	Data  interface{}  `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ExamProgressResponse is the live task-completion summary for an exam.
type ExamProgressResponse struct {
	Progress       int `json:"progress"`
	CompletedTasks int `json:"completed_tasks"`
	TotalTasks     int `json:"total_tasks"`
}
