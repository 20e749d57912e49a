package models

import "time"

// Note is an uploaded file attachment belonging to an exam. Filename is
// the generated storage name (unique across all exams); OriginalFilename
// is the user-supplied display name presented back on download.
type Note struct {
	ID               int64     `db:"id" json:"id"`
	Filename         string    `db:"filename" json:"filename"`
	OriginalFilename string    `db:"original_filename" json:"originalFilename"`
	FilePath         string    `db:"file_path" json:"filePath"`
	FileSize         int64     `db:"file_size" json:"fileSize"`
	UploadedAt       time.Time `db:"uploaded_at" json:"uploadedAt"`
	ExamID           int64     `db:"exam_id" json:"examId"`
}
