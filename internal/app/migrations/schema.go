package migrations

// Schema statements per dialect. Dates, times and timestamps are stored as
// text (ISO date, HH:MM, RFC3339) so the two dialects behave identically;
// only the identity columns differ. Foreign keys carry ON DELETE CASCADE
// as a backstop even though exam deletion issues explicit child deletes.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS exams (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		subject TEXT NOT NULL,
		exam_date TEXT NOT NULL,
		exam_time TEXT,
		description TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		priority TEXT NOT NULL DEFAULT 'medium',
		created_at TEXT NOT NULL,
		exam_id INTEGER NOT NULL REFERENCES exams(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT NOT NULL UNIQUE,
		original_filename TEXT NOT NULL,
		file_path TEXT NOT NULL,
		file_size INTEGER NOT NULL DEFAULT 0,
		uploaded_at TEXT NOT NULL,
		exam_id INTEGER NOT NULL REFERENCES exams(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS flashcards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		topic TEXT NOT NULL,
		summary TEXT NOT NULL,
		created_at TEXT NOT NULL,
		exam_id INTEGER NOT NULL REFERENCES exams(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_exam_id ON tasks(exam_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_exam_id ON notes(exam_id)`,
	`CREATE INDEX IF NOT EXISTS idx_flashcards_exam_id ON flashcards(exam_id)`,
	`CREATE INDEX IF NOT EXISTS idx_exams_exam_date ON exams(exam_date)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS exams (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		subject TEXT NOT NULL,
		exam_date TEXT NOT NULL,
		exam_time TEXT,
		description TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id BIGSERIAL PRIMARY KEY,
		description TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		priority TEXT NOT NULL DEFAULT 'medium',
		created_at TEXT NOT NULL,
		exam_id BIGINT NOT NULL REFERENCES exams(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id BIGSERIAL PRIMARY KEY,
		filename TEXT NOT NULL UNIQUE,
		original_filename TEXT NOT NULL,
		file_path TEXT NOT NULL,
		file_size BIGINT NOT NULL DEFAULT 0,
		uploaded_at TEXT NOT NULL,
		exam_id BIGINT NOT NULL REFERENCES exams(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS flashcards (
		id BIGSERIAL PRIMARY KEY,
		topic TEXT NOT NULL,
		summary TEXT NOT NULL,
		created_at TEXT NOT NULL,
		exam_id BIGINT NOT NULL REFERENCES exams(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_exam_id ON tasks(exam_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_exam_id ON notes(exam_id)`,
	`CREATE INDEX IF NOT EXISTS idx_flashcards_exam_id ON flashcards(exam_id)`,
	`CREATE INDEX IF NOT EXISTS idx_exams_exam_date ON exams(exam_date)`,
}
