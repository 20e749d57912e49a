package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ShriShintre/Exam-Buddy/internal/config"
	"github.com/ShriShintre/Exam-Buddy/internal/db"
)

func TestApplyIsIdempotent(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Driver = "sqlite"
	cfg.Database.Path = filepath.Join(t.TempDir(), "test.db")

	store, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	m := NewMigrator(store)

	if err := m.Apply(ctx); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if err := m.Apply(ctx); err != nil {
		t.Fatalf("second apply: %v", err)
	}

	// All four tables exist and accept rows.
	if _, err := store.DB.ExecContext(ctx,
		`INSERT INTO exams (title, subject, exam_date, description, created_at)
		 VALUES ('t', 's', '2030-06-01', '', '2026-01-01T00:00:00Z')`); err != nil {
		t.Fatalf("insert exam: %v", err)
	}
	for _, stmt := range []string{
		`INSERT INTO tasks (description, priority, created_at, exam_id) VALUES ('d', 'medium', '2026-01-01T00:00:00Z', 1)`,
		`INSERT INTO notes (filename, original_filename, file_path, file_size, uploaded_at, exam_id) VALUES ('f', 'o', '/p', 1, '2026-01-01T00:00:00Z', 1)`,
		`INSERT INTO flashcards (topic, summary, created_at, exam_id) VALUES ('t', 's', '2026-01-01T00:00:00Z', 1)`,
	} {
		if _, err := store.DB.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("insert child row: %v (%s)", err, stmt)
		}
	}

	// Foreign keys are enforced on the sqlite connection.
	if _, err := store.DB.ExecContext(ctx,
		`INSERT INTO tasks (description, priority, created_at, exam_id) VALUES ('d', 'medium', '2026-01-01T00:00:00Z', 999)`); err == nil {
		t.Error("expected foreign key violation for orphan task")
	}
}
