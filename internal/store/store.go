// Package store keeps a local sqlite history of detect and humanize runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ppiankov/humanizer/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id                TEXT PRIMARY KEY,
    created_at        INTEGER NOT NULL,
    operation         TEXT NOT NULL,
    intensity         TEXT NOT NULL DEFAULT '',
    original_score    REAL NOT NULL,
    transformed_score REAL,
    escalated         INTEGER NOT NULL DEFAULT 0,
    similarity        REAL,
    word_delta        INTEGER,
    source            TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`

// Operation names a recorded run
type Operation string

const (
	OpDetect    Operation = "detect"
	OpTransform Operation = "transform"
	OpProcess   Operation = "process"
)

// Run is one history row; the transformed fields are nil for detect-only runs
type Run struct {
	ID               string
	CreatedAt        time.Time
	Operation        Operation
	Intensity        model.Intensity
	OriginalScore    float64
	TransformedScore *float64
	Escalated        bool
	Similarity       *float64
	WordDelta        *int
	Source           model.Source
}

// Store is the sqlite run history
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and applies the schema
// ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writers
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts a run, filling ID and CreatedAt when unset
func (s *Store) Record(ctx context.Context, r *Run) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, operation, intensity, original_score, transformed_score, escalated, similarity, word_delta, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UnixNano(), string(r.Operation), string(r.Intensity), r.OriginalScore,
		nullFloat(r.TransformedScore), r.Escalated, nullFloat(r.Similarity), nullInt(r.WordDelta), string(r.Source),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, operation, intensity, original_score, transformed_score, escalated, similarity, word_delta, source
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			createdAt  int64
			op, intens string
			source     string
			transScore sql.NullFloat64
			similarity sql.NullFloat64
			wordDelta  sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &createdAt, &op, &intens, &r.OriginalScore, &transScore, &r.Escalated, &similarity, &wordDelta, &source); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt = time.Unix(0, createdAt).UTC()
		r.Operation = Operation(op)
		r.Intensity = model.Intensity(intens)
		r.Source = model.Source(source)
		if transScore.Valid {
			r.TransformedScore = &transScore.Float64
		}
		if similarity.Valid {
			r.Similarity = &similarity.Float64
		}
		if wordDelta.Valid {
			d := int(wordDelta.Int64)
			r.WordDelta = &d
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// DetectRun builds a history row for a detect result
func DetectRun(res *model.DetectResult) *Run {
	return &Run{
		CreatedAt:     res.CheckedAt,
		Operation:     OpDetect,
		OriginalScore: res.Detection.Score,
	}
}

// TransformRun builds a history row for a transform result
func TransformRun(res *model.TransformResult) *Run {
	score := res.TransformedScore.Score
	similarity := res.Changes.Similarity
	delta := res.Changes.WordCountDelta
	return &Run{
		Operation:        OpTransform,
		Intensity:        res.Intensity,
		OriginalScore:    res.OriginalScore.Score,
		TransformedScore: &score,
		Escalated:        res.Escalated,
		Similarity:       &similarity,
		WordDelta:        &delta,
		Source:           res.Source,
	}
}

// ProcessRun builds a history row for a process result
func ProcessRun(res *model.ProcessResult, intensity model.Intensity) *Run {
	r := &Run{
		Operation:     OpProcess,
		Intensity:     intensity,
		OriginalScore: res.Detection.Score,
		Escalated:     res.Escalated,
		Source:        res.Source,
	}
	if res.TransformedScore != nil {
		score := res.TransformedScore.Score
		r.TransformedScore = &score
	}
	if res.Changes != nil {
		similarity := res.Changes.Similarity
		delta := res.Changes.WordCountDelta
		r.Similarity = &similarity
		r.WordDelta = &delta
	}
	return r
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
