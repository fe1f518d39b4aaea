package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

// ErrNotFound is returned when no job has the requested id.
var ErrNotFound = errors.New("job not found")

const jobColumns = `id, filename, status, progress, message, transcript, minutes, documents, created_at, updated_at`

// JobStorage handles storage of job records
type JobStorage struct {
	db     *sql.DB
	logger logger.Logger
}

// NewJobStorage creates a new SQLite job storage and makes sure the schema exists
func NewJobStorage(ctx context.Context, db *sql.DB, log logger.Logger) (*JobStorage, error) {
	storage := &JobStorage{
		db:     db,
		logger: log,
	}

	if err := storage.initDB(ctx); err != nil {
		return nil, err
	}

	return storage, nil
}

// initDB initializes the database tables
func (s *JobStorage) initDB(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			filename TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'queued',
			progress REAL NOT NULL DEFAULT 0,
			message TEXT NOT NULL DEFAULT '',
			transcript TEXT NOT NULL DEFAULT '',
			minutes TEXT NOT NULL DEFAULT '',
			documents TEXT NOT NULL DEFAULT '[]',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create jobs table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs(created_at)`,
	}

	for _, indexSQL := range indexes {
		if _, err := s.db.ExecContext(ctx, indexSQL); err != nil {
			return fmt.Errorf("failed to create job index: %w", err)
		}
	}

	return nil
}

// Create stores a new queued job
func (s *JobStorage) Create(ctx context.Context, record *JobRecord) error {
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	if record.Status == "" {
		record.Status = StatusQueued
	}

	documents, err := encodeDocuments(record.Documents)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO jobs (`+jobColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Filename,
		record.Status,
		record.Progress,
		record.Message,
		record.Transcript,
		record.Minutes,
		documents,
		record.CreatedAt.Format(time.RFC3339),
		record.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}

	return nil
}

// UpdateProgress marks the job running and records the latest progress report
func (s *JobStorage) UpdateProgress(ctx context.Context, id string, progress float64, message string) error {
	return s.update(ctx, id,
		`UPDATE jobs SET status = ?, progress = ?, message = ?, updated_at = ? WHERE id = ?`,
		StatusRunning, progress, message, now(), id,
	)
}

// Complete stores the pipeline output and marks the job done
func (s *JobStorage) Complete(ctx context.Context, id, message, transcript, minutes string, documents []string) error {
	encoded, err := encodeDocuments(documents)
	if err != nil {
		return err
	}

	return s.update(ctx, id,
		`UPDATE jobs SET status = ?, progress = 1, message = ?, transcript = ?, minutes = ?, documents = ?, updated_at = ? WHERE id = ?`,
		StatusDone, message, transcript, minutes, encoded, now(), id,
	)
}

// Fail marks the job failed with the message shown to the user
func (s *JobStorage) Fail(ctx context.Context, id, message string) error {
	return s.update(ctx, id,
		`UPDATE jobs SET status = ?, message = ?, updated_at = ? WHERE id = ?`,
		StatusFailed, message, now(), id,
	)
}

func (s *JobStorage) update(ctx context.Context, id, query string, args ...interface{}) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update job %s: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// Get returns a single job
func (s *JobStorage) Get(ctx context.Context, id string) (*JobRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query job: %w", err)
	}
	defer rows.Close()

	records, err := s.scanJobRows(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}

	return records[0], nil
}

// List returns the most recent jobs first
func (s *JobStorage) List(ctx context.Context, limit int) ([]*JobRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	return s.scanJobRows(rows)
}

// FailUnfinished marks jobs left queued or running by a previous process as failed
func (s *JobStorage) FailUnfinished(ctx context.Context, message string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, message = ?, updated_at = ? WHERE status IN (?, ?)`,
		StatusFailed, message, now(), StatusQueued, StatusRunning,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to fail unfinished jobs: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n > 0 {
		s.logger.Warn(ctx, "Marked %d interrupted jobs as failed", n)
	}

	return n, nil
}

// scanJobRows scans database rows into JobRecord structs
func (s *JobStorage) scanJobRows(rows *sql.Rows) ([]*JobRecord, error) {
	var records []*JobRecord
	for rows.Next() {
		var record JobRecord
		var documents, createdAt, updatedAt string

		if err := rows.Scan(
			&record.ID,
			&record.Filename,
			&record.Status,
			&record.Progress,
			&record.Message,
			&record.Transcript,
			&record.Minutes,
			&documents,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}

		var err error
		record.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		record.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
		}

		if err := json.Unmarshal([]byte(documents), &record.Documents); err != nil {
			return nil, fmt.Errorf("failed to decode documents: %w", err)
		}

		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}

	return records, nil
}

func encodeDocuments(documents []string) (string, error) {
	if documents == nil {
		documents = []string{}
	}
	data, err := json.Marshal(documents)
	if err != nil {
		return "", fmt.Errorf("failed to encode documents: %w", err)
	}
	return string(data), nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
