// Package store provides PostgreSQL persistence for resume records.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a resume record does not exist.
var ErrNotFound = errors.New("resume not found")

// ResumeRecord is one stored resume: the raw extracted JSON plus the key of
// the rendered PDF blob, if one has been generated.
type ResumeRecord struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Data      json.RawMessage `json:"data"`
	BlobKey   string          `json:"blob_key,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the resumes table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS resumes (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			data JSONB NOT NULL,
			blob_key TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`CREATE INDEX IF NOT EXISTS resumes_user_id_idx ON resumes (user_id)`)
	if err != nil {
		return fmt.Errorf("failed to ensure index: %w", err)
	}
	return nil
}

// SaveResume stores a resume record. When the requested id is already taken
// the record is saved under a timestamp+uuid suffixed id instead of failing;
// the id actually used is returned.
func (s *Store) SaveResume(ctx context.Context, id, userID string, data json.RawMessage) (string, error) {
	if id == "" {
		id = uuid.New().String()
	}

	tag, err := s.pool.Exec(ctx,
		`INSERT INTO resumes (id, user_id, data)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO NOTHING`,
		id, userID, data,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save resume: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return id, nil
	}

	// Duplicate id: suffix with timestamp and a short uuid, as upstream
	// callers may retry with the same logical id.
	suffixed := fmt.Sprintf("%s_%d_%s", id, time.Now().Unix(), uuid.New().String()[:8])
	_, err = s.pool.Exec(ctx,
		`INSERT INTO resumes (id, user_id, data) VALUES ($1, $2, $3)`,
		suffixed, userID, data,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save resume under suffixed id: %w", err)
	}
	return suffixed, nil
}

// GetResume retrieves one resume record by id.
func (s *Store) GetResume(ctx context.Context, id string) (*ResumeRecord, error) {
	var rec ResumeRecord
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, data, blob_key, created_at FROM resumes WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.UserID, &rec.Data, &rec.BlobKey, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resume %s: %w", id, err)
	}
	return &rec, nil
}

// ListResumes retrieves all resume records for a user, newest first.
func (s *Store) ListResumes(ctx context.Context, userID string) ([]ResumeRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, data, blob_key, created_at
		 FROM resumes WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes for %s: %w", userID, err)
	}
	defer rows.Close()

	var records []ResumeRecord
	for rows.Next() {
		var rec ResumeRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Data, &rec.BlobKey, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resume rows: %w", err)
	}
	return records, nil
}

// DeleteResume removes one resume record by id.
func (s *Store) DeleteResume(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetBlobKey records the rendered PDF blob name for a resume.
func (s *Store) SetBlobKey(ctx context.Context, id, blobKey string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE resumes SET blob_key = $1 WHERE id = $2`, blobKey, id)
	if err != nil {
		return fmt.Errorf("failed to set blob key for %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
