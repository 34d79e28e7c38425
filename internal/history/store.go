// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records conversion attempts in a SQLite database so
// that past batches can be listed and exported.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/songyongshun/ciit-lesson-plan/pkg/types"
)

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating its
// directory and schema when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input_path TEXT NOT NULL,
			template_path TEXT NOT NULL,
			output_path TEXT,
			project_name TEXT,
			number TEXT,
			status TEXT NOT NULL,
			error TEXT,
			overwrote INTEGER NOT NULL DEFAULT 0,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_input ON conversions(input_path)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores rec and returns it with its assigned ID. A zero
// ConvertedAt is set to the current time.
func (s *Store) Record(ctx context.Context, rec types.ConversionRecord) (types.ConversionRecord, error) {
	if rec.ConvertedAt.IsZero() {
		rec.ConvertedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions
			(input_path, template_path, output_path, project_name, number, status, error, overwrote, converted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.InputPath, rec.TemplatePath, rec.OutputPath, rec.ProjectName, rec.Number,
		string(rec.Status), rec.Error, rec.Overwrote,
		rec.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return rec, fmt.Errorf("recording %s: %w", rec.InputPath, err)
	}
	if rec.ID, err = res.LastInsertId(); err != nil {
		return rec, fmt.Errorf("recording %s: %w", rec.InputPath, err)
	}
	return rec, nil
}

// QueryOptions filters history queries. Zero values match everything.
type QueryOptions struct {
	Status     types.ConversionStatus
	InputPath  string
	MaxResults int
}

const defaultMaxResults = 20

// Recent returns matching records, newest first.
func (s *Store) Recent(ctx context.Context, opts QueryOptions) ([]types.ConversionRecord, error) {
	query := `SELECT id, input_path, template_path, output_path, project_name, number,
			status, error, overwrote, converted_at
		FROM conversions WHERE 1=1`
	var args []any
	if opts.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(opts.Status))
	}
	if opts.InputPath != "" {
		query += ` AND input_path = ?`
		args = append(args, opts.InputPath)
	}
	limit := opts.MaxResults
	if limit <= 0 {
		limit = defaultMaxResults
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []types.ConversionRecord
	for rows.Next() {
		var (
			rec                                         types.ConversionRecord
			outputPath, project, number, errText, stamp sql.NullString
			status                                      string
		)
		if err := rows.Scan(&rec.ID, &rec.InputPath, &rec.TemplatePath, &outputPath,
			&project, &number, &status, &errText, &rec.Overwrote, &stamp); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		rec.OutputPath = outputPath.String
		rec.ProjectName = project.String
		rec.Number = number.String
		rec.Error = errText.String
		rec.Status = types.ConversionStatus(status)
		if t, err := time.Parse(time.RFC3339Nano, stamp.String); err == nil {
			rec.ConvertedAt = t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Counts returns the number of records per status.
func (s *Store) Counts(ctx context.Context) (map[types.ConversionStatus]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, count(*) FROM conversions GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting history: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.ConversionStatus]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[types.ConversionStatus(status)] = n
	}
	return counts, rows.Err()
}
