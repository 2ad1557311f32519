// Package sqlite provides a SQLite-backed run history implementation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/busarovalex/snap-kombination/internal/platform/storage/sqlitemigrate"
	"github.com/busarovalex/snap-kombination/internal/storage"
	"github.com/busarovalex/snap-kombination/internal/storage/sqlite/migrations"
)

// Store persists analysis run history in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite run history store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordRun inserts one run record and returns its assigned id.
func (s *Store) RecordRun(ctx context.Context, record storage.RunRecord) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	analysisName := strings.TrimSpace(record.AnalysisName)
	if analysisName == "" {
		return 0, fmt.Errorf("analysis name is required")
	}
	strategy := strings.TrimSpace(record.Strategy)
	if strategy == "" {
		return 0, fmt.Errorf("strategy is required")
	}
	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return 0, fmt.Errorf("encode result: %w", err)
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO analysis_runs (
		   input_path,
		   analysis_name,
		   strategy,
		   permutations,
		   result,
		   display,
		   created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.InputPath,
		analysisName,
		strategy,
		int64(record.Permutations),
		string(resultJSON),
		record.Display,
		toMillis(createdAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted run id: %w", err)
	}
	return id, nil
}

// GetRun loads one run record by id.
func (s *Store) GetRun(ctx context.Context, id int64) (storage.RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.RunRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.RunRecord{}, fmt.Errorf("storage is not configured")
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, input_path, analysis_name, strategy, permutations, result, display, created_at
		 FROM analysis_runs WHERE id = ?`,
		id,
	)
	record, err := scanRun(row)
	if err == sql.ErrNoRows {
		return storage.RunRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.RunRecord{}, fmt.Errorf("load run: %w", err)
	}
	return record, nil
}

// ListRuns returns up to limit run records, most recent first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]storage.RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, input_path, analysis_name, strategy, permutations, result, display, created_at
		 FROM analysis_runs ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []storage.RunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (storage.RunRecord, error) {
	var record storage.RunRecord
	var permutations int64
	var resultJSON string
	var createdAt int64
	if err := row.Scan(
		&record.ID,
		&record.InputPath,
		&record.AnalysisName,
		&record.Strategy,
		&permutations,
		&resultJSON,
		&record.Display,
		&createdAt,
	); err != nil {
		return storage.RunRecord{}, err
	}
	record.Permutations = uint64(permutations)
	record.CreatedAt = fromMillis(createdAt)
	if err := json.Unmarshal([]byte(resultJSON), &record.Result); err != nil {
		return storage.RunRecord{}, fmt.Errorf("decode result: %w", err)
	}
	return record, nil
}
