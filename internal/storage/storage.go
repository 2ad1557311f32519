// Package storage defines persistence contracts for analysis run history.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// RunRecord stores the outcome of one executed analysis.
type RunRecord struct {
	ID           int64
	InputPath    string
	AnalysisName string
	Strategy     string
	Permutations uint64
	Result       map[string]string
	Display      string
	CreatedAt    time.Time
}

// RunStore persists analysis run records.
type RunStore interface {
	RecordRun(ctx context.Context, record RunRecord) (int64, error)
	GetRun(ctx context.Context, id int64) (RunRecord, error)
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
	Close() error
}
