package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/neonfuzz/palette-generator/internal/palette"
)

// Run repository errors.
var (
	ErrRunNotFound = errors.New("run not found")
	ErrInvalidRun  = errors.New("invalid run")
)

// Run records one theme derivation: its inputs and its published theme.
type Run struct {
	// ID uniquely identifies the run.
	ID string `json:"id"`

	// SourcePath is the image or histogram the run started from.
	SourcePath string `json:"source_path"`

	// PMix is the mix ratio the theme was derived with.
	PMix float64 `json:"p_mix"`

	// NColors is the quantization target used during extraction.
	NColors int `json:"n_colors"`

	// Histogram holds the extracted color histogram.
	Histogram []palette.HistogramRow `json:"histogram"`

	// Theme maps color names to hex codes.
	Theme map[string]string `json:"theme"`

	// CreatedAt is when the run happened.
	CreatedAt time.Time `json:"created_at"`
}

// RunRepository handles run persistence.
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new RunRepository.
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new run, assigning an ID and timestamp when missing.
func (r *RunRepository) Create(ctx context.Context, run *Run) error {
	if run.SourcePath == "" || len(run.Theme) == 0 {
		return ErrInvalidRun
	}

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	histogramJSON, err := json.Marshal(run.Histogram)
	if err != nil {
		return fmt.Errorf("marshal histogram: %w", err)
	}
	themeJSON, err := json.Marshal(run.Theme)
	if err != nil {
		return fmt.Errorf("marshal theme: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO runs (id, source_path, p_mix, n_colors, histogram_json, theme_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.SourcePath,
		run.PMix,
		run.NColors,
		string(histogramJSON),
		string(themeJSON),
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID.
func (r *RunRepository) Get(ctx context.Context, id string) (*Run, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, source_path, p_mix, n_colors, histogram_json, theme_json, created_at
		FROM runs WHERE id = ?
	`, id)
	return scanRun(row)
}

// GetByPrefix retrieves a run by ID or unique ID prefix.
func (r *RunRepository) GetByPrefix(ctx context.Context, prefix string) (*Run, error) {
	if prefix == "" {
		return nil, ErrRunNotFound
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, source_path, p_mix, n_colors, histogram_json, theme_json, created_at
		FROM runs WHERE id LIKE ? || '%' LIMIT 2
	`, prefix)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var matches []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, ErrRunNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", prefix)
	}
}

// List retrieves the most recent runs, newest first.
func (r *RunRepository) List(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, source_path, p_mix, n_colors, histogram_json, theme_json, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var histogramJSON, themeJSON, createdAt string

	err := row.Scan(&run.ID, &run.SourcePath, &run.PMix, &run.NColors, &histogramJSON, &themeJSON, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	if err := json.Unmarshal([]byte(histogramJSON), &run.Histogram); err != nil {
		return nil, fmt.Errorf("parse histogram json: %w", err)
	}
	if err := json.Unmarshal([]byte(themeJSON), &run.Theme); err != nil {
		return nil, fmt.Errorf("parse theme json: %w", err)
	}
	run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse run timestamp: %w", err)
	}
	return &run, nil
}
