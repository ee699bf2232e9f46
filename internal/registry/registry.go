// Package registry stores scored batches behind database/sql so the UI can
// list, inspect and export results after the scoring request returns. The
// default deployment opens an in-memory sqlite database: results live for
// the process only, by design.
package registry

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/resistlab/amrburden/internal/logging"
	"github.com/resistlab/amrburden/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrBatchNotFound is returned when a batch ID does not exist.
var ErrBatchNotFound = errors.New("batch not found")

// Registry manages batch and report rows in SQLite.
type Registry struct {
	db     *sql.DB
	logger logging.Logger
}

// NewRegistry runs the embedded migration and returns a Registry.
func NewRegistry(db *sql.DB, logger logging.Logger) (*Registry, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}

	return &Registry{db: db, logger: logger}, nil
}

// CreateBatch inserts a new empty batch for an upload and returns it.
func (r *Registry) CreateBatch(ctx context.Context, filename string) (*model.Batch, error) {
	b := &model.Batch{
		ID:        uuid.New().String(),
		Filename:  filename,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO batches (id, filename, created_at) VALUES (?, ?, ?)`,
		b.ID, b.Filename, b.CreatedAt.Unix())
	if err != nil {
		return nil, fmt.Errorf("inserting batch: %w", err)
	}
	return b, nil
}

// StoreReport appends one sample report to a batch. seq preserves input
// order across exports.
func (r *Registry) StoreReport(ctx context.Context, batchID string, seq int, rep model.SampleReport) error {
	profileJSON, err := json.Marshal(rep.Profile)
	if err != nil {
		return fmt.Errorf("marshaling profile for %q: %w", rep.SampleID, err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO reports (id, batch_id, seq, sample_id, burden_score, risk_category, profile_json, interpretation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), batchID, seq, rep.SampleID, rep.BurdenScore,
		string(rep.RiskCategory), string(profileJSON), rep.Interpretation)
	if err != nil {
		return fmt.Errorf("inserting report for %q: %w", rep.SampleID, err)
	}
	return nil
}

// StoreExcluded records a sample that failed per-sample validation.
func (r *Registry) StoreExcluded(ctx context.Context, batchID string, seq int, ex model.ExcludedSample) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO excluded_samples (batch_id, seq, sample_id, reason) VALUES (?, ?, ?, ?)`,
		batchID, seq, ex.SampleID, ex.Reason)
	if err != nil {
		return fmt.Errorf("inserting excluded sample %q: %w", ex.SampleID, err)
	}
	return nil
}

// SetSummary writes the final aggregate once a batch finishes scoring.
func (r *Registry) SetSummary(ctx context.Context, batchID string, s model.BatchSummary) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE batches SET sample_count = ?, excluded_count = ?, mean_score = ?,
			low_count = ?, moderate_count = ?, high_count = ?
		WHERE id = ?`,
		s.SampleCount, s.ExcludedCount, s.MeanScore,
		s.LowCount, s.ModerateCount, s.HighCount, batchID)
	if err != nil {
		return fmt.Errorf("updating batch summary: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrBatchNotFound
	}
	return nil
}

// GetBatch fetches a batch with its reports and excluded samples.
func (r *Registry) GetBatch(ctx context.Context, batchID string) (*model.Batch, error) {
	b, err := r.getBatchRow(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if b.Reports, err = r.ListReports(ctx, batchID); err != nil {
		return nil, err
	}
	if b.Excluded, err = r.listExcluded(ctx, batchID); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *Registry) getBatchRow(ctx context.Context, batchID string) (*model.Batch, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, filename, created_at, sample_count, excluded_count, mean_score,
			low_count, moderate_count, high_count
		FROM batches WHERE id = ?`, batchID)

	var (
		b         model.Batch
		createdAt int64
	)
	err := row.Scan(&b.ID, &b.Filename, &createdAt,
		&b.Summary.SampleCount, &b.Summary.ExcludedCount, &b.Summary.MeanScore,
		&b.Summary.LowCount, &b.Summary.ModerateCount, &b.Summary.HighCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning batch: %w", err)
	}
	b.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &b, nil
}

// ListBatches returns batch summaries, newest first, without report rows.
func (r *Registry) ListBatches(ctx context.Context) ([]model.Batch, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, filename, created_at, sample_count, excluded_count, mean_score,
			low_count, moderate_count, high_count
		FROM batches ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing batches: %w", err)
	}
	defer rows.Close()

	var out []model.Batch
	for rows.Next() {
		var (
			b         model.Batch
			createdAt int64
		)
		if err := rows.Scan(&b.ID, &b.Filename, &createdAt,
			&b.Summary.SampleCount, &b.Summary.ExcludedCount, &b.Summary.MeanScore,
			&b.Summary.LowCount, &b.Summary.ModerateCount, &b.Summary.HighCount); err != nil {
			return nil, fmt.Errorf("scanning batch row: %w", err)
		}
		b.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListReports returns a batch's reports in input order.
func (r *Registry) ListReports(ctx context.Context, batchID string) ([]model.SampleReport, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT sample_id, burden_score, risk_category, profile_json, interpretation
		FROM reports WHERE batch_id = ? ORDER BY seq`, batchID)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var out []model.SampleReport
	for rows.Next() {
		var (
			rep         model.SampleReport
			category    string
			profileJSON string
		)
		if err := rows.Scan(&rep.SampleID, &rep.BurdenScore, &category, &profileJSON, &rep.Interpretation); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		rep.RiskCategory = model.RiskCategory(category)
		if err := json.Unmarshal([]byte(profileJSON), &rep.Profile); err != nil {
			return nil, fmt.Errorf("decoding profile for %q: %w", rep.SampleID, err)
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *Registry) listExcluded(ctx context.Context, batchID string) ([]model.ExcludedSample, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT sample_id, reason FROM excluded_samples WHERE batch_id = ? ORDER BY seq`, batchID)
	if err != nil {
		return nil, fmt.Errorf("listing excluded samples: %w", err)
	}
	defer rows.Close()

	var out []model.ExcludedSample
	for rows.Next() {
		var ex model.ExcludedSample
		if err := rows.Scan(&ex.SampleID, &ex.Reason); err != nil {
			return nil, fmt.Errorf("scanning excluded row: %w", err)
		}
		out = append(out, ex)
	}
	return out, rows.Err()
}
