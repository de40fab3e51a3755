package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"ProductRadar/internal/domain"
	"ProductRadar/internal/ports"
)

// PostgresRepository persists completed run records into Postgres. Every
// method tolerates a nil handle so the pipeline works without a database.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.RunRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// EnsureSchema creates the run history table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if r.db == nil {
		return nil
	}

	query := `CREATE TABLE IF NOT EXISTS pipeline_runs (
              id SERIAL PRIMARY KEY,
              period TEXT NOT NULL,
              message_ids BIGINT[] NOT NULL DEFAULT '{}',
              sent_count INT NOT NULL,
              failed_count INT NOT NULL,
              started_at TIMESTAMPTZ NOT NULL,
              finished_at TIMESTAMPTZ NOT NULL
          )`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SaveRun appends one run record.
func (r *PostgresRepository) SaveRun(ctx context.Context, record domain.RunRecord) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.builder.
		Insert("pipeline_runs").
		Columns("period", "message_ids", "sent_count", "failed_count", "started_at", "finished_at").
		Values(
			string(record.Period),
			pq.Array(record.MessageIDs),
			record.SentCount,
			record.FailedCount,
			record.StartedAt,
			record.FinishedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecentRuns returns the latest records for one period, newest first.
func (r *PostgresRepository) RecentRuns(ctx context.Context, period domain.Period, limit int) ([]domain.RunRecord, error) {
	if r.db == nil {
		return nil, nil
	}

	query, args, err := r.builder.
		Select("period", "message_ids", "sent_count", "failed_count", "started_at", "finished_at").
		From("pipeline_runs").
		Where(sq.Eq{"period": string(period)}).
		OrderBy("started_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	var records []domain.RunRecord
	for rows.Next() {
		var rec domain.RunRecord
		var ids pq.Int64Array
		if err := rows.Scan(&rec.Period, &ids, &rec.SentCount, &rec.FailedCount, &rec.StartedAt, &rec.FinishedAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.MessageIDs = []int64(ids)
		records = append(records, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return records, nil
}
