package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"ArticleGate/internal/domain"
	"ArticleGate/internal/ports"
)

const verdictsTable = "gate_verdicts"

// Schema creates the audit table; applied by Migrate.
const Schema = `CREATE TABLE IF NOT EXISTS gate_verdicts (
    id               UUID PRIMARY KEY,
    request_id       TEXT NOT NULL DEFAULT '',
    topic            TEXT NOT NULL,
    primary_keyword  TEXT NOT NULL,
    language         TEXT NOT NULL,
    stage            TEXT NOT NULL,
    blocked          BOOLEAN NOT NULL,
    reasons          TEXT[] NOT NULL DEFAULT '{}',
    claims           TEXT[] NOT NULL DEFAULT '{}',
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresRepository persists gate verdicts into Postgres as an append-only audit log.
type PostgresRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

var _ ports.VerdictRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Migrate creates the audit table if it does not exist.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate %s: %w", verdictsTable, err)
	}
	return nil
}

// SaveVerdict inserts one verdict snapshot.
func (r *PostgresRepository) SaveVerdict(ctx context.Context, record domain.VerdictRecord) error {
	if r.db == nil {
		return nil
	}

	_, err := r.sb.Insert(verdictsTable).
		Columns("id", "request_id", "topic", "primary_keyword", "language", "stage", "blocked", "reasons", "claims").
		Values(
			record.ID,
			record.RequestID,
			record.Topic,
			record.PrimaryKeyword,
			record.Language,
			string(record.Stage),
			record.Verdict.Blocked,
			pq.StringArray(record.Verdict.Reasons),
			pq.StringArray(record.Verdict.ClaimsNeedingCitations),
		).
		RunWith(r.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("insert verdict: %w", err)
	}

	return nil
}

// CountBlocked returns how many verdicts of a stage were blocked.
func (r *PostgresRepository) CountBlocked(ctx context.Context, stage domain.Stage) (int, error) {
	if r.db == nil {
		return 0, nil
	}

	query, args, err := r.sb.Select("COUNT(*)").
		From(verdictsTable).
		Where(sq.Eq{"stage": string(stage), "blocked": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count blocked: %w", err)
	}
	return n, nil
}

// Ping checks database connectivity.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	return r.db.PingContext(ctx)
}
