package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"partsync/internal/domain"
	"partsync/internal/port"
)

type runRepo struct {
	db *sqlx.DB
}

// NewRunRepo creates a new PostgreSQL-backed RunRepository.
func NewRunRepo(db *sqlx.DB) port.RunRepository {
	return &runRepo{db: db}
}

func (r *runRepo) Create(ctx context.Context, run *domain.ReconciliationRun) error {
	query := `INSERT INTO reconciliation_runs (id, kind, file_path, part_number, status, summary,
		conflict_count, gap_fill_count, suggestion_count, unassigned_count,
		result, suggestions, unassigned, created_by)
		VALUES (:id, :kind, :file_path, :part_number, :status, :summary,
		:conflict_count, :gap_fill_count, :suggestion_count, :unassigned_count,
		:result, :suggestions, :unassigned, :created_by)
		RETURNING created_at, updated_at`

	rows, err := r.db.NamedQueryContext(ctx, query, run)
	if err != nil {
		return fmt.Errorf("runRepo.Create: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&run.CreatedAt, &run.UpdatedAt); err != nil {
			return fmt.Errorf("runRepo.Create scan: %w", err)
		}
	}
	return rows.Err()
}

func (r *runRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReconciliationRun, error) {
	var run domain.ReconciliationRun
	err := r.db.GetContext(ctx, &run, "SELECT * FROM reconciliation_runs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("runRepo.GetByID: %w", err)
	}
	return &run, nil
}

// buildRunWhereClause constructs the WHERE clause for run listings.
func buildRunWhereClause(filter domain.RunFilter) (clause string, args []interface{}) {
	clause = "WHERE 1=1"
	argN := 1
	if filter.Status != "" {
		clause += fmt.Sprintf(" AND status = $%d", argN)
		args = append(args, filter.Status)
		argN++
	}
	if filter.Kind != "" {
		clause += fmt.Sprintf(" AND kind = $%d", argN)
		args = append(args, filter.Kind)
		argN++
	}
	if filter.PartNumber != "" {
		clause += fmt.Sprintf(" AND part_number ILIKE $%d", argN)
		args = append(args, filter.PartNumber+"%")
	}
	return clause, args
}

func (r *runRepo) List(ctx context.Context, filter domain.RunFilter) ([]domain.ReconciliationRun, int, error) {
	where, args := buildRunWhereClause(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM reconciliation_runs "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("runRepo.List count: %w", err)
	}

	query := fmt.Sprintf(`SELECT * FROM reconciliation_runs %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	var runs []domain.ReconciliationRun
	if err := r.db.SelectContext(ctx, &runs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("runRepo.List: %w", err)
	}
	return runs, total, nil
}

func (r *runRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RunStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE reconciliation_runs SET status = $1, updated_at = NOW() WHERE id = $2",
		status, id)
	if err != nil {
		return fmt.Errorf("runRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrRunNotFound
	}
	return nil
}

const runStatsQuery = `SELECT
	COUNT(*) AS total_runs,
	COUNT(CASE WHEN status IN ('pending_review', 'partially_reviewed') THEN 1 END) AS pending_review,
	COUNT(CASE WHEN status = 'reviewed' THEN 1 END) AS reviewed,
	COUNT(CASE WHEN conflict_count > 0 THEN 1 END) AS with_conflicts,
	COALESCE(SUM(conflict_count), 0) AS total_conflicts,
	COALESCE(SUM(unassigned_count), 0) AS total_unassigned
FROM reconciliation_runs`

func (r *runRepo) GetStats(ctx context.Context) (*domain.RunStats, error) {
	var stats domain.RunStats
	if err := r.db.GetContext(ctx, &stats, runStatsQuery); err != nil {
		return nil, fmt.Errorf("runRepo.GetStats: %w", err)
	}
	return &stats, nil
}
