package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/people-directory-api/infrastructure/database/postgres"
	"github.com/vfg2006/people-directory-api/internal/domain"
)

const (
	refreshRunsTable = "directory_refresh_runs"

	createRefreshRunsTable = `
CREATE TABLE IF NOT EXISTS directory_refresh_runs (
	id               VARCHAR(32) PRIMARY KEY,
	started_at       TIMESTAMPTZ NOT NULL,
	completed_at     TIMESTAMPTZ NOT NULL,
	status           VARCHAR(16) NOT NULL,
	employee_count   INTEGER NOT NULL DEFAULT 0,
	department_count INTEGER NOT NULL DEFAULT 0,
	error            TEXT
)`
)

var refreshRunColumns = []string{"id", "started_at", "completed_at", "status", "employee_count", "department_count", "error"}

func lastRefreshQuery() squirrel.SelectBuilder {
	return squirrel.
		Select("MAX(completed_at)").
		From(refreshRunsTable).
		Where(squirrel.Eq{"status": string(domain.RefreshStatusSuccess)}).
		PlaceholderFormat(squirrel.Dollar)
}

func insertRunQuery(run *domain.RefreshRun) squirrel.InsertBuilder {
	var runError sql.NullString
	if run.Error != "" {
		runError = sql.NullString{String: run.Error, Valid: true}
	}

	return squirrel.
		Insert(refreshRunsTable).
		Columns(refreshRunColumns...).
		Values(run.ID, run.StartedAt, run.CompletedAt, string(run.Status), run.EmployeeCount, run.DepartmentCount, runError).
		PlaceholderFormat(squirrel.Dollar)
}

// pruneRunsQuery mantém apenas as últimas maxStoredRuns execuções
func pruneRunsQuery() squirrel.DeleteBuilder {
	return squirrel.
		Delete(refreshRunsTable).
		Where(squirrel.Expr(
			"id NOT IN (SELECT id FROM "+refreshRunsTable+" ORDER BY started_at DESC LIMIT ?)",
			maxStoredRuns,
		)).
		PlaceholderFormat(squirrel.Dollar)
}

func listRunsQuery(limit int) squirrel.SelectBuilder {
	if limit <= 0 {
		limit = maxStoredRuns
	}

	return squirrel.
		Select(refreshRunColumns...).
		From(refreshRunsTable).
		OrderBy("started_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)
}

type postgresRefreshStateRepository struct {
	conn *postgres.Connection
}

func NewPostgresRefreshStateRepository(conn *postgres.Connection) RefreshStateRepository {
	return &postgresRefreshStateRepository{
		conn: conn,
	}
}

// EnsureRefreshRunsSchema cria a tabela de execuções caso ainda não exista
func EnsureRefreshRunsSchema(ctx context.Context, conn *postgres.Connection) error {
	if _, err := conn.ExecContext(ctx, createRefreshRunsTable); err != nil {
		return fmt.Errorf("erro ao criar tabela %s: %w", refreshRunsTable, err)
	}
	return nil
}

func (r *postgresRefreshStateRepository) GetLastRefresh(ctx context.Context) (*time.Time, error) {
	query, args, err := lastRefreshQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var lastRefresh sql.NullTime
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&lastRefresh); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao consultar última recarga: %w", err)
	}

	if !lastRefresh.Valid {
		return nil, nil
	}

	last := lastRefresh.Time.UTC()
	return &last, nil
}

func (r *postgresRefreshStateRepository) SaveRefreshRun(ctx context.Context, run *domain.RefreshRun) error {
	query, args, err := insertRunQuery(run).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	prune, pruneArgs, err := pruneRunsQuery().ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("erro ao salvar execução de recarga: %w", err)
		}
		if _, err := tx.ExecContext(ctx, prune, pruneArgs...); err != nil {
			return fmt.Errorf("erro ao remover execuções antigas: %w", err)
		}
		return nil
	})
}

func (r *postgresRefreshStateRepository) ListRecentRuns(ctx context.Context, limit int) ([]*domain.RefreshRun, error) {
	query, args, err := listRunsQuery(limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	runs := make([]*domain.RefreshRun, 0)
	for rows.Next() {
		var (
			run      domain.RefreshRun
			status   string
			runError sql.NullString
		)

		if err := rows.Scan(
			&run.ID,
			&run.StartedAt,
			&run.CompletedAt,
			&status,
			&run.EmployeeCount,
			&run.DepartmentCount,
			&runError,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear execução de recarga: %w", err)
		}

		run.Status = domain.RefreshStatus(status)
		run.Error = runError.String
		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return runs, nil
}
