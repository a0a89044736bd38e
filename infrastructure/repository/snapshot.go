package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/flow-erp-api/infrastructure/database/postgres"
	"github.com/vfg2006/flow-erp-api/internal/domain"
)

const (
	snapshotsTable = "kpi_snapshots"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type SnapshotRepository interface {
	SaveOrUpdate(ctx context.Context, snapshot *domain.KPISnapshot) error
	GetByPeriod(ctx context.Context, period string) (*domain.KPISnapshot, error)
	// List retorna os fechamentos do mais recente para o mais antigo. limit <= 0 não limita.
	List(ctx context.Context, limit int) ([]*domain.KPISnapshot, error)
}

type snapshotRepository struct {
	conn *postgres.Connection
}

func NewSnapshotRepository(conn *postgres.Connection) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

func (r *snapshotRepository) SaveOrUpdate(ctx context.Context, snapshot *domain.KPISnapshot) error {
	summaryJSON, err := json.Marshal(snapshot.Summary)
	if err != nil {
		return fmt.Errorf("erro ao serializar indicadores para JSON: %w", err)
	}

	query, args, err := psql.
		Insert(snapshotsTable).
		Columns("period", "summary").
		Values(snapshot.Period, summaryJSON).
		Suffix(`
			ON CONFLICT (period) DO UPDATE SET
				summary = EXCLUDED.summary,
				updated_at = NOW()
		`).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao salvar fechamento %s: %w", snapshot.Period, err)
	}

	return nil
}

func (r *snapshotRepository) GetByPeriod(ctx context.Context, period string) (*domain.KPISnapshot, error) {
	query, args, err := psql.
		Select("period", "summary", "created_at", "updated_at").
		From(snapshotsTable).
		Where(squirrel.Eq{"period": period}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	snapshot, err := scanSnapshot(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar fechamento: %w", err)
	}

	return snapshot, nil
}

func (r *snapshotRepository) List(ctx context.Context, limit int) ([]*domain.KPISnapshot, error) {
	builder := psql.
		Select("period", "summary", "created_at", "updated_at").
		From(snapshotsTable).
		OrderBy("to_date(period, 'MM-YYYY') DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar fechamentos: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.KPISnapshot, 0)
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear fechamento: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}

func scanSnapshot(row rowScanner) (*domain.KPISnapshot, error) {
	snapshot := &domain.KPISnapshot{}
	var summaryJSON []byte

	if err := row.Scan(&snapshot.Period, &summaryJSON, &snapshot.CreatedAt, &snapshot.UpdatedAt); err != nil {
		return nil, err
	}

	if len(summaryJSON) > 0 {
		if err := json.Unmarshal(summaryJSON, &snapshot.Summary); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de summary: %w", err)
		}
	}

	return snapshot, nil
}
