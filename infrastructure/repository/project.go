package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/flow-erp-api/infrastructure/database/postgres"
	"github.com/vfg2006/flow-erp-api/internal/domain"
)

const (
	projectsTable = "legacy_projects"
)

var projectColumns = []string{
	"id",
	"name",
	"COALESCE(client_name, '')",
	"COALESCE(total_value, 0)::float8",
	"COALESCE(paid_value, 0)::float8",
	"COALESCE(status, '')",
	"created_at",
	"updated_at",
}

type ProjectRepository interface {
	List(ctx context.Context) ([]*domain.LegacyProject, error)
	GetByID(ctx context.Context, id string) (*domain.LegacyProject, error)
	Create(ctx context.Context, project *domain.LegacyProject) error
	// RegisterPayment soma o valor ao pago do projeto e grava o lançamento
	// de entrada na mesma transação
	RegisterPayment(ctx context.Context, projectID string, payment *domain.Transaction) (*domain.LegacyProject, error)
}

type projectRepository struct {
	conn *postgres.Connection
}

func NewProjectRepository(conn *postgres.Connection) ProjectRepository {
	return &projectRepository{
		conn: conn,
	}
}

func (r *projectRepository) List(ctx context.Context) ([]*domain.LegacyProject, error) {
	query, args, err := psql.Select(projectColumns...).From(projectsTable).OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar projetos: %w", err)
	}
	defer rows.Close()

	projects := make([]*domain.LegacyProject, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear projeto: %w", err)
		}
		projects = append(projects, project)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return projects, nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.LegacyProject, error) {
	query, args, err := psql.Select(projectColumns...).From(projectsTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	project, err := scanProject(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar projeto: %w", err)
	}

	return project, nil
}

func (r *projectRepository) Create(ctx context.Context, project *domain.LegacyProject) error {
	query, args, err := psql.
		Insert(projectsTable).
		Columns("id", "name", "client_name", "total_value", "paid_value", "status", "created_at", "updated_at").
		Values(
			project.ID,
			project.Name,
			project.ClientName,
			project.TotalValue.Float(),
			project.PaidValue.Float(),
			project.Status,
			project.CreatedAt,
			project.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao criar projeto: %w", translateError(err))
	}

	return nil
}

func (r *projectRepository) RegisterPayment(ctx context.Context, projectID string, payment *domain.Transaction) (*domain.LegacyProject, error) {
	query, args, err := psql.
		Update(projectsTable).
		Set("paid_value", squirrel.Expr("COALESCE(paid_value, 0) + ?", payment.Value.Float())).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": projectID}).
		Suffix("RETURNING " + strings.Join(projectColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var project *domain.LegacyProject
	err = r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		updated, err := scanProject(tx.QueryRowContext(ctx, query, args...))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNoRowsAffected
			}
			return fmt.Errorf("erro ao atualizar valor pago: %w", err)
		}

		if err := insertTransaction(ctx, tx, payment); err != nil {
			return err
		}

		project = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

func scanProject(row rowScanner) (*domain.LegacyProject, error) {
	project := &domain.LegacyProject{}

	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.ClientName,
		&project.TotalValue,
		&project.PaidValue,
		&project.Status,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return project, nil
}
