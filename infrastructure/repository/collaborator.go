package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/flow-erp-api/infrastructure/database/postgres"
	"github.com/vfg2006/flow-erp-api/internal/domain"
)

const (
	collaboratorsTable = "collaborators"
)

var collaboratorColumns = []string{
	"id",
	"user_id",
	"name",
	"COALESCE(email, '')",
	"COALESCE(roles, '{}')",
	"COALESCE(commission_fixed, 0)::float8",
	"COALESCE(commission_percent, 0)::float8",
	"created_at",
	"updated_at",
}

type CollaboratorRepository interface {
	List(ctx context.Context) ([]*domain.Collaborator, error)
	GetByID(ctx context.Context, id string) (*domain.Collaborator, error)
	Create(ctx context.Context, collaborator *domain.Collaborator) error
	Update(ctx context.Context, collaborator *domain.Collaborator) error
	Delete(ctx context.Context, id string) error
}

type collaboratorRepository struct {
	conn *postgres.Connection
}

func NewCollaboratorRepository(conn *postgres.Connection) CollaboratorRepository {
	return &collaboratorRepository{
		conn: conn,
	}
}

func (r *collaboratorRepository) List(ctx context.Context) ([]*domain.Collaborator, error) {
	query, args, err := psql.Select(collaboratorColumns...).From(collaboratorsTable).OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar colaboradores: %w", err)
	}
	defer rows.Close()

	collaborators := make([]*domain.Collaborator, 0)
	for rows.Next() {
		collaborator, err := scanCollaborator(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear colaborador: %w", err)
		}
		collaborators = append(collaborators, collaborator)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return collaborators, nil
}

func (r *collaboratorRepository) GetByID(ctx context.Context, id string) (*domain.Collaborator, error) {
	query, args, err := psql.Select(collaboratorColumns...).From(collaboratorsTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	collaborator, err := scanCollaborator(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar colaborador: %w", err)
	}

	return collaborator, nil
}

func (r *collaboratorRepository) Create(ctx context.Context, collaborator *domain.Collaborator) error {
	query, args, err := psql.
		Insert(collaboratorsTable).
		Columns("id", "user_id", "name", "email", "roles", "commission_fixed", "commission_percent", "created_at", "updated_at").
		Values(
			collaborator.ID,
			collaborator.UserID,
			collaborator.Name,
			collaborator.Email,
			pq.Array(collaborator.Roles),
			collaborator.CommissionFixed.Float(),
			collaborator.CommissionPercent.Float(),
			collaborator.CreatedAt,
			collaborator.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao criar colaborador: %w", translateError(err))
	}

	return nil
}

func (r *collaboratorRepository) Update(ctx context.Context, collaborator *domain.Collaborator) error {
	query, args, err := psql.
		Update(collaboratorsTable).
		Set("user_id", collaborator.UserID).
		Set("name", collaborator.Name).
		Set("email", collaborator.Email).
		Set("roles", pq.Array(collaborator.Roles)).
		Set("commission_fixed", collaborator.CommissionFixed.Float()).
		Set("commission_percent", collaborator.CommissionPercent.Float()).
		Set("updated_at", collaborator.UpdatedAt).
		Where(squirrel.Eq{"id": collaborator.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	return execAffecting(ctx, r.conn, query, args, "erro ao atualizar colaborador")
}

func (r *collaboratorRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete(collaboratorsTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	return execAffecting(ctx, r.conn, query, args, "erro ao excluir colaborador")
}

func scanCollaborator(row rowScanner) (*domain.Collaborator, error) {
	collaborator := &domain.Collaborator{}

	err := row.Scan(
		&collaborator.ID,
		&collaborator.UserID,
		&collaborator.Name,
		&collaborator.Email,
		pq.Array(&collaborator.Roles),
		&collaborator.CommissionFixed,
		&collaborator.CommissionPercent,
		&collaborator.CreatedAt,
		&collaborator.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return collaborator, nil
}
