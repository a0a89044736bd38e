package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/flow-erp-api/infrastructure/database/postgres"
	"github.com/vfg2006/flow-erp-api/internal/domain"
)

const (
	transactionsTable = "transactions"
)

var transactionColumns = []string{
	"id",
	"type",
	"COALESCE(category, '')",
	"description",
	"COALESCE(value, 0)::float8",
	"COALESCE(to_char(date, 'YYYY-MM-DD'), '')",
	"project_id",
	"created_at",
}

type TransactionRepository interface {
	List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error)
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	Create(ctx context.Context, transaction *domain.Transaction) error
	Update(ctx context.Context, transaction *domain.Transaction) error
	Delete(ctx context.Context, id string) error
}

type transactionRepository struct {
	conn *postgres.Connection
}

func NewTransactionRepository(conn *postgres.Connection) TransactionRepository {
	return &transactionRepository{
		conn: conn,
	}
}

func (r *transactionRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	query := psql.Select(transactionColumns...).From(transactionsTable).OrderBy("date DESC", "created_at DESC")

	if filter.StartDate != "" {
		query = query.Where(squirrel.GtOrEq{"date": filter.StartDate})
	}
	if filter.EndDate != "" {
		query = query.Where(squirrel.LtOrEq{"date": filter.EndDate})
	}
	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"type": string(filter.Type)})
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar lançamentos: %w", err)
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear lançamento: %w", err)
		}
		transactions = append(transactions, transaction)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return transactions, nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query, args, err := psql.Select(transactionColumns...).From(transactionsTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	transaction, err := scanTransaction(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar lançamento: %w", err)
	}

	return transaction, nil
}

func (r *transactionRepository) Create(ctx context.Context, transaction *domain.Transaction) error {
	return insertTransaction(ctx, r.conn, transaction)
}

func (r *transactionRepository) Update(ctx context.Context, transaction *domain.Transaction) error {
	query, args, err := psql.
		Update(transactionsTable).
		Set("type", string(transaction.Type)).
		Set("category", transaction.Category).
		Set("description", transaction.Description).
		Set("value", transaction.Value.Float()).
		Set("date", nullableDate(transaction.Date)).
		Where(squirrel.Eq{"id": transaction.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	return execAffecting(ctx, r.conn, query, args, "erro ao atualizar lançamento")
}

func (r *transactionRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete(transactionsTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	return execAffecting(ctx, r.conn, query, args, "erro ao excluir lançamento")
}

// insertTransaction grava o lançamento usando a conexão ou uma transação aberta
func insertTransaction(ctx context.Context, q postgres.Queryer, transaction *domain.Transaction) error {
	query, args, err := psql.
		Insert(transactionsTable).
		Columns("id", "type", "category", "description", "value", "date", "project_id", "created_at").
		Values(
			transaction.ID,
			string(transaction.Type),
			transaction.Category,
			transaction.Description,
			transaction.Value.Float(),
			nullableDate(transaction.Date),
			transaction.ProjectID,
			transaction.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao criar lançamento: %w", translateError(err))
	}

	return nil
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	transaction := &domain.Transaction{}
	var transactionType string

	err := row.Scan(
		&transaction.ID,
		&transactionType,
		&transaction.Category,
		&transaction.Description,
		&transaction.Value,
		&transaction.Date,
		&transaction.ProjectID,
		&transaction.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	transaction.Type = domain.TransactionType(transactionType)
	return transaction, nil
}
