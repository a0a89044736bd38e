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
	cardsTable = "flow_cards"
)

var cardColumns = []string{
	"id",
	"title",
	"client_name",
	"description",
	"COALESCE(entry_value, 0)::float8",
	"COALESCE(leads_count, 0)",
	"status",
	"COALESCE(attendant_id, '')",
	"COALESCE(to_char(date, 'YYYY-MM-DD'), '')",
	"created_at",
	"updated_at",
}

type CardRepository interface {
	List(ctx context.Context, filter domain.CardFilter) ([]*domain.FlowCard, error)
	GetByID(ctx context.Context, id string) (*domain.FlowCard, error)
	Create(ctx context.Context, card *domain.FlowCard) error
	Update(ctx context.Context, card *domain.FlowCard) error
	Delete(ctx context.Context, id string) error
}

type cardRepository struct {
	conn *postgres.Connection
}

func NewCardRepository(conn *postgres.Connection) CardRepository {
	return &cardRepository{
		conn: conn,
	}
}

func (r *cardRepository) List(ctx context.Context, filter domain.CardFilter) ([]*domain.FlowCard, error) {
	query := psql.Select(cardColumns...).From(cardsTable).OrderBy("created_at DESC")

	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			statuses = append(statuses, string(status))
		}
		query = query.Where(squirrel.Eq{"status": statuses})
	}

	if filter.AttendantID != "" {
		query = query.Where(squirrel.Eq{"attendant_id": filter.AttendantID})
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar cards: %w", err)
	}
	defer rows.Close()

	cards := make([]*domain.FlowCard, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear card: %w", err)
		}
		cards = append(cards, card)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return cards, nil
}

func (r *cardRepository) GetByID(ctx context.Context, id string) (*domain.FlowCard, error) {
	query, args, err := psql.Select(cardColumns...).From(cardsTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	card, err := scanCard(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar card: %w", err)
	}

	return card, nil
}

func (r *cardRepository) Create(ctx context.Context, card *domain.FlowCard) error {
	query, args, err := psql.
		Insert(cardsTable).
		Columns("id", "title", "client_name", "description", "entry_value", "leads_count", "status", "attendant_id", "date", "created_at", "updated_at").
		Values(
			card.ID,
			card.Title,
			card.ClientName,
			card.Description,
			card.EntryValue.Float(),
			card.LeadsCount,
			string(card.Status),
			card.AttendantID,
			nullableDate(card.Date),
			card.CreatedAt,
			card.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao criar card: %w", translateError(err))
	}

	return nil
}

// Update grava todos os campos editáveis, inclusive updated_at, como vierem no card
func (r *cardRepository) Update(ctx context.Context, card *domain.FlowCard) error {
	query, args, err := psql.
		Update(cardsTable).
		Set("title", card.Title).
		Set("client_name", card.ClientName).
		Set("description", card.Description).
		Set("entry_value", card.EntryValue.Float()).
		Set("leads_count", card.LeadsCount).
		Set("status", string(card.Status)).
		Set("attendant_id", card.AttendantID).
		Set("date", nullableDate(card.Date)).
		Set("updated_at", card.UpdatedAt).
		Where(squirrel.Eq{"id": card.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	return execAffecting(ctx, r.conn, query, args, "erro ao atualizar card")
}

func (r *cardRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete(cardsTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	return execAffecting(ctx, r.conn, query, args, "erro ao excluir card")
}

func scanCard(row rowScanner) (*domain.FlowCard, error) {
	card := &domain.FlowCard{}
	var status string

	err := row.Scan(
		&card.ID,
		&card.Title,
		&card.ClientName,
		&card.Description,
		&card.EntryValue,
		&card.LeadsCount,
		&status,
		&card.AttendantID,
		&card.Date,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	card.Status = domain.CardStatus(status)
	return card, nil
}

// execAffecting executa a alteração e devolve ErrNoRowsAffected quando nada mudou
func execAffecting(ctx context.Context, q postgres.Queryer, query string, args []any, msg string) error {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", msg, translateError(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}
	if affected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}
