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
	settingsTable = "app_settings"
	settingsRowID = 1
)

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.AppSettings, error)
	Save(ctx context.Context, settings *domain.AppSettings) error
}

type settingsRepository struct {
	conn *postgres.Connection
}

func NewSettingsRepository(conn *postgres.Connection) SettingsRepository {
	return &settingsRepository{
		conn: conn,
	}
}

// Get retorna a configuração da empresa ou nil quando ainda não foi salva
func (r *settingsRepository) Get(ctx context.Context) (*domain.AppSettings, error) {
	query, args, err := psql.
		Select("COALESCE(tax_rate, 0)::float8", "COALESCE(company_name, '')", "updated_at").
		From(settingsTable).
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	settings := &domain.AppSettings{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&settings.TaxRate, &settings.CompanyName, &settings.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar configurações: %w", err)
	}

	return settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *domain.AppSettings) error {
	query, args, err := psql.
		Insert(settingsTable).
		Columns("id", "tax_rate", "company_name", "updated_at").
		Values(settingsRowID, settings.TaxRate.Float(), settings.CompanyName, settings.UpdatedAt).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				tax_rate = EXCLUDED.tax_rate,
				company_name = EXCLUDED.company_name,
				updated_at = EXCLUDED.updated_at
		`).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err = r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao salvar configurações: %w", err)
	}

	return nil
}
