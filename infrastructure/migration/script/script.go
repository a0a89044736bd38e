// Package script cria o schema do banco e os registros iniciais.
// Todos os comandos são idempotentes e podem rodar a cada inicialização.
package script

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/flow-erp-api/internal/domain"
	"github.com/vfg2006/flow-erp-api/pkg/log"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// TxRunner é satisfeito por postgres.Connection
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error
}

type statement struct {
	name  string
	query string
}

var schema = []statement{
	{
		name: "users",
		query: `CREATE TABLE IF NOT EXISTS users (
			id            SERIAL PRIMARY KEY,
			name          TEXT NOT NULL,
			lastname      TEXT NOT NULL DEFAULT '',
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			active        BOOLEAN NOT NULL DEFAULT FALSE,
			role_id       INTEGER NOT NULL DEFAULT 3,
			avatar_url    TEXT,
			deleted       BOOLEAN NOT NULL DEFAULT FALSE,
			deleted_at    TIMESTAMPTZ,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "flow_cards",
		query: `CREATE TABLE IF NOT EXISTS flow_cards (
			id           TEXT PRIMARY KEY,
			title        TEXT NOT NULL,
			client_name  TEXT NOT NULL DEFAULT '',
			description  TEXT,
			entry_value  NUMERIC(14, 2) NOT NULL DEFAULT 0,
			leads_count  INTEGER NOT NULL DEFAULT 0,
			status       TEXT NOT NULL DEFAULT 'leads',
			attendant_id TEXT,
			date         DATE,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name:  "flow_cards_status_idx",
		query: `CREATE INDEX IF NOT EXISTS flow_cards_status_idx ON flow_cards (status, updated_at)`,
	},
	{
		name: "legacy_projects",
		query: `CREATE TABLE IF NOT EXISTS legacy_projects (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			client_name TEXT NOT NULL DEFAULT '',
			total_value NUMERIC(14, 2) NOT NULL DEFAULT 0,
			paid_value  NUMERIC(14, 2) NOT NULL DEFAULT 0,
			status      TEXT NOT NULL DEFAULT 'ativo',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "transactions",
		query: `CREATE TABLE IF NOT EXISTS transactions (
			id          TEXT PRIMARY KEY,
			type        TEXT NOT NULL CHECK (type IN ('income', 'expense')),
			category    TEXT,
			description TEXT NOT NULL DEFAULT '',
			value       NUMERIC(14, 2) NOT NULL DEFAULT 0,
			date        DATE,
			project_id  TEXT REFERENCES legacy_projects (id) ON DELETE SET NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name:  "transactions_date_idx",
		query: `CREATE INDEX IF NOT EXISTS transactions_date_idx ON transactions (date)`,
	},
	{
		name: "collaborators",
		query: `CREATE TABLE IF NOT EXISTS collaborators (
			id                 TEXT PRIMARY KEY,
			user_id            TEXT UNIQUE,
			name               TEXT NOT NULL,
			email              TEXT,
			roles              TEXT[] NOT NULL DEFAULT '{}',
			commission_fixed   NUMERIC(14, 2) NOT NULL DEFAULT 0,
			commission_percent NUMERIC(6, 2) NOT NULL DEFAULT 0,
			created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "app_settings",
		query: `CREATE TABLE IF NOT EXISTS app_settings (
			id           INTEGER PRIMARY KEY,
			tax_rate     NUMERIC(6, 2) NOT NULL DEFAULT 15,
			company_name TEXT,
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "kpi_snapshots",
		query: `CREATE TABLE IF NOT EXISTS kpi_snapshots (
			period     TEXT PRIMARY KEY,
			summary    JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
}

// Bootstrap cria as tabelas que faltam e grava a configuração padrão da
// empresa numa única transação
func Bootstrap(ctx context.Context, conn TxRunner) error {
	startTime := time.Now()
	log.ForContext(ctx).Info("Iniciando criação do schema")

	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return apply(ctx, tx, time.Now().UTC())
	})
	if err != nil {
		return err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"tables":      len(schema),
		"duration_ms": time.Since(startTime).Milliseconds(),
	}).Info("Schema pronto")

	return nil
}

func apply(ctx context.Context, db execer, now time.Time) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt.query); err != nil {
			return fmt.Errorf("erro ao criar %s: %w", stmt.name, err)
		}
		log.ForContext(ctx).WithField("table", stmt.name).Debug("Comando de schema aplicado")
	}

	query, args, err := seedSettings(now)
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao gravar configuração padrão: %w", err)
	}

	return nil
}

// seedSettings grava a alíquota padrão só quando a linha ainda não existe
func seedSettings(now time.Time) (string, []interface{}, error) {
	defaults := domain.DefaultSettings()

	return squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Insert("app_settings").
		Columns("id", "tax_rate", "company_name", "updated_at").
		Values(1, defaults.TaxRate.Float(), defaults.CompanyName, now).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
}
