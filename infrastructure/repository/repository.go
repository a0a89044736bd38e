package repository

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

//go:generate mockgen -source=user.go -destination=mocks/user_mock.go -package=mocks
//go:generate mockgen -source=card.go -destination=mocks/card_mock.go -package=mocks
//go:generate mockgen -source=transaction.go -destination=mocks/transaction_mock.go -package=mocks
//go:generate mockgen -source=collaborator.go -destination=mocks/collaborator_mock.go -package=mocks
//go:generate mockgen -source=settings.go -destination=mocks/settings_mock.go -package=mocks
//go:generate mockgen -source=project.go -destination=mocks/project_mock.go -package=mocks
//go:generate mockgen -source=snapshot.go -destination=mocks/snapshot_mock.go -package=mocks

// ErrNoRowsAffected indica que a alteração não encontrou o registro
var ErrNoRowsAffected = errors.New("nenhum registro afetado")

// ErrDuplicated indica violação de chave única
var ErrDuplicated = errors.New("registro duplicado")

const uniqueViolation = "23505"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type rowScanner interface {
	Scan(dest ...any) error
}

// nullableDate grava NULL para datas vazias
func nullableDate(date string) any {
	if date == "" {
		return nil
	}
	return date
}

// translateError converte erros do driver nos erros do pacote
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicated
	}
	return err
}
