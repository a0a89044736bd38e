package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrTransactionNotFound = errors.New("lançamento não encontrado")
	ErrProjectNotFound     = errors.New("projeto não encontrado")
	ErrInvalidType         = errors.New("tipo de lançamento inválido")
	ErrInvalidValue        = errors.New("valor inválido")
	ErrInvalidDate         = errors.New("data inválida")
	ErrMissingName         = errors.New("nome do projeto é obrigatório")
)

// LedgerError associa o erro ao código devolvido pela API
type LedgerError struct {
	Err     error
	Code    string
	Details string
}

func (e *LedgerError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

func NewLedgerError(baseErr error, code string, details string) *LedgerError {
	return &LedgerError{Err: baseErr, Code: code, Details: details}
}
