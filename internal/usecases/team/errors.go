package team

import (
	"errors"
	"fmt"
)

var (
	ErrCollaboratorNotFound = errors.New("colaborador não encontrado")
	ErrMissingName          = errors.New("nome é obrigatório")
	ErrInvalidRole          = errors.New("perfil inválido")
	ErrInvalidCommission    = errors.New("comissão inválida")
	ErrInvalidTaxRate       = errors.New("alíquota inválida")
)

type TeamError struct {
	Err     error
	Code    string
	Details string
}

func (e *TeamError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *TeamError) Unwrap() error {
	return e.Err
}

func NewTeamError(baseErr error, code string, details string) *TeamError {
	return &TeamError{Err: baseErr, Code: code, Details: details}
}
