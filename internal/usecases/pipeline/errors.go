package pipeline

import (
	"errors"
	"fmt"
)

var (
	ErrCardNotFound       = errors.New("card não encontrado")
	ErrInvalidStatus      = errors.New("status de card inválido")
	ErrNotAwaitingPayment = errors.New("card não está aguardando pagamento")
	ErrMissingTitle       = errors.New("título é obrigatório")
)

// CardError carrega o código de API e o card envolvido
type CardError struct {
	Err     error
	Code    string
	CardID  string
	Details string
}

func (e *CardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CardError) Unwrap() error {
	return e.Err
}

func NewCardError(baseErr error, code string, cardID string, details string) *CardError {
	return &CardError{
		Err:     baseErr,
		Code:    code,
		CardID:  cardID,
		Details: details,
	}
}
