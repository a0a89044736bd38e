package domain

import "time"

// LegacyProject é o registro de projeto do modelo antigo, com valor total e
// valor já pago. O saldo em aberto entra nos recebíveis da visão legada.
type LegacyProject struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ClientName string    `json:"client_name"`
	TotalValue Amount    `json:"total_value"`
	PaidValue  Amount    `json:"paid_value"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Outstanding retorna o saldo em aberto, nunca negativo
func (p *LegacyProject) Outstanding() float64 {
	total, paid := p.TotalValue.Float(), p.PaidValue.Float()
	if total > paid {
		return total - paid
	}
	return 0
}

type ProjectRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	ClientName string `json:"client_name" validate:"max=200"`
	TotalValue Amount `json:"total_value" validate:"gte=0"`
	PaidValue  Amount `json:"paid_value" validate:"gte=0"`
	Status     string `json:"status" validate:"omitempty,max=50"`
}

type ProjectPaymentRequest struct {
	Value Amount `json:"value" validate:"gt=0"`
	Date  string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}
