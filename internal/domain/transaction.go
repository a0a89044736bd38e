package domain

import "time"

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// CategoryProjectPayment é a categoria das entradas geradas pelo recebimento de projetos
const CategoryProjectPayment = "Recebimento de projeto"

// Transaction é um lançamento financeiro (entrada ou saída).
// Date é a data oficial para filtros de período.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description *string         `json:"description,omitempty"`
	Value       Amount          `json:"value"`
	Date        string          `json:"date"`
	ProjectID   *string         `json:"project_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionFilter filtra a listagem de lançamentos. Campos vazios não filtram.
type TransactionFilter struct {
	StartDate string
	EndDate   string
	Type      TransactionType
}

type TransactionRequest struct {
	Type        TransactionType `json:"type" validate:"required,oneof=income expense"`
	Category    string          `json:"category" validate:"max=120"`
	Description *string         `json:"description"`
	Value       Amount          `json:"value" validate:"gte=0"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
}
