package domain

import "time"

// DefaultTaxRate é a alíquota usada quando não há configuração salva
const DefaultTaxRate = 15

// AppSettings guarda a configuração única da empresa
type AppSettings struct {
	TaxRate     Amount    `json:"tax_rate"`
	CompanyName string    `json:"company_name"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DefaultSettings retorna a configuração padrão
func DefaultSettings() *AppSettings {
	return &AppSettings{TaxRate: DefaultTaxRate}
}

type SettingsRequest struct {
	TaxRate     *Amount `json:"tax_rate" validate:"omitempty,gte=0,lte=100"`
	CompanyName *string `json:"company_name" validate:"omitempty,max=200"`
}
