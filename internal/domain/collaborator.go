package domain

import "time"

// Papéis de colaboradores
const (
	RoleAdmin      = "admin"
	RoleSeller     = "seller"
	RoleProduction = "production"
)

// Collaborator é um membro da equipe com papéis e termos de remuneração.
// CommissionFixed é um custo mensal fixo (qualquer papel);
// CommissionPercent só vale para vendedores.
type Collaborator struct {
	ID                string    `json:"id"`
	UserID            *string   `json:"user_id,omitempty"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Roles             []string  `json:"roles"`
	CommissionFixed   Amount    `json:"commission_fixed"`
	CommissionPercent Amount    `json:"commission_percent"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// HasRole informa se o colaborador possui o papel
func (c *Collaborator) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Matches informa se o identificador (atendente de um card) pertence ao colaborador
func (c *Collaborator) Matches(id string) bool {
	if id == "" {
		return false
	}
	if c.UserID != nil && *c.UserID == id {
		return true
	}
	return c.ID == id
}

type CollaboratorRequest struct {
	UserID            *string  `json:"user_id"`
	Name              string   `json:"name" validate:"required,max=200"`
	Email             string   `json:"email" validate:"omitempty,email"`
	Roles             []string `json:"roles" validate:"required,min=1,dive,oneof=admin seller production"`
	CommissionFixed   Amount   `json:"commission_fixed" validate:"gte=0"`
	CommissionPercent Amount   `json:"commission_percent" validate:"gte=0,lte=100"`
}
