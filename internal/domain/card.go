package domain

import (
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
)

// CardStatus representa a etapa de um card no fluxo de operações
type CardStatus string

const (
	CardStatusLeads               CardStatus = "leads"
	CardStatusNegociacao          CardStatus = "negociacao"
	CardStatusAguardandoPagamento CardStatus = "aguardando_pagamento"
	CardStatusEmProducao          CardStatus = "em_producao"
	CardStatusRevisao             CardStatus = "revisao"
	CardStatusConcluido           CardStatus = "concluido"
)

// CardStatuses lista as etapas na ordem do fluxo
var CardStatuses = []CardStatus{
	CardStatusLeads,
	CardStatusNegociacao,
	CardStatusAguardandoPagamento,
	CardStatusEmProducao,
	CardStatusRevisao,
	CardStatusConcluido,
}

// IsValid informa se o status é uma das etapas conhecidas
func (s CardStatus) IsValid() bool {
	for _, status := range CardStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// FlowCard é um card de operação (venda ou lead) no fluxo kanban.
// UpdatedAt marca a última transição de etapa e é a data usada para
// reconhecer receita e comissão.
type FlowCard struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	ClientName  string     `json:"client_name"`
	Description *string    `json:"description,omitempty"`
	EntryValue  Amount     `json:"entry_value"`
	LeadsCount  int        `json:"leads_count"`
	Status      CardStatus `json:"status"`
	AttendantID string     `json:"attendant_id"`
	Date        string     `json:"date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// flowCardPayload é o formato de entrada vindo do cliente, onde datas e
// contagens chegam como texto, número ou null
type flowCardPayload struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	ClientName  string     `json:"client_name"`
	Description *string    `json:"description,omitempty"`
	EntryValue  Amount     `json:"entry_value"`
	LeadsCount  any        `json:"leads_count"`
	Status      CardStatus `json:"status"`
	AttendantID any        `json:"attendant_id"`
	Date        string     `json:"date"`
	CreatedAt   any        `json:"created_at"`
	UpdatedAt   any        `json:"updated_at"`
}

// UnmarshalJSON aceita datas em RFC3339 ou yyyy-mm-dd. Datas vazias, nulas
// ou inválidas ficam zeradas e leads_count inválido conta como zero.
func (c *FlowCard) UnmarshalJSON(data []byte) error {
	var payload flowCardPayload
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &payload); err != nil {
		return err
	}

	leads, err := cast.ToIntE(payload.LeadsCount)
	if err != nil || leads < 0 {
		leads = 0
	}

	*c = FlowCard{
		ID:          payload.ID,
		Title:       payload.Title,
		ClientName:  payload.ClientName,
		Description: payload.Description,
		EntryValue:  payload.EntryValue,
		LeadsCount:  leads,
		Status:      payload.Status,
		AttendantID: cast.ToString(payload.AttendantID),
		Date:        payload.Date,
		CreatedAt:   parseTimestamp(payload.CreatedAt),
		UpdatedAt:   parseTimestamp(payload.UpdatedAt),
	}
	return nil
}

func parseTimestamp(raw any) time.Time {
	s, ok := raw.(string)
	if !ok {
		return time.Time{}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if len(s) >= len(time.DateOnly) {
		if t, err := time.Parse(time.DateOnly, s[:len(time.DateOnly)]); err == nil {
			return t
		}
	}
	return time.Time{}
}

// CardFilter filtra a listagem de cards
type CardFilter struct {
	Statuses    []CardStatus
	AttendantID string
}

type CreateCardRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	ClientName  string     `json:"client_name" validate:"required,max=200"`
	Description *string    `json:"description"`
	EntryValue  Amount     `json:"entry_value" validate:"gte=0"`
	LeadsCount  int        `json:"leads_count" validate:"gte=0"`
	Status      CardStatus `json:"status" validate:"omitempty,oneof=leads negociacao aguardando_pagamento em_producao revisao concluido"`
	AttendantID string     `json:"attendant_id"`
	Date        string     `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateCardRequest altera dados do card sem mexer na etapa
type UpdateCardRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	ClientName  *string `json:"client_name" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	EntryValue  *Amount `json:"entry_value" validate:"omitempty,gte=0"`
	LeadsCount  *int    `json:"leads_count" validate:"omitempty,gte=0"`
	AttendantID *string `json:"attendant_id"`
	Date        *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type MoveCardRequest struct {
	Status CardStatus `json:"status" validate:"required,oneof=leads negociacao aguardando_pagamento em_producao revisao concluido"`
}
