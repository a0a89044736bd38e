package kpi

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/flow-erp-api/internal/domain"
	"github.com/vfg2006/flow-erp-api/pkg/utils"
)

// Seller calcula o painel de um vendedor considerando só os cards em que ele
// é o atendente. ids são os identificadores aceitos para o vendedor (id do
// usuário, id do colaborador).
func Seller(in Input, collaborator *domain.Collaborator, ids ...string) domain.SellerKPIs {
	keys := make(map[string]struct{}, len(ids)+2)
	for _, id := range ids {
		if id != "" {
			keys[id] = struct{}{}
		}
	}
	if collaborator != nil {
		ids = []string{collaborator.ID}
		if collaborator.UserID != nil {
			ids = append(ids, *collaborator.UserID)
		}
		for _, id := range ids {
			if id != "" {
				keys[id] = struct{}{}
			}
		}
	}

	own := make([]*domain.FlowCard, 0)
	for _, card := range in.Cards {
		if card == nil {
			continue
		}
		if _, ok := keys[card.AttendantID]; ok {
			own = append(own, card)
		}
	}

	byStatus := make(map[domain.CardStatus]int, len(domain.CardStatuses))
	for _, status := range domain.CardStatuses {
		byStatus[status] = 0
	}
	for _, card := range own {
		byStatus[card.Status]++
	}

	commission := decimal.Zero
	if collaborator != nil {
		commission = CommissionPaid(own, []*domain.Collaborator{collaborator}, in.Range)
	}

	leads, converted := leadsAndConversions(own)

	kpis := domain.SellerKPIs{
		Period:           in.Range,
		Sales:            AggregateRevenue(own, nil, in.Range).Cards.InexactFloat64(),
		CommissionEarned: commission.InexactFloat64(),
		Receivables:      Receivables(own).InexactFloat64(),
		ConversionRate:   utils.RoundWithTwoDecimalPlace(percentOf(decimal.NewFromInt(int64(converted)), decimal.NewFromInt(int64(leads))).InexactFloat64()),
		CardsByStatus:    byStatus,
	}
	if collaborator != nil {
		kpis.CollaboratorID = collaborator.ID
	}

	return kpis
}

// Production conta a carga de trabalho da produção. Concluídos são os que
// mudaram para concluído dentro do período.
func Production(in Input) domain.ProductionKPIs {
	kpis := domain.ProductionKPIs{Period: in.Range}

	for _, card := range in.Cards {
		if card == nil {
			continue
		}
		switch card.Status {
		case domain.CardStatusEmProducao:
			kpis.InProduction++
		case domain.CardStatusRevisao:
			kpis.InReview++
		case domain.CardStatusAguardandoPagamento:
			kpis.AwaitingPayment++
		case domain.CardStatusConcluido:
			if WithinRange(transitionDate(card), in.Range) {
				kpis.Completed++
			}
		}
	}

	return kpis
}
