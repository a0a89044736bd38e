package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/flow-erp-api/internal/domain"
)

func TestSeller(t *testing.T) {
	seller := &domain.Collaborator{ID: "c1", UserID: stringPtr("7"), CommissionPercent: 10, Roles: []string{domain.RoleSeller}}

	in := Input{
		Cards: []*domain.FlowCard{
			card(domain.CardStatusConcluido, 1000, "2024-03-05", "c1"),
			card(domain.CardStatusEmProducao, 500, "2024-03-06", "7"),
			card(domain.CardStatusAguardandoPagamento, 300, "2024-01-01", "7"),
			card(domain.CardStatusConcluido, 9999, "2024-03-05", "outro"),
			{Status: domain.CardStatusLeads, AttendantID: "c1", LeadsCount: 4},
		},
		Range: march,
	}
	in.Cards[0].LeadsCount = 1

	kpis := Seller(in, seller, "7")

	assert.Equal(t, "c1", kpis.CollaboratorID)
	assert.Equal(t, 1500.0, kpis.Sales)
	assert.Equal(t, 100.0, kpis.CommissionEarned)
	assert.Equal(t, 300.0, kpis.Receivables)
	assert.Equal(t, 40.0, kpis.ConversionRate)
	assert.Equal(t, 1, kpis.CardsByStatus[domain.CardStatusConcluido])
	assert.Equal(t, 1, kpis.CardsByStatus[domain.CardStatusLeads])
	assert.Equal(t, 0, kpis.CardsByStatus[domain.CardStatusRevisao])
}

func TestSeller_WithoutCollaborator(t *testing.T) {
	in := Input{
		Cards: []*domain.FlowCard{card(domain.CardStatusConcluido, 1000, "2024-03-05", "7")},
		Range: march,
	}

	kpis := Seller(in, nil, "7")

	assert.Empty(t, kpis.CollaboratorID)
	assert.Equal(t, 1000.0, kpis.Sales)
	assert.Equal(t, 0.0, kpis.CommissionEarned)
}

func TestProduction(t *testing.T) {
	in := Input{
		Cards: []*domain.FlowCard{
			card(domain.CardStatusEmProducao, 0, "2024-01-01", ""),
			card(domain.CardStatusEmProducao, 0, "2024-03-01", ""),
			card(domain.CardStatusRevisao, 0, "2024-03-01", ""),
			card(domain.CardStatusAguardandoPagamento, 0, "2024-03-01", ""),
			card(domain.CardStatusConcluido, 0, "2024-03-20", ""),
			card(domain.CardStatusConcluido, 0, "2024-02-20", ""),
		},
		Range: march,
	}

	kpis := Production(in)

	assert.Equal(t, 2, kpis.InProduction)
	assert.Equal(t, 1, kpis.InReview)
	assert.Equal(t, 1, kpis.AwaitingPayment)
	assert.Equal(t, 1, kpis.Completed)
}
