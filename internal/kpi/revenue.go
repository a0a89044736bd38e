package kpi

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/flow-erp-api/internal/domain"
)

// Revenue detalha a receita do período
type Revenue struct {
	Cards  decimal.Decimal
	Income decimal.Decimal
	Total  decimal.Decimal
}

// AggregateRevenue soma os cards reconhecidos (em produção ou concluídos,
// pela data da última transição) e as entradas do livro caixa no período.
func AggregateRevenue(cards []*domain.FlowCard, transactions []*domain.Transaction, r domain.DateRange) Revenue {
	rev := Revenue{Cards: decimal.Zero, Income: decimal.Zero}

	for _, card := range cards {
		if card == nil || !isRecognized(card.Status) {
			continue
		}
		if WithinRange(transitionDate(card), r) {
			rev.Cards = rev.Cards.Add(amount(card.EntryValue))
		}
	}

	for _, tx := range transactions {
		if tx == nil || tx.Type != domain.TransactionTypeIncome {
			continue
		}
		if WithinRange(tx.Date, r) {
			rev.Income = rev.Income.Add(amount(tx.Value))
		}
	}

	rev.Total = rev.Cards.Add(rev.Income)
	return rev
}

func isRecognized(status domain.CardStatus) bool {
	return status == domain.CardStatusEmProducao || status == domain.CardStatusConcluido
}

func amount(a domain.Amount) decimal.Decimal {
	return decimal.NewFromFloat(a.Float())
}
