package kpi

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/flow-erp-api/internal/domain"
	"golang.org/x/text/cases"
)

var (
	hundred         = decimal.NewFromInt(100)
	trafficKeywords = []string{"tráfego", "trafego", "ads"}
)

// Cost detalha o custo operacional do período. Traffic é um subconjunto de
// Expenses e não entra de novo em Operational.
type Cost struct {
	Expenses    decimal.Decimal
	Traffic     decimal.Decimal
	Fixed       decimal.Decimal
	Factor      decimal.Decimal
	Commission  decimal.Decimal
	Operational decimal.Decimal
}

// AggregateCost soma saídas do período, custo fixo proporcional da equipe e
// comissões dos cards concluídos no período.
func AggregateCost(cards []*domain.FlowCard, transactions []*domain.Transaction, collaborators []*domain.Collaborator, r domain.DateRange) Cost {
	cost := Cost{Expenses: decimal.Zero, Traffic: decimal.Zero}

	for _, tx := range transactions {
		if tx == nil || tx.Type != domain.TransactionTypeExpense || !WithinRange(tx.Date, r) {
			continue
		}
		value := amount(tx.Value)
		cost.Expenses = cost.Expenses.Add(value)
		if IsTrafficCategory(tx.Category) {
			cost.Traffic = cost.Traffic.Add(value)
		}
	}

	cost.Fixed, cost.Factor = FixedCost(collaborators, r)
	cost.Commission = CommissionPaid(cards, collaborators, r)
	cost.Operational = cost.Expenses.Add(cost.Fixed).Add(cost.Commission)

	return cost
}

// IsTrafficCategory identifica gastos com tráfego pago pela categoria, sem
// diferenciar maiúsculas (inclusive acentuadas)
func IsTrafficCategory(category string) bool {
	folded := cases.Fold().String(category)
	for _, keyword := range trafficKeywords {
		if strings.Contains(folded, keyword) {
			return true
		}
	}
	return false
}

// FixedCost soma o custo fixo mensal da equipe e aplica a proporção do período
func FixedCost(collaborators []*domain.Collaborator, r domain.DateRange) (decimal.Decimal, decimal.Decimal) {
	total := decimal.Zero
	for _, c := range collaborators {
		if c == nil {
			continue
		}
		total = total.Add(amount(c.CommissionFixed))
	}

	factor := ProrationFactor(r)
	return total.Mul(factor), factor
}

// CommissionPaid calcula a comissão dos cards concluídos no período. Cards
// sem vendedor correspondente não geram comissão.
func CommissionPaid(cards []*domain.FlowCard, collaborators []*domain.Collaborator, r domain.DateRange) decimal.Decimal {
	total := decimal.Zero
	for _, card := range cards {
		if card == nil || card.Status != domain.CardStatusConcluido || !WithinRange(transitionDate(card), r) {
			continue
		}
		total = total.Add(commissionFor(card, collaborators))
	}
	return total
}

func commissionFor(card *domain.FlowCard, collaborators []*domain.Collaborator) decimal.Decimal {
	percent := commissionPercent(card.AttendantID, collaborators)
	if percent.IsZero() {
		return decimal.Zero
	}
	return amount(card.EntryValue).Mul(percent).Div(hundred)
}

func commissionPercent(attendantID string, collaborators []*domain.Collaborator) decimal.Decimal {
	for _, c := range collaborators {
		if c != nil && c.Matches(attendantID) {
			return amount(c.CommissionPercent)
		}
	}
	return decimal.Zero
}

// ExpensesByCategory agrupa as saídas do período por categoria, da maior para a menor
func ExpensesByCategory(transactions []*domain.Transaction, r domain.DateRange) []domain.CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		if tx == nil || tx.Type != domain.TransactionTypeExpense || !WithinRange(tx.Date, r) {
			continue
		}
		category := strings.TrimSpace(tx.Category)
		if category == "" {
			category = "Sem categoria"
		}
		totals[category] = totals[category].Add(amount(tx.Value))
	}

	result := make([]domain.CategoryTotal, 0, len(totals))
	for category, total := range totals {
		result = append(result, domain.CategoryTotal{Category: category, Total: total.InexactFloat64()})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Category < result[j].Category
	})

	return result
}
