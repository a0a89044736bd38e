package kpi

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/flow-erp-api/internal/domain"
)

// Input reúne os snapshots usados no cálculo. Settings nulo usa a alíquota padrão.
type Input struct {
	Cards         []*domain.FlowCard
	Transactions  []*domain.Transaction
	Collaborators []*domain.Collaborator
	Projects      []*domain.LegacyProject
	Settings      *domain.AppSettings
	Range         domain.DateRange
}

// Compute calcula o registro canônico de indicadores do período
func Compute(in Input) domain.KPISummary {
	revenue := AggregateRevenue(in.Cards, in.Transactions, in.Range)
	cost := AggregateCost(in.Cards, in.Transactions, in.Collaborators, in.Range)

	taxRate := TaxRate(in.Settings)
	taxAmount := revenue.Total.Mul(taxRate).Div(hundred)
	netProfit := revenue.Total.Sub(cost.Operational).Sub(taxAmount)

	totalLeads, converted := leadsAndConversions(in.Cards)

	return domain.KPISummary{
		Period:              in.Range,
		PeriodDays:          DaysBetweenInclusive(in.Range.Start, in.Range.End),
		ProrationFactor:     cost.Factor.InexactFloat64(),
		Revenue:             revenue.Total.InexactFloat64(),
		CardRevenue:         revenue.Cards.InexactFloat64(),
		TransactionIncome:   revenue.Income.InexactFloat64(),
		TransactionExpenses: cost.Expenses.InexactFloat64(),
		TrafficCosts:        cost.Traffic.InexactFloat64(),
		FixedCost:           cost.Fixed.InexactFloat64(),
		CommissionPaid:      cost.Commission.InexactFloat64(),
		OperationalCost:     cost.Operational.InexactFloat64(),
		TaxRate:             taxRate.InexactFloat64(),
		TaxAmount:           taxAmount.InexactFloat64(),
		NetProfit:           netProfit.InexactFloat64(),
		Receivables:         Receivables(in.Cards).InexactFloat64(),
		LegacyReceivables:   LegacyReceivables(in.Projects).InexactFloat64(),
		ActiveProjects:      ActiveProjects(in.Cards),
		TotalLeads:          totalLeads,
		ConvertedCount:      converted,
		ConversionRate:      percentOf(decimal.NewFromInt(int64(converted)), decimal.NewFromInt(int64(totalLeads))).InexactFloat64(),
		TrafficROI:          TrafficROI(revenue.Cards, cost.Traffic).InexactFloat64(),
	}
}

// TaxRate retorna a alíquota configurada ou a padrão
func TaxRate(settings *domain.AppSettings) decimal.Decimal {
	if settings == nil {
		return decimal.NewFromInt(domain.DefaultTaxRate)
	}
	return amount(settings.TaxRate)
}

// Receivables soma os cards aguardando pagamento, sem filtro de período
func Receivables(cards []*domain.FlowCard) decimal.Decimal {
	total := decimal.Zero
	for _, card := range cards {
		if card != nil && card.Status == domain.CardStatusAguardandoPagamento {
			total = total.Add(amount(card.EntryValue))
		}
	}
	return total
}

// LegacyReceivables soma o saldo em aberto dos projetos legados
func LegacyReceivables(projects []*domain.LegacyProject) decimal.Decimal {
	total := decimal.Zero
	for _, p := range projects {
		if p == nil {
			continue
		}
		total = total.Add(decimal.NewFromFloat(p.Outstanding()))
	}
	return total
}

// ActiveProjects conta os cards ainda não concluídos
func ActiveProjects(cards []*domain.FlowCard) int {
	active := 0
	for _, card := range cards {
		if card != nil && card.Status != domain.CardStatusConcluido {
			active++
		}
	}
	return active
}

// TrafficROI é o retorno percentual dos cards sobre o gasto com tráfego; zero sem gasto
func TrafficROI(base, trafficCosts decimal.Decimal) decimal.Decimal {
	if !trafficCosts.IsPositive() {
		return decimal.Zero
	}
	return base.Sub(trafficCosts).Div(trafficCosts).Mul(hundred)
}

func leadsAndConversions(cards []*domain.FlowCard) (int, int) {
	var leads, converted int
	for _, card := range cards {
		if card == nil {
			continue
		}
		leads += card.LeadsCount
		if isConverted(card.Status) {
			converted++
		}
	}
	return leads, converted
}

func isConverted(status domain.CardStatus) bool {
	return status == domain.CardStatusEmProducao ||
		status == domain.CardStatusRevisao ||
		status == domain.CardStatusConcluido
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
