package kpi

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/flow-erp-api/internal/domain"
	"github.com/vfg2006/flow-erp-api/pkg/utils"
)

// Dashboard seleciona os campos do hook de KPIs do dashboard
func Dashboard(s domain.KPISummary) domain.DashboardKPIs {
	return domain.DashboardKPIs{
		Period:          s.Period,
		Revenue:         s.Revenue,
		NetProfit:       s.NetProfit,
		Receivables:     s.Receivables,
		ActiveProjects:  s.ActiveProjects,
		OperationalCost: s.OperationalCost,
		TrafficROI:      utils.RoundWithTwoDecimalPlace(s.TrafficROI),
		TrafficCosts:    s.TrafficCosts,
		ConversionRate:  utils.RoundWithTwoDecimalPlace(s.ConversionRate),
		TaxRate:         s.TaxRate,
	}
}

// Reports monta o DRE a partir do registro canônico. O ROI sobre a receita
// total é exposto à parte; o oficial usa apenas a receita de cards.
func Reports(in Input, s domain.KPISummary) domain.DREReport {
	revenueROI := TrafficROI(decimal.NewFromFloat(s.Revenue), decimal.NewFromFloat(s.TrafficCosts)).InexactFloat64()
	revenueROI = utils.RoundWithTwoDecimalPlace(revenueROI)

	return domain.DREReport{
		Period:              s.Period,
		GrossRevenue:        s.Revenue,
		CardRevenue:         s.CardRevenue,
		OtherIncome:         s.TransactionIncome,
		TaxRate:             s.TaxRate,
		TaxAmount:           s.TaxAmount,
		NetRevenue:          decimal.NewFromFloat(s.Revenue).Sub(decimal.NewFromFloat(s.TaxAmount)).InexactFloat64(),
		TransactionExpenses: s.TransactionExpenses,
		FixedCost:           s.FixedCost,
		CommissionPaid:      s.CommissionPaid,
		OperationalCost:     s.OperationalCost,
		NetProfit:           s.NetProfit,
		NetMargin:           utils.RoundWithTwoDecimalPlace(percentOf(decimal.NewFromFloat(s.NetProfit), decimal.NewFromFloat(s.Revenue)).InexactFloat64()),
		TrafficCosts:        s.TrafficCosts,
		TrafficROI:          utils.RoundWithTwoDecimalPlace(s.TrafficROI),
		RevenueTrafficROI:   &revenueROI,
		ProrationFactor:     s.ProrationFactor,
		ExpensesByCategory:  ExpensesByCategory(in.Transactions, in.Range),
	}
}

// Legacy monta a visão do contexto legado; recebíveis incluem o saldo dos projetos antigos
func Legacy(s domain.KPISummary) domain.LegacyMetrics {
	return domain.LegacyMetrics{
		Period:            s.Period,
		Revenue:           s.Revenue,
		NetProfit:         s.NetProfit,
		Receivables:       decimal.NewFromFloat(s.Receivables).Add(decimal.NewFromFloat(s.LegacyReceivables)).InexactFloat64(),
		CardReceivables:   s.Receivables,
		LegacyReceivables: s.LegacyReceivables,
		ActiveProjects:    s.ActiveProjects,
		OperationalCost:   s.OperationalCost,
		TaxAmount:         s.TaxAmount,
		CommissionPaid:    s.CommissionPaid,
		FixedCost:         s.FixedCost,
		ConversionRate:    utils.RoundWithTwoDecimalPlace(s.ConversionRate),
	}
}
