// Package export gera as planilhas CSV dos relatórios financeiros
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/vfg2006/flow-erp-api/internal/domain"
	"github.com/vfg2006/flow-erp-api/pkg/utils"
)

// Separador usado pelas planilhas em português
const separator = ';'

func newWriter(w io.Writer) *csv.Writer {
	writer := csv.NewWriter(w)
	writer.Comma = separator
	return writer
}

// WriteDRE escreve o DRE em duas colunas (linha, valor) seguido das despesas por categoria
func WriteDRE(w io.Writer, report *domain.DREReport) error {
	writer := newWriter(w)

	rows := [][]string{
		{"periodo", report.Period.Start + " a " + report.Period.End},
		{"receita_bruta", utils.FormatMoney(report.GrossRevenue)},
		{"receita_cards", utils.FormatMoney(report.CardRevenue)},
		{"outras_receitas", utils.FormatMoney(report.OtherIncome)},
		{"aliquota_imposto", utils.FormatMoney(report.TaxRate)},
		{"impostos", utils.FormatMoney(report.TaxAmount)},
		{"receita_liquida", utils.FormatMoney(report.NetRevenue)},
		{"despesas", utils.FormatMoney(report.TransactionExpenses)},
		{"custo_fixo", utils.FormatMoney(report.FixedCost)},
		{"comissoes", utils.FormatMoney(report.CommissionPaid)},
		{"custo_operacional", utils.FormatMoney(report.OperationalCost)},
		{"lucro_liquido", utils.FormatMoney(report.NetProfit)},
		{"margem_liquida", utils.FormatMoney(report.NetMargin)},
		{"custo_trafego", utils.FormatMoney(report.TrafficCosts)},
		{"roi_trafego", utils.FormatMoney(report.TrafficROI)},
	}

	if err := writer.Write([]string{"linha", "valor"}); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}

	if len(report.ExpensesByCategory) > 0 {
		if err := writer.Write([]string{}); err != nil {
			return err
		}
		if err := writer.Write([]string{"categoria", "total"}); err != nil {
			return err
		}
		for _, category := range report.ExpensesByCategory {
			if err := writer.Write([]string{category.Category, utils.FormatMoney(category.Total)}); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteSnapshots escreve uma linha por fechamento mensal
func WriteSnapshots(w io.Writer, snapshots []*domain.KPISnapshot) error {
	writer := newWriter(w)

	header := []string{
		"periodo",
		"receita",
		"custo_operacional",
		"impostos",
		"lucro_liquido",
		"recebiveis",
		"projetos_ativos",
		"taxa_conversao",
		"roi_trafego",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, snapshot := range snapshots {
		if snapshot == nil {
			continue
		}
		s := snapshot.Summary
		row := []string{
			snapshot.Period,
			utils.FormatMoney(s.Revenue),
			utils.FormatMoney(s.OperationalCost),
			utils.FormatMoney(s.TaxAmount),
			utils.FormatMoney(s.NetProfit),
			utils.FormatMoney(s.Receivables),
			strconv.Itoa(s.ActiveProjects),
			utils.FormatMoney(s.ConversionRate),
			utils.FormatMoney(s.TrafficROI),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
