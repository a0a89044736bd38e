// Package kpi calcula os indicadores financeiros (receita, custo operacional,
// imposto, comissão, recebíveis, conversão e ROI de tráfego) a partir de
// coleções já carregadas. Nenhuma função faz I/O nem retorna erro: valores
// numéricos inválidos contam como zero e datas vazias ficam fora do período.
package kpi

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/flow-erp-api/internal/domain"
)

var one = decimal.NewFromInt(1)

// WithinRange compara datas yyyy-mm-dd como texto. Datas mais longas
// (timestamps) são truncadas nos 10 primeiros caracteres.
func WithinRange(isoDate string, r domain.DateRange) bool {
	if isoDate == "" {
		return false
	}
	if len(isoDate) > 10 {
		isoDate = isoDate[:10]
	}
	return r.Start <= isoDate && isoDate <= r.End
}

// transitionDate é a data (UTC) da última mudança de etapa do card
func transitionDate(card *domain.FlowCard) string {
	if card.UpdatedAt.IsZero() {
		return ""
	}
	return card.UpdatedAt.UTC().Format(time.DateOnly)
}

// DaysBetweenInclusive conta os dias do intervalo incluindo as duas pontas, no mínimo 1
func DaysBetweenInclusive(start, end string) int {
	s, err := parseDate(start)
	if err != nil {
		return 1
	}
	e, err := parseDate(end)
	if err != nil {
		return 1
	}

	days := int(math.Floor(e.Sub(s).Hours()/24)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// DaysInMonth retorna quantos dias tem o mês da data, ou 0 se a data for inválida
func DaysInMonth(isoDate string) int {
	d, err := parseDate(isoDate)
	if err != nil {
		return 0
	}
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ProrationFactor é a fração do mês coberta pelo período, limitada a 1
func ProrationFactor(r domain.DateRange) decimal.Decimal {
	monthDays := DaysInMonth(r.Start)
	if monthDays <= 0 {
		return one
	}

	factor := decimal.NewFromInt(int64(DaysBetweenInclusive(r.Start, r.End))).
		Div(decimal.NewFromInt(int64(monthDays)))
	return decimal.Min(one, factor)
}

func parseDate(isoDate string) (time.Time, error) {
	if len(isoDate) > 10 {
		isoDate = isoDate[:10]
	}
	return time.Parse(time.DateOnly, isoDate)
}
