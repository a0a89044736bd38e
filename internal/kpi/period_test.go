package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/flow-erp-api/internal/domain"
)

func TestWithinRange(t *testing.T) {
	march := domain.DateRange{Start: "2024-03-01", End: "2024-03-31"}

	tests := []struct {
		name     string
		date     string
		r        domain.DateRange
		expected bool
	}{
		{name: "Primeiro dia incluído", date: "2024-03-01", r: march, expected: true},
		{name: "Último dia incluído", date: "2024-03-31", r: march, expected: true},
		{name: "Dia anterior ao início excluído", date: "2024-02-29", r: march, expected: false},
		{name: "Início deslocado exclui o dia 1", date: "2024-03-01", r: domain.DateRange{Start: "2024-03-02", End: "2024-03-31"}, expected: false},
		{name: "Timestamp truncado para a data", date: "2024-03-31T23:59:59.000Z", r: march, expected: true},
		{name: "Data vazia nunca entra", date: "", r: march, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WithinRange(tt.date, tt.r))
		})
	}
}

func TestDaysBetweenInclusive(t *testing.T) {
	assert.Equal(t, 31, DaysBetweenInclusive("2024-03-01", "2024-03-31"))
	assert.Equal(t, 1, DaysBetweenInclusive("2024-03-10", "2024-03-10"))
	assert.Equal(t, 1, DaysBetweenInclusive("2024-03-10", "2024-03-01"), "intervalo invertido vale no mínimo 1")
	assert.Equal(t, 1, DaysBetweenInclusive("invalida", "2024-03-01"))
	assert.Equal(t, 60, DaysBetweenInclusive("2024-03-01", "2024-04-29"))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth("2024-03-15"))
	assert.Equal(t, 29, DaysInMonth("2024-02-01"))
	assert.Equal(t, 28, DaysInMonth("2023-02-01"))
	assert.Equal(t, 30, DaysInMonth("2024-04-30T10:00:00Z"))
	assert.Equal(t, 0, DaysInMonth(""))
}

func TestProrationFactor(t *testing.T) {
	t.Run("Mês completo vale 1", func(t *testing.T) {
		factor := ProrationFactor(domain.DateRange{Start: "2024-03-01", End: "2024-03-31"})
		assert.Equal(t, 1.0, factor.InexactFloat64())
	})

	t.Run("Quinze dias de março", func(t *testing.T) {
		factor := ProrationFactor(domain.DateRange{Start: "2024-03-01", End: "2024-03-15"})
		assert.InDelta(t, 0.484, factor.InexactFloat64(), 0.001)
	})

	t.Run("Período maior que o mês é limitado a 1", func(t *testing.T) {
		factor := ProrationFactor(domain.DateRange{Start: "2024-03-01", End: "2024-05-31"})
		assert.Equal(t, 1.0, factor.InexactFloat64())
	})

	t.Run("Data inicial inválida usa fator 1", func(t *testing.T) {
		factor := ProrationFactor(domain.DateRange{Start: "", End: "2024-03-31"})
		assert.Equal(t, 1.0, factor.InexactFloat64())
	})
}
