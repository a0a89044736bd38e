package domain

import (
	"math"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	json := jsoniter.ConfigCompatibleWithStandardLibrary

	tests := []struct {
		name     string
		payload  string
		expected float64
	}{
		{name: "Número", payload: `{"value": 1500.75}`, expected: 1500.75},
		{name: "Texto numérico", payload: `{"value": "320.5"}`, expected: 320.5},
		{name: "Nulo", payload: `{"value": null}`, expected: 0},
		{name: "Ausente", payload: `{}`, expected: 0},
		{name: "Texto inválido", payload: `{"value": "abc"}`, expected: 0},
		{name: "Texto vazio", payload: `{"value": ""}`, expected: 0},
		{name: "NaN em texto", payload: `{"value": "NaN"}`, expected: 0},
		{name: "Infinito em texto", payload: `{"value": "Inf"}`, expected: 0},
		{name: "Booleano", payload: `{"value": true}`, expected: 0},
		{name: "Objeto", payload: `{"value": {"x": 1}}`, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst struct {
				Value Amount `json:"value"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &dst))
			assert.Equal(t, tt.expected, dst.Value.Float())
		})
	}
}

func TestAmount_Float(t *testing.T) {
	assert.Equal(t, 0.0, Amount(math.NaN()).Float())
	assert.Equal(t, 0.0, Amount(math.Inf(-1)).Float())
	assert.Equal(t, -12.5, Amount(-12.5).Float())
}

func TestDateRange_Validate(t *testing.T) {
	assert.NoError(t, DateRange{Start: "2024-03-01", End: "2024-03-31"}.Validate())
	assert.NoError(t, DateRange{Start: "2024-03-01", End: "2024-03-01"}.Validate())
	assert.ErrorIs(t, DateRange{Start: "2024-03-31", End: "2024-03-01"}.Validate(), ErrInvalidDateRange)
	assert.ErrorIs(t, DateRange{Start: "01/03/2024", End: "2024-03-31"}.Validate(), ErrInvalidDateRange)
}

func TestMonthRange(t *testing.T) {
	r := MonthRange(time.Date(2024, time.February, 17, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, DateRange{Start: "2024-02-01", End: "2024-02-29"}, r)
	assert.Equal(t, "02-2024", PeriodLabel(time.Date(2024, time.February, 17, 0, 0, 0, 0, time.UTC)))
}

func TestLegacyProject_Outstanding(t *testing.T) {
	assert.Equal(t, 600.0, (&LegacyProject{TotalValue: 1000, PaidValue: 400}).Outstanding())
	assert.Equal(t, 0.0, (&LegacyProject{TotalValue: 100, PaidValue: 300}).Outstanding())
}
