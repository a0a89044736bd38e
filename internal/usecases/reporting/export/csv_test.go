package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/flow-erp-api/internal/domain"
)

func TestWriteDRE(t *testing.T) {
	var buf bytes.Buffer

	err := WriteDRE(&buf, &domain.DREReport{
		Period:       domain.DateRange{Start: "2024-03-01", End: "2024-03-31"},
		GrossRevenue: 2000,
		NetProfit:    -300.5,
		ExpensesByCategory: []domain.CategoryTotal{
			{Category: "Tráfego pago", Total: 500},
			{Category: "Aluguel; sala", Total: 1200},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "linha;valor\n"))
	assert.Contains(t, out, "periodo;2024-03-01 a 2024-03-31\n")
	assert.Contains(t, out, "receita_bruta;2000.00\n")
	assert.Contains(t, out, "lucro_liquido;-300.50\n")
	assert.Contains(t, out, "Tráfego pago;500.00\n")
	assert.Contains(t, out, "\"Aluguel; sala\";1200.00\n", "separador dentro do texto é escapado")
}

func TestWriteSnapshots(t *testing.T) {
	var buf bytes.Buffer

	err := WriteSnapshots(&buf, []*domain.KPISnapshot{
		{Period: "03-2024", Summary: domain.KPISummary{Revenue: 2000, NetProfit: 200, ActiveProjects: 3}},
		nil,
		{Period: "02-2024"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "03-2024;2000.00;0.00;0.00;200.00;0.00;3;0.00;0.00", lines[1])
	assert.Equal(t, "02-2024;0.00;0.00;0.00;0.00;0.00;0;0.00;0.00", lines[2])
}
