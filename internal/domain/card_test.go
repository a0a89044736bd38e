package domain

import (
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowCard_UnmarshalJSON(t *testing.T) {
	json := jsoniter.ConfigCompatibleWithStandardLibrary

	tests := []struct {
		name     string
		payload  string
		validate func(t *testing.T, card FlowCard)
	}{
		{
			name:    "Data e hora RFC3339",
			payload: `{"id": "c1", "updated_at": "2024-03-15T18:30:00Z", "created_at": "2024-03-01T08:00:00.123Z"}`,
			validate: func(t *testing.T, card FlowCard) {
				assert.Equal(t, time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC), card.UpdatedAt)
				assert.Equal(t, time.Date(2024, 3, 1, 8, 0, 0, 123000000, time.UTC), card.CreatedAt)
			},
		},
		{
			name:    "Somente data",
			payload: `{"updated_at": "2024-03-15"}`,
			validate: func(t *testing.T, card FlowCard) {
				assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), card.UpdatedAt)
			},
		},
		{
			name:    "Data com hora sem fuso usa os dez primeiros caracteres",
			payload: `{"updated_at": "2024-03-15 10:00:00"}`,
			validate: func(t *testing.T, card FlowCard) {
				assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), card.UpdatedAt)
			},
		},
		{
			name:    "Data vazia",
			payload: `{"updated_at": ""}`,
			validate: func(t *testing.T, card FlowCard) {
				assert.True(t, card.UpdatedAt.IsZero())
			},
		},
		{
			name:    "Data nula",
			payload: `{"updated_at": null, "created_at": null}`,
			validate: func(t *testing.T, card FlowCard) {
				assert.True(t, card.UpdatedAt.IsZero())
				assert.True(t, card.CreatedAt.IsZero())
			},
		},
		{
			name:    "Data inválida",
			payload: `{"updated_at": "ontem"}`,
			validate: func(t *testing.T, card FlowCard) {
				assert.True(t, card.UpdatedAt.IsZero())
			},
		},
		{
			name:    "Leads em texto",
			payload: `{"leads_count": "3"}`,
			validate: func(t *testing.T, card FlowCard) {
				assert.Equal(t, 3, card.LeadsCount)
			},
		},
		{
			name:    "Leads inválido, negativo ou nulo",
			payload: `{"leads_count": "muitos"}`,
			validate: func(t *testing.T, card FlowCard) {
				assert.Zero(t, card.LeadsCount)

				var negative, null FlowCard
				require.NoError(t, json.Unmarshal([]byte(`{"leads_count": -2}`), &negative))
				require.NoError(t, json.Unmarshal([]byte(`{"leads_count": null}`), &null))
				assert.Zero(t, negative.LeadsCount)
				assert.Zero(t, null.LeadsCount)
			},
		},
		{
			name:    "Demais campos preservados",
			payload: `{"id": "c9", "title": "Site", "client_name": "ACME", "description": "landing", "entry_value": "1500.5", "leads_count": 4, "status": "concluido", "attendant_id": 7, "date": "2024-03-10"}`,
			validate: func(t *testing.T, card FlowCard) {
				assert.Equal(t, "c9", card.ID)
				assert.Equal(t, "Site", card.Title)
				assert.Equal(t, "ACME", card.ClientName)
				require.NotNil(t, card.Description)
				assert.Equal(t, "landing", *card.Description)
				assert.Equal(t, 1500.5, card.EntryValue.Float())
				assert.Equal(t, 4, card.LeadsCount)
				assert.Equal(t, CardStatusConcluido, card.Status)
				assert.Equal(t, "7", card.AttendantID)
				assert.Equal(t, "2024-03-10", card.Date)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var card FlowCard
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &card))
			tt.validate(t, card)
		})
	}

	t.Run("Ida e volta mantém o card", func(t *testing.T) {
		original := FlowCard{
			ID:         "c1",
			Status:     CardStatusRevisao,
			LeadsCount: 2,
			EntryValue: 300,
			CreatedAt:  time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			UpdatedAt:  time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
		}
		data, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded FlowCard
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, original, decoded)
	})
}
