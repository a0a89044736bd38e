package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		wantErr  bool
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "Sem chave secreta falha",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name: "Valores padrão",
			env:  map[string]string{"SECRET_KEY": "segredo"},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "postgres://postgres:@localhost:5432/flow?sslmode=disable", cfg.Database.DSN)
				assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
				assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
				assert.Empty(t, cfg.Redis.Addr)
				assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
				assert.False(t, cfg.KPISnapshot.Enabled)
				assert.Equal(t, 1, cfg.KPISnapshot.MonthLookBack)
			},
		},
		{
			name: "Variáveis de ambiente sobrescrevem",
			env: map[string]string{
				"SECRET_KEY":                  "segredo",
				"REDIS_ADDR":                  "redis:6379",
				"KPI_CACHE_TTL":               "30s",
				"KPI_SNAPSHOT_ENABLED":        "true",
				"KPI_SNAPSHOT_MONTH_LOOKBACK": "0",
				"CORS_ALLOWED_ORIGINS":        "https://app.flow.com.br",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "redis:6379", cfg.Redis.Addr)
				assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
				assert.True(t, cfg.KPISnapshot.Enabled)
				assert.Equal(t, 1, cfg.KPISnapshot.MonthLookBack, "lookback mínimo é 1")
				assert.Equal(t, []string{"https://app.flow.com.br"}, cfg.CORS.AllowedOrigins)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Setenv("SECRET_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := NewConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}
