package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summary struct {
	Revenue float64 `json:"revenue"`
}

func newTestCache(t *testing.T) (*KPICache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewKPICache(client, time.Minute, time.Second), mr
}

func countingLoader(calls *int, value float64) Loader {
	return func(context.Context) (any, error) {
		*calls++
		return summary{Revenue: value}, nil
	}
}

func TestKPICache_BuildKey(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	key, err := c.BuildKey(ctx, "summary", "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, "kpi:summary:2024-03-01:2024-03-31:1", key)

	require.NoError(t, c.Bump(ctx))

	key, err = c.BuildKey(ctx, "summary", "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, "kpi:summary:2024-03-01:2024-03-31:2", key)
}

func TestKPICache_FetchJSON(t *testing.T) {
	tests := []struct {
		name     string
		validate func(t *testing.T, c *KPICache, mr *miniredis.Miniredis)
	}{
		{
			name: "Segunda consulta usa o cache",
			validate: func(t *testing.T, c *KPICache, mr *miniredis.Miniredis) {
				calls := 0
				var first, second summary
				require.NoError(t, c.FetchJSON(context.Background(), &first, countingLoader(&calls, 2000), "summary", "03"))
				require.NoError(t, c.FetchJSON(context.Background(), &second, countingLoader(&calls, 9999), "summary", "03"))

				assert.Equal(t, 1, calls)
				assert.Equal(t, 2000.0, second.Revenue)
			},
		},
		{
			name: "Bump invalida as visões",
			validate: func(t *testing.T, c *KPICache, mr *miniredis.Miniredis) {
				calls := 0
				var out summary
				require.NoError(t, c.FetchJSON(context.Background(), &out, countingLoader(&calls, 2000), "summary"))
				require.NoError(t, c.Bump(context.Background()))
				require.NoError(t, c.FetchJSON(context.Background(), &out, countingLoader(&calls, 2500), "summary"))

				assert.Equal(t, 2, calls)
				assert.Equal(t, 2500.0, out.Revenue)
			},
		},
		{
			name: "Redis fora do ar calcula sem cache",
			validate: func(t *testing.T, c *KPICache, mr *miniredis.Miniredis) {
				mr.Close()

				calls := 0
				var out summary
				require.NoError(t, c.FetchJSON(context.Background(), &out, countingLoader(&calls, 1500), "summary"))

				assert.Equal(t, 1, calls)
				assert.Equal(t, 1500.0, out.Revenue)
			},
		},
		{
			name: "Erro do loader é devolvido",
			validate: func(t *testing.T, c *KPICache, mr *miniredis.Miniredis) {
				loadErr := errors.New("banco indisponível")
				var out summary
				err := c.FetchJSON(context.Background(), &out, func(context.Context) (any, error) {
					return nil, loadErr
				}, "summary")

				assert.ErrorIs(t, err, loadErr)
			},
		},
		{
			name: "Valor corrompido é recalculado",
			validate: func(t *testing.T, c *KPICache, mr *miniredis.Miniredis) {
				key, err := c.BuildKey(context.Background(), "summary")
				require.NoError(t, err)
				require.NoError(t, mr.Set(key, "{nao-e-json"))

				calls := 0
				var out summary
				require.NoError(t, c.FetchJSON(context.Background(), &out, countingLoader(&calls, 42), "summary"))

				assert.Equal(t, 1, calls)
				assert.Equal(t, 42.0, out.Revenue)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mr := newTestCache(t)
			tt.validate(t, c, mr)
		})
	}
}

func TestKPICache_Disabled(t *testing.T) {
	var nilCache *KPICache
	disabled := NewKPICache(nil, 0, 0)

	for _, c := range []*KPICache{nilCache, disabled} {
		assert.False(t, c.Enabled())
		assert.NoError(t, c.Bump(context.Background()))

		calls := 0
		var out summary
		require.NoError(t, c.FetchJSON(context.Background(), &out, countingLoader(&calls, 10), "summary"))
		require.NoError(t, c.FetchJSON(context.Background(), &out, countingLoader(&calls, 10), "summary"))
		assert.Equal(t, 2, calls)
		assert.Equal(t, 10.0, out.Revenue)
	}
}

func TestKPICache_Ping(t *testing.T) {
	var disabled *KPICache
	assert.NoError(t, disabled.Ping(context.Background()))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	kpiCache := NewKPICache(client, time.Minute, time.Second)
	assert.NoError(t, kpiCache.Ping(context.Background()))

	mr.Close()
	assert.Error(t, kpiCache.Ping(context.Background()))
}
