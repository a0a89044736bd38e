package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"github.com/vfg2006/flow-erp-api/pkg/log"
	"github.com/vfg2006/flow-erp-api/pkg/metrics"
)

const (
	versionKey   = "kpi:version"
	bumpChannel  = "kpi.bump"
	keyPrefix    = "kpi"
	defaultTTL   = 5 * time.Minute
	breakerName  = "kpi-cache"
	minBreakerTO = time.Second
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Loader calcula o valor quando ele não está no cache
type Loader func(ctx context.Context) (any, error)

// KPICache guarda as visões calculadas no Redis sob uma versão global.
// Toda alteração de dados incrementa a versão, o que invalida as chaves antigas.
// Falhas do Redis nunca viram erro para o chamador: o loader é executado direto.
type KPICache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker
}

// NewKPICache cria o cache. Cliente nil desativa o cache.
func NewKPICache(client *redis.Client, ttl, breakerTimeout time.Duration) *KPICache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if breakerTimeout < minBreakerTO {
		breakerTimeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.L.WithFields(log.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker do cache mudou de estado")
		},
	})

	return &KPICache{client: client, ttl: ttl, breaker: breaker}
}

// Enabled informa se há Redis configurado
func (c *KPICache) Enabled() bool {
	return c != nil && c.client != nil
}

// Ping verifica o Redis. Cache desabilitado não é falha.
func (c *KPICache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Version retorna a versão atual, inicializando quando ausente
func (c *KPICache) Version(ctx context.Context) (int64, error) {
	if !c.Enabled() {
		return 0, nil
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		ver, err := c.client.Get(ctx, versionKey).Int64()
		if errors.Is(err, redis.Nil) || (err == nil && ver <= 0) {
			if err := c.client.Set(ctx, versionKey, 1, 0).Err(); err != nil {
				return int64(0), err
			}
			return int64(1), nil
		}
		return ver, err
	})
	if err != nil {
		return 0, err
	}

	return result.(int64), nil
}

// BuildKey monta a chave com o prefixo e a versão atual
func (c *KPICache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(append([]string{keyPrefix}, parts...), ":")
	if !c.Enabled() {
		return joined, nil
	}

	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s:%d", joined, ver), nil
}

// FetchJSON preenche dest com o valor em cache ou com o resultado do loader.
// Erros do loader são devolvidos; erros do Redis só são registrados.
func (c *KPICache) FetchJSON(ctx context.Context, dest any, loader Loader, parts ...string) error {
	if loader == nil {
		return errors.New("cache: loader obrigatório")
	}

	if !c.Enabled() {
		metrics.CacheRequestsTotal.WithLabelValues(metrics.CacheDisabled).Inc()
		return loadInto(ctx, dest, loader)
	}

	logger := log.ForContext(ctx)

	key, err := c.BuildKey(ctx, parts...)
	if err != nil {
		metrics.CacheRequestsTotal.WithLabelValues(metrics.CacheError).Inc()
		logger.WithError(err).Warn("Cache indisponível, calculando indicadores sem cache")
		return loadInto(ctx, dest, loader)
	}

	cached, err := c.breaker.Execute(func() (interface{}, error) {
		return c.client.Get(ctx, key).Bytes()
	})
	switch {
	case err == nil:
		if err := json.Unmarshal(cached.([]byte), dest); err == nil {
			metrics.CacheRequestsTotal.WithLabelValues(metrics.CacheHit).Inc()
			return nil
		}
		logger.WithField("key", key).Warn("Valor inválido no cache, recalculando")
		metrics.CacheRequestsTotal.WithLabelValues(metrics.CacheMiss).Inc()
	case errors.Is(err, redis.Nil):
		metrics.CacheRequestsTotal.WithLabelValues(metrics.CacheMiss).Inc()
	default:
		metrics.CacheRequestsTotal.WithLabelValues(metrics.CacheError).Inc()
		logger.WithError(err).Warn("Erro ao ler o cache, calculando indicadores sem cache")
		return loadInto(ctx, dest, loader)
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if _, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.client.Set(ctx, key, raw, c.ttl).Err()
	}); err != nil {
		logger.WithError(err).Warn("Erro ao gravar indicadores no cache")
	}

	return json.Unmarshal(raw, dest)
}

// Bump invalida todas as visões incrementando a versão e publica o evento
func (c *KPICache) Bump(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		ver, err := c.client.Incr(ctx, versionKey).Result()
		if err != nil {
			return nil, err
		}
		return nil, c.client.Publish(ctx, bumpChannel, strconv.FormatInt(ver, 10)).Err()
	})

	return err
}

func loadInto(ctx context.Context, dest any, loader Loader) error {
	value, err := loader(ctx)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, dest)
}
