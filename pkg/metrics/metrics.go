package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Métricas de negócio
	KPIComputationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flow_erp_kpi_computations_total",
		Help: "Total de cálculos de indicadores por visão",
	}, []string{"view"})

	KPIComputeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flow_erp_kpi_compute_duration_seconds",
		Help:    "Tempo de carga e cálculo dos indicadores",
		Buckets: prometheus.DefBuckets,
	}, []string{"view"})

	SnapshotsSavedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flow_erp_kpi_snapshots_saved_total",
		Help: "Total de fotografias mensais de indicadores gravadas",
	})

	// Métricas de infraestrutura
	CacheRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flow_erp_cache_requests_total",
		Help: "Consultas ao cache de indicadores por resultado",
	}, []string{"result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flow_erp_http_request_duration_seconds",
		Help:    "Latência das requisições HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})
)

// Resultados possíveis de uma consulta ao cache
const (
	CacheHit      = "hit"
	CacheMiss     = "miss"
	CacheError    = "error"
	CacheDisabled = "disabled"
)
