package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "landscape"

// Исходы вызовов провайдеров и тиров резолвинга
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Registry - реестр всех метрик сервиса
var Registry = prometheus.NewRegistry()

var (
	// ProviderRequestsTotal - вызовы внешних провайдеров по исходу
	ProviderRequestsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Total number of external provider requests",
		},
		[]string{"provider", "operation", "outcome"},
	)

	// ProviderRequestDuration - латентность внешних провайдеров
	ProviderRequestDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "External provider request latency in seconds",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "operation"},
	)

	// ResolutionTierTotal - исходы тиров геокодирования и поиска границы
	ResolutionTierTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolution_tier_total",
			Help:      "Resolution tier attempts by stage, tier and outcome",
		},
		[]string{"stage", "tier", "outcome"},
	)

	// LayersSkippedTotal - слои, пропущенные при анализе
	LayersSkippedTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_layers_skipped_total",
			Help:      "Layer items skipped during analysis because of missing or corrupt data",
		},
		[]string{"category"},
	)

	// AnalysisDuration - длительность анализа
	AnalysisDuration = promauto.With(Registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Overlap and proximity analysis duration in seconds",
			Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5},
		},
	)

	// LayersLoaded - количество слоев в инвентаре после последней загрузки
	LayersLoaded = promauto.With(Registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "layers_loaded",
			Help:      "Number of layer items in the inventory after the last load",
		},
	)

	// WorkerMessagesTotal - сообщения, обработанные воркером
	WorkerMessagesTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_messages_total",
			Help:      "Stream messages handled by workers",
		},
		[]string{"worker", "outcome"},
	)

	// HTTPRequestsTotal - HTTP запросы по методу, маршруту и статусу
	HTTPRequestsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration - латентность HTTP запросов
	HTTPRequestDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObserveProvider записывает вызов провайдера. found=false при err=nil означает "нет результатов"
func ObserveProvider(provider, operation string, start time.Time, found bool, err error) {
	ProviderRequestDuration.WithLabelValues(provider, operation).Observe(time.Since(start).Seconds())
	ProviderRequestsTotal.WithLabelValues(provider, operation, Outcome(found, err)).Inc()
}

// ObserveTier записывает исход тира резолвинга
func ObserveTier(stage, tier string, found bool, err error) {
	ResolutionTierTotal.WithLabelValues(stage, tier, Outcome(found, err)).Inc()
}

// Outcome сворачивает результат вызова в метку
func Outcome(found bool, err error) string {
	switch {
	case err != nil:
		return OutcomeError
	case found:
		return OutcomeSuccess
	default:
		return OutcomeNotFound
	}
}

// Handler - http.Handler для /metrics
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
