package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics глобальный контейнер метрик
type Metrics struct {
	// Бизнес-метрики
	SolveOperationsTotal *prometheus.CounterVec
	SolveDuration        *prometheus.HistogramVec
	BestEvaluation       *prometheus.GaugeVec
	LocalSearchPasses    *prometheus.CounterVec
	MovesApplied         *prometheus.CounterVec
	OuterIterations      *prometheus.HistogramVec

	// Информация о сервисе
	ServiceInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// InitMetrics инициализирует метрики
func InitMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		SolveOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_operations_total",
				Help:      "Total number of solve operations",
			},
			[]string{"algorithm", "status"},
		),

		SolveDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_duration_seconds",
				Help:      "Duration of solve operations",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"algorithm"},
		),

		BestEvaluation: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "best_evaluation",
				Help:      "Best solution evaluation found so far",
			},
			[]string{"algorithm", "instance"},
		),

		LocalSearchPasses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "local_search_passes_total",
				Help:      "Total number of full neighborhood passes",
			},
			[]string{"algorithm"},
		),

		MovesApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "moves_applied_total",
				Help:      "Total number of improving moves applied",
			},
			[]string{"algorithm", "move_type"},
		),

		OuterIterations: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "outer_iterations",
				Help:      "Outer loop iterations per driver run",
				Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
			},
			[]string{"algorithm"},
		),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "info",
				Help:      "Service information",
			},
			[]string{"version", "name"},
		),
	}

	defaultMetrics = m
	return m
}

// Default возвращает глобальный контейнер метрик (может быть nil)
func Default() *Metrics {
	return defaultMetrics
}

// ObserveSolve записывает результат одной операции решения
func (m *Metrics) ObserveSolve(algorithm, status string, duration time.Duration) {
	m.SolveOperationsTotal.WithLabelValues(algorithm, status).Inc()
	m.SolveDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
}

// Handler возвращает HTTP handler для экспорта метрик
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve запускает HTTP сервер метрик (блокирующий вызов).
// Экспорт опционален и по умолчанию выключен.
func Serve(addr, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, Handler())
	return http.ListenAndServe(addr, mux)
}
