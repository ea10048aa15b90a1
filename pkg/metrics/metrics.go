package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database
	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	// Бизнес-метрики
	CommissionsCalculated *prometheus.CounterVec
	CommissionNetAmount   *prometheus.HistogramVec
	AppointmentsCompleted *prometheus.CounterVec
	CacheRequests         *prometheus.CounterVec
}

// New регистрирует метрики в глобальном registry (используется promhttp.Handler)
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry регистрирует метрики в указанном registry
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),

		DBInUseConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),

		DBIdleConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),

		DBWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		CommissionsCalculated: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "commissions_calculated_total",
			Help:        "Number of commission calculations by source",
			ConstLabels: constLabels,
		}, []string{"source"}),

		CommissionNetAmount: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "commission_net_amount_brl",
			Help:        "Net commission per completed appointment, BRL",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 10, 25, 50, 100, 200, 400, 800},
		}, []string{"payment_method"}),

		AppointmentsCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_completed_total",
			Help:        "Number of completed appointments by payment method",
			ConstLabels: constLabels,
		}, []string{"payment_method"}),

		CacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "cache_requests_total",
			Help:        "Cache lookups by cache name and result",
			ConstLabels: constLabels,
		}, []string{"cache", "result"}),
	}
}

// ObserveCommission учитывает расчет комиссии
// Безопасно вызывать на nil (метрики выключены)
func (m *Metrics) ObserveCommission(source string) {
	if m == nil {
		return
	}
	m.CommissionsCalculated.WithLabelValues(source).Inc()
}

// ObserveCompletion учитывает завершение записи
func (m *Metrics) ObserveCompletion(paymentMethod string, netAmount float64) {
	if m == nil {
		return
	}
	m.AppointmentsCompleted.WithLabelValues(paymentMethod).Inc()
	m.CommissionNetAmount.WithLabelValues(paymentMethod).Observe(netAmount)
}

// ObserveCache учитывает попадание/промах кэша
func (m *Metrics) ObserveCache(cache string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheRequests.WithLabelValues(cache, result).Inc()
}
