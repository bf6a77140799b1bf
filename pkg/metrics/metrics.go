package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics коллектор prometheus-метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	dbQueryDuration     *prometheus.HistogramVec
	dbQueryErrors       *prometheus.CounterVec
	dbConnectionsOpen   *prometheus.GaugeVec
	dbConnectionsIdle   *prometheus.GaugeVec
	dbConnectionsInUse  *prometheus.GaugeVec
	cacheHits           *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
}

// New создает и регистрирует метрики в default-регистре
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),

		dbQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		dbConnectionsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		dbConnectionsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		dbConnectionsInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		cacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "cache_hits_total",
			Help:        "Total number of cache hits",
			ConstLabels: constLabels,
		}, []string{"cache"}),

		cacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "cache_misses_total",
			Help:        "Total number of cache misses",
			ConstLabels: constLabels,
		}, []string{"cache"}),
	}
}

// ObserveHTTPRequest фиксирует завершённый HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBConnections обновляет gauge-метрики пула соединений
func (m *Metrics) SetDBConnections(db string, open, idle, inUse int) {
	m.dbConnectionsOpen.WithLabelValues(db).Set(float64(open))
	m.dbConnectionsIdle.WithLabelValues(db).Set(float64(idle))
	m.dbConnectionsInUse.WithLabelValues(db).Set(float64(inUse))
}

// ObserveCacheHit фиксирует попадание в кеш
func (m *Metrics) ObserveCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// ObserveCacheMiss фиксирует промах кеша
func (m *Metrics) ObserveCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}
