package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contadores Prometheus de la API. Usa un registry propio (no el global),
// así cada instancia de la app expone solo sus series.
// Un *Metrics nil es válido: los métodos no hacen nada.
type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	authAttempts  *prometheus.CounterVec
	productsAdded prometheus.Counter
}

// NewMetrics registra las métricas bajo el prefijo indicado (p. ej. "inventario").
func NewMetrics(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "http_requests_total",
			Help:      "Total de peticiones HTTP por método, ruta y status",
		}, []string{"method", "path", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: prefix,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		authAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "auth_attempts_total",
			Help:      "Intentos de login por resultado",
		}, []string{"result"}),
		productsAdded: f.NewCounter(prometheus.CounterOpts{
			Namespace: prefix,
			Name:      "products_added_total",
			Help:      "Productos agregados a algún catálogo",
		}),
	}
}

// Middleware mide cada petición. El label path es la ruta registrada (/api/inventory/:id),
// no la URL concreta.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		path := c.Route().Path
		m.requests.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone /metrics.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// AuthAttempt cuenta un intento de login ("success" o "failure").
func (m *Metrics) AuthAttempt(result string) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(result).Inc()
}

// ProductAdded cuenta un alta de producto.
func (m *Metrics) ProductAdded() {
	if m == nil {
		return
	}
	m.productsAdded.Inc()
}
