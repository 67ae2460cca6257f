package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "soko"

// Metrics holds the storefront's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	Requests     *prometheus.CounterVec
	Latency      *prometheus.HistogramVec
	CartOps      *prometheus.CounterVec
	Checkouts    *prometheus.CounterVec
	OrdersPlaced *prometheus.CounterVec
	gatherer     prometheus.Gatherer
}

// New registers the collectors on reg. Pass a fresh prometheus.NewRegistry()
// in tests so runs do not collide on the default registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		CartOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_operations_total",
			Help:      "Cart mutations by operation.",
		}, []string{"op"}),
		Checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_submissions_total",
			Help:      "Checkout submissions by outcome.",
		}, []string{"result"}),
		OrdersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Orders written, by payment method.",
		}, []string{"payment_method"}),
		gatherer: reg,
	}
	reg.MustRegister(m.Requests, m.Latency, m.CartOps, m.Checkouts, m.OrdersPlaced)
	return m
}

func (m *Metrics) CartOperation(op string) {
	if m == nil {
		return
	}
	m.CartOps.WithLabelValues(op).Inc()
}

func (m *Metrics) CheckoutSubmitted(result string) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(result).Inc()
}

func (m *Metrics) OrderPlaced(method string) {
	if m == nil {
		return
	}
	m.OrdersPlaced.WithLabelValues(method).Inc()
}

// Middleware counts every request under its route pattern so ids in the
// path do not blow up label cardinality.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.Requests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.Latency.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
