package observability

import (
	"net/http"
	"strconv"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for auth_operations_total.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics owns a private Prometheus registry and the collectors registered on it.
type Metrics struct {
	registry            *prometheus.Registry
	authOperations      *prometheus.CounterVec
	reservationsCreated prometheus.Counter
	httpRequests        *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		authOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_operations_total",
			Help: "Customer auth operations by operation and outcome",
		}, []string{"operation", "outcome"}),
		reservationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reservations_created_total",
			Help: "Reservations successfully created",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method and status code",
		}, []string{"method", "status"}),
	}
	reg.MustRegister(
		m.authOperations,
		m.reservationsCreated,
		m.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// AuthOperation records one auth operation. A nil error counts as success.
func (m *Metrics) AuthOperation(operation string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.authOperations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ReservationCreated() { m.reservationsCreated.Inc() }

// Middleware counts every request once the handler has written its status.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequests.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()
	})
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
