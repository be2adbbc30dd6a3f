package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/barbershop-booking/internal/events"
)

type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	bookings     *prometheus.CounterVec
	notify       *prometheus.CounterVec
	wsClients    prometheus.Gauge
}

func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de requisições HTTP.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latência das requisições HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_events_total",
			Help:      "Eventos do ciclo de vida das reservas.",
		}, []string{"type", "status"}),
		notify: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Envios de notificação por canal e resultado.",
		}, []string{"channel", "result"}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "realtime_clients",
			Help:      "Conexões WebSocket abertas.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.bookings,
		m.notify,
		m.wsClients,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware usa o path da rota (c.FullPath) para não explodir cardinalidade.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		m.httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Publish conta eventos de reserva (events.Publisher).
func (m *Metrics) Publish(ev events.Event) {
	if ev.Booking == nil {
		return
	}
	m.bookings.WithLabelValues(ev.Type, ev.Booking.Status).Inc()
}

func (m *Metrics) NotificationResult(channel string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.notify.WithLabelValues(channel, result).Inc()
}

func (m *Metrics) ClientConnected()    { m.wsClients.Inc() }
func (m *Metrics) ClientDisconnected() { m.wsClients.Dec() }
