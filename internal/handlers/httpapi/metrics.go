package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the instrumentation for the attendance flows. Each
// handler owns its registry so tests can build handlers freely.
type metrics struct {
	registry *prometheus.Registry

	sessionsStarted prometheus.Counter
	sessionsEnded   prometheus.Counter
	checkIns        *prometheus.CounterVec
	checkInFailures *prometheus.CounterVec
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()

	m := &metrics{
		registry: registry,
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attendify_sessions_started_total",
			Help: "Number of attendance sessions started.",
		}),
		sessionsEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attendify_sessions_ended_total",
			Help: "Number of attendance sessions ended.",
		}),
		checkIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendify_checkins_total",
			Help: "Number of accepted check-ins.",
		}, []string{"method", "status"}),
		checkInFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendify_checkin_failures_total",
			Help: "Number of rejected check-ins.",
		}, []string{"reason"}),
	}

	registry.MustRegister(m.sessionsStarted, m.sessionsEnded, m.checkIns, m.checkInFailures)

	return m
}

func (h *Handler) metricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(h.metrics.registry, promhttp.HandlerOpts{}))
}
