package service

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gropc-project/gropc-go/pkg/interaction"
	"github.com/gropc-project/gropc-go/pkg/subscription"
)

// GatewayMetrics collects gateway counters for Prometheus. It observes the
// subscription registry and the gateway service.
type GatewayMetrics struct {
	subscriptionsActive   prometheus.Gauge
	subscriptionsOpened   prometheus.Counter
	subscriptionsClosed   *prometheus.CounterVec
	notificationsSent     prometheus.Counter
	notificationsDropped  *prometheus.CounterVec
	readsTotal            *prometheus.CounterVec
	writesTotal           *prometheus.CounterVec
	requestDurationSecond *prometheus.HistogramVec
}

// Compile-time interface satisfaction checks.
var (
	_ subscription.Observer = (*GatewayMetrics)(nil)
	_ interaction.Metrics   = (*GatewayMetrics)(nil)
)

func newCounterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gropc",
		Name:      name,
		Help:      help,
	}, labels)
}

// NewGatewayMetrics creates the collectors and registers them with reg.
func NewGatewayMetrics(reg prometheus.Registerer) (*GatewayMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &GatewayMetrics{
		subscriptionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gropc",
			Name:      "subscriptions_active",
			Help:      "Number of live subscriptions",
		}),
		subscriptionsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gropc",
			Name:      "subscriptions_opened_total",
			Help:      "Total number of accepted subscriptions",
		}),
		subscriptionsClosed: newCounterVec("subscriptions_closed_total", "Total number of torn down subscriptions", "reason"),
		notificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gropc",
			Name:      "notifications_sent_total",
			Help:      "Total number of notifications written to client streams",
		}),
		notificationsDropped: newCounterVec("notifications_dropped_total", "Total number of notifications that could not be delivered", "reason"),
		readsTotal:           newCounterVec("reads_total", "Total number of ReadValue calls", "result"),
		writesTotal:          newCounterVec("writes_total", "Total number of WriteValue calls", "status"),
		requestDurationSecond: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gropc",
			Name:      "request_duration_seconds",
			Help:      "Duration of unary gateway requests",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"operation"}),
	}

	collectors := []prometheus.Collector{
		m.subscriptionsActive,
		m.subscriptionsOpened,
		m.subscriptionsClosed,
		m.notificationsSent,
		m.notificationsDropped,
		m.readsTotal,
		m.writesTotal,
		m.requestDurationSecond,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// SubscriptionOpened implements subscription.Observer.
func (m *GatewayMetrics) SubscriptionOpened() {
	m.subscriptionsOpened.Inc()
	m.subscriptionsActive.Inc()
}

// SubscriptionClosed implements subscription.Observer.
func (m *GatewayMetrics) SubscriptionClosed(reason string) {
	m.subscriptionsClosed.WithLabelValues(reason).Inc()
	m.subscriptionsActive.Dec()
}

// NotificationSent implements subscription.Observer.
func (m *GatewayMetrics) NotificationSent() {
	m.notificationsSent.Inc()
}

// NotificationDropped implements subscription.Observer.
func (m *GatewayMetrics) NotificationDropped(reason string) {
	m.notificationsDropped.WithLabelValues(reason).Inc()
}

// ObserveRead implements interaction.Metrics.
func (m *GatewayMetrics) ObserveRead(err error, elapsed time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.readsTotal.WithLabelValues(result).Inc()
	m.requestDurationSecond.WithLabelValues("read").Observe(elapsed.Seconds())
}

// ObserveWrite implements interaction.Metrics.
func (m *GatewayMetrics) ObserveWrite(status string, elapsed time.Duration) {
	m.writesTotal.WithLabelValues(status).Inc()
	m.requestDurationSecond.WithLabelValues("write").Observe(elapsed.Seconds())
}

// metricsHandler serves the collectors of g on /metrics.
func metricsHandler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}
