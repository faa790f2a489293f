package engine

import (
	"time"

	orderbookv1 "github.com/muhammadchandra19/bookreplay/internal/domain/orderbook/v1"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes replay progress to Prometheus. A nil *Metrics records
// nothing.
type Metrics struct {
	eventsProcessed *prometheus.CounterVec
	eventsRejected  *prometheus.CounterVec
	tradesReported  prometheus.Counter
	restingOrders   prometheus.Gauge
	bookLevels      *prometheus.GaugeVec
	applyLatency    prometheus.Histogram
}

// NewMetrics creates the replay metrics and registers them on registerer.
func NewMetrics(namespace string, registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		eventsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_processed_total",
			Help:      "Total number of events applied to the book",
		}, []string{"type"}),

		eventsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_rejected_total",
			Help:      "Total number of events rejected by error code",
		}, []string{"code"}),

		tradesReported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trades_reported_total",
			Help:      "Total executions reported on the trade side channel",
		}),

		restingOrders: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "resting_orders",
			Help:      "Current number of resting orders",
		}),

		bookLevels: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "book_levels",
			Help:      "Current number of price levels by side",
		}, []string{"side"}),

		applyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "apply_latency_seconds",
			Help:      "Time spent applying one event to the book",
			Buckets:   prometheus.ExponentialBuckets(50e-9, 2, 16),
		}),
	}

	registerer.MustRegister(
		m.eventsProcessed,
		m.eventsRejected,
		m.tradesReported,
		m.restingOrders,
		m.bookLevels,
		m.applyLatency,
	)

	return m
}

func (m *Metrics) observeApply(d time.Duration) {
	if m == nil {
		return
	}
	m.applyLatency.Observe(d.Seconds())
}

func (m *Metrics) processed(t orderbookv1.EventType, trade *orderbookv1.Trade) {
	if m == nil {
		return
	}
	m.eventsProcessed.WithLabelValues(t.String()).Inc()
	if trade != nil {
		m.tradesReported.Inc()
	}
}

func (m *Metrics) rejected(code string) {
	if m == nil {
		return
	}
	m.eventsRejected.WithLabelValues(code).Inc()
}

func (m *Metrics) book(ob orderbookv1.Orderbook) {
	if m == nil {
		return
	}
	m.restingOrders.Set(float64(ob.OrderCount()))
	m.bookLevels.WithLabelValues(orderbookv1.SideBid.String()).Set(float64(ob.Depth(orderbookv1.SideBid)))
	m.bookLevels.WithLabelValues(orderbookv1.SideAsk.String()).Set(float64(ob.Depth(orderbookv1.SideAsk)))
}
