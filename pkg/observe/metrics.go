package observe

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shopkit-dev/shopkit/pkg/cart"
	"github.com/shopkit-dev/shopkit/pkg/checkout"
	"github.com/shopkit-dev/shopkit/pkg/session"
)

// MetricsConfig configures the Prometheus instrumentation.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "shopkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for operation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus instrumentation.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "shopkit",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus metrics for the storefront stores.
type Metrics struct {
	authTotal        *prometheus.CounterVec
	authDuration     *prometheus.HistogramVec
	cartOpsTotal     *prometheus.CounterVec
	checkoutTotal    *prometheus.CounterVec
	checkoutDuration prometheus.Histogram
	authenticated    prometheus.Gauge
}

// NewMetrics registers and returns the store metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)

	return &Metrics{
		authTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "auth_operations_total",
			Help:        "Session operations by operation and outcome.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"op", "outcome"}),

		authDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "auth_duration_seconds",
			Help:        "Duration of login and register attempts.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"op"}),

		cartOpsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "cart_operations_total",
			Help:        "Cart mutations by operation.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"op"}),

		checkoutTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "checkout_payments_total",
			Help:        "Payment attempts by outcome.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"outcome"}),

		checkoutDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "checkout_duration_seconds",
			Help:        "Duration of simulated payment processing.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}),

		authenticated: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "session_authenticated",
			Help:        "1 while a user is logged in, 0 otherwise.",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

// SessionHook returns a hook for session.WithHook.
func (m *Metrics) SessionHook() session.Hook {
	return func(op string, err error, d time.Duration) {
		m.authTotal.WithLabelValues(op, outcome(err)).Inc()

		switch op {
		case "login", "register":
			m.authDuration.WithLabelValues(op).Observe(d.Seconds())
			if err == nil {
				m.authenticated.Set(1)
			}
		case "logout":
			m.authenticated.Set(0)
		}
	}
}

// CartHook returns a hook for cart.WithHook.
func (m *Metrics) CartHook() cart.Hook {
	return func(op string) {
		m.cartOpsTotal.WithLabelValues(op).Inc()
	}
}

// CheckoutHook returns a hook for checkout.WithHook.
func (m *Metrics) CheckoutHook() checkout.Hook {
	return func(err error, d time.Duration) {
		m.checkoutTotal.WithLabelValues(outcome(err)).Inc()
		if err == nil {
			m.checkoutDuration.Observe(d.Seconds())
		}
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
