package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for invoice-level observability.
// Guild IDs are deliberately not used as labels; cardinality would grow with
// every Discord server that installs the bot.
type BusinessMetrics struct {
	// Invoice lifecycle
	InvoicesCreated   *prometheus.CounterVec
	InvoicesSent      prometheus.Counter
	InvoicesPaid      *prometheus.CounterVec
	InvoicesCancelled *prometheus.CounterVec
	InvoicesDeleted   prometheus.Counter
	InvoiceWarnings   *prometheus.CounterVec
	InvoiceAmount     *prometheus.HistogramVec

	// PayPal webhook reconciliation
	WebhookReceived  *prometheus.CounterVec
	WebhookProcessed *prometheus.CounterVec
	WebhookFailed    *prometheus.CounterVec
	WebhookLatency   *prometheus.HistogramVec

	// Overdue sweeper
	SweepRuns      prometheus.Counter
	SweepCancelled prometheus.Counter
	SweepErrors    prometheus.Counter
	SweepDuration  prometheus.Histogram

	// Discord notifications
	NotificationsSent   *prometheus.CounterVec
	NotificationsFailed *prometheus.CounterVec

	// External API performance
	PayPalAPILatency *prometheus.HistogramVec
}

// NewBusinessMetrics creates and registers all business metrics.
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "payme"
	}

	subsystem := "business"

	return &BusinessMetrics{
		InvoicesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "invoices_created_total",
				Help:      "Total invoices created",
			},
			[]string{"currency"},
		),
		InvoicesSent: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "invoices_sent_total",
				Help:      "Total invoices delivered through PayPal",
			},
		),
		InvoicesPaid: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "invoices_paid_total",
				Help:      "Total invoices marked paid",
			},
			[]string{"currency"},
		),
		InvoicesCancelled: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "invoices_cancelled_total",
				Help:      "Total invoices cancelled",
			},
			[]string{"source"}, // source: api, webhook, sweeper
		),
		InvoicesDeleted: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "invoices_deleted_total",
				Help:      "Total invoices deleted",
			},
		),
		InvoiceWarnings: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "invoice_warnings_total",
				Help:      "Total invoices created with a degraded PayPal step",
			},
			[]string{"warning"},
		),
		InvoiceAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "invoice_amount",
				Help:      "Invoice amounts in the invoice currency",
				Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000, 10000},
			},
			[]string{"currency"},
		),

		WebhookReceived: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "webhooks_received_total",
				Help:      "Total PayPal webhook deliveries received",
			},
			[]string{"event_type"},
		),
		WebhookProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "webhooks_processed_total",
				Help:      "Total webhook deliveries that changed local state",
			},
			[]string{"event_type"},
		),
		WebhookFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "webhooks_failed_total",
				Help:      "Total webhook deliveries that failed processing",
			},
			[]string{"event_type", "reason"},
		),
		WebhookLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "webhook_processing_seconds",
				Help:      "Webhook processing duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"event_type"},
		),

		SweepRuns: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sweep_runs_total",
				Help:      "Total overdue sweeper runs",
			},
		),
		SweepCancelled: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sweep_cancelled_total",
				Help:      "Total invoices cancelled by the overdue sweeper",
			},
		),
		SweepErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sweep_errors_total",
				Help:      "Total sweeper runs that returned an error",
			},
		),
		SweepDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sweep_duration_seconds",
				Help:      "Overdue sweeper run duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),

		NotificationsSent: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "notifications_sent_total",
				Help:      "Total Discord webhook notifications delivered",
			},
			[]string{"kind"}, // kind: payment, reminder
		),
		NotificationsFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "notifications_failed_total",
				Help:      "Total Discord webhook notifications that failed",
			},
			[]string{"kind"},
		),

		PayPalAPILatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "paypal_api_seconds",
				Help:      "PayPal API call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}
