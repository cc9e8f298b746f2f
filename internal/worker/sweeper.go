package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/dukerupert/payme/internal/domain"
	"github.com/dukerupert/payme/internal/telemetry"
)

// SweeperConfig holds sweeper configuration.
type SweeperConfig struct {
	// Interval is how often to run a sweep
	Interval time.Duration

	// MaxAge is how long a SENT invoice may stay open before it is
	// cancelled as overdue
	MaxAge time.Duration
}

// Sweeper cancels SENT invoices that have gone unpaid past the maximum age.
// Each overdue invoice takes the normal cancel path, so the PayPal invoice
// is cancelled too where possible.
type Sweeper struct {
	config   SweeperConfig
	invoices domain.InvoiceService
	metrics  *telemetry.BusinessMetrics
	logger   *slog.Logger
}

// NewSweeper creates an overdue invoice sweeper. The metrics may be nil in
// tests.
func NewSweeper(invoices domain.InvoiceService, config SweeperConfig, metrics *telemetry.BusinessMetrics, logger *slog.Logger) *Sweeper {
	if config.Interval == 0 {
		config.Interval = 24 * time.Hour
	}
	if config.MaxAge == 0 {
		config.MaxAge = 60 * 24 * time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Sweeper{
		config:   config,
		invoices: invoices,
		metrics:  metrics,
		logger:   logger,
	}
}

// Start runs sweeps until the context is cancelled. One sweep runs
// immediately so a restarted server does not wait a full interval.
func (s *Sweeper) Start(ctx context.Context) error {
	s.logger.Info("sweeper starting",
		slog.Duration("interval", s.config.Interval),
		slog.Duration("max_age", s.config.MaxAge),
	)

	s.Sweep(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sweeper shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs a single pass, cancelling SENT invoices created before the
// cutoff. Per-invoice failures are isolated inside the service call.
func (s *Sweeper) Sweep(ctx context.Context) {
	start := time.Now()
	cutoff := start.Add(-s.config.MaxAge)

	count, err := s.invoices.CancelOverdue(ctx, cutoff)

	if s.metrics != nil {
		s.metrics.SweepRuns.Inc()
		s.metrics.SweepDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			s.metrics.SweepErrors.Inc()
		}
		if count > 0 {
			s.metrics.SweepCancelled.Add(float64(count))
			s.metrics.InvoicesCancelled.WithLabelValues("sweeper").Add(float64(count))
		}
	}

	if err != nil {
		s.logger.Error("sweep failed",
			slog.Time("cutoff", cutoff),
			slog.Int("cancelled", count),
			slog.String("error", err.Error()))
		return
	}

	s.logger.Info("sweep complete",
		slog.Time("cutoff", cutoff),
		slog.Int("cancelled", count),
		slog.Duration("duration", time.Since(start)))
}
