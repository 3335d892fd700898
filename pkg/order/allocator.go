package order

import (
	"context"
	"log/slog"

	"github.com/aretw0/scenarist/internal/logging"
	"github.com/aretw0/scenarist/pkg/observability"
	"github.com/aretw0/scenarist/pkg/ports"
)

// Allocator is the scenario-level variant: it reads persisted step orders through a StepLister.
type Allocator struct {
	lister  ports.StepLister
	metrics *observability.Metrics
	logger  *slog.Logger
}

// Option configures the Allocator.
type Option func(*Allocator)

// WithMetrics records lookup outcomes.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Allocator) {
		a.metrics = m
	}
}

// WithLogger configures a logger for the Allocator.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Allocator) {
		a.logger = logger
	}
}

// NewAllocator creates an Allocator. A nil lister always proposes 1.
func NewAllocator(lister ports.StepLister, opts ...Option) *Allocator {
	a := &Allocator{
		lister: lister,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ForScenario returns the next order of scenarioID.
// A failed or empty lookup defaults to 1 instead of propagating the failure.
func (a *Allocator) ForScenario(ctx context.Context, scenarioID string) int {
	if a.lister == nil {
		a.metrics.OrderLookup(observability.LookupEmpty)
		return 1
	}

	orders, err := a.lister.StepOrders(ctx, scenarioID)
	if err != nil {
		a.logger.Warn("order lookup failed, defaulting to 1", "scenario_id", scenarioID, "error", err)
		a.metrics.OrderLookup(observability.LookupError)
		return 1
	}
	if len(orders) == 0 {
		a.metrics.OrderLookup(observability.LookupEmpty)
		return 1
	}

	a.metrics.OrderLookup(observability.LookupFound)
	return Next(orders)
}
