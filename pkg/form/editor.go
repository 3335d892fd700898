// Package form implements the single-step admin form flow: templating the data
// field on step type selection and proposing an order when a scenario is chosen.
package form

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/aretw0/scenarist/internal/logging"
	"github.com/aretw0/scenarist/pkg/catalog"
	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/aretw0/scenarist/pkg/guard"
	"github.com/aretw0/scenarist/pkg/observability"
	"github.com/aretw0/scenarist/pkg/order"
	"github.com/aretw0/scenarist/pkg/ports"
)

// MsgDataUpdated is shown after the data field was replaced by a template.
const MsgDataUpdated = "Данные шага обновлены согласно выбранному типу"

// Editor reacts to changes of a step form.
type Editor struct {
	catalog   *catalog.Catalog
	guard     guard.Strategy
	allocator *order.Allocator
	presenter ports.Presenter
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// Option configures the Editor.
type Option func(*Editor)

// WithCatalog sets the template catalog. Defaults to catalog.Default().
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Editor) {
		e.catalog = c
	}
}

// WithGuard replaces the template detection strategy.
func WithGuard(s guard.Strategy) Option {
	return func(e *Editor) {
		e.guard = s
	}
}

// WithAllocator sets the scenario-level order allocator.
// Without one, ScenarioChanged always proposes 1.
func WithAllocator(a *order.Allocator) Option {
	return func(e *Editor) {
		e.allocator = a
	}
}

// WithPresenter sets where notifications are shown.
func WithPresenter(p ports.Presenter) Option {
	return func(e *Editor) {
		e.presenter = p
	}
}

func WithMetrics(m *observability.Metrics) Option {
	return func(e *Editor) {
		e.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// NewEditor creates an Editor over the built-in catalog unless configured otherwise.
func NewEditor(opts ...Option) *Editor {
	e := &Editor{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.catalog == nil {
		e.catalog = catalog.Default()
	}
	if e.guard == nil {
		e.guard = guard.ForCatalog(e.catalog)
	}
	if e.allocator == nil {
		e.allocator = order.NewAllocator(nil, order.WithLogger(e.logger), order.WithMetrics(e.metrics))
	}
	return e
}

// Catalog returns the catalog the Editor templates from.
func (e *Editor) Catalog() *catalog.Catalog {
	return e.catalog
}

// Guard returns the template detection strategy.
func (e *Editor) Guard() guard.Strategy {
	return e.guard
}

// ApplyTemplate seeds the data field of f with the template of stepType when
// the field is empty or still holds a template. It reports whether the field
// was replaced. Unknown step types and forms without a data field are no-ops.
func (e *Editor) ApplyTemplate(f ports.Fields, stepType domain.StepType) bool {
	tmpl, ok := e.catalog.Template(stepType)
	if !ok {
		e.logger.Debug("no template for step type", "step_type", stepType)
		return false
	}
	current, ok := f.Value(domain.FieldData)
	if !ok {
		return false
	}

	if current != "" {
		overwrite := guard.Overwritable(e.guard, current)
		e.metrics.GuardDecision(overwrite)
		if !overwrite {
			e.logger.Debug("data field edited by author, preserved", "step_type", stepType)
			return false
		}
	}

	doc, err := tmpl.Document()
	if err != nil {
		e.logger.Error("failed to render template", "step_type", stepType, "err", err)
		return false
	}
	if !f.SetValue(domain.FieldData, doc) {
		return false
	}
	e.metrics.TemplateApplied(string(stepType))
	return true
}

// SelectStepType handles the author choosing a step type on the form.
// When the data field was templated, the author is notified.
func (e *Editor) SelectStepType(f ports.Fields, stepType domain.StepType) bool {
	if !e.ApplyTemplate(f, stepType) {
		return false
	}
	if e.presenter != nil {
		e.presenter.Show(MsgDataUpdated, domain.SeveritySuccess)
	}
	return true
}

// ScenarioChanged proposes the next order of the chosen scenario.
// It only acts when a scenario is set and the order field is empty; an order
// typed by the author is never replaced. It returns the assigned order.
func (e *Editor) ScenarioChanged(ctx context.Context, f ports.Fields, scenarioID string) (int, bool) {
	if scenarioID == "" {
		return 0, false
	}
	current, ok := f.Value(domain.FieldOrder)
	if !ok || current != "" {
		return 0, false
	}

	next := e.allocator.ForScenario(ctx, scenarioID)

	// The author may have typed an order while the lookup was in flight.
	if current, _ := f.Value(domain.FieldOrder); current != "" {
		return 0, false
	}
	if !f.SetValue(domain.FieldOrder, strconv.Itoa(next)) {
		return 0, false
	}
	return next, true
}
