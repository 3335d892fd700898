package scenarist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/scenarist/internal/logging"
	"github.com/aretw0/scenarist/pkg/catalog"
	"github.com/aretw0/scenarist/pkg/composer"
	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/aretw0/scenarist/pkg/form"
	"github.com/aretw0/scenarist/pkg/guard"
	"github.com/aretw0/scenarist/pkg/jsonfield"
	"github.com/aretw0/scenarist/pkg/notify"
	"github.com/aretw0/scenarist/pkg/observability"
	"github.com/aretw0/scenarist/pkg/order"
	"github.com/aretw0/scenarist/pkg/ports"
	"github.com/aretw0/scenarist/pkg/schema"
)

// Authoring is the high-level entry point for the library.
// It wires the catalog, the guard, the allocators, the JSON assistant and the
// composer around one presenter.
type Authoring struct {
	catalog     *catalog.Catalog
	catalogFile string
	guard       guard.Strategy
	lister      ports.StepLister
	presenter   ports.Presenter
	metrics     *observability.Metrics
	logger      *slog.Logger

	allocator *order.Allocator
	editor    *form.Editor
	assistant *jsonfield.Assistant
	composer  *composer.Composer
}

// Option defines a functional option for configuring Authoring.
type Option func(*Authoring)

// WithCatalog replaces the built-in template catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(a *Authoring) {
		a.catalog = c
	}
}

// WithCatalogFile loads template overrides from a YAML or JSON file on top of
// the built-in catalog. It takes precedence over WithCatalog.
func WithCatalogFile(path string) Option {
	return func(a *Authoring) {
		a.catalogFile = path
	}
}

// WithGuard replaces the template detection strategy.
func WithGuard(s guard.Strategy) Option {
	return func(a *Authoring) {
		a.guard = s
	}
}

// WithStepLister sets where persisted step orders are read from.
// Without one, scenario-level allocation always proposes 1.
func WithStepLister(l ports.StepLister) Option {
	return func(a *Authoring) {
		a.lister = l
	}
}

// WithPresenter sets where notifications are shown.
func WithPresenter(p ports.Presenter) Option {
	return func(a *Authoring) {
		a.presenter = p
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Authoring) {
		a.logger = logger
	}
}

// WithMetrics records authoring activity.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Authoring) {
		a.metrics = m
	}
}

// New initializes Authoring over the built-in catalog.
func New(opts ...Option) (*Authoring, error) {
	a := &Authoring{}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = logging.NewNop()
	}
	if a.presenter == nil {
		a.presenter = notify.Nop{}
	}
	if a.catalogFile != "" {
		c, err := catalog.LoadFile(a.catalogFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		a.catalog = c
	}
	if a.catalog == nil {
		a.catalog = catalog.Default()
	}
	if a.guard == nil {
		a.guard = guard.ForCatalog(a.catalog)
	}

	a.wire()
	return a, nil
}

func (a *Authoring) wire() {
	a.allocator = order.NewAllocator(a.lister,
		order.WithLogger(a.logger),
		order.WithMetrics(a.metrics),
	)
	a.editor = form.NewEditor(
		form.WithCatalog(a.catalog),
		form.WithGuard(a.guard),
		form.WithAllocator(a.allocator),
		form.WithPresenter(a.presenter),
		form.WithMetrics(a.metrics),
		form.WithLogger(a.logger),
	)
	a.assistant = jsonfield.NewAssistant(a.presenter,
		jsonfield.WithMetrics(a.metrics),
		jsonfield.WithLogger(a.logger),
	)
	a.composer = composer.New(
		composer.WithEditor(a.editor),
		composer.WithPresenter(a.presenter),
		composer.WithMetrics(a.metrics),
		composer.WithLogger(a.logger),
	)
}

// Notifying returns a copy of a that also shows notifications on p.
func (a *Authoring) Notifying(p ports.Presenter) *Authoring {
	c := *a
	c.presenter = notify.Multi(a.presenter, p)
	c.wire()
	return &c
}

// Catalog returns the template catalog.
func (a *Authoring) Catalog() *catalog.Catalog {
	return a.catalog
}

// Template returns the template of a step type.
func (a *Authoring) Template(t domain.StepType) (domain.StepTemplate, bool) {
	return a.catalog.Template(t)
}

// Templates returns every template in catalog order.
func (a *Authoring) Templates() []domain.StepTemplate {
	return a.catalog.Templates()
}

// IsTemplate reports whether raw still holds an untouched template.
func (a *Authoring) IsTemplate(raw string) bool {
	return a.guard(raw)
}

// Overwritable reports whether a data field holding raw may be re-templated.
func (a *Authoring) Overwritable(raw string) bool {
	return guard.Overwritable(a.guard, raw)
}

// Format pretty-prints a configuration document.
func (a *Authoring) Format(text string) (string, error) {
	out, err := jsonfield.Format(text)
	a.metrics.FormatAttempt(err == nil)
	return out, err
}

// Validate classifies a data field for its visual indicator.
func (a *Authoring) Validate(text string) jsonfield.Validity {
	return jsonfield.Validate(text)
}

// SelectStepType templates the data field of a step form for stepType.
func (a *Authoring) SelectStepType(f ports.Fields, stepType domain.StepType) bool {
	return a.editor.SelectStepType(f, stepType)
}

// ScenarioChanged proposes an order for a step form whose scenario was chosen.
func (a *Authoring) ScenarioChanged(ctx context.Context, f ports.Fields, scenarioID string) (int, bool) {
	return a.editor.ScenarioChanged(ctx, f, scenarioID)
}

// NextOrder returns the next order of a persisted scenario.
func (a *Authoring) NextOrder(ctx context.Context, scenarioID string) int {
	return a.allocator.ForScenario(ctx, scenarioID)
}

// NextRowOrder returns the next order among the rows of an open form.
func (a *Authoring) NextRowOrder(rows []ports.Fields) int {
	return order.NextFromRows(rows)
}

// FormatField pretty-prints a field in place and notifies the outcome.
func (a *Authoring) FormatField(f ports.Fields, name string) error {
	return a.assistant.FormatField(f, name)
}

// Compose adds a prefilled step row to coll.
func (a *Authoring) Compose(ctx context.Context, coll ports.RowCollection, stepType domain.StepType, name string) (ports.Fields, error) {
	return a.composer.Compose(ctx, coll, stepType, name)
}

// QuickStep adds the step of a quick creation preset to coll.
func (a *Authoring) QuickStep(ctx context.Context, coll ports.RowCollection, p composer.Preset) (ports.Fields, error) {
	return a.composer.Quick(ctx, coll, p)
}

// CleanStep validates step data about to be saved and returns the document to store.
// When scenarioID is set and order is positive, the order must be free in the scenario.
// stepID names the step being re-saved, whose current order does not count as taken;
// it is empty for a new step.
func (a *Authoring) CleanStep(ctx context.Context, stepType domain.StepType, raw, scenarioID, stepID string, stepOrder int) (map[string]any, error) {
	data, err := schema.CleanStepData(a.catalog, stepType, raw)
	if err != nil {
		return nil, err
	}
	if scenarioID == "" || stepOrder == 0 || a.lister == nil {
		return data, nil
	}

	existing, err := a.siblingOrders(ctx, scenarioID, stepID)
	if err != nil {
		a.logger.Warn("order uniqueness not checked", "scenario_id", scenarioID, "err", err)
		return data, nil
	}
	if err := schema.CheckOrder(existing, stepOrder); err != nil {
		return nil, err
	}
	return data, nil
}

// siblingOrders lists the orders of the scenario's steps other than stepID.
func (a *Authoring) siblingOrders(ctx context.Context, scenarioID, stepID string) ([]int, error) {
	ids, ok := a.lister.(ports.IdentifiedStepLister)
	if stepID == "" || !ok {
		if stepID != "" {
			a.logger.Debug("step lister has no step IDs, re-saved step counts as a sibling", "step_id", stepID)
		}
		return a.lister.StepOrders(ctx, scenarioID)
	}

	byID, err := ids.StepOrdersByID(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	delete(byID, stepID)

	orders := make([]int, 0, len(byID))
	for _, o := range byID {
		orders = append(orders, o)
	}
	return orders, nil
}
