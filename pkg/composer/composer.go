// Package composer implements one-click step creation in a step collection:
// add a row, wait for it, fill it in and tell the author.
package composer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aretw0/scenarist/internal/logging"
	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/aretw0/scenarist/pkg/form"
	"github.com/aretw0/scenarist/pkg/observability"
	"github.com/aretw0/scenarist/pkg/order"
	"github.com/aretw0/scenarist/pkg/ports"
)

// MsgStepAdded is the success notification, formatted with the step name.
const MsgStepAdded = "Добавлен шаг \"%s\""

// Composer adds prefilled rows to a RowCollection.
type Composer struct {
	editor    *form.Editor
	presenter ports.Presenter
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// Option configures the Composer.
type Option func(*Composer)

// WithEditor sets the editor used to template the data field of new rows.
func WithEditor(e *form.Editor) Option {
	return func(c *Composer) {
		c.editor = e
	}
}

func WithPresenter(p ports.Presenter) Option {
	return func(c *Composer) {
		c.presenter = p
	}
}

func WithMetrics(m *observability.Metrics) Option {
	return func(c *Composer) {
		c.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) {
		c.logger = logger
	}
}

// New creates a Composer.
func New(opts ...Option) *Composer {
	c := &Composer{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.editor == nil {
		c.editor = form.NewEditor(form.WithLogger(c.logger), form.WithMetrics(c.metrics))
	}
	return c
}

// Compose adds a step row named name of type stepType to coll.
//
// A collection without an add control is a silent no-op: the returned row is nil
// and the error is nil. An unknown step type fails before coll is touched.
// If ctx ends before the row materializes, ctx.Err() is returned.
func (c *Composer) Compose(ctx context.Context, coll ports.RowCollection, stepType domain.StepType, name string) (ports.Fields, error) {
	if _, ok := c.editor.Catalog().Template(stepType); !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStepType, stepType)
	}
	if coll == nil || !coll.CanAddRow() {
		c.logger.Debug("no add control, quick step skipped", "step_type", stepType)
		return nil, nil
	}

	row, err := coll.AddRow(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrMissingElement) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to add step row: %w", err)
	}

	row.SetValue(domain.FieldName, name)
	row.SetValue(domain.FieldStepType, string(stepType))
	c.editor.ApplyTemplate(row, stepType)

	if current, ok := row.Value(domain.FieldOrder); ok && current == "" {
		next := order.NextFromRows(coll.Rows())
		row.SetValue(domain.FieldOrder, strconv.Itoa(next))
	}

	c.metrics.QuickStep(string(stepType))
	if c.presenter != nil {
		c.presenter.Show(fmt.Sprintf(MsgStepAdded, name), domain.SeveritySuccess)
	}
	return row, nil
}

// Quick composes the step described by a preset.
func (c *Composer) Quick(ctx context.Context, coll ports.RowCollection, p Preset) (ports.Fields, error) {
	return c.Compose(ctx, coll, p.Type, p.Name)
}
