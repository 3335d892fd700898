package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/aretw0/scenarist/pkg/ports"
)

// DefaultRowFields are the fields of a blank inline step row.
var DefaultRowFields = []string{domain.FieldName, domain.FieldStepType, domain.FieldOrder}

// RowCollection implements ports.RowCollection in memory.
// New rows may materialize asynchronously; AddRow waits for them.
type RowCollection struct {
	mu     sync.RWMutex
	rows   []*Form
	canAdd bool
	blank  []string
	delay  time.Duration
}

// RowOption configures a RowCollection.
type RowOption func(*RowCollection)

// WithoutAddControl models a collection rendered without a row-addition control.
func WithoutAddControl() RowOption {
	return func(c *RowCollection) {
		c.canAdd = false
	}
}

// WithRowFields sets the fields of newly added rows.
func WithRowFields(fields ...string) RowOption {
	return func(c *RowCollection) {
		c.blank = append([]string(nil), fields...)
	}
}

// WithMaterializeDelay inserts new rows on a later tick, after d.
func WithMaterializeDelay(d time.Duration) RowOption {
	return func(c *RowCollection) {
		c.delay = d
	}
}

// NewRowCollection creates a collection seeded with rows.
func NewRowCollection(rows []map[string]string, opts ...RowOption) *RowCollection {
	c := &RowCollection{
		canAdd: true,
		blank:  DefaultRowFields,
	}
	for _, r := range rows {
		c.rows = append(c.rows, NewForm(r))
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CanAddRow reports whether the collection has a row-addition control.
func (c *RowCollection) CanAddRow() bool {
	return c.canAdd
}

// AddRow appends a blank row and returns it once it has materialized.
func (c *RowCollection) AddRow(ctx context.Context) (ports.Fields, error) {
	if !c.canAdd {
		return nil, domain.ErrMissingElement
	}

	ready := make(chan *Form, 1)
	go func() {
		if c.delay > 0 {
			time.Sleep(c.delay)
		}
		values := make(map[string]string, len(c.blank))
		for _, name := range c.blank {
			values[name] = ""
		}
		row := NewForm(values)

		c.mu.Lock()
		c.rows = append(c.rows, row)
		c.mu.Unlock()
		ready <- row
	}()

	select {
	case row := <-ready:
		return row, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Rows returns the rows currently present.
func (c *RowCollection) Rows() []ports.Fields {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]ports.Fields, len(c.rows))
	for i, r := range c.rows {
		out[i] = r
	}
	return out
}

// Snapshot returns a copy of every row's fields.
func (c *RowCollection) Snapshot() []map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]map[string]string, len(c.rows))
	for i, r := range c.rows {
		out[i] = r.Snapshot()
	}
	return out
}
