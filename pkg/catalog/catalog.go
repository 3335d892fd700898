package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aretw0/scenarist/pkg/domain"
)

// Entry describes one template of a Catalog.
type Entry struct {
	Type        domain.StepType
	Name        string
	Description string
	Markers     []string

	// NewData returns a fresh copy of the template document.
	NewData func() any
}

// Catalog is an immutable mapping from step type to template.
type Catalog struct {
	order   []domain.StepType
	entries map[domain.StepType]Entry
	markers []string
}

// New builds a catalog from the given entries.
// Later entries replace earlier ones with the same type.
func New(entries ...Entry) (*Catalog, error) {
	c := &Catalog{entries: make(map[domain.StepType]Entry, len(entries))}
	for _, e := range entries {
		if !e.Type.Valid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStepType, e.Type)
		}
		if e.NewData == nil {
			return nil, fmt.Errorf("template %q has no data", e.Type)
		}
		if len(e.Markers) == 0 {
			return nil, fmt.Errorf("template %q declares no marker phrase", e.Type)
		}
		if _, seen := c.entries[e.Type]; !seen {
			c.order = append(c.order, e.Type)
		}
		e.Markers = append([]string(nil), e.Markers...)
		c.entries[e.Type] = e
	}

	seen := make(map[string]bool)
	for _, t := range c.order {
		for _, m := range c.entries[t].Markers {
			if !seen[m] {
				seen[m] = true
				c.markers = append(c.markers, m)
			}
		}
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It is constructed once and shared.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(builtinEntries()...)
		if err != nil {
			panic(fmt.Sprintf("catalog: invalid built-in templates: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Template returns the template of a step type.
// ok is false for unknown types; callers must treat that as a no-op.
func (c *Catalog) Template(t domain.StepType) (domain.StepTemplate, bool) {
	e, ok := c.entries[t]
	if !ok {
		return domain.StepTemplate{}, false
	}
	return domain.StepTemplate{
		Type:        e.Type,
		Name:        e.Name,
		Description: e.Description,
		Data:        e.NewData(),
		Markers:     append([]string(nil), e.Markers...),
	}, true
}

// Types returns the step types of the catalog in catalog order.
func (c *Catalog) Types() []domain.StepType {
	return append([]domain.StepType(nil), c.order...)
}

// Templates returns every template in catalog order.
func (c *Catalog) Templates() []domain.StepTemplate {
	out := make([]domain.StepTemplate, 0, len(c.order))
	for _, t := range c.order {
		tmpl, _ := c.Template(t)
		out = append(out, tmpl)
	}
	return out
}

// Markers returns the union of the marker phrases of all templates.
func (c *Catalog) Markers() []string {
	return append([]string(nil), c.markers...)
}

// rawDocument serves fresh copies of an encoded JSON document. The encoded
// form keeps keys in the order the author wrote them.
func rawDocument(b []byte) func() any {
	b = append([]byte(nil), b...)
	return func() any {
		return json.RawMessage(append([]byte(nil), b...))
	}
}
