package memory

import (
	"sync"
)

// Form implements ports.Fields over a set of named text fields.
// Safe for concurrent use.
type Form struct {
	mu     sync.RWMutex
	fields map[string]string
}

// NewForm creates a form holding a copy of values. Only the given keys exist as fields.
func NewForm(values map[string]string) *Form {
	f := &Form{fields: make(map[string]string, len(values))}
	for k, v := range values {
		f.fields[k] = v
	}
	return f
}

// Value returns the text of a field.
func (f *Form) Value(name string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.fields[name]
	return v, ok
}

// SetValue replaces the text of an existing field.
func (f *Form) SetValue(name, value string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.fields[name]; !ok {
		return false
	}
	f.fields[name] = value
	return true
}

// Snapshot returns a copy of all fields.
func (f *Form) Snapshot() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]string, len(f.fields))
	for k, v := range f.fields {
		out[k] = v
	}
	return out
}
