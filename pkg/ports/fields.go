package ports

import "context"

// Fields is a form or an inline row whose inputs are addressed by name.
type Fields interface {
	// Value returns the current text of a field.
	// ok is false when the form has no such field.
	Value(name string) (value string, ok bool)

	// SetValue replaces the text of a field.
	// It returns false (and does nothing) when the form has no such field.
	SetValue(name, value string) bool
}

// RowCollection is a dynamic collection of inline rows (e.g. the steps of a scenario).
type RowCollection interface {
	// CanAddRow reports whether the collection exposes a row-addition control.
	CanAddRow() bool

	// AddRow triggers row addition and blocks until the new row has materialized.
	// It returns the handle of the created row, or ctx.Err() if the wait is abandoned.
	AddRow(ctx context.Context) (Fields, error)

	// Rows returns the rows currently present, in display order.
	Rows() []Fields
}
