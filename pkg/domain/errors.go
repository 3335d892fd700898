package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownStepType is returned when a step type is not part of the catalog.
var ErrUnknownStepType = errors.New("unknown step type")

// ErrMissingElement is returned when an expected form control or field is absent.
// Callers treat it as a silent no-op.
var ErrMissingElement = errors.New("missing form element")

// ErrScenarioNotFound is returned when a scenario ID cannot be resolved.
var ErrScenarioNotFound = errors.New("scenario not found")

// ErrUnexpectedResponse is returned when the steps listing does not have the expected shape.
var ErrUnexpectedResponse = errors.New("unexpected steps listing response")

// ParseError reports text that is not a valid configuration document.
type ParseError struct {
	Msg    string // Message of the underlying parser
	Offset int64  // Byte offset of the offending input, 0 if unknown
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d, column %d)", e.Msg, e.Line, e.Column)
	}
	return e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
