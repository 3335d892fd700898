// Package jsonfield formats and validates the JSON configuration field of a step.
package jsonfield

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/aretw0/scenarist/pkg/domain"
)

// Indent is the indentation used for every document written into a data field.
const Indent = "  "

// Format parses text and pretty-prints it with stable indentation.
// Key order and number spelling are preserved, so formatting is idempotent.
// Invalid input yields a *domain.ParseError.
func Format(text string) (string, error) {
	src := []byte(strings.TrimSpace(text))
	if err := check(src); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, src, "", Indent); err != nil {
		return "", newParseError(src, err)
	}
	return buf.String(), nil
}

// Canonical re-serializes text into its compact canonical form (object keys sorted).
func Canonical(text string) (string, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return "", newParseError([]byte(text), err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Parse decodes text into a generic document.
func Parse(text string) (any, error) {
	src := []byte(strings.TrimSpace(text))
	if err := check(src); err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(src, &v); err != nil {
		return nil, newParseError(src, err)
	}
	return v, nil
}

func check(src []byte) error {
	if json.Valid(src) {
		return nil
	}
	var v any
	err := json.Unmarshal(src, &v)
	if err == nil {
		err = errors.New("invalid JSON")
	}
	return newParseError(src, err)
}

func newParseError(src []byte, err error) *domain.ParseError {
	pe := &domain.ParseError{Msg: err.Error(), Err: err}

	var syntax *json.SyntaxError
	if errors.As(err, &syntax) {
		pe.Offset = syntax.Offset
		// Offset counts the bytes read, including the offending one.
		at := syntax.Offset
		if at > 0 {
			at--
		}
		pe.Line, pe.Column = position(src, at)
	}
	return pe
}

// position converts a byte offset into a 1-based line and rune column.
func position(src []byte, offset int64) (int, int) {
	if offset > int64(len(src)) {
		offset = int64(len(src))
	}
	line, col := 1, 1
	for _, r := range string(src[:offset]) {
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
