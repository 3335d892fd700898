package jsonfield

import (
	"encoding/json"
	"strings"
)

// Validity is the visual affordance chosen for the current field text.
type Validity int

const (
	// Neutral is used for empty or whitespace-only text.
	Neutral Validity = iota
	Valid
	Malformed
)

var validityNames = map[Validity]string{
	Neutral:   "neutral",
	Valid:     "valid",
	Malformed: "malformed",
}

func (v Validity) String() string {
	return validityNames[v]
}

// MarshalText renders the validity as its name in JSON payloads.
func (v Validity) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Indicator returns the border colour of the field, empty for Neutral.
func (v Validity) Indicator() string {
	switch v {
	case Valid:
		return "#00b894"
	case Malformed:
		return "#e17055"
	default:
		return ""
	}
}

// Validate classifies text on every edit. It never blocks submission nor mutates the field.
func Validate(text string) Validity {
	if strings.TrimSpace(text) == "" {
		return Neutral
	}
	if json.Valid([]byte(text)) {
		return Valid
	}
	return Malformed
}
