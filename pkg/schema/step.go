package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/scenarist/pkg/catalog"
	"github.com/aretw0/scenarist/pkg/domain"
)

// DefaultSaveAs is the context key an input step stores its answer under.
const DefaultSaveAs = "user_input"

var stepSchemas = map[domain.StepType]Schema{
	domain.StepMessage: {
		"text":        String(),
		"transitions": Optional(Slice(Transition())),
	},
	domain.StepGPTRequest: {
		"prompt":      String(),
		"transitions": Optional(Slice(Transition())),
	},
	domain.StepInput: {
		"text":        String(),
		"save_as":     Optional(String()),
		"response":    Optional(String()),
		"transitions": Optional(Slice(Transition())),
	},
	domain.StepCondition: {
		"conditions": Optional(Slice(Clause())),
	},
	domain.StepEnd: {
		"message": Optional(String()),
	},
}

// For returns the data schema of a step type.
func For(t domain.StepType) (Schema, bool) {
	s, ok := stepSchemas[t]
	return s, ok
}

// CleanStepData validates the raw data field of a step about to be saved and
// returns the document to store. An empty field yields the template of the
// step type taken from cat.
func CleanStepData(cat *catalog.Catalog, stepType domain.StepType, raw string) (map[string]any, error) {
	s, ok := For(stepType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStepType, stepType)
	}

	if strings.TrimSpace(raw) == "" {
		tmpl, ok := cat.Template(stepType)
		if !ok {
			return map[string]any{}, nil
		}
		return tmpl.Fields()
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, &AggregateError{Errors: []error{
			&ValidationError{Key: domain.FieldData, Reason: "invalid JSON: " + err.Error()},
		}}
	}
	data, ok := parsed.(map[string]any)
	if !ok {
		return nil, &AggregateError{Errors: []error{
			&ValidationError{Key: domain.FieldData, Reason: "must be a JSON object", Value: parsed},
		}}
	}

	if err := Validate(s, data); err != nil {
		return nil, err
	}

	if stepType == domain.StepInput {
		if _, ok := data["save_as"]; !ok {
			data["save_as"] = DefaultSaveAs
		}
	}
	return data, nil
}

// CheckOrder verifies that order can be used for a new step of a scenario
// whose steps already use the existing orders.
func CheckOrder(existing []int, order int) error {
	if order < 1 {
		return &AggregateError{Errors: []error{
			&ValidationError{Key: domain.FieldOrder, Reason: "must be a positive integer", Value: order},
		}}
	}
	for _, o := range existing {
		if o == order {
			return &AggregateError{Errors: []error{
				&ValidationError{Key: domain.FieldOrder, Reason: fmt.Sprintf("step with order %d already exists in this scenario", order), Value: order},
			}}
		}
	}
	return nil
}
