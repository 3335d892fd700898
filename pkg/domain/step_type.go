package domain

import (
	"fmt"
	"strings"
)

// StepType identifies the behavior of a step.
// It is immutable once a step exists but may be re-selected before save.
type StepType string

const (
	// StepMessage sends a text and follows its transitions.
	StepMessage StepType = "message"
	// StepGPTRequest sends a prompt to the language model.
	StepGPTRequest StepType = "gpt_request"
	// StepInput asks a question and stores the answer in the session context.
	StepInput StepType = "input"
	// StepCondition branches on values of the session context.
	StepCondition StepType = "condition"
	// StepEnd finishes the scenario.
	StepEnd StepType = "end"
)

// StepTypes lists the known variants in admin display order.
var StepTypes = []StepType{StepMessage, StepGPTRequest, StepInput, StepCondition, StepEnd}

var stepLabels = map[StepType]string{
	StepMessage:    "Сообщение",
	StepGPTRequest: "GPT запрос",
	StepInput:      "Ввод данных",
	StepCondition:  "Условие",
	StepEnd:        "Завершение",
}

// ParseStepType validates a raw step type identifier.
func ParseStepType(raw string) (StepType, error) {
	t := StepType(strings.TrimSpace(raw))
	if _, ok := stepLabels[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStepType, raw)
	}
	return t, nil
}

// Valid reports whether t is one of the known variants.
func (t StepType) Valid() bool {
	_, ok := stepLabels[t]
	return ok
}

// Label returns the name shown in the admin select.
func (t StepType) Label() string {
	if l, ok := stepLabels[t]; ok {
		return l
	}
	return string(t)
}

func (t StepType) String() string {
	return string(t)
}
