package domain

import (
	"encoding/json"
	"fmt"
)

// Transition points to a candidate next step by its order.
// A nil NextStepOrder means the transition is unresolved (or terminal).
type Transition struct {
	Condition     string `json:"condition" mapstructure:"condition"`
	NextStepOrder *int   `json:"next_step_order" mapstructure:"next_step_order"`
}

// Condition is one branch of a condition step.
type Condition struct {
	Field         string `json:"field" mapstructure:"field"`
	Operator      string `json:"operator" mapstructure:"operator"`
	Value         string `json:"value" mapstructure:"value"`
	NextStepOrder *int   `json:"next_step_order" mapstructure:"next_step_order"`
}

// MessageData configures a message step.
type MessageData struct {
	Text        string       `json:"text"`
	Transitions []Transition `json:"transitions"`
}

// GPTRequestData configures a gpt_request step.
type GPTRequestData struct {
	Prompt      string       `json:"prompt"`
	Transitions []Transition `json:"transitions"`
}

// InputData configures an input step.
type InputData struct {
	Text        string       `json:"text"`
	SaveAs      string       `json:"save_as"`
	Response    string       `json:"response"`
	Transitions []Transition `json:"transitions"`
}

// ConditionData configures a condition step.
type ConditionData struct {
	Conditions []Condition `json:"conditions"`
}

// EndData configures an end step.
type EndData struct {
	Message string `json:"message"`
}

// StepTemplate is the default configuration document of a step type.
type StepTemplate struct {
	Type        StepType `json:"step_type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`

	// Data is one of the *Data structs above, or a generic document for catalog overrides.
	Data any `json:"template_data"`

	// Markers are instructional phrases that only ever appear in this template.
	Markers []string `json:"-"`
}

// Document serializes the template data the way it is written into the data field.
func (t StepTemplate) Document() (string, error) {
	b, err := json.MarshalIndent(t.Data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s template: %w", t.Type, err)
	}
	return string(b), nil
}

// Fields decodes the template data into a generic document.
func (t StepTemplate) Fields() (map[string]any, error) {
	b, err := json.Marshal(t.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s template: %w", t.Type, err)
	}
	out := make(map[string]any)
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s template: %w", t.Type, err)
	}
	return out, nil
}
