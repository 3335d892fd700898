package domain

// Field names addressed in step forms and inline rows.
const (
	FieldName     = "name"
	FieldStepType = "step_type"
	FieldOrder    = "order"
	FieldData     = "data"
	FieldScenario = "scenario"
)

// Step is one unit of conversation behavior within a Scenario.
// Order is the authoritative sequencing; it is positive and unique in practice.
type Step struct {
	ID         string   `json:"id"`
	ScenarioID string   `json:"scenario"`
	Name       string   `json:"name"`
	StepType   StepType `json:"step_type"`
	Order      int      `json:"order"`
	Data       string   `json:"data"`
	IsActive   bool     `json:"is_active"`
}

// Scenario owns an unordered collection of Steps.
type Scenario struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

// Orders returns the order values of the scenario's steps.
func (s Scenario) Orders() []int {
	orders := make([]int, 0, len(s.Steps))
	for _, st := range s.Steps {
		orders = append(orders, st.Order)
	}
	return orders
}
