package ports

import "context"

// StepLister reads the orders of persisted steps of a scenario.
// Entries with a missing or non-numeric order are reported as 0.
type StepLister interface {
	StepOrders(ctx context.Context, scenarioID string) ([]int, error)
}

// IdentifiedStepLister also reports which step holds each order, so a step
// being re-saved can be told apart from its siblings.
type IdentifiedStepLister interface {
	StepLister

	// StepOrdersByID maps step IDs to their orders.
	StepOrdersByID(ctx context.Context, scenarioID string) (map[string]int, error)
}

// StepIndex is a StepLister that the host keeps in sync with the admin's saves.
type StepIndex interface {
	IdentifiedStepLister

	// Record stores (or moves) a step at the given order.
	Record(ctx context.Context, scenarioID, stepID string, order int) error

	// Remove forgets a step. Removing an unknown step is not an error.
	Remove(ctx context.Context, scenarioID, stepID string) error
}
