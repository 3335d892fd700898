package memory

import (
	"context"
	"sort"
	"sync"
)

// StepIndex implements ports.StepIndex in memory.
// Safe for concurrent use.
type StepIndex struct {
	mu   sync.RWMutex
	data map[string]map[string]int // ScenarioID -> StepID -> Order
}

// NewStepIndex creates a new in-memory index.
func NewStepIndex() *StepIndex {
	return &StepIndex{
		data: make(map[string]map[string]int),
	}
}

// StepOrders returns the orders recorded for a scenario, ascending.
func (s *StepIndex) StepOrders(ctx context.Context, scenarioID string) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	steps := s.data[scenarioID]
	orders := make([]int, 0, len(steps))
	for _, o := range steps {
		orders = append(orders, o)
	}
	sort.Ints(orders)
	return orders, nil
}

// StepOrdersByID returns a copy of the step ID to order mapping of a scenario.
func (s *StepIndex) StepOrdersByID(ctx context.Context, scenarioID string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int, len(s.data[scenarioID]))
	for id, o := range s.data[scenarioID] {
		out[id] = o
	}
	return out, nil
}

// Record stores a step at the given order.
func (s *StepIndex) Record(ctx context.Context, scenarioID, stepID string, order int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	steps, ok := s.data[scenarioID]
	if !ok {
		steps = make(map[string]int)
		s.data[scenarioID] = steps
	}
	steps[stepID] = order
	return nil
}

// Remove forgets a step.
func (s *StepIndex) Remove(ctx context.Context, scenarioID, stepID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if steps, ok := s.data[scenarioID]; ok {
		delete(steps, stepID)
		if len(steps) == 0 {
			delete(s.data, scenarioID)
		}
	}
	return nil
}
