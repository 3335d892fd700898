package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStepIndexContract runs a suite of tests to verify that a StepIndex implementation
// adheres to the defined interface contract.
func RunStepIndexContract(t *testing.T, index StepIndex) {
	ctx := context.Background()
	scenarioID := "contract-" + time.Now().Format("20060102150405")

	t.Run("Unknown scenario is empty", func(t *testing.T) {
		orders, err := index.StepOrders(ctx, scenarioID+"-missing")
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("Record and list", func(t *testing.T) {
		require.NoError(t, index.Record(ctx, scenarioID, "greet", 1))
		require.NoError(t, index.Record(ctx, scenarioID, "ask", 3))
		require.NoError(t, index.Record(ctx, scenarioID, "bye", 2))

		orders, err := index.StepOrders(ctx, scenarioID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{1, 2, 3}, orders)
	})

	t.Run("Record moves an existing step", func(t *testing.T) {
		require.NoError(t, index.Record(ctx, scenarioID, "ask", 7))

		orders, err := index.StepOrders(ctx, scenarioID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{1, 2, 7}, orders)
	})

	t.Run("Orders by ID", func(t *testing.T) {
		byID, err := index.StepOrdersByID(ctx, scenarioID)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"greet": 1, "bye": 2, "ask": 7}, byID)

		byID, err = index.StepOrdersByID(ctx, scenarioID+"-missing")
		require.NoError(t, err)
		assert.Empty(t, byID)
	})

	t.Run("Scenarios are isolated", func(t *testing.T) {
		require.NoError(t, index.Record(ctx, scenarioID+"-other", "greet", 10))

		orders, err := index.StepOrders(ctx, scenarioID)
		require.NoError(t, err)
		assert.NotContains(t, orders, 10)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, index.Remove(ctx, scenarioID, "ask"))
		require.NoError(t, index.Remove(ctx, scenarioID, "never-recorded"))

		orders, err := index.StepOrders(ctx, scenarioID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{1, 2}, orders)
	})
}
