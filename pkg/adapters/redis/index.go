package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// StepIndex implements ports.StepIndex using one sorted set per scenario:
// members are step IDs, scores are their orders.
type StepIndex struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*StepIndex)

// WithTTL expires a scenario's index when it has not been written for ttl.
func WithTTL(ttl time.Duration) Option {
	return func(s *StepIndex) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *StepIndex) {
		s.prefix = prefix
	}
}

// New creates a new Redis step index with options.
func New(address, password string, db int, opts ...Option) *StepIndex {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis step index from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *StepIndex {
	s := &StepIndex{
		client: client,
		prefix: "scenarist:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StepIndex) key(scenarioID string) string {
	return s.prefix + "scenario:" + scenarioID + ":orders"
}

// StepOrders returns the orders of the scenario's steps, ascending.
func (s *StepIndex) StepOrders(ctx context.Context, scenarioID string) ([]int, error) {
	members, err := s.client.ZRangeWithScores(ctx, s.key(scenarioID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list step orders: %w", err)
	}

	orders := make([]int, 0, len(members))
	for _, z := range members {
		orders = append(orders, int(z.Score))
	}
	return orders, nil
}

// StepOrdersByID maps the scenario's step IDs to their orders.
func (s *StepIndex) StepOrdersByID(ctx context.Context, scenarioID string) (map[string]int, error) {
	members, err := s.client.ZRangeWithScores(ctx, s.key(scenarioID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list step orders: %w", err)
	}

	out := make(map[string]int, len(members))
	for _, z := range members {
		out[fmt.Sprint(z.Member)] = int(z.Score)
	}
	return out, nil
}

// Record sets the order of a step, adding it to the scenario if needed.
func (s *StepIndex) Record(ctx context.Context, scenarioID, stepID string, order int) error {
	pipe := s.client.Pipeline()

	pipe.ZAdd(ctx, s.key(scenarioID), backend.Z{
		Score:  float64(order),
		Member: stepID,
	})
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key(scenarioID), s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record step order: %w", err)
	}
	return nil
}

// Remove drops a step from the scenario. Unknown steps are ignored.
func (s *StepIndex) Remove(ctx context.Context, scenarioID, stepID string) error {
	if err := s.client.ZRem(ctx, s.key(scenarioID), stepID).Err(); err != nil {
		return fmt.Errorf("failed to remove step: %w", err)
	}
	return nil
}

// Ping checks connectivity to Redis.
func (s *StepIndex) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *StepIndex) Close() error {
	return s.client.Close()
}
