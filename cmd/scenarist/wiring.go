package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/scenarist"
	"github.com/aretw0/scenarist/internal/config"
	"github.com/aretw0/scenarist/pkg/adapters/adminapi"
	"github.com/aretw0/scenarist/pkg/adapters/memory"
	"github.com/aretw0/scenarist/pkg/adapters/redis"
	"github.com/aretw0/scenarist/pkg/observability"
	"github.com/aretw0/scenarist/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

var errNoStepSource = errors.New("no step source configured: set --steps-endpoint or --redis")

// stepIndex opens the index maintained through the HTTP API.
// Without a Redis address the index lives in memory for the process lifetime.
func stepIndex(ctx context.Context, c config.Config) (ports.StepIndex, func() error, error) {
	if c.Redis.Addr == "" {
		return memory.NewStepIndex(), func() error { return nil }, nil
	}

	var opts []redis.Option
	if c.Redis.Prefix != "" {
		opts = append(opts, redis.WithPrefix(c.Redis.Prefix))
	}
	if c.Redis.TTL > 0 {
		opts = append(opts, redis.WithTTL(c.Redis.TTL))
	}
	index := redis.New(c.Redis.Addr, c.Redis.Password, c.Redis.DB, opts...)
	if err := index.Ping(ctx); err != nil {
		_ = index.Close()
		return nil, nil, fmt.Errorf("redis %s: %w", c.Redis.Addr, err)
	}
	return index, index.Close, nil
}

// stepLister picks where next orders are computed from. The admin listing wins
// over the local index since it reflects saved steps.
func stepLister(c config.Config, index ports.StepLister) ports.StepLister {
	if c.StepsEndpoint != "" {
		return adminapi.New(c.StepsEndpoint,
			adminapi.WithTimeout(c.Timeout),
			adminapi.WithLogger(logger),
		)
	}
	return index
}

// newMetrics returns nil collectors when metrics are disabled.
func newMetrics(c config.Config) (*observability.Metrics, *prometheus.Registry) {
	if !c.Metrics {
		return nil, nil
	}
	reg := prometheus.NewRegistry()
	return observability.NewMetrics(reg), reg
}

func authoringOptions(c config.Config, lister ports.StepLister, metrics *observability.Metrics, presenter ports.Presenter) []scenarist.Option {
	opts := []scenarist.Option{
		scenarist.WithLogger(logger),
		scenarist.WithMetrics(metrics),
		scenarist.WithPresenter(presenter),
	}
	if lister != nil {
		opts = append(opts, scenarist.WithStepLister(lister))
	}
	if c.CatalogFile != "" {
		opts = append(opts, scenarist.WithCatalogFile(c.CatalogFile))
	}
	return opts
}
