// Package adminapi reads step listings from the scenario admin.
package adminapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/aretw0/scenarist/internal/logging"
	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/tidwall/gjson"
)

// DefaultStepsPath is where the admin serves the steps changelist.
const DefaultStepsPath = "/admin/scenarios/step/"

// maxBody bounds the listing read into memory.
const maxBody = 4 << 20

// Client implements ports.StepLister over the admin's JSON listing:
// GET <endpoint>?scenario_id=<id>&format=json returning [{"order": n, ...}].
type Client struct {
	endpoint string
	http     *http.Client
	header   http.Header
	logger   *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithTimeout bounds each listing request.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.http.Timeout = d
	}
}

// WithHeader adds a header to every request (e.g. a session cookie).
func WithHeader(key, value string) Option {
	return func(cl *Client) {
		cl.header.Add(key, value)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// New creates a client for the steps listing at endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 5 * time.Second},
		header:   make(http.Header),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StepOrders returns the order of every listed step. Entries with a missing or
// non-numeric order count as 0.
func (c *Client) StepOrders(ctx context.Context, scenarioID string) ([]int, error) {
	body, err := c.fetch(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	return parseOrders(body)
}

// StepOrdersByID maps the listed step IDs to their orders. A step listed
// without an id is keyed by its position, "#0" for the first entry.
func (c *Client) StepOrdersByID(ctx context.Context, scenarioID string) (map[string]int, error) {
	body, err := c.fetch(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	return parseOrdersByID(body)
}

func (c *Client) fetch(ctx context.Context, scenarioID string) ([]byte, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid steps endpoint: %w", err)
	}
	q := u.Query()
	q.Set("scenario_id", scenarioID)
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	for k, vs := range c.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch steps: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", domain.ErrScenarioNotFound, scenarioID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrUnexpectedResponse, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read steps: %w", err)
	}
	return body, nil
}

// listing parses the steps array. A null body is an empty listing.
func listing(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: invalid JSON", domain.ErrUnexpectedResponse)
	}
	result := gjson.ParseBytes(body)
	if result.Type != gjson.Null && !result.IsArray() {
		return gjson.Result{}, fmt.Errorf("%w: expected an array", domain.ErrUnexpectedResponse)
	}
	return result, nil
}

func parseOrders(body []byte) ([]int, error) {
	result, err := listing(body)
	if err != nil {
		return nil, err
	}

	var orders []int
	result.ForEach(func(_, step gjson.Result) bool {
		orders = append(orders, int(step.Get("order").Int()))
		return true
	})
	return orders, nil
}

func parseOrdersByID(body []byte) (map[string]int, error) {
	result, err := listing(body)
	if err != nil {
		return nil, err
	}

	out := make(map[string]int)
	pos := 0
	result.ForEach(func(_, step gjson.Result) bool {
		id := step.Get("id").String()
		if id == "" {
			id = fmt.Sprintf("#%d", pos)
		}
		out[id] = int(step.Get("order").Int())
		pos++
		return true
	})
	return out, nil
}
