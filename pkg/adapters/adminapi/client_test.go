package adminapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/aretw0/scenarist/pkg/adapters/adminapi"
	"github.com/aretw0/scenarist/pkg/domain"
	"github.com/aretw0/scenarist/pkg/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	URL    *url.URL
	Header http.Header
}

func serve(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()
	last := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last.URL = r.URL
		last.Header = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, last
}

func TestClient_StepOrders(t *testing.T) {
	srv, last := serve(t, http.StatusOK, `[
		{"id": 1, "order": 1, "name": "Привет"},
		{"id": 2, "order": 4},
		{"id": 3, "order": "2"},
		{"id": 4, "order": "n/a"},
		{"id": 5}
	]`)

	client := adminapi.New(srv.URL+adminapi.DefaultStepsPath, adminapi.WithHeader("Cookie", "sessionid=abc"))
	orders, err := client.StepOrders(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 2, 0, 0}, orders)

	assert.Equal(t, adminapi.DefaultStepsPath, last.URL.Path)
	assert.Equal(t, "42", last.URL.Query().Get("scenario_id"))
	assert.Equal(t, "json", last.URL.Query().Get("format"))
	assert.Equal(t, "sessionid=abc", last.Header.Get("Cookie"))

	assert.Equal(t, 5, order.NewAllocator(client).ForScenario(context.Background(), "42"))
}

func TestClient_StepOrdersByID(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `[
		{"id": 7, "order": 2},
		{"id": "abc", "order": 5},
		{"order": 9}
	]`)

	byID, err := adminapi.New(srv.URL).StepOrdersByID(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"7": 2, "abc": 5, "#2": 9}, byID)

	srv, _ = serve(t, http.StatusOK, `{"detail": "oops"}`)
	_, err = adminapi.New(srv.URL).StepOrdersByID(context.Background(), "42")
	assert.ErrorIs(t, err, domain.ErrUnexpectedResponse)
}

func TestClient_EmptyListing(t *testing.T) {
	for _, body := range []string{`[]`, `null`} {
		srv, _ := serve(t, http.StatusOK, body)
		orders, err := adminapi.New(srv.URL).StepOrders(context.Background(), "1")
		require.NoError(t, err, body)
		assert.Empty(t, orders, body)
	}
}

func TestClient_UnexpectedResponses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"server error", http.StatusInternalServerError, `{}`, domain.ErrUnexpectedResponse},
		{"html page", http.StatusOK, `<html></html>`, domain.ErrUnexpectedResponse},
		{"object", http.StatusOK, `{"order": 1}`, domain.ErrUnexpectedResponse},
		{"not found", http.StatusNotFound, ``, domain.ErrScenarioNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := serve(t, tt.status, tt.body)
			client := adminapi.New(srv.URL)

			_, err := client.StepOrders(context.Background(), "1")
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 1, order.NewAllocator(client).ForScenario(context.Background(), "1"))
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	client := adminapi.New(srv.URL, adminapi.WithTimeout(20*time.Millisecond))
	_, err := client.StepOrders(context.Background(), "1")
	assert.Error(t, err)
}
