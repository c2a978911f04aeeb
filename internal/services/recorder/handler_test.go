package recorder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/logger"
)

func newTestServer(t *testing.T, store *memoryStore) *httptest.Server {
	t.Helper()
	h := NewHandler(NewService(store, nil, logger.NewNop()), logger.NewNop())
	srv := httptest.NewServer(h.SetupRoutes())
	t.Cleanup(srv.Close)
	return srv
}

func TestGetOrder(t *testing.T) {
	store := newMemoryStore()
	_, err := store.RecordOrder(context.Background(), "m-1", sampleOrder())
	require.NoError(t, err)
	srv := newTestServer(t, store)

	resp, err := http.Get(srv.URL + "/orders/ORD_20261019_001")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body orderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ORD_20261019_001", body.OrderNumber)
	assert.Equal(t, int64(167), body.TotalAmount)
	assert.Equal(t, "2026-10-19T18:45:00Z", body.FinalizedAt)
	assert.Len(t, body.Items, 2)
}

func TestGetOrder_NotFound(t *testing.T) {
	srv := newTestServer(t, newMemoryStore())

	resp, err := http.Get(srv.URL + "/orders/ORD_20261019_404")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Order not found", body["error"])
	assert.NotEmpty(t, body["request_id"])
}

func TestGetOrder_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, newMemoryStore())

	resp, err := http.Post(srv.URL+"/orders/ORD_20261019_001", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	store := newMemoryStore()
	srv := newTestServer(t, store)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	store.pingErr = errors.New("down")
	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
