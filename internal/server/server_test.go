package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealthz(t *testing.T) {
	s := NewServer(0, "1.2.3", nil)

	rec := get(t, s, PathHealthz)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeHealth(t, rec)
	assert.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
}

func TestReadyz(t *testing.T) {
	ok := ReadinessCheck{Name: "store", Check: func(context.Context) error { return nil }}
	down := ReadinessCheck{Name: "discord", Check: func(context.Context) error { return errors.New("not connected") }}

	tests := []struct {
		name     string
		checks   []ReadinessCheck
		wantCode int
		failed   map[string]string
	}{
		{name: "no checks", wantCode: http.StatusOK},
		{name: "all pass", checks: []ReadinessCheck{ok}, wantCode: http.StatusOK},
		{
			name:     "one failing",
			checks:   []ReadinessCheck{ok, down},
			wantCode: http.StatusServiceUnavailable,
			failed:   map[string]string{"discord": "not connected"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(0, "", nil, tt.checks...)
			rec := get(t, s, PathReadyz)
			require.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.failed, decodeHealth(t, rec).Failed)
		})
	}
}

func TestStatus(t *testing.T) {
	s := NewServer(0, "", func() any {
		return map[string]any{"connected": true, "commands_received": 3}
	})

	rec := get(t, s, PathStatus)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["connected"])
	assert.EqualValues(t, 3, body["commands_received"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := NewServer(0, "", nil)
	get(t, s, PathHealthz)

	rec := get(t, s, PathMetrics)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
