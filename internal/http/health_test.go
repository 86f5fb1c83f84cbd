package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/epq-service/internal/circuitbreaker"
)

func TestHealthHandler_Liveness(t *testing.T) {
	router := gin.New()
	NewHealthHandler().Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	openBreaker := func() *circuitbreaker.CircuitBreaker {
		cb := circuitbreaker.New(circuitbreaker.Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Hour, Name: "history"})
		_ = cb.Execute(context.Background(), func() error { return errors.New("down") })
		return cb
	}

	tests := []struct {
		name           string
		setup          func(h *HealthHandler)
		expectedStatus int
		expectedState  string
		expectedChecks map[string]interface{}
	}{
		{
			name:           "no dependencies",
			setup:          func(*HealthHandler) {},
			expectedStatus: http.StatusOK,
			expectedState:  "ok",
			expectedChecks: map[string]interface{}{"service": "ok"},
		},
		{
			name: "healthy store and closed breaker",
			setup: func(h *HealthHandler) {
				h.RegisterChecker("sqlite", HealthCheckFunc(func(context.Context) error { return nil }))
				h.RegisterCircuitBreaker("history", circuitbreaker.New(circuitbreaker.DefaultConfig()))
			},
			expectedStatus: http.StatusOK,
			expectedState:  "ok",
			expectedChecks: map[string]interface{}{"sqlite": "ok", "history_circuit": "closed"},
		},
		{
			name: "failing store",
			setup: func(h *HealthHandler) {
				h.RegisterChecker("mongodb", HealthCheckFunc(func(context.Context) error { return errors.New("no reachable servers") }))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "degraded",
			expectedChecks: map[string]interface{}{"mongodb": "no reachable servers"},
		},
		{
			name:           "open breaker",
			setup:          func(h *HealthHandler) { h.RegisterCircuitBreaker("history", openBreaker()) },
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "degraded",
			expectedChecks: map[string]interface{}{"history_circuit": "open"},
		},
		{
			name: "nil registrations are ignored",
			setup: func(h *HealthHandler) {
				h.RegisterChecker("x", nil)
				h.RegisterCircuitBreaker("y", nil)
			},
			expectedStatus: http.StatusOK,
			expectedState:  "ok",
			expectedChecks: map[string]interface{}{"service": "ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler()
			tt.setup(h)
			router := gin.New()
			h.Register(router)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body struct {
				Status string                 `json:"status"`
				Checks map[string]interface{} `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedState, body.Status)
			assert.Equal(t, tt.expectedChecks, body.Checks)
		})
	}
}
