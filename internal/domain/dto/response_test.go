package dto

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorResponse_Builders(t *testing.T) {
	base := NewError(ErrCodeInvalidRequest, "Invalid value for demand")
	withField := base.WithRequestID("req-1").WithDetail("field", "demand")
	withBoth := withField.WithDetail("candidate", "2")

	assert.Equal(t, "req-1", withField.RequestID)
	assert.Equal(t, map[string]string{"field": "demand"}, withField.Details)
	assert.Equal(t, map[string]string{"field": "demand", "candidate": "2"}, withBoth.Details)
	assert.Nil(t, base.Details, "builders do not mutate the receiver")
	assert.False(t, base.Timestamp.IsZero())
}

func TestNewSuccess(t *testing.T) {
	resp := NewSuccess(map[string]int{"n": 1}, "req-2")
	assert.Equal(t, "req-2", resp.RequestID)
	assert.Equal(t, map[string]int{"n": 1}, resp.Data)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestErrCodeFromStatus(t *testing.T) {
	tests := []struct {
		status       int
		expectedCode string
	}{
		{http.StatusBadRequest, ErrCodeInvalidRequest},
		{http.StatusUnauthorized, ErrCodeUnauthorized},
		{http.StatusForbidden, ErrCodeForbidden},
		{http.StatusNotFound, ErrCodeNotFound},
		{http.StatusConflict, ErrCodeConflict},
		{http.StatusUnprocessableEntity, ErrCodeUnprocessable},
		{http.StatusTooManyRequests, ErrCodeRateLimit},
		{http.StatusGatewayTimeout, ErrCodeTimeout},
		{http.StatusServiceUnavailable, ErrCodeUnavailable},
		{http.StatusInternalServerError, ErrCodeInternal},
		{http.StatusBadGateway, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expectedCode, ErrCodeFromStatus(tt.status))
		})
	}
}
