package http

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guttosm/epq-service/internal/domain/dto"
	"github.com/guttosm/epq-service/internal/domain/model"
	"github.com/guttosm/epq-service/internal/repository"
	"github.com/guttosm/epq-service/internal/service"
)

func TestDomainErrorMapper(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedOK     bool
		expectedStatus int
		expectedCode   string
		expectedDetail map[string]string
	}{
		{
			name:           "invalid input",
			err:            &model.InvalidInputError{Field: "holding_cost", Value: -1, Reason: "must be greater than zero"},
			expectedOK:     true,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrCodeInvalidRequest,
			expectedDetail: map[string]string{"field": "holding_cost", "reason": "must be greater than zero"},
		},
		{
			name:           "wrapped invalid input from a portfolio item",
			err:            fmt.Errorf("item %q: %w", "metal", &model.InvalidInputError{Field: "demand", Reason: "must be greater than zero"}),
			expectedOK:     true,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrCodeInvalidRequest,
			expectedDetail: map[string]string{"field": "demand", "reason": "must be greater than zero"},
		},
		{
			name:           "non-convex",
			err:            &model.NonConvexResultError{Candidate: 3, SecondDerivative: 0},
			expectedOK:     true,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   dto.ErrCodeUnprocessable,
			expectedDetail: map[string]string{"candidate": "3", "second_derivative": "0"},
		},
		{
			name:           "no feasible solution",
			err:            &model.NoFeasibleSolutionError{Reason: "degree 3"},
			expectedOK:     true,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   dto.ErrCodeUnprocessable,
			expectedDetail: map[string]string{"reason": "degree 3"},
		},
		{
			name:           "history circuit open",
			err:            fmt.Errorf("%w: circuit breaker is open", repository.ErrHistoryUnavailable),
			expectedOK:     true,
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   dto.ErrCodeUnavailable,
		},
		{
			name:           "history disabled",
			err:            service.ErrHistoryDisabled,
			expectedOK:     true,
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   dto.ErrCodeUnavailable,
		},
		{
			name:           "malformed csv",
			err:            fmt.Errorf("read demand row 3: %w", &csv.ParseError{Line: 3, Err: csv.ErrQuote}),
			expectedOK:     true,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrCodeInvalidRequest,
		},
		{
			name:           "upload too large",
			err:            &http.MaxBytesError{Limit: MaxDemandUpload},
			expectedOK:     true,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrCodeInvalidRequest,
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodPost)

			status, resp, ok := DomainErrorMapper(c, tt.err)

			assert.Equal(t, tt.expectedOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedCode, resp.Error)
			assert.NotEmpty(t, resp.Message)
			if tt.expectedDetail != nil {
				for k, v := range tt.expectedDetail {
					assert.Equal(t, v, resp.Details[k], k)
				}
			}
		})
	}
}
