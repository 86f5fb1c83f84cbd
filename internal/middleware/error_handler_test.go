package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/epq-service/internal/domain/dto"
)

var errTeapot = errors.New("teapot")

func teapotMapper(_ *gin.Context, err error) (int, dto.ErrorResponse, bool) {
	if !errors.Is(err, errTeapot) {
		return 0, dto.ErrorResponse{}, false
	}
	return http.StatusTeapot, dto.NewError("teapot", "short and stout").WithDetail("field", "spout"), true
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		handler        gin.HandlerFunc
		expectedStatus int
		expectedCode   string
		expectedDetail string
	}{
		{
			name:           "unmapped error is internal",
			handler:        func(c *gin.Context) { _ = c.Error(errors.New("boom")) },
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrCodeInternal,
		},
		{
			name:           "mapped error uses mapper response",
			handler:        func(c *gin.Context) { _ = c.Error(errTeapot) },
			expectedStatus: http.StatusTeapot,
			expectedCode:   "teapot",
			expectedDetail: "spout",
		},
		{
			name:           "last error wins",
			handler:        func(c *gin.Context) { _ = c.Error(errors.New("first")); _ = c.Error(errTeapot) },
			expectedStatus: http.StatusTeapot,
			expectedCode:   "teapot",
			expectedDetail: "spout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), ErrorHandler(teapotMapper))
			router.GET("/", tt.handler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedCode, body.Error)
			assert.NotEmpty(t, body.RequestID)
			assert.Equal(t, tt.expectedDetail, body.Details["field"])
		})
	}
}

func TestErrorHandler_NoErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestErrorHandler_KeepsWrittenResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusAccepted, "done")
		_ = c.Error(errors.New("late"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "done", w.Body.String())
}
