package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		handler        gin.HandlerFunc
		locale         string
		expectedStatus int
		mustContain    []string
	}{
		{
			name:           "recovers from panic",
			handler:        func(c *gin.Context) { panic("division by zero") },
			expectedStatus: http.StatusInternalServerError,
			mustContain:    []string{"internal_error", "An unexpected error occurred", "request_id"},
		},
		{
			name:           "localised message",
			handler:        func(c *gin.Context) { panic("boom") },
			locale:         "pt",
			expectedStatus: http.StatusInternalServerError,
			mustContain:    []string{"Ocorreu um erro inesperado"},
		},
		{
			name:           "passes through when no panic",
			handler:        func(c *gin.Context) { c.String(http.StatusOK, "ok") },
			expectedStatus: http.StatusOK,
			mustContain:    []string{"ok"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), Recovery())
			router.GET("/", tt.handler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.locale != "" {
				req.Header.Set("Accept-Language", tt.locale)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			for _, s := range tt.mustContain {
				assert.Contains(t, w.Body.String(), s)
			}
		})
	}
}
