package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		timeout     time.Duration
		handler     gin.HandlerFunc
		wantStatus  int
		mustContain string
	}{
		{
			name:       "fast request completes",
			timeout:    time.Second,
			handler:    func(c *gin.Context) { c.Status(http.StatusOK) },
			wantStatus: http.StatusOK,
		},
		{
			name:    "handler honouring the deadline gets 504",
			timeout: 20 * time.Millisecond,
			handler: func(c *gin.Context) {
				<-c.Request.Context().Done()
			},
			wantStatus:  http.StatusGatewayTimeout,
			mustContain: "timeout",
		},
		{
			name:    "response written before the deadline is kept",
			timeout: 20 * time.Millisecond,
			handler: func(c *gin.Context) {
				c.String(http.StatusAccepted, "queued")
				<-c.Request.Context().Done()
			},
			wantStatus:  http.StatusAccepted,
			mustContain: "queued",
		},
		{
			name:    "zero timeout uses the default",
			timeout: 0,
			handler: func(c *gin.Context) {
				deadline, ok := c.Request.Context().Deadline()
				assert.True(t, ok)
				assert.WithinDuration(t, time.Now().Add(DefaultRequestTimeout), deadline, time.Second)
				c.Status(http.StatusNoContent)
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), Timeout(tt.timeout))
			router.GET("/test", tt.handler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.mustContain != "" {
				assert.Contains(t, w.Body.String(), tt.mustContain)
			}
		})
	}
}
