package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_getLogLevel(t *testing.T) {
	tests := []struct {
		statusCode int
		expected   string
	}{
		{200, "info"},
		{301, "info"},
		{400, "warn"},
		{422, "warn"},
		{500, "error"},
		{503, "error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.statusCode), func(t *testing.T) {
			assert.Equal(t, tt.expected, getLogLevel(tt.statusCode))
		})
	}
}

func TestRequestLogger_StoresEntry(t *testing.T) {
	sink := &recordingSink{}
	al := NewAsyncLogger(sink, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 1})

	router := gin.New()
	router.Use(RequestID(), RequestLogger(al))
	router.POST("/api/optimize", func(c *gin.Context) {
		_ = c.Error(errors.New("demand: must be greater than 0"))
		c.Status(http.StatusBadRequest)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/optimize", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	req.Header.Set("User-Agent", "epqctl/1.0")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	al.Stop()

	entries := sink.all()
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "warn", e.Level)
	assert.Equal(t, "abc-123", e.RequestID)
	assert.Equal(t, http.MethodPost, e.Method)
	assert.Equal(t, "/api/optimize", e.Path)
	assert.Equal(t, http.StatusBadRequest, e.StatusCode)
	assert.Equal(t, "epqctl/1.0", e.UserAgent)
	assert.Equal(t, "demand: must be greater than 0", e.Error)
}

func TestRequestLogger_WithoutStore(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(nil))
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
