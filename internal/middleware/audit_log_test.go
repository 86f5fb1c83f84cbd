package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/epq-service/internal/domain/model"
)

func TestAuditLog(t *testing.T) {
	sink := &recordingSink{}
	al := NewAsyncLogger(sink, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 1})

	router := gin.New()
	router.Use(RequestID(), func(c *gin.Context) {
		setCaller(c, "key:0123456789ab", AllScopes)
		c.Next()
	})
	router.POST("/api/optimize", func(c *gin.Context) {
		AuditLog(al, c, model.ActionOptimize, "Lot size optimised", map[string]interface{}{"q": 223.61})
		c.Status(http.StatusOK)
	})
	router.POST("/api/optimize/portfolio", func(c *gin.Context) {
		AuditLogError(al, c, model.ActionOptimizePortfolio, "Portfolio failed", errors.New("item \"a\": invalid"), nil)
		c.Status(http.StatusBadRequest)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/optimize", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	router.ServeHTTP(httptest.NewRecorder(), req)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/optimize/portfolio", nil))
	al.Stop()

	entries := sink.all()
	require.Len(t, entries, 2)

	byAction := map[string]*model.LogEntry{}
	for _, e := range entries {
		byAction[e.ActionType] = e
	}

	ok := byAction[model.ActionOptimize]
	require.NotNil(t, ok)
	assert.Equal(t, "info", ok.Level)
	assert.Equal(t, "req-1", ok.RequestID)
	assert.Equal(t, "key:0123456789ab", ok.Subject)
	assert.Equal(t, "/api/optimize", ok.Path)
	assert.Equal(t, 223.61, ok.Fields["q"])

	failed := byAction[model.ActionOptimizePortfolio]
	require.NotNil(t, failed)
	assert.Equal(t, "error", failed.Level)
	assert.Equal(t, "item \"a\": invalid", failed.Error)
}

func TestAuditLog_NilLogger(t *testing.T) {
	router := gin.New()
	router.GET("/x", func(c *gin.Context) {
		AuditLog(nil, c, model.ActionEstimateDemand, "noop", nil)
		AuditLogError(nil, c, model.ActionEstimateDemand, "noop", nil, nil)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() { router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil)) })
	assert.Equal(t, http.StatusOK, w.Code)
}
