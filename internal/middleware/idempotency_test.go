package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newIdempotentRouter(t *testing.T, status int) (*gin.Engine, *int32) {
	t.Helper()

	idem := NewIdempotency(time.Minute)
	t.Cleanup(idem.Stop)

	var calls int32
	router := gin.New()
	router.Use(idem.Handler())
	router.POST("/api/optimize", func(c *gin.Context) {
		n := atomic.AddInt32(&calls, 1)
		c.JSON(status, gin.H{"call": n})
	})
	router.GET("/api/history", func(c *gin.Context) {
		n := atomic.AddInt32(&calls, 1)
		c.JSON(http.StatusOK, gin.H{"call": n})
	})
	return router, &calls
}

func post(router *gin.Engine, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/optimize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysSuccessfulResponse(t *testing.T) {
	router, calls := newIdempotentRouter(t, http.StatusOK)

	first := post(router, "abc", `{"demand":1000}`)
	second := post(router, "abc", `{"demand":1000}`)

	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(idempotencyReplayedHeader))
	assert.Empty(t, first.Header().Get(idempotencyReplayedHeader))
	assert.Contains(t, second.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestIdempotency_DifferentBodyIsNewRequest(t *testing.T) {
	router, calls := newIdempotentRouter(t, http.StatusOK)

	post(router, "abc", `{"demand":1000}`)
	w := post(router, "abc", `{"demand":2000}`)

	assert.Empty(t, w.Header().Get(idempotencyReplayedHeader))
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestIdempotency_WithoutKey(t *testing.T) {
	router, calls := newIdempotentRouter(t, http.StatusOK)

	post(router, "", `{}`)
	post(router, "", `{}`)

	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestIdempotency_ErrorsAreNotStored(t *testing.T) {
	router, calls := newIdempotentRouter(t, http.StatusUnprocessableEntity)

	post(router, "abc", `{}`)
	w := post(router, "abc", `{}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestIdempotency_IgnoresGet(t *testing.T) {
	router, calls := newIdempotentRouter(t, http.StatusOK)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
		req.Header.Set(IdempotencyKeyHeader, "abc")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestIdempotency_DeferredErrorsAreNotStored(t *testing.T) {
	idem := NewIdempotency(time.Minute)
	t.Cleanup(idem.Stop)

	var calls int32
	router := gin.New()
	router.Use(ErrorHandler(), idem.Handler())
	router.POST("/api/optimize", func(c *gin.Context) {
		atomic.AddInt32(&calls, 1)
		_ = c.Error(errors.New("rejected"))
	})

	first := post(router, "abc", `{"demand":-5}`)
	second := post(router, "abc", `{"demand":-5}`)

	assert.Equal(t, first.Code, second.Code)
	assert.NotEqual(t, http.StatusOK, second.Code)
	assert.NotEmpty(t, second.Body.String())
	assert.Empty(t, second.Header().Get(idempotencyReplayedHeader))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
