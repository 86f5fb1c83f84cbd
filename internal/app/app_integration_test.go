//go:build integration

package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/epq-service/config"
)

func TestInitializeApp_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Parallel()

	t.Run("optimisation is recorded in MongoDB history", func(t *testing.T) {
		t.Parallel()
		cfg := config.Config{
			Server: config.ServerConfig{
				Port:           "8080",
				RateLimit:      100,
				RateWindow:     time.Minute,
				RequestTimeout: 5 * time.Second,
			},
			Cache:    config.CacheConfig{Size: 100, TTL: time.Minute},
			Database: mongoConfig(t),
		}

		a, err := InitializeApp(cfg)
		require.NoError(t, err)
		defer func() { _ = a.Close(context.Background()) }()
		require.NotNil(t, a.Database)

		body := []byte(`{"demand":1000,"manufacturer_setup_cost":50,"holding_cost":2}`)
		req := httptest.NewRequest(http.MethodPost, "/api/optimize", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		a.Router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Eventually(t, func() bool {
			n, err := a.Services.History.Count(context.Background(), "single")
			return err == nil && n == 1
		}, 5*time.Second, 50*time.Millisecond)

		req = httptest.NewRequest(http.MethodGet, "/api/history?kind=single", nil)
		w = httptest.NewRecorder()
		a.Router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total_cost":447.21`)

		req = httptest.NewRequest(http.MethodGet, "/readyz", nil)
		w = httptest.NewRecorder()
		a.Router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
