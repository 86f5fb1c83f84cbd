package http

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/epq-service/internal/domain/model"
	"github.com/guttosm/epq-service/internal/repository"
	"github.com/guttosm/epq-service/internal/service"
)

func TestHandler_SQLiteHistoryEndToEnd(t *testing.T) {
	repo, err := repository.NewSQLiteHistoryRepository(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	health := NewHealthHandler()
	health.RegisterChecker("sqlite", repo)
	handler := NewHandler(service.NewOptimizerService(), WithHistory(service.NewHistoryService(repo, "sqlite")))
	router := NewRouter(handler, health, RouterConfig{})

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, doJSON(router, http.MethodPost, "/api/optimize", optimizeBody).Code)
	}

	w := doJSON(router, http.MethodGet, "/api/history?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	rows := decodeData[[]model.HistoryRecord](t, w)
	require.Len(t, rows, 2)
	assert.Equal(t, model.HistoryKindSingle, rows[0].Kind)
	assert.NotEmpty(t, rows[0].RequestID)

	w = doJSON(router, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
