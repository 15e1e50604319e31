package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	internalmiddleware "github.com/kutrumbo/unlockapp/internal/middleware"
	"github.com/kutrumbo/unlockapp/internal/models"
	"github.com/kutrumbo/unlockapp/internal/repository"
	"github.com/kutrumbo/unlockapp/internal/service"
	"github.com/kutrumbo/unlockapp/pkg/storage"
)

func buildTestRouter(t *testing.T, guards ...gin.HandlerFunc) (*gin.Engine, *repository.LocalStoreRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	local, err := storage.NewLocalStorage(filepath.Join(t.TempDir(), "unlock.json"))
	require.NoError(t, err)
	repo := repository.NewLocalStoreRepository(local)

	metrics := service.NewMetricsService("file")
	store := service.InstrumentStore(repo, metrics)
	logr := zap.NewNop()
	clock := func() time.Time { return time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC) }

	days := service.NewDayRecordService(store, metrics, logr, service.DayRecordServiceConfig{Location: time.UTC, Clock: clock})
	history := service.NewHistoryService(store, metrics, logr, service.HistoryServiceConfig{LoadConcurrency: 4})

	router := gin.New()
	router.Use(internalmiddleware.Metrics(metrics))
	RegisterRoutes(router, "/api/v1", Routes{
		Days:    NewDayHandler(days, nil),
		History: NewHistoryHandler(history, service.NewExportService(history)),
		Counter: NewCounterHandler(service.NewCounterService(store, metrics, logr)),
		Metrics: NewMetricsHandler(metrics, repo),
	}, guards...)
	return router, repo
}

func performRequest(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRoutesTrackAndListDays(t *testing.T) {
	router, repo := buildTestRouter(t)

	// untouched day reads as all-false
	resp := performRequest(router, http.MethodGet, "/api/v1/days/2024-03-01", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var view dayView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &view))
	assert.Equal(t, models.ActivitySet{}, view.Activities)
	assert.False(t, view.Unlocked)

	resp = performRequest(router, http.MethodPost, "/api/v1/days/2024-03-01/toggle", `{"activity":"reading"}`)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = performRequest(router, http.MethodGet, "/api/v1/days/2024-03-01", "")
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &view))
	assert.Equal(t, models.ActivitySet{Reading: true}, view.Activities)
	assert.True(t, view.Unlocked)

	// today resolves through the injected clock
	resp = performRequest(router, http.MethodPost, "/api/v1/days/2024-03-02/toggle", `{"activity":"music"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	resp = performRequest(router, http.MethodGet, "/api/v1/days/today", "")
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &view))
	assert.Equal(t, "2024-03-02", view.Date)
	assert.True(t, view.Activities.Music)

	// the counter shares the store but never shows up in history
	resp = performRequest(router, http.MethodPost, "/api/v1/counter/increment", "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, repo.SetItem(context.Background(), "2024-02-29", "not json"))

	resp = performRequest(router, http.MethodGet, "/api/v1/history", "")
	require.Equal(t, http.StatusOK, resp.Code)
	envelope := decodeEnvelope(t, resp)
	var views []dayView
	require.NoError(t, json.Unmarshal(envelope.Data, &views))
	require.Len(t, views, 2)
	assert.Equal(t, "2024-03-02", views[0].Date)
	assert.Equal(t, "2024-03-01", views[1].Date)
	assert.EqualValues(t, 2, envelope.Meta["count"])

	resp = performRequest(router, http.MethodGet, "/api/v1/history/export", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "2024-03-02")

	resp = performRequest(router, http.MethodGet, "/metrics", "")
	assert.Contains(t, resp.Body.String(), `activity_toggles_total{activity="reading"} 1`)
}

func TestRoutesRejectBadDayKey(t *testing.T) {
	router, repo := buildTestRouter(t)

	resp := performRequest(router, http.MethodPost, "/api/v1/days/2024-3-1/toggle", `{"activity":"reading"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	keys, err := repo.GetAllKeys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRoutesApplyGuardsToAPIOnly(t *testing.T) {
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	router, _ := buildTestRouter(t, deny)

	assert.Equal(t, http.StatusUnauthorized, performRequest(router, http.MethodGet, "/api/v1/history", "").Code)
	assert.Equal(t, http.StatusOK, performRequest(router, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, performRequest(router, http.MethodGet, "/ready", "").Code)
}
