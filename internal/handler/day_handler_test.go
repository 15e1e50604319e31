package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kutrumbo/unlockapp/internal/models"
	appErrors "github.com/kutrumbo/unlockapp/pkg/errors"
)

type responseEnvelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

type dayView struct {
	Date       string             `json:"date"`
	Activities models.ActivitySet `json:"activities"`
	Unlocked   bool               `json:"unlocked"`
}

type fakeDaySrv struct {
	today      string
	sets       map[string]models.ActivitySet
	loadErr    error
	toggleErr  error
	lastToggle struct {
		date     string
		activity models.Activity
	}
}

func (f *fakeDaySrv) TodayKey() string { return f.today }

func (f *fakeDaySrv) Load(_ context.Context, date string) (models.ActivitySet, error) {
	if f.loadErr != nil {
		return models.ActivitySet{}, f.loadErr
	}
	return f.sets[date], nil
}

func (f *fakeDaySrv) Toggle(_ context.Context, date string, activity models.Activity) (models.ActivitySet, error) {
	f.lastToggle.date = date
	f.lastToggle.activity = activity
	if f.toggleErr != nil {
		return models.ActivitySet{}, f.toggleErr
	}
	set, err := f.sets[date].Toggle(activity)
	if err != nil {
		return models.ActivitySet{}, err
	}
	if f.sets == nil {
		f.sets = map[string]models.ActivitySet{}
	}
	f.sets[date] = set
	return set, nil
}

func newDayContext(method, target, date, body string) (*gin.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if date != "" {
		c.Params = gin.Params{{Key: "date", Value: date}}
	}
	return c, rec
}

func TestDayHandlerGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDaySrv{sets: map[string]models.ActivitySet{"2024-03-01": {Music: true}}}
	handler := NewDayHandler(srv, nil)

	c, rec := newDayContext(http.MethodGet, "/days/2024-03-01", "2024-03-01", "")
	handler.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	var view dayView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &view))
	assert.Equal(t, "2024-03-01", view.Date)
	assert.True(t, view.Activities.Music)
	assert.True(t, view.Unlocked)
}

func TestDayHandlerToday(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDayHandler(&fakeDaySrv{today: "2024-07-04"}, nil)

	c, rec := newDayContext(http.MethodGet, "/days/today", "", "")
	handler.Today(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var view dayView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &view))
	assert.Equal(t, "2024-07-04", view.Date)
	assert.False(t, view.Unlocked)
}

func TestDayHandlerGetPropagatesStoreFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDaySrv{loadErr: appErrors.WrapAs(appErrors.ErrStoreUnavailable, errors.New("disk gone"), "")}
	handler := NewDayHandler(srv, nil)

	c, rec := newDayContext(http.MethodGet, "/days/2024-03-01", "2024-03-01", "")
	handler.Get(c)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrStoreUnavailable.Code, envelope.Error.Code)
}

func TestDayHandlerToggle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDaySrv{}
	handler := NewDayHandler(srv, nil)

	c, rec := newDayContext(http.MethodPost, "/days/2024-03-01/toggle", "2024-03-01", `{"activity":"exercising"}`)
	handler.Toggle(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-03-01", srv.lastToggle.date)
	assert.Equal(t, models.ActivityExercising, srv.lastToggle.activity)
	var view dayView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &view))
	assert.Equal(t, models.ActivitySet{Exercising: true}, view.Activities)
	assert.True(t, view.Unlocked)
}

func TestDayHandlerToggleRejectsUnknownActivity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDaySrv{}
	handler := NewDayHandler(srv, nil)

	c, rec := newDayContext(http.MethodPost, "/days/2024-03-01/toggle", "2024-03-01", `{"activity":"cooking"}`)
	handler.Toggle(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, appErrors.ErrInvalidActivity.Code, decodeEnvelope(t, rec).Error.Code)
	assert.Empty(t, srv.lastToggle.date)
}

func TestDayHandlerToggleRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDayHandler(&fakeDaySrv{}, nil)

	c, rec := newDayContext(http.MethodPost, "/days/2024-03-01/toggle", "2024-03-01", `{"activity":`)
	handler.Toggle(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, decodeEnvelope(t, rec).Error.Code)
}

func TestDayHandlerToggleInvalidDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDaySrv{toggleErr: appErrors.Clone(appErrors.ErrInvalidDayKey, "")}
	handler := NewDayHandler(srv, nil)

	c, rec := newDayContext(http.MethodPost, "/days/03-01-2024/toggle", "03-01-2024", `{"activity":"music"}`)
	handler.Toggle(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, appErrors.ErrInvalidDayKey.Code, decodeEnvelope(t, rec).Error.Code)
}
