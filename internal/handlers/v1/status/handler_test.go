package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/bytebank-server/internal/logging"
)

func createTestLogData() *logging.LogData {
	logger, _ := test.NewNullLogger()
	return logging.NewLogData(logger)
}

func ok(ctx context.Context) error { return nil }

func TestHandler_GoodMethod(t *testing.T) {
	statusHandler := NewHandler(map[string]Check{"postgres": ok, "redis": ok})
	req := httptest.NewRequest(http.MethodGet, "/status", nil)

	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.NoError(t, err)

	res := w.Result()
	assert.Equal(t, 200, res.StatusCode)

	var body response
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, map[string]string{"postgres": "up", "redis": "up"}, body.Components)
}

func TestHandler_NoChecks(t *testing.T) {
	statusHandler := NewHandler(nil)
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, httptest.NewRequest(http.MethodGet, "/status", nil), createTestLogData())
	assert.NoError(t, err)
	assert.Equal(t, 200, w.Code)
}

func TestHandler_DependencyDown(t *testing.T) {
	statusHandler := NewHandler(map[string]Check{
		"postgres": ok,
		"redis":    func(ctx context.Context) error { return errors.New("connection refused") },
	})
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, httptest.NewRequest(http.MethodGet, "/status", nil), createTestLogData())
	assert.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "down", body.Components["redis"])
	assert.Equal(t, "up", body.Components["postgres"])
}

func TestHandler_BadMethod(t *testing.T) {
	statusHandler := NewHandler(nil)
	req := httptest.NewRequest(http.MethodPost, "/status", nil)
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.Error(t, err)

	res := w.Result()
	assert.Equal(t, 400, res.StatusCode)
}

func TestHandler_LogsPingTimings(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logData := logging.NewLogData(logger)
	statusHandler := NewHandler(map[string]Check{"postgres": ok, "redis": ok})

	err := statusHandler.Handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil), logData)
	require.NoError(t, err)

	logData.Log().Info("status")
	fields := hook.LastEntry().Data
	assert.Contains(t, fields, "postgresPingMs")
	assert.Contains(t, fields, "redisPingMs")
	assert.Contains(t, fields, "dependencyPingMs")
}
