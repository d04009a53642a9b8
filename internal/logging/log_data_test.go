package logging

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogData_ConcurrentWrites(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logData := NewLogData(logger)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stop := logData.AddToExistingTiming("work")
			logData.AddData("worker", true)
			stop()
		}()
	}
	wg.Wait()

	logData.Log().Info("done")
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, true, entry.Data["worker"])
	assert.Contains(t, entry.Data, "work")
}

func TestGetLogData(t *testing.T) {
	assert.Nil(t, GetLogData(context.Background()))

	logData := NewLogData(logrus.New())
	ctx := WithLogData(context.Background(), logData)
	assert.Same(t, logData, GetLogData(ctx))
}

func TestLoggingWrapper_FreshLogDataPerRequest(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	var seen []*LogData
	handler := LoggingWrapper("Probe", logger, func(w http.ResponseWriter, req *http.Request, logData *LogData) error {
		assert.Same(t, logData, GetLogData(req.Context()))
		seen = append(seen, logData)
		if req.Method != http.MethodGet {
			return errors.New("probe: method not GET")
		}
		w.WriteHeader(http.StatusOK)
		return nil
	})

	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/probe", nil))
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/probe", nil))

	require.Len(t, seen, 2)
	assert.NotSame(t, seen[0], seen[1])

	last := hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, last.Level)
	assert.Equal(t, "Handler.Probe.Error", last.Message)
}

func TestMiddleware_LogsOperation(t *testing.T) {
	logger, hook := test.NewNullLogger()
	_, api := humatest.New(t)
	api.UseMiddleware(Middleware(logger))

	huma.Register(api, huma.Operation{
		OperationID: "probe",
		Method:      http.MethodGet,
		Path:        "/probe",
	}, func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		logData := GetLogData(ctx)
		require.NotNil(t, logData)
		logData.AddData("probed", 1)
		return nil, nil
	})

	resp := api.Get("/probe")
	assert.Equal(t, http.StatusNoContent, resp.Code)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Handler.probe.Complete", entry.Message)
	assert.Equal(t, 1, entry.Data["probed"])
	assert.Equal(t, http.StatusNoContent, entry.Data["status"])
}
