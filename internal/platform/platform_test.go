package platform

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/bytebank-server/internal/config"
	"github.com/carson-networks/bytebank-server/internal/events"
	"github.com/carson-networks/bytebank-server/internal/receipts"
	"github.com/carson-networks/bytebank-server/internal/storage"
)

type fakeDialers struct {
	db       *sql.DB
	redisErr error
	gcsCalls int
	mqCalls  int
}

func (f *fakeDialers) dialers(t *testing.T) dialers {
	mr := miniredis.RunT(t)
	return dialers{
		postgres: func(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*storage.Storage, error) {
			// sql.Open does not connect, so no server is needed
			db, err := sql.Open("postgres", "postgres://test@127.0.0.1:1/test?sslmode=disable")
			if err != nil {
				return nil, err
			}
			f.db = db
			return storage.NewStorage(db), nil
		},
		redis: func(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
			if f.redisErr != nil {
				return nil, f.redisErr
			}
			return redis.NewClient(&redis.Options{Addr: mr.Addr()}), nil
		},
		receipts: func(ctx context.Context, cfg *config.Config) (*receipts.GCSUploader, error) {
			f.gcsCalls++
			return nil, errors.New("no gcs in tests")
		},
		events: func(cfg *config.Config, logger logrus.FieldLogger) (*events.Client, error) {
			f.mqCalls++
			return nil, errors.New("no broker in tests")
		},
	}
}

func testLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func TestOpen_OptionalComponentsDisabled(t *testing.T) {
	f := &fakeDialers{}
	p, err := open(context.Background(), &config.Config{}, testLogger(), f.dialers(t))
	require.NoError(t, err)
	defer p.Close()

	assert.NotNil(t, p.Storage)
	assert.NotNil(t, p.Sessions)
	assert.Nil(t, p.Receipts)
	assert.Nil(t, p.Events)
	assert.Zero(t, f.gcsCalls)
	assert.Zero(t, f.mqCalls)
}

func TestOpen_SecondOpenWhileLive(t *testing.T) {
	f := &fakeDialers{}
	p, err := open(context.Background(), &config.Config{}, testLogger(), f.dialers(t))
	require.NoError(t, err)

	_, err = open(context.Background(), &config.Config{}, testLogger(), f.dialers(t))
	assert.ErrorIs(t, err, ErrAlreadyOpen)

	require.NoError(t, p.Close())
	again, err := open(context.Background(), &config.Config{}, testLogger(), f.dialers(t))
	require.NoError(t, err, "a closed platform can be reopened")
	require.NoError(t, again.Close())
}

func TestClose_IsIdempotent(t *testing.T) {
	f := &fakeDialers{}
	p, err := open(context.Background(), &config.Config{}, testLogger(), f.dialers(t))
	require.NoError(t, err)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	assert.EqualError(t, f.db.Ping(), "sql: database is closed")
	assert.ErrorIs(t, p.Redis.Ping(context.Background()).Err(), redis.ErrClosed)
}

func TestOpen_FailureClosesWhatWasOpened(t *testing.T) {
	f := &fakeDialers{redisErr: errors.New("connection refused")}
	_, err := open(context.Background(), &config.Config{}, testLogger(), f.dialers(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")

	assert.EqualError(t, f.db.Ping(), "sql: database is closed")

	p, err := open(context.Background(), &config.Config{}, testLogger(), (&fakeDialers{}).dialers(t))
	require.NoError(t, err, "a failed open does not leave the platform live")
	require.NoError(t, p.Close())
}

func TestOpen_OptionalComponentFailure(t *testing.T) {
	f := &fakeDialers{}
	_, err := open(context.Background(), &config.Config{GCSBucket: "receipts"}, testLogger(), f.dialers(t))
	require.Error(t, err)
	assert.Equal(t, 1, f.gcsCalls)
	assert.EqualError(t, f.db.Ping(), "sql: database is closed")

	f = &fakeDialers{}
	_, err = open(context.Background(), &config.Config{AMQPURL: "amqp://localhost"}, testLogger(), f.dialers(t))
	require.Error(t, err)
	assert.Equal(t, 1, f.mqCalls)
}
