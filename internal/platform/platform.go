package platform

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/bytebank-server/internal/config"
	"github.com/carson-networks/bytebank-server/internal/events"
	"github.com/carson-networks/bytebank-server/internal/receipts"
	"github.com/carson-networks/bytebank-server/internal/session"
	"github.com/carson-networks/bytebank-server/internal/storage"
)

var ErrAlreadyOpen = errors.New("platform: already open")

var (
	liveMu sync.Mutex
	live   bool
)

// Platform holds the process-wide connections. Receipts and Events are nil
// when their configuration is empty.
type Platform struct {
	Storage  *storage.Storage
	Redis    *redis.Client
	Sessions *session.Store
	Receipts *receipts.GCSUploader
	Events   *events.Client

	logger  logrus.FieldLogger
	closers []closer
	once    sync.Once
	err     error
}

type closer struct {
	name  string
	close func() error
}

type dialers struct {
	postgres func(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*storage.Storage, error)
	redis    func(ctx context.Context, cfg *config.Config) (*redis.Client, error)
	receipts func(ctx context.Context, cfg *config.Config) (*receipts.GCSUploader, error)
	events   func(cfg *config.Config, logger logrus.FieldLogger) (*events.Client, error)
}

var defaultDialers = dialers{
	postgres: dialPostgres,
	redis:    dialRedis,
	receipts: func(ctx context.Context, cfg *config.Config) (*receipts.GCSUploader, error) {
		return receipts.NewGCSUploader(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile, cfg.GCSEndpoint)
	},
	events: func(cfg *config.Config, logger logrus.FieldLogger) (*events.Client, error) {
		return events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	},
}

func dialPostgres(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*storage.Storage, error) {
	if cfg.MigrateOnStart {
		if err := storage.RunMigrations(cfg.PostgresURL(), logger); err != nil {
			return nil, err
		}
	}
	return storage.Open(ctx, cfg.PostgresURL())
}

func dialRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Open connects every configured dependency. Only one Platform may be open
// at a time.
func Open(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*Platform, error) {
	return open(ctx, cfg, logger, defaultDialers)
}

func open(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger, d dialers) (*Platform, error) {
	liveMu.Lock()
	defer liveMu.Unlock()
	if live {
		return nil, ErrAlreadyOpen
	}

	p := &Platform{logger: logger}

	s, err := d.postgres(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("platform: postgres: %w", err)
	}
	p.Storage = s
	p.closers = append(p.closers, closer{"postgres", s.Close})
	logger.Info("Platform.Open.postgres")

	rc, err := d.redis(ctx, cfg)
	if err != nil {
		p.closeAll()
		return nil, fmt.Errorf("platform: redis: %w", err)
	}
	p.Redis = rc
	p.Sessions = session.NewStore(rc)
	p.closers = append(p.closers, closer{"redis", rc.Close})
	logger.Info("Platform.Open.redis")

	if cfg.GCSBucket != "" {
		u, err := d.receipts(ctx, cfg)
		if err != nil {
			p.closeAll()
			return nil, fmt.Errorf("platform: receipts: %w", err)
		}
		p.Receipts = u
		p.closers = append(p.closers, closer{"receipts", u.Close})
		logger.WithField("bucket", cfg.GCSBucket).Info("Platform.Open.receipts")
	} else {
		logger.Info("Platform.Open.receipts disabled")
	}

	if cfg.AMQPURL != "" {
		ec, err := d.events(cfg, logger)
		if err != nil {
			p.closeAll()
			return nil, fmt.Errorf("platform: events: %w", err)
		}
		p.Events = ec
		p.closers = append(p.closers, closer{"events", ec.Close})
		logger.Info("Platform.Open.events")
	} else {
		logger.Info("Platform.Open.events disabled")
	}

	live = true
	return p, nil
}

// Close releases every connection in reverse order of opening. Calling it
// more than once returns the first result.
func (p *Platform) Close() error {
	p.once.Do(func() {
		p.err = p.closeAll()
		liveMu.Lock()
		live = false
		liveMu.Unlock()
	})
	return p.err
}

func (p *Platform) closeAll() error {
	var errs []error
	for i := len(p.closers) - 1; i >= 0; i-- {
		c := p.closers[i]
		if err := c.close(); err != nil {
			p.logger.WithError(err).WithField("component", c.name).Error("Platform.Close")
			errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
		}
	}
	p.closers = nil
	return errors.Join(errs...)
}
