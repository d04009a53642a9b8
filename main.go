package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/bytebank-server/api"
	"github.com/carson-networks/bytebank-server/internal/config"
	"github.com/carson-networks/bytebank-server/internal/handlers/v1/status"
	"github.com/carson-networks/bytebank-server/internal/logging"
	"github.com/carson-networks/bytebank-server/internal/operator"
	"github.com/carson-networks/bytebank-server/internal/platform"
	"github.com/carson-networks/bytebank-server/internal/service"
)

func main() {
	envConfig, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config.Load")
		return
	}

	logger := logging.SetupLogging(logging.ParseLevel(envConfig.LogLevel))
	logger.Info("bytebank-server starting")

	if err := envConfig.Validate(); err != nil {
		logger.WithError(err).Fatal("config.Validate")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := platform.Open(ctx, envConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("platform.Open")
		return
	}
	defer func() {
		if err := p.Close(); err != nil {
			logger.WithError(err).Error("platform.Close")
		}
	}()

	delegator := operator.NewOperatorDelegator(p.Storage, envConfig.OperatorWorkers, logger)
	delegator.Start()
	defer delegator.Stop()

	svcConfig := service.TransactionServiceConfig{
		Reader:             p.Storage.Reader,
		Operator:           delegator,
		Logger:             logger,
		BreakerMaxFailures: envConfig.BreakerMaxFailures,
		BreakerOpenTimeout: envConfig.BreakerOpenTimeout,
	}
	if p.Events != nil {
		svcConfig.Publisher = p.Events
	}
	if p.Receipts != nil {
		svcConfig.Receipts = p.Receipts
	}

	httpRest := api.Rest{
		Logger:   logger,
		Port:     envConfig.Port,
		Service:  service.NewService(svcConfig),
		Sessions: p.Sessions,
		StatusChecks: map[string]status.Check{
			"postgres": p.Storage.DB.PingContext,
			"redis": func(ctx context.Context) error {
				return p.Redis.Ping(ctx).Err()
			},
		},
	}
	if err := httpRest.Serve(ctx); err != nil {
		logger.WithError(err).Error("HttpServer.Serve")
	}
	logger.Info("bytebank-server stopped")
}
