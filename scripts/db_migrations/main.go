package main

import (
	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/bytebank-server/internal/config"
	"github.com/carson-networks/bytebank-server/internal/logging"
	"github.com/carson-networks/bytebank-server/internal/storage"
)

func main() {
	env, err := server_config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config.Load")
		return
	}
	logger := logging.SetupLogging(logging.ParseLevel(env.LogLevel))

	if err := storage.RunMigrations(env.PostgresURL(), logger); err != nil {
		logger.WithError(err).Fatal("storage.RunMigrations")
	}
}
