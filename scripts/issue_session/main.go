package main

import (
	"fmt"
	"os"

	"github.com/gofrs/uuid/v5"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	server_config "github.com/carson-networks/bytebank-server/internal/config"
	"github.com/carson-networks/bytebank-server/internal/session"
)

func main() {
	app := &cli.App{
		Name:  "issue_session",
		Usage: "mint a session token for local development",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Value: "dev@bytebank.local", Usage: "user email"},
			&cli.StringFlag{Name: "name", Value: "Dev User", Usage: "display name"},
			&cli.StringFlag{Name: "user", Usage: "user id, random when empty"},
		},
		Action: issue,
	}
	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("issue_session")
	}
}

func issue(c *cli.Context) error {
	env, err := server_config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	id := c.String("user")
	if id == "" {
		id = uuid.Must(uuid.NewV4()).String()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     env.RedisAddress,
		Password: env.RedisPassword,
		DB:       env.RedisDB,
	})
	defer client.Close()

	token, err := session.NewStore(client).Create(c.Context, session.User{
		ID:          id,
		Email:       c.String("email"),
		DisplayName: c.String("name"),
	}, env.SessionTTL)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	logrus.WithFields(logrus.Fields{"userID": id, "ttl": env.SessionTTL}).Info("session issued")
	fmt.Fprintln(c.App.Writer, token)
	return nil
}
