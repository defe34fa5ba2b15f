package main

import (
	"context"
	"os"

	"nanny-payroll-bot/internal/config"
	"nanny-payroll-bot/internal/logging"
	"nanny-payroll-bot/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	open := func(cmd *cobra.Command) (*App, error) {
		if dsn, _ := cmd.Flags().GetString("db"); dsn != "" {
			if err := os.Setenv("DATABASE_URL", dsn); err != nil {
				return nil, err
			}
		}

		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if err := logging.SetLevel(cfg.LogLevel); err != nil {
			logrus.WithError(err).Warn("Unknown LOG_LEVEL, using info")
		}

		db, err := repository.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}

		store, err := repository.NewStore(db)
		if err != nil {
			return nil, err
		}

		return NewApp(store, cfg.Policy(), cfg.Location), nil
	}

	if err := SetupCommands(open).ExecuteContext(context.Background()); err != nil {
		logrus.Fatal(err)
	}
}
