// Command seed creates the permissions, the catalog group and a superuser.
package main

import (
	"context"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/pkg/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(cfg.AppName+"-seed", cfg.Env)

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.WithError(err).Fatal("failed to migrate database")
	}
	if err := seed(context.Background(), db, cfg, logger); err != nil {
		logger.WithError(err).Fatal("seeding failed")
	}
	logger.Info("seeding done")
}
