package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/notify"
	"storefront/internal/server"
	"storefront/internal/throttle"
	"storefront/pkg/logging"
	"storefront/pkg/rabbitmq"

	"github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()
	logger := logging.NewLogger(cfg.AppName, cfg.Env)

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.WithError(err).Fatal("failed to migrate database")
	}

	deps := server.Deps{Config: cfg, DB: db, Logger: logger}

	// --- Redis (reset cooldown) ---
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := throttle.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to redis")
		}
		defer rdb.Close()
		deps.Cooldown = throttle.NewRedisCooldown(rdb, throttle.ResetCooldownPrefix, cfg.PasswordResetCooldown)
	} else {
		logger.Warn("REDIS_ADDR not set; password reset cooldown disabled")
	}

	// --- RabbitMQ (email jobs) ---
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQEmailQueue}, logger)
		if err != nil {
			logger.WithError(err).Fatal("failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
		deps.Notifier = notify.NewQueueNotifier(mqClient, logger)
	} else {
		logger.Warn("RABBITMQ_URL not set; emails are only logged")
	}

	app := server.NewApp(deps)

	// --- Start HTTP Server ---
	logger.WithField("port", cfg.Port).Info("starting server")

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Port); err != nil {
			logger.WithError(err).Fatal("server failed to start")
		}
	}()

	<-quit
	logger.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.WithFields(logrus.Fields{"error": err.Error()}).Error("error during shutdown")
	}
	logger.Info("server gracefully stopped")
}
