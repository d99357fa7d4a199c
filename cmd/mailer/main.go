// Command mailer consumes email jobs from RabbitMQ and delivers them
// through Mailgun.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/pkg/logging"
	"storefront/pkg/mailer"
	"storefront/pkg/rabbitmq"

	"github.com/streadway/amqp"
)

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(cfg.AppName+"-mailer", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	client, err := rabbitmq.NewClient(rabbitmq.Config{
		URL:      cfg.RabbitMQURL,
		Queue:    cfg.RabbitMQEmailQueue,
		Prefetch: 16,
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize RabbitMQ client")
	}

	w := &worker{
		sender:  mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender),
		logger:  logger,
		timeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- client.Consume("mailer", func(msg amqp.Delivery) rabbitmq.Outcome {
			return w.handle(ctx, msg.Body)
		})
	}()

	logger.WithField("queue", client.Queue()).Info("email worker listening")
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-done:
		if err != nil {
			logger.WithError(err).Error("consumer stopped")
		}
	}
	if err := client.Close(); err != nil {
		logger.WithError(err).Error("failed to close RabbitMQ client")
	}
}
