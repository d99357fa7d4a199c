// Package notify hands outgoing emails to the delivery pipeline.
package notify

import (
	"context"
	"fmt"

	"storefront/pkg/mailer"

	"github.com/sirupsen/logrus"
)

// Notifier sends a templated message to one recipient.
type Notifier interface {
	Send(ctx context.Context, template, recipient string, data map[string]any) error
}

// Publisher publishes a JSON message; *rabbitmq.Client satisfies it.
type Publisher interface {
	PublishJSON(body any) error
}

// QueueNotifier enqueues email jobs for the mailer worker.
type QueueNotifier struct {
	publisher Publisher
	logger    logrus.FieldLogger
}

// NewQueueNotifier creates a notifier publishing to publisher.
func NewQueueNotifier(publisher Publisher, logger logrus.FieldLogger) *QueueNotifier {
	return &QueueNotifier{publisher: publisher, logger: logger}
}

func (n *QueueNotifier) Send(ctx context.Context, template, recipient string, data map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	job := mailer.EmailJob{To: recipient, Template: template, Data: data}
	if err := n.publisher.PublishJSON(job); err != nil {
		return fmt.Errorf("failed to enqueue %s email: %w", template, err)
	}
	n.logger.WithFields(logrus.Fields{"template": template, "to": recipient}).Info("email queued")
	return nil
}

// LogNotifier only logs the job. Used when no broker is configured.
type LogNotifier struct {
	logger logrus.FieldLogger
}

// NewLogNotifier creates a notifier writing to logger.
func NewLogNotifier(logger logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, template, recipient string, data map[string]any) error {
	n.logger.WithFields(logrus.Fields{
		"template": template,
		"to":       recipient,
		"data":     data,
	}).Info("email not delivered, no broker configured")
	return nil
}
