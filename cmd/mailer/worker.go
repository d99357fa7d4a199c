package main

import (
	"context"
	"encoding/json"
	"time"

	"storefront/pkg/mailer"
	mailtpl "storefront/pkg/mailer/templates"
	"storefront/pkg/rabbitmq"

	"github.com/sirupsen/logrus"
)

// Sender delivers one rendered email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// worker renders queued email jobs and hands them to a Sender.
type worker struct {
	sender  Sender
	logger  logrus.FieldLogger
	timeout time.Duration
}

// handle processes one message body. Malformed jobs and unknown templates
// are dropped; delivery failures are requeued.
func (w *worker) handle(ctx context.Context, body []byte) rabbitmq.Outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil || job.To == "" {
		w.logger.WithField("body", string(body)).Warn("dropping malformed email job")
		return rabbitmq.Drop
	}
	log := w.logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template})

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			log.WithError(err).Error("failed to render email")
			return rabbitmq.Drop
		}
		subject, text, html = s, t, h
	}

	sendCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	if err := w.sender.Send(sendCtx, job.To, subject, text, html); err != nil {
		log.WithError(err).Error("send failed")
		return rabbitmq.Requeue
	}
	log.Info("email sent")
	return rabbitmq.Ack
}
