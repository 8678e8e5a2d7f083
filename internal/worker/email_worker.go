package worker

// email_worker.go
// Processes email jobs from QueueEmail through the SMTP circuit breaker.
// Retries with exponential backoff; after MaxEmailAttempts the job moves to
// the dead letter queue.

import (
	"context"
	"encoding/json"
	"time"

	"farmavita/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const MaxEmailAttempts = 3

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path,omitempty"`
}

// NotificationSender is the slice of the mailer the workers need.
type NotificationSender interface {
	SendFactura(to, subject, body, pdfPath string) error
	SendAlerta(to, subject, body string) error
}

// EmailWorker sends invoice PDFs and alert emails via SMTP. The circuit
// breaker keeps the workers from hammering a relay that is down.
type EmailWorker struct {
	mailer NotificationSender
	cb     *infra.CircuitBreaker
	rdb    *redis.Client
}

func NewEmailWorker(mailer NotificationSender, cb *infra.CircuitBreaker, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb, rdb: rdb}
}

// Process sends an email, retrying transient failures before giving up.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	err := withRetry(ctx, MaxEmailAttempts, func(attempt int) error {
		return w.cb.Execute(func() error {
			if payload.PDFPath != "" {
				return w.mailer.SendFactura(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
			}
			return w.mailer.SendAlerta(payload.ToEmail, payload.Subject, payload.Body)
		})
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: giving up after retries")
		SendToDLQ(ctx, w.rdb, QueueEmail, "email", raw, err.Error(), MaxEmailAttempts)
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: email sent successfully")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
