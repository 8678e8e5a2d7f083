package worker

// retry_cron.go
// Background goroutine that re-drains the email dead letter queue. Every
// tick pops a batch from dlq:jobs:email and re-sends each entry through the
// SMTP circuit breaker. A failed entry goes back to the queue with its
// attempt count bumped; once it reaches maxNotificationAttempts it is parked
// in dlq:jobs:email:agotados for operator review.

import (
	"context"
	"encoding/json"
	"time"

	"farmavita/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 5 * time.Minute
	retryBatchSize    = 10

	// Total ceiling per job, counting the worker's in-process attempts.
	maxNotificationAttempts = 9
)

// RetryCronConfig holds all dependencies for the re-drain goroutine.
type RetryCronConfig struct {
	Sender NotificationSender
	CB     *infra.CircuitBreaker
	RDB    *redis.Client
}

// StartRetryCron launches a goroutine that ticks every retryTickInterval and
// re-attempts parked email jobs through the breaker. Respects the context
// for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// An open breaker means the relay is down; skip the whole tick.
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	pending, err := DLQLength(ctx, cfg.RDB, QueueEmail)
	if err != nil || pending == 0 {
		return
	}
	log.Info().Int64("pending", pending).Msg("retry_cron: re-draining email DLQ")

	dlqKey := DLQPrefix + QueueEmail
	for i := 0; i < retryBatchSize; i++ {
		// The breaker may trip mid-batch.
		if cfg.CB.State() == infra.CBOpen {
			log.Debug().Msg("retry_cron: circuit breaker opened mid-batch, stopping")
			return
		}

		raw, err := cfg.RDB.RPop(ctx, dlqKey).Result()
		if err != nil {
			return // list drained, or redis unavailable
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Msg("retry_cron: entrada DLQ corrupta, descartada")
			continue
		}

		switch resendEntry(cfg.Sender, cfg.CB, &entry) {
		case retryRequeue:
			requeueEntry(ctx, cfg.RDB, &entry)
		case retryPark:
			parkEntry(ctx, cfg.RDB, &entry)
		}
	}
}

type retryOutcome int

const (
	retryDelivered retryOutcome = iota
	retryRequeue
	retryPark
	retryDiscard
)

// resendEntry re-attempts one parked email through the breaker and decides
// the entry's fate. The redis moves happen at the caller.
func resendEntry(sender NotificationSender, cb *infra.CircuitBreaker, entry *DLQEntry) retryOutcome {
	var payload EmailJobPayload
	if err := json.Unmarshal(entry.Payload, &payload); err != nil || payload.ToEmail == "" {
		log.Error().Str("queue", entry.OriginalQueue).Msg("retry_cron: payload de email ilegible, descartado")
		return retryDiscard
	}

	cbErr := cb.Execute(func() error {
		if payload.PDFPath != "" {
			return sender.SendFactura(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
		}
		return sender.SendAlerta(payload.ToEmail, payload.Subject, payload.Body)
	})
	if cbErr == nil {
		log.Info().
			Str("to", payload.ToEmail).
			Int("attempts", entry.Attempts).
			Msg("retry_cron: email entregado en el reintento")
		return retryDelivered
	}

	entry.Attempts++
	entry.Reason = cbErr.Error()
	entry.FailedAt = time.Now().UTC().Format(time.RFC3339)

	if entry.Attempts >= maxNotificationAttempts {
		log.Error().
			Str("to", payload.ToEmail).
			Int("attempts", entry.Attempts).
			Msg("retry_cron: intentos agotados, entrada estacionada")
		return retryPark
	}
	log.Warn().
		Str("to", payload.ToEmail).
		Int("attempts", entry.Attempts).
		Msg("retry_cron: reintento fallido, reencolado")
	return retryRequeue
}
