package worker

// dlq.go
// Jobs that exhaust their delivery attempts land in a per-queue Redis list
// (dlq:{queue}) instead of disappearing. The retry cron re-drains the email
// list on a timer; entries that keep failing past the attempt ceiling move
// to dlq:{queue}:agotados, which only an operator empties.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	DLQPrefix    = "dlq:"
	parkedSuffix = ":agotados"
)

// DLQEntry carries a failed job together with why and when it failed, so an
// operator reading the list does not have to dig through logs.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"` // RFC 3339 UTC
	Attempts      int             `json:"attempts"`
}

// SendToDLQ parks a failed job in the dead letter list of its queue.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, jobType string, payload json.RawMessage, reason string, attempts int) {
	entry := DLQEntry{
		OriginalQueue: queue,
		JobType:       jobType,
		Payload:       payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC().Format(time.RFC3339),
		Attempts:      attempts,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: no se pudo serializar la entrada")
		return
	}

	dlqKey := DLQPrefix + queue
	if err := rdb.LPush(ctx, dlqKey, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", dlqKey).Msg("dlq: no se pudo encolar la entrada")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: trabajo movido a la dead letter queue")
}

// requeueEntry puts a still-retryable entry back in its DLQ so the next
// cron tick picks it up again.
func requeueEntry(ctx context.Context, rdb *redis.Client, entry *DLQEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	key := DLQPrefix + entry.OriginalQueue
	if err := rdb.LPush(ctx, key, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", key).Msg("dlq: no se pudo reencolar la entrada")
	}
}

// parkEntry moves an exhausted entry to the agotados list, out of the retry
// cron's reach.
func parkEntry(ctx context.Context, rdb *redis.Client, entry *DLQEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	key := DLQPrefix + entry.OriginalQueue + parkedSuffix
	if err := rdb.LPush(ctx, key, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", key).Msg("dlq: no se pudo estacionar la entrada")
	}
}

// DLQLength returns the depth of a queue's dead letter list. Surfaced on
// /health and logged by the retry cron.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
