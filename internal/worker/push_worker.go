package worker

// push_worker.go
// Delivers committed sales to the configured webhook endpoint.
// Delivery is at-most-once: a failed push is logged and parked in the DLQ
// for manual inspection, never retried. The sheet is a mirror, not the
// ledger of record.

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/matiiroda/mg/internal/infra"
)

// PushJobPayload is the job envelope sent to QueuePush.
type PushJobPayload struct {
	Endpoint string          `json:"endpoint"`
	Sale     json.RawMessage `json:"sale"`
}

type PushWorker struct {
	client *infra.WebhookClient
}

func NewPushWorker(client *infra.WebhookClient) *PushWorker {
	return &PushWorker{client: client}
}

// Process POSTs the sale to the endpoint. On failure the job goes straight
// to the dead-letter list.
func (w *PushWorker) Process(ctx context.Context, rdb *redis.Client, raw json.RawMessage) {
	var payload PushJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("push_worker: invalid payload")
		return
	}
	if payload.Endpoint == "" {
		log.Warn().Msg("push_worker: empty endpoint — skipping")
		return
	}

	if err := w.client.PushSale(ctx, payload.Endpoint, payload.Sale); err != nil {
		log.Error().Err(err).Str("endpoint", payload.Endpoint).Msg("push_worker: delivery failed")
		SendToDLQ(ctx, rdb, QueuePush, "push", raw, err.Error())
		return
	}
	log.Info().Str("endpoint", payload.Endpoint).Msg("push_worker: sale delivered")
}
