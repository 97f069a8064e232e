package worker

// alert_worker.go
// Processes low-stock jobs from QueueAlerts and mails the configured
// recipient. Failed sends land in the DLQ for manual inspection.

import (
	"context"
	"encoding/json"
	"fmt"

	"brigadepos/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// AlertWorker sends low-stock alert emails via SMTP.
type AlertWorker struct {
	mailer *infra.Mailer
	rdb    *redis.Client
	to     string
}

func NewAlertWorker(mailer *infra.Mailer, rdb *redis.Client, to string) *AlertWorker {
	return &AlertWorker{mailer: mailer, rdb: rdb, to: to}
}

// Process sends one low-stock alert email.
func (w *AlertWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload LowStockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload")
		return
	}
	if w.to == "" {
		log.Warn().Msg("alert_worker: ALERT_EMAIL not configured — dropping alert")
		return
	}

	subject := fmt.Sprintf("Low stock: %s", payload.Name)
	body := fmt.Sprintf("%s is down to %s %s. Restock before the next service.",
		payload.Name, payload.Stock, payload.Unit)

	if err := w.mailer.Send(w.to, subject, body, ""); err != nil {
		log.Error().Err(err).Str("to", w.to).Str("item", payload.Name).
			Msg("alert_worker: failed to send alert email")
		SendToDLQ(ctx, w.rdb, QueueAlerts, "lowstock", raw, err.Error(), 1)
		return
	}
	log.Info().Str("to", w.to).Str("item", payload.Name).Msg("alert_worker: alert sent")
}
