package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/jobboard-service/internal/config"
	"github.com/spec-kit/jobboard-service/internal/events"
)

// NotificationWorker drains the redis notification queue and hands each event
// to the (stubbed) delivery channel. Runs until the context is cancelled.
type NotificationWorker struct {
	client *redis.Client
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationWorker constructs the worker.
func NewNotificationWorker(client *redis.Client, logger *zap.Logger, cfg config.NotificationConfig) *NotificationWorker {
	return &NotificationWorker{client: client, logger: logger, cfg: cfg}
}

// Run blocks, popping queued events one at a time.
func (w *NotificationWorker) Run(ctx context.Context) {
	if w.client == nil {
		w.logger.Warn("notification worker disabled: no redis client")
		return
	}

	for {
		result, err := w.client.BRPop(ctx, 5*time.Second, w.cfg.QueueKey).Result()
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			if errors.Is(err, redis.Nil) {
				continue
			}
			w.logger.Error("notification queue pop failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		if len(result) != 2 {
			continue
		}

		var event events.Event
		if err := json.Unmarshal([]byte(result[1]), &event); err != nil {
			w.logger.Error("malformed queued notification", zap.Error(err))
			continue
		}
		w.deliver(event)
	}
}

func (w *NotificationWorker) deliver(event events.Event) {
	// Delivery transport (email/SMS) is external; record the handoff only.
	w.logger.Info("notification delivered",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("from", w.cfg.EmailFrom))
}
