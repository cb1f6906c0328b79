package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/jobboard-service/internal/config"
	"github.com/spec-kit/jobboard-service/internal/events"
)

// NotificationService forwards domain events to the delivery queue. Actual
// email/SMS delivery is an external collaborator; this service only enqueues.
type NotificationService struct {
	dispatcher events.Dispatcher
	client     *redis.Client
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, client *redis.Client, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		client:     client,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to the events that produce notifications.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.enqueue)
	n.dispatcher.Subscribe(events.EventJobPosted, n.enqueue)
	n.dispatcher.Subscribe(events.EventApplicationSubmitted, n.enqueue)
	n.dispatcher.Subscribe(events.EventPasswordResetRequested, n.enqueue)
}

func (n *NotificationService) enqueue(ctx context.Context, event events.Event) error {
	if n.client == nil {
		n.logger.Debug("notification queue disabled", zap.String("event_type", string(event.Type)))
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := n.client.LPush(ctx, n.cfg.QueueKey, payload).Err(); err != nil {
		n.logger.Error("failed to enqueue notification",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return err
	}

	n.logger.Info("notification enqueued",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID))
	return nil
}
