package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/fieldworks/maintenance-hub/internal/config"
	"github.com/fieldworks/maintenance-hub/internal/events"
)

const defaultRelayQueueSize = 256

// EventRelay forwards events to an external channel.
type EventRelay interface {
	PublishJSON(ctx context.Context, v any) error
}

// NotificationService handles emitting notifications for store changes.
// Handlers only log and queue; relaying happens on the goroutine started by
// Start, so a slow relay never holds up a store mutation.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	relay      EventRelay
	cfg        config.NotificationConfig
	queue      chan events.Event
}

// NewNotificationService creates the service. relay may be nil.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, relay EventRelay, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	size := cfg.RelayQueueSize
	if size < 1 {
		size = defaultRelayQueueSize
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		relay:      relay,
		cfg:        cfg,
		queue:      make(chan events.Event, size),
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventEquipmentAdded, n.handleEquipmentAdded)
	n.dispatcher.Subscribe(events.EventEquipmentStatusChanged, n.handleEquipmentStatusChanged)
	n.dispatcher.Subscribe(events.EventRequestCreated, n.handleRequestCreated)
	n.dispatcher.Subscribe(events.EventRequestStatusChanged, n.handleRequestStatusChanged)
}

// Start drains the relay queue until ctx is cancelled. It is a no-op when
// no relay is configured.
func (n *NotificationService) Start(ctx context.Context) {
	if n.relay == nil {
		return
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-n.queue:
				if err := n.relayEvent(ctx, event); err != nil {
					n.logger.Warn("event relay failed",
						zap.String("event_id", event.ID),
						zap.String("event_type", string(event.Type)),
						zap.Error(err))
				}
			}
		}
	}()
}

// Pending reports how many events wait for the relay.
func (n *NotificationService) Pending() int {
	return len(n.queue)
}

func (n *NotificationService) handleEquipmentAdded(_ context.Context, event events.Event) error {
	n.logger.Info("EquipmentAdded", zap.String("equipment_id", event.EntityID), zap.Any("payload", event.Payload))
	n.enqueue(event)
	return nil
}

func (n *NotificationService) handleEquipmentStatusChanged(_ context.Context, event events.Event) error {
	n.logger.Info("EquipmentStatusChanged", zap.String("equipment_id", event.EntityID), zap.Any("payload", event.Payload))
	n.enqueue(event)
	return nil
}

func (n *NotificationService) handleRequestCreated(_ context.Context, event events.Event) error {
	n.logger.Info("RequestCreated", zap.String("request_id", event.EntityID), zap.Any("payload", event.Payload))
	n.enqueue(event)
	return nil
}

func (n *NotificationService) handleRequestStatusChanged(_ context.Context, event events.Event) error {
	n.logger.Info("RequestStatusChanged", zap.String("request_id", event.EntityID), zap.Any("payload", event.Payload))
	n.enqueue(event)
	return nil
}

// enqueue never blocks; a full queue drops the event.
func (n *NotificationService) enqueue(event events.Event) {
	if n.relay == nil {
		return
	}
	select {
	case n.queue <- event:
	default:
		n.logger.Warn("relay queue full; event dropped",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
	}
}

func (n *NotificationService) relayEvent(ctx context.Context, event events.Event) error {
	if timeout := n.cfg.RelayTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := n.relay.PublishJSON(ctx, event); err != nil {
		return err
	}
	n.logger.Debug("event relayed", zap.String("event_id", event.ID), zap.String("event_type", string(event.Type)))
	return nil
}
