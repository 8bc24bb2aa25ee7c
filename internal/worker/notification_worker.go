package worker

import (
	"context"

	"github.com/fieldworks/maintenance-hub/internal/events"
	"github.com/fieldworks/maintenance-hub/internal/observability"
	"github.com/fieldworks/maintenance-hub/internal/realtime"
	"github.com/fieldworks/maintenance-hub/internal/service"
)

// StartNotificationWorker registers every change-event consumer and starts
// the relay loop, which runs until ctx is cancelled. Any of the consumers
// may be nil.
func StartNotificationWorker(ctx context.Context, dispatcher events.Dispatcher, notificationService *service.NotificationService, hub *realtime.Hub, metrics *observability.Metrics) {
	if dispatcher == nil {
		return
	}
	if notificationService != nil {
		notificationService.RegisterHandlers()
		notificationService.Start(ctx)
	}
	if metrics != nil {
		events.SubscribeAll(dispatcher, metrics.RecordEvent)
	}
	if hub != nil {
		events.SubscribeAll(dispatcher, hub.HandleEvent)
	}
}
