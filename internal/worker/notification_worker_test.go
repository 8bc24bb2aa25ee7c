package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fieldworks/maintenance-hub/internal/config"
	"github.com/fieldworks/maintenance-hub/internal/events"
	"github.com/fieldworks/maintenance-hub/internal/observability"
	"github.com/fieldworks/maintenance-hub/internal/realtime"
	"github.com/fieldworks/maintenance-hub/internal/service"
)

func TestStartNotificationWorkerWiresConsumers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	hub := realtime.NewHub(4, nil)
	metrics := observability.NewMetrics()
	notifications := service.NewNotificationService(dispatcher, nil, nil, config.NotificationConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartNotificationWorker(ctx, dispatcher, notifications, hub, metrics)
	client := hub.Register()

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		ID:        "ev-1",
		Type:      events.EventEquipmentAdded,
		EntityID:  "e-1",
		Timestamp: time.Now(),
	}))

	assert.Len(t, client.Send, 1)
	assert.EqualValues(t, 1, metrics.Snapshot().Events["equipment_added"])
}

func TestStartNotificationWorkerToleratesNil(t *testing.T) {
	assert.NotPanics(t, func() {
		StartNotificationWorker(context.Background(), nil, nil, nil, nil)
		StartNotificationWorker(context.Background(), events.NewInMemoryDispatcher(nil), nil, nil, nil)
	})
}
