package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fieldworks/maintenance-hub/internal/config"
	"github.com/fieldworks/maintenance-hub/internal/domain"
	"github.com/fieldworks/maintenance-hub/internal/events"
)

type recordingRelay struct {
	mu        sync.Mutex
	published []events.Event
	err       error
}

func (r *recordingRelay) PublishJSON(_ context.Context, v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.published = append(r.published, v.(events.Event))
	return nil
}

func (r *recordingRelay) snapshot() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.published...)
}

// stallingRelay blocks every publish until its context ends.
type stallingRelay struct {
	calls chan struct{}
}

func (r *stallingRelay) PublishJSON(ctx context.Context, _ any) error {
	r.calls <- struct{}{}
	<-ctx.Done()
	return ctx.Err()
}

func startNotifications(t *testing.T, relay EventRelay, cfg config.NotificationConfig) (events.Dispatcher, *NotificationService) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	notifications := NewNotificationService(dispatcher, nil, relay, cfg)
	notifications.RegisterHandlers()
	notifications.Start(ctx)
	return dispatcher, notifications
}

func TestNotificationServiceRelaysEventsInOrder(t *testing.T) {
	relay := &recordingRelay{}
	dispatcher, _ := startNotifications(t, relay, config.NotificationConfig{RelayTimeoutMillis: 100})

	svc := newService(t, true, dispatcher)
	_, err := svc.ChangeRequestStatus(context.Background(), "r1", domain.RequestStatusScrap)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(relay.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
	published := relay.snapshot()
	assert.Equal(t, events.EventRequestStatusChanged, published[0].Type)
	assert.Equal(t, events.EventEquipmentStatusChanged, published[1].Type)
	assert.Equal(t, "e1", published[1].EntityID)
}

func TestBlockedRelayDoesNotDelayMutations(t *testing.T) {
	relay := &stallingRelay{calls: make(chan struct{}, 16)}
	dispatcher, _ := startNotifications(t, relay, config.NotificationConfig{RelayTimeoutMillis: 500})
	svc := newService(t, true, dispatcher)

	start := time.Now()
	_, err := svc.ChangeRequestStatus(context.Background(), "r1", domain.RequestStatusScrap)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateRequest(context.Background(), domain.RequestInput{
				Subject:       "Check belts",
				EquipmentID:   "e2",
				DurationHours: 1,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Less(t, time.Since(start), 200*time.Millisecond)
	select {
	case <-relay.calls:
	case <-time.After(time.Second):
		t.Fatal("relay never called")
	}
}

func TestFullRelayQueueDropsEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	notifications := NewNotificationService(dispatcher, nil, &recordingRelay{}, config.NotificationConfig{RelayQueueSize: 1})
	notifications.RegisterHandlers()

	svc := newService(t, true, dispatcher)
	updated, err := svc.ChangeRequestStatus(context.Background(), "r1", domain.RequestStatusScrap)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusScrap, updated.Status)
	assert.Equal(t, 1, notifications.Pending())
}

func TestNotificationRelayFailureKeepsChange(t *testing.T) {
	relay := &recordingRelay{err: errors.New("redis down")}
	dispatcher, _ := startNotifications(t, relay, config.NotificationConfig{})

	svc := newService(t, true, dispatcher)
	updated, err := svc.ChangeRequestStatus(context.Background(), "r2", domain.RequestStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusInProgress, updated.Status)
}

func TestNotificationServiceWithoutRelay(t *testing.T) {
	dispatcher, notifications := startNotifications(t, nil, config.NotificationConfig{})

	svc := newService(t, true, dispatcher)
	_, err := svc.CreateEquipment(context.Background(), domain.EquipmentInput{
		Name:                "Press",
		MaintenanceTeamID:   "t1",
		DefaultTechnicianID: "tech2",
	})
	require.NoError(t, err)
	assert.Zero(t, notifications.Pending())
}
