package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/parfumdelite/backend/internal/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	mu        sync.Mutex
	delivered []notification.DeliveredEvent
	tokens    []string
	err       error
}

func (r *recordingNotifier) NotifyDelivered(_ context.Context, _ string, event notification.DeliveredEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delivered = append(r.delivered, event)
	return r.err
}

func (r *recordingNotifier) NotifyVerification(_ context.Context, _ string, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = append(r.tokens, token)
	return r.err
}

func (r *recordingNotifier) deliveredCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.delivered)
}

func TestDispatcher_DeliversQueuedEvents(t *testing.T) {
	notifier := &recordingNotifier{}
	d := NewDispatcher(notifier, zap.NewNop(), 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	d.EnqueueDelivered("customer@test.com", notification.DeliveredEvent{Reference: "abc", Total: 10})
	d.EnqueueVerification("customer@test.com", "tok")

	require.Eventually(t, func() bool {
		return notifier.deliveredCount() == 1
	}, time.Second, 10*time.Millisecond)

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Equal(t, "abc", notifier.delivered[0].Reference)
	assert.Equal(t, []string{"tok"}, notifier.tokens)
}

func TestDispatcher_SendFailureIsSwallowed(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	d := NewDispatcher(notifier, zap.NewNop(), 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	// must not panic or block the producer
	d.EnqueueDelivered("customer@test.com", notification.DeliveredEvent{Reference: "abc"})

	require.Eventually(t, func() bool {
		return notifier.deliveredCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestDispatcher_FullQueueNeverBlocks(t *testing.T) {
	notifier := &recordingNotifier{}
	d := NewDispatcher(notifier, zap.NewNop(), 1)

	// Run is not started, the queue fills up after one event
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.EnqueueDelivered("customer@test.com", notification.DeliveredEvent{})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on a full queue")
	}
}
