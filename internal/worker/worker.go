package worker

import (
	"context"

	"github.com/parfumdelite/backend/internal/notification"
	"go.uber.org/zap"
)

type noticeKind int

const (
	noticeDelivered noticeKind = iota
	noticeVerification
)

type notice struct {
	kind      noticeKind
	recipient string
	delivered notification.DeliveredEvent
	token     string
}

// Dispatcher decouples notification delivery from the request path. Events
// are enqueued onto a buffered channel and sent by Run. A slow or failing
// notifier can never block or fail the operation that produced the event.
type Dispatcher struct {
	notifier notification.Notifier
	logger   *zap.Logger
	queue    chan notice
}

// NewDispatcher creates a dispatcher with the given queue capacity.
func NewDispatcher(notifier notification.Notifier, logger *zap.Logger, size int) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		logger:   logger,
		queue:    make(chan notice, size),
	}
}

// EnqueueDelivered queues a delivery confirmation. It never blocks, a full
// queue drops the event and logs it.
func (d *Dispatcher) EnqueueDelivered(recipient string, event notification.DeliveredEvent) {
	d.enqueue(notice{kind: noticeDelivered, recipient: recipient, delivered: event})
}

// EnqueueVerification queues an email verification message.
func (d *Dispatcher) EnqueueVerification(recipient, token string) {
	d.enqueue(notice{kind: noticeVerification, recipient: recipient, token: token})
}

func (d *Dispatcher) enqueue(n notice) {
	select {
	case d.queue <- n:
	default:
		d.logger.Error("notification queue full, event dropped",
			zap.String("recipient", n.recipient))
	}
}

// Run drains the queue until ctx is cancelled. Send failures are logged
// and never propagated.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.logger.Debug("notification dispatcher is done")
			return
		case n := <-d.queue:
			d.send(ctx, n)
		}
	}
}

func (d *Dispatcher) send(ctx context.Context, n notice) {
	var err error
	switch n.kind {
	case noticeDelivered:
		err = d.notifier.NotifyDelivered(ctx, n.recipient, n.delivered)
	case noticeVerification:
		err = d.notifier.NotifyVerification(ctx, n.recipient, n.token)
	}
	if err != nil {
		d.logger.Error("notification send failed",
			zap.String("recipient", n.recipient),
			zap.Error(err))
	}
}
