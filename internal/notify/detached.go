package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const DefaultDetachedTimeout = 5 * time.Second

// Detached sends messages in the background. Delivery is best effort and
// at most once: the send is attempted a single time, outlives the request
// context, and its failure is only logged.
type Detached struct {
	next    Notifier
	log     *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDetached(next Notifier, log *zap.Logger, timeout time.Duration) *Detached {
	if timeout <= 0 {
		timeout = DefaultDetachedTimeout
	}
	return &Detached{
		next:    next,
		log:     log.Named("notify"),
		timeout: timeout,
	}
}

func (d *Detached) Go(ctx context.Context, msg Message) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.log.Error("notification panicked", zap.Any("panic", r), zap.String("kind", msg.Kind))
			}
		}()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()

		if err := d.next.Send(ctx, msg); err != nil {
			d.log.Warn("notification failed",
				zap.String("kind", msg.Kind),
				zap.String("recipient_id", msg.RecipientID.String()),
				zap.Error(err),
			)
		}
	}()
}

// Wait blocks until every detached send has finished.
func (d *Detached) Wait() {
	d.wg.Wait()
}
