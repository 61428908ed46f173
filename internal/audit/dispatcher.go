package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/bugreport"
)

const (
	queueSize    = 100
	writeTimeout = 5 * time.Second
)

// Dispatcher writes changes from a single worker goroutine. A failed or
// dropped write never reaches the caller of Dispatch.
type Dispatcher struct {
	logger *Logger
	log    *zap.Logger
	bugs   bugreport.Reporter

	mu     sync.RWMutex
	closed bool
	queue  chan Change
	done   chan struct{}
}

func NewDispatcher(logger *Logger, log *zap.Logger, bugs bugreport.Reporter) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log.Named("audit"),
		bugs:   bugs,
		queue:  make(chan Change, queueSize),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ch := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := d.logger.Record(ctx, ch)
		cancel()
		if err == nil {
			continue
		}

		d.log.Error("audit write failed",
			zap.String("reservation_id", ch.ReservationID.String()),
			zap.String("change_type", ch.ChangeType),
			zap.Error(err),
		)
		d.bugs.Report(context.Background(), bugreport.Report{
			Err:      err,
			Action:   "write reservation change",
			Severity: bugreport.SeverityLow,
			Meta: map[string]any{
				"reservation_id": ch.ReservationID.String(),
				"change_type":    ch.ChangeType,
			},
		})
	}
}

func (d *Dispatcher) Dispatch(ch Change) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("audit dispatcher closed, dropping change",
			zap.String("reservation_id", ch.ReservationID.String()))
		return
	}

	select {
	case d.queue <- ch:
	default:
		// queue full
		d.log.Warn("audit queue full, dropping change",
			zap.String("reservation_id", ch.ReservationID.String()))
	}
}

// Close stops accepting changes and waits until queued ones are written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
