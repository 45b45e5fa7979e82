package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/polkiloo/storefront/internal/adapter/mailer"
	"github.com/polkiloo/storefront/internal/domain/model"
)

// ErrQueueFull is returned by Notify when the message had to be dropped.
var ErrQueueFull = errors.New("mail queue is full")

// Stats is a snapshot of dispatcher counters.
type Stats struct {
	Enqueued int64
	Sent     int64
	Failed   int64
	Dropped  int64
	Pending  int
}

// MailDispatcher sends customer e-mails on a fixed pool of workers.
type MailDispatcher struct {
	sender  mailer.Sender
	workers int
	timeout time.Duration
	logger  *slog.Logger

	jobs   chan model.Notification
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex

	enqueued atomic.Int64
	sent     atomic.Int64
	failed   atomic.Int64
	dropped  atomic.Int64
}

// NewMailDispatcher constructs the dispatcher. Non-positive sizes fall back to one.
func NewMailDispatcher(sender mailer.Sender, workers, queueSize int, timeout time.Duration, logger *slog.Logger) *MailDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MailDispatcher{
		sender:  sender,
		workers: workers,
		timeout: timeout,
		logger:  logger,
		jobs:    make(chan model.Notification, queueSize),
	}
}

// Start launches the workers. Calling Start on a running dispatcher is a no-op.
func (d *MailDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop halts the workers and then delivers what is still queued until ctx
// expires. Messages left after that are counted as dropped.
func (d *MailDispatcher) Stop(ctx context.Context) {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
	d.flush(ctx)
}

// Notify queues n without blocking.
func (d *MailDispatcher) Notify(ctx context.Context, n model.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case d.jobs <- n:
		d.enqueued.Add(1)
		return nil
	default:
		d.dropped.Add(1)
		d.logger.Warn("mail queue full, message dropped",
			slog.String("order", n.OrderID.String()),
			slog.String("to", n.To),
		)
		return ErrQueueFull
	}
}

// Stats returns current counters.
func (d *MailDispatcher) Stats() Stats {
	return Stats{
		Enqueued: d.enqueued.Load(),
		Sent:     d.sent.Load(),
		Failed:   d.failed.Load(),
		Dropped:  d.dropped.Load(),
		Pending:  len(d.jobs),
	}
}

func (d *MailDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-d.jobs:
			d.deliver(ctx, n)
		}
	}
}

func (d *MailDispatcher) flush(ctx context.Context) {
	for {
		select {
		case n := <-d.jobs:
			if ctx.Err() != nil {
				d.dropped.Add(1)
				continue
			}
			d.deliver(ctx, n)
		default:
			return
		}
	}
}

func (d *MailDispatcher) deliver(ctx context.Context, n model.Notification) {
	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.sender.Send(sendCtx, n); err != nil {
		d.failed.Add(1)
		d.logger.Error("mail send failed",
			slog.String("order", n.OrderID.String()),
			slog.String("to", n.To),
			slog.String("error", err.Error()),
		)
		return
	}
	d.sent.Add(1)
}
