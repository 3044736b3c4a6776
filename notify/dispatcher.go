package notify

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/landauthority/dispute-api/logging"
	"github.com/landauthority/dispute-api/metrics"
)

// SendTimeout bounds a single send
const SendTimeout = 30 * time.Second

// ErrQueueFull is recorded for messages dropped because every worker is busy and the
// queue is at capacity
var ErrQueueFull = errors.New("notification queue is full")

// ErrNoPusher is recorded for in-app messages when no hub is attached
var ErrNoPusher = errors.New("in-app notifications are not enabled")

type job struct {
	msg   Message
	batch *Batch
	index int
}

// Batch tracks the messages of one Submit. Callers that need outcomes call Wait, the
// others just drop it.
type Batch struct {
	wg      sync.WaitGroup
	results []Result
}

// Wait blocks until every message of the batch was attempted and returns the results in
// submission order
func (b *Batch) Wait() []Result {
	b.wg.Wait()
	return b.results
}

// Dispatcher is a bounded worker pool delivering messages through a Notifier. Each
// failure is captured on its own result, logged and counted.
type Dispatcher struct {
	notifier Notifier
	pusher   Pusher
	jobs     chan job
	pending  sync.WaitGroup
	workers  sync.WaitGroup
	log      *zap.SugaredLogger

	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// NewDispatcher starts workers goroutines reading from a queue of queueSize messages
func NewDispatcher(notifier Notifier, pusher Pusher, workers, queueSize int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	d := &Dispatcher{
		notifier: notifier,
		pusher:   pusher,
		jobs:     make(chan job, queueSize),
		log:      logging.New("notify"),
	}
	d.workers.Add(workers)
	for i := 0; i < workers; i++ {
		go d.work()
	}
	return d
}

// Submit enqueues msgs without blocking on delivery
func (d *Dispatcher) Submit(msgs ...Message) *Batch {
	b := &Batch{results: make([]Result, len(msgs))}
	b.wg.Add(len(msgs))

	d.mu.RLock()
	defer d.mu.RUnlock()
	for i, m := range msgs {
		if d.closed {
			d.finish(b, i, Result{Message: m, Err: errors.New("dispatcher is closed")}, "dropped")
			continue
		}
		d.pending.Add(1)
		select {
		case d.jobs <- job{msg: m, batch: b, index: i}:
		default:
			d.finish(b, i, Result{Message: m, Err: ErrQueueFull}, "dropped")
			d.pending.Done()
		}
	}
	return b
}

// Flush waits until every message submitted before the call has been attempted. Submit
// calls made meanwhile wait for Flush to return.
func (d *Dispatcher) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending.Wait()
}

// Close stops accepting messages, drains the queue and stops the workers
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.jobs)
		d.mu.Unlock()
		d.workers.Wait()
	})
}

func (d *Dispatcher) work() {
	defer d.workers.Done()
	for j := range d.jobs {
		res := Result{Message: j.msg, Err: d.send(j.msg)}
		outcome := "sent"
		switch {
		case errors.Is(res.Err, ErrNotConnected):
			outcome = "skipped"
		case res.Failed():
			outcome = "failed"
		}
		d.finish(j.batch, j.index, res, outcome)
		d.pending.Done()
	}
}

func (d *Dispatcher) send(m Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("panic while sending %s: %v", m.Channel, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), SendTimeout)
	defer cancel()

	switch m.Channel {
	case ChannelSMS:
		return d.notifier.SendSMS(ctx, m.Recipient, m.Body)
	case ChannelEmail:
		return d.notifier.SendEmail(ctx, m.Recipient, m.Subject, m.Body)
	case ChannelInApp:
		if d.pusher == nil {
			return ErrNoPusher
		}
		return d.pusher.Push(ctx, m.Recipient, m.Event, m.Data)
	default:
		return errors.Newf("unknown channel %q", m.Channel)
	}
}

func (d *Dispatcher) finish(b *Batch, i int, res Result, outcome string) {
	metrics.Notifications.WithLabelValues(string(res.Message.Channel), outcome).Inc()
	if res.Failed() && outcome != "skipped" {
		d.log.Warnw("notification not delivered",
			"channel", res.Message.Channel,
			"recipient", res.Message.Recipient,
			"outcome", outcome,
			"error", res.Err,
		)
	}
	b.results[i] = res
	b.wg.Done()
}
