package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/usermgmt/user-management-api/internal/api/metrics"
	"github.com/usermgmt/user-management-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	defaultRetries = 3
	channelBuffer  = 256
	retryBackoff   = 2 * time.Second
)

// DeadLetterSink receives mail jobs whose delivery retries were exhausted.
type DeadLetterSink interface {
	Push(ctx context.Context, mail ports.VerificationMail) error
}

// Dispatcher routes verification mails to a fixed set of workers using
// consistent hashing on the recipient address, so retries for one recipient
// never reorder behind its own later mails. Delivery failures are retried
// with backoff and finally dead-lettered; they never propagate to the
// enqueuer, so Register's result is independent of delivery's.
type Dispatcher struct {
	workers []chan ports.VerificationMail
	mailer  ports.Mailer
	dead    DeadLetterSink
	retries int
	backoff time.Duration
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers and the
// given per-job delivery attempt budget. Non-positive arguments fall back to
// defaults.
func NewDispatcher(numWorkers, retries int, mailer ports.Mailer, dead DeadLetterSink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if retries <= 0 {
		retries = defaultRetries
	}
	d := &Dispatcher{
		workers: make([]chan ports.VerificationMail, numWorkers),
		mailer:  mailer,
		dead:    dead,
		retries: retries,
		backoff: retryBackoff,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.VerificationMail, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a mail job to the worker responsible for its recipient.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(mail ports.VerificationMail) {
	d.workers[d.shardIndex(mail.Email)] <- mail
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.VerificationMail) {
	for {
		select {
		case <-ctx.Done():
			return
		case mail, ok := <-ch:
			if !ok {
				return
			}
			d.deliver(ctx, id, mail)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, mail ports.VerificationMail) {
	var lastErr error
	for attempt := 1; attempt <= d.retries; attempt++ {
		start := time.Now()
		lastErr = d.mailer.SendVerificationEmail(ctx, mail.Email, mail.Token)
		metrics.EmailDeliveryDuration.Observe(time.Since(start).Seconds())

		if lastErr == nil {
			metrics.EmailsSentTotal.WithLabelValues("sent").Inc()
			d.log.Debug().
				Str("email", mail.Email).
				Int("worker_id", workerID).
				Int("attempt", attempt).
				Msg("verification mail delivered")
			return
		}

		if attempt < d.retries {
			metrics.EmailsSentTotal.WithLabelValues("retried").Inc()
			select {
			case <-ctx.Done():
				return
			case <-time.After(d.backoff * time.Duration(attempt)):
			}
		}
	}

	metrics.EmailsSentTotal.WithLabelValues("dead_lettered").Inc()
	d.log.Error().Err(lastErr).
		Str("email", mail.Email).
		Int("worker_id", workerID).
		Int("attempts", d.retries).
		Msg("verification mail delivery failed, dead-lettering")

	if err := d.dead.Push(ctx, mail); err != nil {
		d.log.Error().Err(err).Str("email", mail.Email).Msg("dead letter push failed")
	}
}
