package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SonalJain837/amplify-dynamoDB-sub001/internal/domain"
)

// Store is the slice of repo.NotificationRepo the dispatcher needs.
type Store interface {
	ClaimPending(ctx context.Context, limit int, lease time.Duration) ([]domain.Notification, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	RecordFailure(ctx context.Context, id uuid.UUID, reason string, maxAttempts int) (domain.NotificationStatus, error)
}

// Recorder counts delivery outcomes. *metrics.Metrics satisfies it.
type Recorder interface {
	NotificationDelivered(status string)
}

// Result summarizes one dispatch run.
type Result struct {
	Sent    int
	Retried int
	Failed  int
}

// Dispatcher drains the outbox in batches.
type Dispatcher struct {
	store       Store
	mailer      Mailer
	batchSize   int
	maxAttempts int
	lease       time.Duration
	metrics     Recorder
	log         *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithBatchSize sets how many pending rows one run claims. Defaults to 20.
func WithBatchSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.batchSize = n
		}
	}
}

// WithMaxAttempts sets how many failures mark a row failed. Defaults to 5.
func WithMaxAttempts(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxAttempts = n
		}
	}
}

// WithLease sets how long claimed rows stay hidden from other dispatchers.
// It should outlast a full batch of sends. Defaults to 5 minutes.
func WithLease(l time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if l > 0 {
			d.lease = l
		}
	}
}

// WithRecorder attaches delivery metrics.
func WithRecorder(r Recorder) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = r }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(store Store, mailer Mailer, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		store:       store,
		mailer:      mailer,
		batchSize:   20,
		maxAttempts: 5,
		lease:       5 * time.Minute,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RunOnce claims and sends up to one batch of pending notifications.
// A failed send is recorded on the row and does not stop the batch; only
// store errors abort the run.
func (d *Dispatcher) RunOnce(ctx context.Context) (Result, error) {
	var res Result

	pending, err := d.store.ClaimPending(ctx, d.batchSize, d.lease)
	if err != nil {
		return res, fmt.Errorf("notify.Dispatcher.RunOnce: %w", err)
	}

	for _, n := range pending {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		sendErr := d.mailer.Send(ctx, Message{To: n.Recipient, Subject: n.Subject, Body: n.Body})
		if sendErr == nil {
			if err := d.store.MarkSent(ctx, n.ID); err != nil {
				return res, fmt.Errorf("notify.Dispatcher.RunOnce: %w", err)
			}
			res.Sent++
			d.record(string(domain.NotificationSent))
			continue
		}

		status, err := d.store.RecordFailure(ctx, n.ID, sendErr.Error(), d.maxAttempts)
		if err != nil {
			return res, fmt.Errorf("notify.Dispatcher.RunOnce: %w", err)
		}
		d.log.WarnContext(ctx, "email delivery failed",
			"notification_id", n.ID,
			"attempt", n.Attempts+1,
			"status", status,
			"error", sendErr,
		)
		if status == domain.NotificationFailed {
			res.Failed++
		} else {
			res.Retried++
		}
		d.record(string(status))
	}
	return res, nil
}

func (d *Dispatcher) record(status string) {
	if d.metrics != nil {
		d.metrics.NotificationDelivered(status)
	}
}
