// Package notification delivers studio notifications in the background so
// request handlers never wait on SMTP.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"photostudio/internal/domain/models"
	"photostudio/internal/lib/logger/sl"
	"photostudio/internal/metrics"
)

const (
	KindContact   = "contact"
	KindSelection = "selection"

	DefaultTimeout = 30 * time.Second
)

type Mailer interface {
	SendContact(ctx context.Context, msg models.Message) error
	SendSelection(ctx context.Context, g models.Gallery) error
}

// Dispatcher runs each notification in its own goroutine. Failures are
// logged and counted, never returned.
type Dispatcher struct {
	log     *slog.Logger
	mailer  Mailer
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(log *slog.Logger, mailer Mailer, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Dispatcher{
		log:     log,
		mailer:  mailer,
		timeout: timeout,
	}
}

func (d *Dispatcher) NotifyContact(msg models.Message) {
	d.dispatch(KindContact, slog.String("message_id", msg.ID.String()), func(ctx context.Context) error {
		return d.mailer.SendContact(ctx, msg)
	})
}

func (d *Dispatcher) NotifySelection(g models.Gallery) {
	d.dispatch(KindSelection, slog.String("gallery_id", g.ID.String()), func(ctx context.Context) error {
		return d.mailer.SendSelection(ctx, g)
	})
}

func (d *Dispatcher) dispatch(kind string, attr slog.Attr, send func(ctx context.Context) error) {
	const op = "notification.Dispatcher.dispatch"

	log := d.log.With(slog.String("op", op), slog.String("kind", kind), attr)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		log.Warn("dispatcher closed, notification dropped")
		metrics.NotificationsTotal.WithLabelValues(kind, "dropped").Inc()
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := safeSend(ctx, send); err != nil {
			log.Error("notification failed", sl.Err(err))
			metrics.NotificationsTotal.WithLabelValues(kind, "error").Inc()
			return
		}

		log.Debug("notification sent")
		metrics.NotificationsTotal.WithLabelValues(kind, "sent").Inc()
	}()
}

func safeSend(ctx context.Context, send func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return send(ctx)
}

// Close stops accepting notifications and waits for in-flight sends or
// until ctx is done.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
