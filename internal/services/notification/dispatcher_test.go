package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"photostudio/internal/domain/models"
	"photostudio/internal/lib/logger/handlers/slogdiscard"
	"photostudio/internal/metrics"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu         sync.Mutex
	contacts   []models.Message
	selections []models.Gallery
	err        error
	panicMsg   string
	delay      time.Duration
}

func (m *fakeMailer) SendContact(ctx context.Context, msg models.Message) error {
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts = append(m.contacts, msg)
	return m.err
}

func (m *fakeMailer) SendSelection(ctx context.Context, g models.Gallery) error {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selections = append(m.selections, g)
	return m.err
}

func TestDispatcher_DeliversInBackground(t *testing.T) {
	mailer := &fakeMailer{delay: 20 * time.Millisecond}
	d := NewDispatcher(slogdiscard.NewDiscardLogger(), mailer, time.Second)

	sentBefore := testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues(KindSelection, "sent"))

	d.NotifySelection(models.Gallery{ID: uuid.New()})
	d.NotifyContact(models.Message{ID: uuid.New()})

	require.NoError(t, d.Close(context.Background()))

	assert.Len(t, mailer.selections, 1)
	assert.Len(t, mailer.contacts, 1)
	assert.Equal(t, sentBefore+1, testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues(KindSelection, "sent")))
}

func TestDispatcher_FailuresAreContained(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		mailer := &fakeMailer{err: errors.New("smtp down")}
		d := NewDispatcher(slogdiscard.NewDiscardLogger(), mailer, time.Second)

		before := testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues(KindContact, "error"))
		d.NotifyContact(models.Message{})
		require.NoError(t, d.Close(context.Background()))

		assert.Equal(t, before+1, testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues(KindContact, "error")))
	})

	t.Run("panic", func(t *testing.T) {
		mailer := &fakeMailer{panicMsg: "boom"}
		d := NewDispatcher(slogdiscard.NewDiscardLogger(), mailer, time.Second)

		assert.NotPanics(t, func() {
			d.NotifyContact(models.Message{})
			require.NoError(t, d.Close(context.Background()))
		})
	})

	t.Run("timeout", func(t *testing.T) {
		mailer := &fakeMailer{delay: time.Second}
		d := NewDispatcher(slogdiscard.NewDiscardLogger(), mailer, 10*time.Millisecond)

		d.NotifySelection(models.Gallery{})
		require.NoError(t, d.Close(context.Background()))
		assert.Empty(t, mailer.selections)
	})
}

func TestDispatcher_Close(t *testing.T) {
	t.Run("drops after close", func(t *testing.T) {
		mailer := &fakeMailer{}
		d := NewDispatcher(slogdiscard.NewDiscardLogger(), mailer, time.Second)
		require.NoError(t, d.Close(context.Background()))

		d.NotifyContact(models.Message{})
		time.Sleep(10 * time.Millisecond)
		assert.Empty(t, mailer.contacts)
	})

	t.Run("respects context", func(t *testing.T) {
		mailer := &fakeMailer{delay: 200 * time.Millisecond}
		d := NewDispatcher(slogdiscard.NewDiscardLogger(), mailer, time.Second)
		d.NotifySelection(models.Gallery{})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)
	})
}
