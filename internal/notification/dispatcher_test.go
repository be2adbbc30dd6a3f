package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/events"
)

type recordingSender struct {
	name string
	err  error

	mu   sync.Mutex
	got  []events.Event
	wait chan struct{}
}

func (s *recordingSender) Name() string { return s.name }

func (s *recordingSender) Send(_ context.Context, ev events.Event) error {
	if s.wait != nil {
		<-s.wait
	}
	s.mu.Lock()
	s.got = append(s.got, ev)
	s.mu.Unlock()
	return s.err
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.got)
}

type countingObserver struct {
	mu     sync.Mutex
	ok     int
	failed int
}

func (o *countingObserver) NotificationResult(_ string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.failed++
		return
	}
	o.ok++
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bookingEvent(typ string) events.Event {
	return events.Event{
		ID:   "ev-1",
		Type: typ,
		Booking: &events.BookingPayload{
			ID:            7,
			Status:        "pending",
			CustomerEmail: "cliente@example.com",
			BarberEmail:   "barbeiro@example.com",
		},
	}
}

func TestDispatcher_DeliversToEverySender(t *testing.T) {
	email := &recordingSender{name: "email"}
	queue := &recordingSender{name: "amqp", err: errors.New("broker down")}
	obs := &countingObserver{}

	d := NewDispatcher(discardLogger(), obs, email, queue)
	d.Publish(bookingEvent(events.BookingCreated))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	assert.Equal(t, 1, email.count())
	assert.Equal(t, 1, queue.count())
	assert.Equal(t, 1, obs.ok)
	assert.Equal(t, 1, obs.failed)
}

func TestDispatcher_IgnoresSlotEvents(t *testing.T) {
	s := &recordingSender{name: "log"}

	d := NewDispatcher(discardLogger(), nil, s)
	d.Publish(events.Event{Type: events.SlotUpdated, Slot: &events.SlotPayload{ID: 1}})
	require.NoError(t, d.Close(context.Background()))

	assert.Zero(t, s.count())
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	block := make(chan struct{})
	s := &recordingSender{name: "log", wait: block}

	d := NewDispatcher(discardLogger(), nil, s)
	for i := 0; i < defaultQueueSize+10; i++ {
		d.Publish(bookingEvent(events.BookingUpdated))
	}
	close(block)
	require.NoError(t, d.Close(context.Background()))

	// o worker segura um evento e a fila guarda no máximo defaultQueueSize
	assert.LessOrEqual(t, s.count(), defaultQueueSize+1)
	assert.Greater(t, s.count(), 0)
}

func TestDispatcher_PublishAfterCloseIsNoop(t *testing.T) {
	s := &recordingSender{name: "log"}

	d := NewDispatcher(discardLogger(), nil, s)
	require.NoError(t, d.Close(context.Background()))

	assert.NotPanics(t, func() { d.Publish(bookingEvent(events.BookingCreated)) })
	assert.Zero(t, s.count())
}
