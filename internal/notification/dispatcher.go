package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/events"
)

const (
	defaultQueueSize = 100
	sendTimeout      = 15 * time.Second
)

// Sender entrega um evento por um canal (e-mail, fila, log).
type Sender interface {
	Name() string
	Send(ctx context.Context, ev events.Event) error
}

type ResultObserver interface {
	NotificationResult(channel string, err error)
}

// Dispatcher envia notificações fora da requisição: nunca bloqueia quem publica,
// descarta quando a fila enche e só registra falhas (sem retry).
type Dispatcher struct {
	senders  []Sender
	observer ResultObserver
	queue    chan events.Event
	log      *slog.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(log *slog.Logger, observer ResultObserver, senders ...Sender) *Dispatcher {
	d := &Dispatcher{
		senders:  senders,
		observer: observer,
		queue:    make(chan events.Event, defaultQueueSize),
		log:      log,
		done:     make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.senders {
			ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
			err := s.Send(ctx, ev)
			cancel()

			if d.observer != nil {
				d.observer.NotificationResult(s.Name(), err)
			}
			if err != nil {
				d.log.Warn("notification failed",
					"channel", s.Name(),
					"event", ev.Type,
					"event_id", ev.ID,
					"error", err,
				)
			}
		}
	}
}

// Publish implementa events.Publisher. Só eventos de reserva geram notificação.
func (d *Dispatcher) Publish(ev events.Event) {
	if ev.Booking == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos (nunca quebrar API)
		d.log.Warn("notification queue full, dropping event", "event", ev.Type, "event_id", ev.ID)
	}
}

// Close drena a fila e espera o worker terminar ou o ctx expirar.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
