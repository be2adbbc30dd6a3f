package audit

import (
	"context"
	"log/slog"
	"sync"
)

type Event struct {
	ShopID   uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Recorder é o que os casos de uso enxergam.
type Recorder interface {
	Dispatch(ev Event)
}

type Store interface {
	Log(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	logger Store
	queue  chan Event
	log    *slog.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(logger Store, log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100), // buffer seguro
		log:    log,
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.logger.Log(context.Background(), ev); err != nil {
			d.log.Error("audit error", "action", ev.Action, "error", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.log.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

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

type Discard struct{}

func (Discard) Dispatch(Event) {}
