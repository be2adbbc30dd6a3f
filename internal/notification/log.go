package notification

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/barbershop-booking/internal/events"
)

// LogSender é usado quando nenhum canal externo está configurado.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Name() string { return "log" }

func (s *LogSender) Send(_ context.Context, ev events.Event) error {
	b := ev.Booking
	s.log.Info("notification",
		"event", ev.Type,
		"booking_id", b.ID,
		"status", b.Status,
		"customer", b.CustomerEmail,
		"barber", b.BarberEmail,
		"date", b.Date,
		"start", b.StartTime,
	)
	return nil
}
