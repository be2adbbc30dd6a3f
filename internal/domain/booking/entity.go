package booking

import (
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition aplica a mudança de status e carimba o horário correspondente.
func Transition(b *models.Booking, to Status, now time.Time, actorID uint, reason string) error {
	if err := CanTransition(Status(b.Status), to); err != nil {
		return err
	}

	b.Status = string(to)

	switch to {
	case StatusConfirmed:
		b.ConfirmedAt = &now
	case StatusInProgress:
		b.StartedAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
		b.CancelledBy = &actorID
		b.CancellationReason = reason
	}
	return nil
}

// Totals soma preço e duração dos serviços e devolve as linhas da reserva.
func Totals(services []models.Service) (float64, int, []models.BookingService) {
	var (
		amount   float64
		duration int
		lines    = make([]models.BookingService, 0, len(services))
	)

	for _, s := range services {
		amount += s.Price
		duration += s.DurationMin
		lines = append(lines, models.BookingService{
			ServiceID:   s.ID,
			Name:        s.Name,
			Price:       s.Price,
			DurationMin: s.DurationMin,
		})
	}

	return amount, duration, lines
}
