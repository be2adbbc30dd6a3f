package booking

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type UpdateStatusInput struct {
	Actor     auth.Actor
	BookingID uint
	Status    string
	Reason    string
}

type UpdateBookingStatus struct {
	repo   domain.Repository
	events events.Publisher
	audit  audit.Recorder
	now    func() time.Time
}

func NewUpdateBookingStatus(
	repo domain.Repository,
	publisher events.Publisher,
	audit audit.Recorder,
) *UpdateBookingStatus {
	return &UpdateBookingStatus{
		repo:   repo,
		events: publisher,
		audit:  audit,
		now:    time.Now,
	}
}

func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Booking, error) {

	to, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}

	from := domain.Status(b.Status)
	if err := authorizeTransition(in.Actor, b, from, to); err != nil {
		return nil, err
	}

	if err := domain.Transition(b, to, uc.now().UTC(), in.Actor.UserID, strings.TrimSpace(in.Reason)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBookingStatus(ctx, b, from); err != nil {
		return nil, err
	}

	typ := events.BookingUpdated
	if to == domain.StatusCancelled {
		typ = events.BookingCancelled

		b.Slot.IsBooked = false
		b.Slot.Status = models.SlotStatusAvailable
		b.Slot.BookingID = nil
		if b.Slot.ID != 0 {
			uc.events.Publish(events.NewSlotEvent(&b.Slot))
		}
	}
	uc.events.Publish(events.NewBookingEvent(typ, b, string(from), b.Shop.Name))

	uc.audit.Dispatch(audit.Event{
		ShopID:   b.ShopID,
		UserID:   &in.Actor.UserID,
		Action:   "booking_" + strings.ReplaceAll(string(to), "-", "_"),
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"from":   from,
			"to":     to,
			"reason": b.CancellationReason,
		},
	})

	return b, nil
}

// authorizeTransition: quem não participa não enxerga a reserva; a tabela de
// transições vale para todos; cliente só pode cancelar.
func authorizeTransition(actor auth.Actor, b *models.Booking, from, to domain.Status) error {
	manager := actor.CanManageBarber(&b.Shop, b.BarberID)
	customer := actor.UserID == b.CustomerID

	if !manager && !customer {
		return httperr.ErrBusiness("booking_not_found")
	}
	if err := domain.CanTransition(from, to); err != nil {
		return err
	}
	if !manager && to != domain.StatusCancelled {
		return httperr.ErrBusiness("forbidden")
	}
	return nil
}
