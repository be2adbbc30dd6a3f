package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	slotdomain "github.com/BruksfildServices01/barbershop-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barbershop-booking/internal/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	CustomerID uint
	SlotID     uint
	ServiceIDs []uint
	Notes      string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	locker domain.SlotLocker
	events events.Publisher
	audit  audit.Recorder
	now    func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	locker domain.SlotLocker,
	publisher events.Publisher,
	audit audit.Recorder,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		locker: locker,
		events: publisher,
		audit:  audit,
		now:    time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	serviceIDs := uniqueIDs(in.ServiceIDs)
	if len(serviceIDs) == 0 {
		return nil, httperr.ErrBusiness("services_required")
	}

	// --------------------------------------------------
	// 1️⃣ Trava do horário (entre instâncias)
	// --------------------------------------------------
	unlock, err := uc.locker.Lock(ctx, in.SlotID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// --------------------------------------------------
	// 2️⃣ Horário + barbearia
	// --------------------------------------------------
	slot, err := uc.repo.GetSlot(ctx, in.SlotID)
	if err != nil {
		return nil, err
	}
	if !slot.IsAvailable() {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	shop, err := uc.repo.GetShopByID(ctx, slot.ShopID)
	if err != nil {
		return nil, err
	}
	if !shop.Active || shop.Status != models.ShopStatusApproved {
		return nil, httperr.ErrBusiness("shop_not_found")
	}

	active, err := uc.repo.IsBarberActive(ctx, slot.BarberID, slot.ShopID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	// --------------------------------------------------
	// 3️⃣ Antecedência mínima no timezone da barbearia
	// --------------------------------------------------
	loc := timezone.Location(shop.Timezone)
	start, err := slotdomain.StartsAt(slot.Date, slot.StartTime, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	now := uc.now().In(loc)
	if !start.After(now) {
		return nil, httperr.ErrBusiness("slot_in_past")
	}
	if start.Before(now.Add(time.Duration(shop.MinAdvanceMinutes) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4️⃣ Serviços
	// --------------------------------------------------
	services, err := uc.repo.ListServicesByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(serviceIDs) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	for _, s := range services {
		if s.ShopID != slot.ShopID {
			return nil, httperr.ErrBusiness("service_shop_mismatch")
		}
		if !s.Active {
			return nil, httperr.ErrBusiness("service_inactive")
		}
	}

	amount, duration, lines := domain.Totals(services)

	// --------------------------------------------------
	// 5️⃣ Reserva (transação trava o horário)
	// --------------------------------------------------
	b := &models.Booking{
		CustomerID:    in.CustomerID,
		BarberID:      slot.BarberID,
		ShopID:        slot.ShopID,
		SlotID:        slot.ID,
		Services:      lines,
		Date:          slot.Date,
		StartTime:     slot.StartTime,
		EndTime:       slot.EndTime,
		TotalAmount:   amount,
		TotalDuration: duration,
		Status:        string(domain.InitialStatus()),
		Notes:         in.Notes,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	if full, err := uc.repo.GetBooking(ctx, b.ID); err == nil {
		b = full
	}

	// --------------------------------------------------
	// 6️⃣ Notificação / tempo real / auditoria
	// --------------------------------------------------
	uc.events.Publish(events.NewBookingEvent(events.BookingCreated, b, "", shop.Name))

	slot.IsBooked = true
	slot.Status = models.SlotStatusBooked
	slot.BookingID = &b.ID
	uc.events.Publish(events.NewSlotEvent(slot))

	uc.audit.Dispatch(audit.Event{
		ShopID:   b.ShopID,
		UserID:   &in.CustomerID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"slot_id":      b.SlotID,
			"total_amount": b.TotalAmount,
		},
	})

	return b, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
