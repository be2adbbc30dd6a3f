package slot

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barbershop-booking/internal/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type SetSlotBlocked struct {
	repo   domain.Repository
	events events.Publisher
	audit  audit.Recorder
}

func NewSetSlotBlocked(repo domain.Repository, publisher events.Publisher, audit audit.Recorder) *SetSlotBlocked {
	return &SetSlotBlocked{repo: repo, events: publisher, audit: audit}
}

// Execute bloqueia/desbloqueia um horário livre. Repetir a operação não é erro.
func (uc *SetSlotBlocked) Execute(
	ctx context.Context,
	actor auth.Actor,
	slotID uint,
	blocked bool,
) (*models.Slot, error) {

	slot, err := uc.repo.GetSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	shop, err := uc.repo.GetShopByID(ctx, slot.ShopID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageBarber(shop, slot.BarberID) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	if slot.IsBooked {
		return nil, httperr.ErrBusiness("slot_booked")
	}

	from, to := models.SlotStatusAvailable, models.SlotStatusBlocked
	action := "slot_blocked"
	if !blocked {
		from, to = to, from
		action = "slot_unblocked"
	}

	if slot.Status == to {
		return slot, nil
	}

	if err := uc.repo.SetSlotStatus(ctx, slot.ID, from, to); err != nil {
		return nil, err
	}
	slot.Status = to

	uc.events.Publish(events.NewSlotEvent(slot))
	uc.audit.Dispatch(audit.Event{
		ShopID:   slot.ShopID,
		UserID:   &actor.UserID,
		Action:   action,
		Entity:   "slot",
		EntityID: &slot.ID,
	})

	return slot, nil
}
