package slot

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type GenerateSlotsInput struct {
	Actor    auth.Actor
	BarberID uint
	From     string
	To       string
}

type GenerateSlotsResult struct {
	BarberID uint   `json:"barber_id"`
	From     string `json:"from"`
	To       string `json:"to"`
	Created  int64  `json:"created"`
}

// ======================================================
// USE CASE
// ======================================================

type GenerateSlots struct {
	repo    domain.Repository
	audit   audit.Recorder
	maxDays int
}

func NewGenerateSlots(repo domain.Repository, audit audit.Recorder, maxDays int) *GenerateSlots {
	return &GenerateSlots{repo: repo, audit: audit, maxDays: maxDays}
}

func (uc *GenerateSlots) Execute(
	ctx context.Context,
	in GenerateSlotsInput,
) (*GenerateSlotsResult, error) {

	profile, err := uc.repo.GetBarberProfile(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	shop, err := uc.repo.GetShopByID(ctx, profile.ShopID)
	if err != nil {
		return nil, err
	}
	if !in.Actor.CanManageBarber(shop, in.BarberID) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	// --------------------------------------------------
	// Período no timezone da barbearia
	// --------------------------------------------------
	loc := timezone.Location(shop.Timezone)
	from, err := time.ParseInLocation(domain.DateLayout, in.From, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	to, err := time.ParseInLocation(domain.DateLayout, in.To, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if to.Before(from) {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}
	if calendarDays(from, to) > uc.maxDays {
		return nil, httperr.ErrBusiness("range_too_large")
	}

	created, err := generateRange(ctx, uc.repo, in.BarberID, shop.ID, from, to)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   shop.ID,
		UserID:   &in.Actor.UserID,
		Action:   "slots_generated",
		Entity:   "slot",
		Metadata: map[string]any{"barber_id": in.BarberID, "from": in.From, "to": in.To, "created": created},
	})

	return &GenerateSlotsResult{
		BarberID: in.BarberID,
		From:     in.From,
		To:       in.To,
		Created:  created,
	}, nil
}

// calendarDays conta as datas do intervalo, inclusive. Compara em UTC para
// que dias de 23h ou 25h na virada do horário de verão contem como um.
func calendarDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f)/(24*time.Hour)) + 1
}

// generateRange gera e grava os dias ainda sem horários do intervalo.
func generateRange(
	ctx context.Context,
	repo domain.Repository,
	barberID uint,
	shopID uint,
	from time.Time,
	to time.Time,
) (int64, error) {

	hours, err := repo.ListWorkingHours(ctx, barberID)
	if err != nil {
		return 0, err
	}

	existing, err := repo.DaysWithSlots(ctx, barberID, from.Format(domain.DateLayout), to.Format(domain.DateLayout))
	if err != nil {
		return 0, err
	}

	slots, err := domain.Generate(barberID, shopID, hours, from, to, existing)
	if err != nil {
		return 0, err
	}

	return repo.CreateSlots(ctx, slots)
}
