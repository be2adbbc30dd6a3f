package slot

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// ======================================================
// AVAILABLE (público)
// ======================================================

type ListAvailableSlots struct {
	repo    domain.Repository
	maxDays int
	now     func() time.Time
}

func NewListAvailableSlots(repo domain.Repository, maxDays int) *ListAvailableSlots {
	return &ListAvailableSlots{repo: repo, maxDays: maxDays, now: time.Now}
}

// Execute gera o dia sob demanda e devolve só horários livres que ainda
// respeitam a antecedência mínima da barbearia.
func (uc *ListAvailableSlots) Execute(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.Slot, error) {

	profile, err := uc.repo.GetBarberProfile(ctx, barberID)
	if err != nil {
		return nil, err
	}
	shop, err := uc.repo.GetShopByID(ctx, profile.ShopID)
	if err != nil {
		return nil, err
	}
	if !shop.Active || shop.Status != models.ShopStatusApproved {
		return nil, httperr.ErrBusiness("shop_not_found")
	}

	loc := timezone.Location(shop.Timezone)
	day, err := time.ParseInLocation(domain.DateLayout, date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	now := uc.now().In(loc)
	today := timezone.StartOfDay(now)
	out := []models.Slot{}

	if day.Before(today) || day.After(today.AddDate(0, 0, uc.maxDays)) {
		return out, nil
	}

	if _, err := generateRange(ctx, uc.repo, barberID, shop.ID, day, day); err != nil {
		return nil, err
	}

	slots, err := uc.repo.ListSlots(ctx, barberID, date, true)
	if err != nil {
		return nil, err
	}

	earliest := now.Add(time.Duration(shop.MinAdvanceMinutes) * time.Minute)
	for _, s := range slots {
		start, err := domain.StartsAt(s.Date, s.StartTime, loc)
		if err != nil || start.Before(earliest) {
			continue
		}
		out = append(out, s)
	}

	return out, nil
}

// ======================================================
// BARBER (agenda completa do dia)
// ======================================================

type ListBarberSlots struct {
	repo domain.Repository
}

func NewListBarberSlots(repo domain.Repository) *ListBarberSlots {
	return &ListBarberSlots{repo: repo}
}

func (uc *ListBarberSlots) Execute(
	ctx context.Context,
	actor auth.Actor,
	barberID uint,
	date string,
) ([]models.Slot, error) {

	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	profile, err := uc.repo.GetBarberProfile(ctx, barberID)
	if err != nil {
		return nil, err
	}
	shop, err := uc.repo.GetShopByID(ctx, profile.ShopID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageBarber(shop, barberID) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	slots, err := uc.repo.ListSlots(ctx, barberID, date, false)
	if err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []models.Slot{}
	}
	return slots, nil
}
