package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	slotdomain "github.com/BruksfildServices01/barbershop-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ======================================================
// GET
// ======================================================

type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

// Execute só devolve a reserva para participantes, dono da barbearia ou admin.
// Para os demais a reserva "não existe".
func (uc *GetBooking) Execute(ctx context.Context, actor auth.Actor, id uint) (*models.Booking, error) {
	b, err := uc.repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.UserID == b.CustomerID || actor.CanManageBarber(&b.Shop, b.BarberID) {
		return b, nil
	}
	return nil, httperr.ErrBusiness("booking_not_found")
}

// ======================================================
// LIST
// ======================================================

type Scope int

const (
	ScopeCustomer Scope = iota
	ScopeBarber
	ScopeShop
)

type ListBookingsInput struct {
	Actor  auth.Actor
	Scope  Scope
	ShopID uint
	Date   string
	Status string
}

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) Execute(ctx context.Context, in ListBookingsInput) ([]models.Booking, error) {
	if in.Date != "" {
		if _, err := time.Parse(slotdomain.DateLayout, in.Date); err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
	}
	if in.Status != "" {
		if _, err := domain.ParseStatus(in.Status); err != nil {
			return nil, err
		}
	}

	f := domain.ListFilter{Date: in.Date, Status: in.Status}
	userID := in.Actor.UserID

	switch in.Scope {
	case ScopeCustomer:
		f.CustomerID = &userID
	case ScopeBarber:
		f.BarberID = &userID
	case ScopeShop:
		shop, err := uc.repo.GetShopByID(ctx, in.ShopID)
		if err != nil {
			return nil, err
		}
		if !in.Actor.CanManageShop(shop) {
			return nil, httperr.ErrBusiness("forbidden")
		}
		f.ShopID = &shop.ID
	}

	out, err := uc.repo.ListBookings(ctx, f)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Booking{}
	}
	return out, nil
}
