package booking

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ListFilter struct {
	CustomerID *uint
	BarberID   *uint
	ShopID     *uint
	Date       string
	Status     string
}

type Repository interface {
	// -------- Shop / Slot / Service --------
	GetShopByID(ctx context.Context, id uint) (*models.Shop, error)

	GetSlot(ctx context.Context, id uint) (*models.Slot, error)

	ListServicesByIDs(ctx context.Context, ids []uint) ([]models.Service, error)

	// IsBarberActive diz se o barbeiro ainda faz parte da equipe da barbearia.
	IsBarberActive(ctx context.Context, barberID, shopID uint) (bool, error)

	// -------- Booking --------

	// CreateBooking reserva o horário e grava a reserva na mesma transação.
	// Horário já ocupado devolve slot_unavailable.
	CreateBooking(ctx context.Context, b *models.Booking) error

	GetBooking(ctx context.Context, id uint) (*models.Booking, error)

	// UpdateBookingStatus grava só se o status atual ainda for `from`
	// (status_conflict caso contrário). Cancelamento libera o horário.
	UpdateBookingStatus(ctx context.Context, b *models.Booking, from Status) error

	ListBookings(ctx context.Context, f ListFilter) ([]models.Booking, error)

	// -------- Review --------
	HasReview(ctx context.Context, bookingID uint) (bool, error)

	// CreateReview grava a avaliação e recalcula a nota da barbearia.
	CreateReview(ctx context.Context, r *models.Review) error
}

// SlotLocker serializa reservas concorrentes do mesmo horário entre instâncias.
type SlotLocker interface {
	Lock(ctx context.Context, slotID uint) (unlock func(), err error)
}
