package slot

import (
	"context"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Repository interface {
	GetShopByID(ctx context.Context, id uint) (*models.Shop, error)

	// GetBarberProfile busca o perfil ativo do barbeiro (user_id).
	GetBarberProfile(ctx context.Context, barberID uint) (*models.BarberProfile, error)

	ListWorkingHours(ctx context.Context, barberID uint) ([]models.WorkingHours, error)

	// DaysWithSlots devolve as datas do intervalo que já têm horários gerados.
	DaysWithSlots(ctx context.Context, barberID uint, from, to string) (map[string]bool, error)

	// CreateSlots ignora horários que já existem (barbeiro + data + início).
	CreateSlots(ctx context.Context, slots []models.Slot) (int64, error)

	ListSlots(ctx context.Context, barberID uint, date string, onlyAvailable bool) ([]models.Slot, error)

	GetSlot(ctx context.Context, id uint) (*models.Slot, error)

	// SetSlotStatus troca o status de um horário não reservado se ele ainda estiver em `from`.
	SetSlotStatus(ctx context.Context, id uint, from, to string) error
}
