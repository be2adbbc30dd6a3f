package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type SlotGormRepository struct {
	db *gorm.DB
}

func NewSlotGormRepository(db *gorm.DB) *SlotGormRepository {
	return &SlotGormRepository{db: db}
}

func (r *SlotGormRepository) GetShopByID(
	ctx context.Context,
	id uint,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("shop_not_found")
		}
		return nil, err
	}
	return &shop, nil
}

func (r *SlotGormRepository) GetBarberProfile(
	ctx context.Context,
	barberID uint,
) (*models.BarberProfile, error) {

	var profile models.BarberProfile
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", barberID, true).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
		return nil, err
	}
	return &profile, nil
}

func (r *SlotGormRepository) ListWorkingHours(
	ctx context.Context,
	barberID uint,
) ([]models.WorkingHours, error) {

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *SlotGormRepository) DaysWithSlots(
	ctx context.Context,
	barberID uint,
	from string,
	to string,
) (map[string]bool, error) {

	var dates []string
	if err := r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Distinct("date").
		Where("barber_id = ? AND date >= ? AND date <= ?", barberID, from, to).
		Pluck("date", &dates).Error; err != nil {
		return nil, err
	}

	out := make(map[string]bool, len(dates))
	for _, d := range dates {
		out[d] = true
	}
	return out, nil
}

func (r *SlotGormRepository) CreateSlots(
	ctx context.Context,
	slots []models.Slot,
) (int64, error) {

	if len(slots) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&slots, 200)

	return res.RowsAffected, res.Error
}

func (r *SlotGormRepository) ListSlots(
	ctx context.Context,
	barberID uint,
	date string,
	onlyAvailable bool,
) ([]models.Slot, error) {

	q := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date)

	if onlyAvailable {
		q = q.Where("is_booked = ? AND status = ?", false, models.SlotStatusAvailable)
	}

	var slots []models.Slot
	if err := q.Order("start_time ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SlotGormRepository) GetSlot(
	ctx context.Context,
	id uint,
) (*models.Slot, error) {

	var slot models.Slot
	if err := r.db.WithContext(ctx).First(&slot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("slot_not_found")
		}
		return nil, err
	}
	return &slot, nil
}

func (r *SlotGormRepository) SetSlotStatus(
	ctx context.Context,
	id uint,
	from string,
	to string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Where("id = ? AND status = ? AND is_booked = ?", id, from, false).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	current, err := r.GetSlot(ctx, id)
	if err != nil {
		return err
	}
	if current.IsBooked {
		return httperr.ErrBusiness("slot_booked")
	}
	return httperr.ErrBusiness("status_conflict")
}

// Compile-time check
var _ domain.Repository = (*SlotGormRepository)(nil)
