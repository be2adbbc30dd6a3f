package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Shop / Slot / Service
// --------------------------------------------------

func (r *BookingGormRepository) GetShopByID(
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

func (r *BookingGormRepository) GetSlot(
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

func (r *BookingGormRepository) ListServicesByIDs(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *BookingGormRepository) IsBarberActive(
	ctx context.Context,
	barberID, shopID uint,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BarberProfile{}).
		Where("user_id = ? AND shop_id = ? AND active = ?", barberID, shopID, true).
		Count(&count).Error
	return count > 0, err
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot models.Slot
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot, b.SlotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("slot_not_found")
			}
			return err
		}

		if !slot.IsAvailable() {
			return httperr.ErrBusiness("slot_unavailable")
		}

		res := tx.Model(&models.Slot{}).
			Where("id = ? AND is_booked = ? AND status = ?", slot.ID, false, models.SlotStatusAvailable).
			Updates(map[string]any{
				"is_booked": true,
				"status":    models.SlotStatusBooked,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("slot_unavailable")
		}

		if err := tx.Omit("Customer", "Barber", "Shop", "Slot").Create(b).Error; err != nil {
			return err
		}

		return tx.Model(&models.Slot{}).
			Where("id = ?", slot.ID).
			Update("booking_id", b.ID).Error
	})
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Customer").
		Preload("Barber").
		Preload("Shop").
		Preload("Slot").
		First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBookingStatus(
	ctx context.Context,
	b *models.Booking,
	from domain.Status,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", b.ID, string(from)).
			Updates(map[string]any{
				"status":              b.Status,
				"confirmed_at":        b.ConfirmedAt,
				"started_at":          b.StartedAt,
				"completed_at":        b.CompletedAt,
				"cancelled_at":        b.CancelledAt,
				"cancelled_by":        b.CancelledBy,
				"cancellation_reason": b.CancellationReason,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("status_conflict")
		}

		if domain.Status(b.Status) != domain.StatusCancelled {
			return nil
		}

		// cancelamento devolve o horário para a agenda
		return tx.Model(&models.Slot{}).
			Where("id = ? AND booking_id = ?", b.SlotID, b.ID).
			Updates(map[string]any{
				"is_booked":  false,
				"status":     models.SlotStatusAvailable,
				"booking_id": nil,
			}).Error
	})
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Customer").
		Preload("Barber")

	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.BarberID != nil {
		q = q.Where("barber_id = ?", *f.BarberID)
	}
	if f.ShopID != nil {
		q = q.Where("shop_id = ?", *f.ShopID)
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var out []models.Booking
	if err := q.
		Order("date DESC, start_time ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Review
// --------------------------------------------------

func (r *BookingGormRepository) HasReview(
	ctx context.Context,
	bookingID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) CreateReview(
	ctx context.Context,
	review *models.Review,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return httperr.ErrBusiness("already_reviewed")
			}
			return err
		}

		var agg struct {
			Avg   float64
			Count int
		}
		if err := tx.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("shop_id = ?", review.ShopID).
			Scan(&agg).Error; err != nil {
			return err
		}

		return tx.Model(&models.Shop{}).
			Where("id = ?", review.ShopID).
			Updates(map[string]any{
				"rating":       agg.Avg,
				"rating_count": agg.Count,
			}).Error
	})
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
