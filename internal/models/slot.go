package models

import "time"

const (
	SlotStatusAvailable = "available"
	SlotStatusBooked    = "booked"
	SlotStatusBlocked   = "blocked"
)

type Slot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint `gorm:"uniqueIndex:idx_slot_barber_day_start;not null" json:"barber_id"`
	ShopID   uint `gorm:"index;not null" json:"shop_id"`

	Date      string `gorm:"size:10;uniqueIndex:idx_slot_barber_day_start;index;not null" json:"date"`
	StartTime string `gorm:"size:5;uniqueIndex:idx_slot_barber_day_start;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	IsBooked  bool   `gorm:"default:false" json:"is_booked"`
	Status    string `gorm:"size:20;default:'available';index" json:"status"`
	BookingID *uint  `json:"booking_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Slot) IsAvailable() bool {
	return !s.IsBooked && s.Status == SlotStatusAvailable
}
