package models

import "time"

const DefaultSlotDuration = 30

type WorkingHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex:idx_barber_weekday;not null" json:"barber_id"`
	ShopID   uint `gorm:"index" json:"shop_id"`

	Weekday int `gorm:"uniqueIndex:idx_barber_weekday" json:"weekday"`

	StartTime    string `gorm:"size:5" json:"start_time"`
	EndTime      string `gorm:"size:5" json:"end_time"`
	BreakStart   string `gorm:"size:5" json:"break_start"`
	BreakEnd     string `gorm:"size:5" json:"break_end"`
	SlotDuration int    `gorm:"default:30" json:"slot_duration"`
	Active       bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
