package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"index;not null" json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"customer"`

	BarberID uint `gorm:"index;not null" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"barber"`

	ShopID uint `gorm:"index;not null" json:"shop_id"`
	Shop   Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	SlotID uint `gorm:"index;not null" json:"slot_id"`
	Slot   Slot `gorm:"foreignKey:SlotID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"slot"`

	Services []BookingService `json:"services"`

	Date      string `gorm:"size:10;index" json:"date"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	TotalAmount   float64 `json:"total_amount"`
	TotalDuration int     `json:"total_duration"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`
	Notes  string `gorm:"size:500" json:"notes"`

	CancellationReason string     `gorm:"size:500" json:"cancellation_reason,omitempty"`
	CancelledBy        *uint      `json:"cancelled_by,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmed_at"`
	StartedAt          *time.Time `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at"`
	CancelledAt        *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingService guarda o preço e a duração do serviço no momento da reserva.
type BookingService struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"index;not null" json:"booking_id"`
	ServiceID uint `gorm:"index;not null" json:"service_id"`

	Name        string  `gorm:"size:100" json:"name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
}

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID  uint   `gorm:"uniqueIndex;not null" json:"booking_id"`
	ShopID     uint   `gorm:"index;not null" json:"shop_id"`
	CustomerID uint   `gorm:"index;not null" json:"customer_id"`
	Rating     int    `gorm:"not null" json:"rating"`
	Comment    string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}

type Favorite struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex:idx_favorite_user_shop;not null" json:"user_id"`
	ShopID uint `gorm:"uniqueIndex:idx_favorite_user_shop;not null" json:"shop_id"`
	Shop   Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"shop"`

	CreatedAt time.Time `json:"created_at"`
}
