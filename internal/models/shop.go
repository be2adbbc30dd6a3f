package models

import "time"

const (
	ShopStatusPending   = "pending"
	ShopStatusApproved  = "approved"
	ShopStatusSuspended = "suspended"
)

type Shop struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OwnerID uint `gorm:"index;not null" json:"owner_id"`
	Owner   User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"size:500" json:"description"`

	Street  string `gorm:"size:255" json:"street"`
	City    string `gorm:"size:100;index" json:"city"`
	State   string `gorm:"size:50" json:"state"`
	ZipCode string `gorm:"size:20" json:"zip_code"`

	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	Timezone          string `gorm:"size:64;default:'America/Sao_Paulo'" json:"timezone"`
	MinAdvanceMinutes int    `gorm:"default:60" json:"min_advance_minutes"`
	CoverImageURL     string `gorm:"size:500" json:"cover_image_url"`

	Rating      float64 `gorm:"default:0" json:"rating"`
	RatingCount int     `gorm:"default:0" json:"rating_count"`

	Active bool   `gorm:"default:true" json:"active"`
	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	Hours   []ShopHours     `json:"hours,omitempty"`
	Barbers []BarberProfile `json:"barbers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ShopHours é o horário de funcionamento da barbearia por dia da semana.
type ShopHours struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `gorm:"uniqueIndex:idx_shop_weekday;not null" json:"shop_id"`

	Weekday   int    `gorm:"uniqueIndex:idx_shop_weekday" json:"weekday"`
	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`
	Closed    bool   `json:"closed"`
}

func ValidShopStatus(status string) bool {
	switch status {
	case ShopStatusPending, ShopStatusApproved, ShopStatusSuspended:
		return true
	}
	return false
}
