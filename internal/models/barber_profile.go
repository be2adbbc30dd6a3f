package models

import "time"

type BarberProfile struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	ShopID uint `gorm:"index;not null" json:"shop_id"`

	Bio             string      `gorm:"size:500" json:"bio"`
	ExperienceYears int         `json:"experience_years"`
	Specialties     []Specialty `gorm:"many2many:barber_specialties;" json:"specialties"`
	Active          bool        `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Specialty struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
