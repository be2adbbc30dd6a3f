package models

import "time"

var ServiceCategories = []string{
	"haircut",
	"beard",
	"shave",
	"coloring",
	"styling",
	"treatment",
	"kids",
	"combo",
}

func ValidServiceCategory(category string) bool {
	for _, c := range ServiceCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Service struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `gorm:"index;not null" json:"shop_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Category    string  `gorm:"size:30;not null" json:"category"`
	Price       float64 `gorm:"not null" json:"price"`
	DurationMin int     `gorm:"not null" json:"duration_min"`
	Active      bool    `gorm:"default:true" json:"active"`

	TemplateID *uint `json:"template_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServiceTemplate é o catálogo global que os donos copiam para a barbearia.
type ServiceTemplate struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name            string  `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description     string  `gorm:"size:255" json:"description"`
	Category        string  `gorm:"size:30;not null" json:"category"`
	DefaultPrice    float64 `json:"default_price"`
	DefaultDuration int     `json:"default_duration"`
	Active          bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
