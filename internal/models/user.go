package models

import "time"

const (
	RoleCustomer  = "customer"
	RoleBarber    = "barber"
	RoleShopOwner = "shop_owner"
	RoleAdmin     = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string  `gorm:"size:100;not null" json:"name"`
	Email        string  `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        *string `gorm:"size:20;uniqueIndex" json:"phone"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	Role         string  `gorm:"size:20;default:'customer';index" json:"role"`
	Active       bool    `gorm:"default:true" json:"active"`

	// barbeiros ficam vinculados a uma barbearia; dono usa Shop.OwnerID
	ShopID *uint `gorm:"index" json:"shop_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleBarber, RoleShopOwner, RoleAdmin:
		return true
	}
	return false
}
