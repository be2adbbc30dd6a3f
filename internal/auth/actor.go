package auth

import "github.com/BruksfildServices01/barbershop-booking/internal/models"

// Actor é quem está executando a operação.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanManageShop: admin ou dono da barbearia.
func (a Actor) CanManageShop(shop *models.Shop) bool {
	if a.IsAdmin() {
		return true
	}
	return shop != nil && a.Role == models.RoleShopOwner && shop.OwnerID == a.UserID
}

// CanManageBarber: o próprio barbeiro, o dono da barbearia dele ou admin.
func (a Actor) CanManageBarber(shop *models.Shop, barberID uint) bool {
	if a.CanManageShop(shop) {
		return true
	}
	return a.Role == models.RoleBarber && a.UserID == barberID
}
