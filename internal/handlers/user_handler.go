package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

type UpdateMeRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone *string `json:"phone" binding:"omitempty,max=20"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ======================================================
// ME
// ======================================================

func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Abort(c, httperr.ErrBusiness("user_not_found"))
			return
		}
		httperr.Abort(c, err)
		return
	}

	httpresp.OK(c, user)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var req UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Abort(c, httperr.ErrBusiness("user_not_found"))
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		phone := optionalString(*req.Phone)
		if phone != nil {
			var count int64
			h.db.Model(&models.User{}).Where("phone = ? AND id <> ?", *phone, userID).Count(&count)
			if count > 0 {
				httperr.Abort(c, httperr.ErrBusiness("phone_already_exists"))
				return
			}
		}
		updates["phone"] = phone
	}

	if len(updates) > 0 {
		if err := h.db.Model(&user).Updates(updates).Error; err != nil {
			httperr.Abort(c, err)
			return
		}
	}

	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, user)
}

// ======================================================
// FAVORITES
// ======================================================

func (h *UserHandler) ListFavorites(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var favs []models.Favorite
	if err := h.db.
		Preload("Shop").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favs).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	shops := make([]models.Shop, 0, len(favs))
	for _, f := range favs {
		shops = append(shops, f.Shop)
	}
	httpresp.List(c, shops)
}

func (h *UserHandler) AddFavorite(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	shopID, ok := uintParam(c, "shopId")
	if !ok {
		return
	}

	var shop models.Shop
	if err := h.db.Select("id").Where("id = ? AND active = ?", shopID, true).First(&shop).Error; err != nil {
		httperr.Abort(c, httperr.ErrBusiness("shop_not_found"))
		return
	}

	fav := models.Favorite{UserID: userID, ShopID: shopID}
	if err := h.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit("Shop").
		Create(&fav).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) RemoveFavorite(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	shopID, ok := uintParam(c, "shopId")
	if !ok {
		return
	}

	if err := h.db.
		Where("user_id = ? AND shop_id = ?", userID, shopID).
		Delete(&models.Favorite{}).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// ADMIN
// ======================================================

func (h *UserHandler) List(c *gin.Context) {
	page, limit := pagination(c)

	q := h.db.Model(&models.User{})

	if role := c.Query("role"); role != "" {
		if !models.ValidRole(role) {
			httperr.Abort(c, httperr.ErrBusiness("invalid_role"))
			return
		}
		q = q.Where("role = ?", role)
	}
	if term := strings.TrimSpace(c.Query("query")); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	var users []models.User
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset(page, limit)).
		Find(&users).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.Page(c, users, page, limit, total)
}

func (h *UserHandler) SetActive(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req SetActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	res := h.db.Model(&models.User{}).Where("id = ?", id).Update("active", *req.Active)
	if res.Error != nil {
		httperr.Abort(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		httperr.Abort(c, httperr.ErrBusiness("user_not_found"))
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, user)
}
