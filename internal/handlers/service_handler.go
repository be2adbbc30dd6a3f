package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit audit.Recorder
}

func NewServiceHandler(db *gorm.DB, audit audit.Recorder) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

type CreateServiceRequest struct {
	ShopID      uint    `json:"shop_id" binding:"required"`
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description string  `json:"description" binding:"omitempty,max=255"`
	Category    string  `json:"category" binding:"required,service_category"`
	Price       float64 `json:"price" binding:"gte=0"`
	DurationMin int     `json:"duration_min" binding:"required,min=5,max=480"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=255"`
	Category    *string  `json:"category" binding:"omitempty,service_category"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	DurationMin *int     `json:"duration_min" binding:"omitempty,min=5,max=480"`
	Active      *bool    `json:"active"`
}

// ======================================================
// HELPERS
// ======================================================

func shopByID(db *gorm.DB, id uint) (*models.Shop, error) {
	var shop models.Shop
	if err := db.First(&shop, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("shop_not_found")
		}
		return nil, err
	}
	return &shop, nil
}

// ownedShop devolve a barbearia se o ator pode gerenciá-la.
func ownedShop(db *gorm.DB, actor auth.Actor, id uint) (*models.Shop, error) {
	shop, err := shopByID(db, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageShop(shop) {
		return nil, httperr.ErrBusiness("forbidden")
	}
	return shop, nil
}

func (h *ServiceHandler) managedService(c *gin.Context) (*models.Service, bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		return nil, false
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = httperr.ErrBusiness("service_not_found")
		}
		httperr.Abort(c, err)
		return nil, false
	}

	if _, err := ownedShop(h.db, middleware.ActorFrom(c), svc.ShopID); err != nil {
		httperr.Abort(c, err)
		return nil, false
	}
	return &svc, true
}

func (h *ServiceHandler) record(c *gin.Context, svc *models.Service, action string) {
	userID := c.GetUint(middleware.ContextUserID)
	h.audit.Dispatch(audit.Event{
		ShopID:   svc.ShopID,
		UserID:   &userID,
		Action:   action,
		Entity:   "service",
		EntityID: &svc.ID,
		Metadata: gin.H{"name": svc.Name, "price": svc.Price},
	})
}

// ======================================================
// PUBLIC
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	shopID, ok := uintQuery(c, "shop_id")
	if !ok {
		return
	}

	q := h.db.Model(&models.Service{}).Where("active = ?", true)
	if shopID != 0 {
		q = q.Where("shop_id = ?", shopID)
	}
	if category := c.Query("category"); category != "" {
		if !models.ValidServiceCategory(category) {
			httperr.Abort(c, httperr.ErrBusiness("invalid_category"))
			return
		}
		q = q.Where("category = ?", category)
	}

	var services []models.Service
	if err := q.Order("shop_id ASC, category ASC, name ASC").Find(&services).Error; err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Categories(c *gin.Context) {
	httpresp.List(c, models.ServiceCategories)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.Where("id = ? AND active = ?", id, true).First(&svc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = httperr.ErrBusiness("service_not_found")
		}
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, svc)
}

// ======================================================
// OWNER
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	shop, err := ownedShop(h.db, middleware.ActorFrom(c), req.ShopID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	svc := models.Service{
		ShopID:      shop.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		Active:      true,
	}
	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	h.record(c, &svc, "service_created")
	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	svc, ok := h.managedService(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.DurationMin != nil {
		svc.DurationMin = *req.DurationMin
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(svc).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	h.record(c, svc, "service_updated")
	httpresp.OK(c, svc)
}

// Delete desativa; agendamentos antigos continuam apontando para o serviço.
func (h *ServiceHandler) Delete(c *gin.Context) {
	svc, ok := h.managedService(c)
	if !ok {
		return
	}

	if err := h.db.Model(svc).Update("active", false).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	h.record(c, svc, "service_deactivated")
	c.Status(http.StatusNoContent)
}
