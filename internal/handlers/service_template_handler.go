package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ServiceTemplateHandler struct {
	db    *gorm.DB
	audit audit.Recorder
}

func NewServiceTemplateHandler(db *gorm.DB, audit audit.Recorder) *ServiceTemplateHandler {
	return &ServiceTemplateHandler{db: db, audit: audit}
}

type ServiceTemplateRequest struct {
	Name            *string  `json:"name" binding:"omitempty,min=2,max=100"`
	Description     *string  `json:"description" binding:"omitempty,max=255"`
	Category        *string  `json:"category" binding:"omitempty,service_category"`
	DefaultPrice    *float64 `json:"default_price" binding:"omitempty,gte=0"`
	DefaultDuration *int     `json:"default_duration" binding:"omitempty,min=5,max=480"`
	Active          *bool    `json:"active"`
}

type ApplyTemplateRequest struct {
	ShopID      uint     `json:"shop_id" binding:"required"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	DurationMin *int     `json:"duration_min" binding:"omitempty,min=5,max=480"`
}

func applyTemplateRequest(t *models.ServiceTemplate, req ServiceTemplateRequest) {
	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		t.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		t.Category = *req.Category
	}
	if req.DefaultPrice != nil {
		t.DefaultPrice = *req.DefaultPrice
	}
	if req.DefaultDuration != nil {
		t.DefaultDuration = *req.DefaultDuration
	}
	if req.Active != nil {
		t.Active = *req.Active
	}
}

// serviceFromTemplate copia o modelo; preço e duração podem ser sobrescritos.
func serviceFromTemplate(t models.ServiceTemplate, shopID uint, price *float64, duration *int) models.Service {
	svc := models.Service{
		ShopID:      shopID,
		Name:        t.Name,
		Description: t.Description,
		Category:    t.Category,
		Price:       t.DefaultPrice,
		DurationMin: t.DefaultDuration,
		Active:      true,
		TemplateID:  &t.ID,
	}
	if price != nil {
		svc.Price = *price
	}
	if duration != nil {
		svc.DurationMin = *duration
	}
	if svc.DurationMin <= 0 {
		svc.DurationMin = models.DefaultSlotDuration
	}
	return svc
}

func (h *ServiceTemplateHandler) find(c *gin.Context, onlyActive bool) (*models.ServiceTemplate, bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		return nil, false
	}

	q := h.db.Where("id = ?", id)
	if onlyActive {
		q = q.Where("active = ?", true)
	}

	var t models.ServiceTemplate
	if err := q.First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = httperr.ErrBusiness("template_not_found")
		}
		httperr.Abort(c, err)
		return nil, false
	}
	return &t, true
}

func (h *ServiceTemplateHandler) List(c *gin.Context) {
	q := h.db.Model(&models.ServiceTemplate{}).Where("active = ?", true)
	if category := c.Query("category"); category != "" {
		if !models.ValidServiceCategory(category) {
			httperr.Abort(c, httperr.ErrBusiness("invalid_category"))
			return
		}
		q = q.Where("category = ?", category)
	}

	var templates []models.ServiceTemplate
	if err := q.Order("category ASC, name ASC").Find(&templates).Error; err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.List(c, templates)
}

func (h *ServiceTemplateHandler) Create(c *gin.Context) {
	var req ServiceTemplateRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name == nil || req.Category == nil || strings.TrimSpace(*req.Name) == "" || *req.Category == "" {
		httperr.Abort(c, httperr.ErrBusiness("invalid_request"))
		return
	}

	t := models.ServiceTemplate{Active: true, DefaultDuration: models.DefaultSlotDuration}
	applyTemplateRequest(&t, req)

	if err := h.db.Create(&t).Error; err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.Created(c, t)
}

func (h *ServiceTemplateHandler) Update(c *gin.Context) {
	t, ok := h.find(c, false)
	if !ok {
		return
	}

	var req ServiceTemplateRequest
	if !bindJSON(c, &req) {
		return
	}
	applyTemplateRequest(t, req)

	if err := h.db.Save(t).Error; err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, t)
}

func (h *ServiceTemplateHandler) Delete(c *gin.Context) {
	t, ok := h.find(c, false)
	if !ok {
		return
	}

	if err := h.db.Model(t).Update("active", false).Error; err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ServiceTemplateHandler) Apply(c *gin.Context) {
	t, ok := h.find(c, true)
	if !ok {
		return
	}

	var req ApplyTemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	shop, err := ownedShop(h.db, middleware.ActorFrom(c), req.ShopID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	svc := serviceFromTemplate(*t, shop.ID, req.Price, req.DurationMin)
	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	userID := c.GetUint(middleware.ContextUserID)
	h.audit.Dispatch(audit.Event{
		ShopID:   shop.ID,
		UserID:   &userID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &svc.ID,
		Metadata: gin.H{"template_id": t.ID},
	})

	httpresp.Created(c, svc)
}
