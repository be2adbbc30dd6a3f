package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type SpecialtyHandler struct {
	db *gorm.DB
}

func NewSpecialtyHandler(db *gorm.DB) *SpecialtyHandler {
	return &SpecialtyHandler{db: db}
}

type SpecialtyRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=255"`
}

func (h *SpecialtyHandler) List(c *gin.Context) {
	var specialties []models.Specialty
	if err := h.db.Order("name ASC").Find(&specialties).Error; err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.List(c, specialties)
}

func (h *SpecialtyHandler) Create(c *gin.Context) {
	var req SpecialtyRequest
	if !bindJSON(c, &req) {
		return
	}

	sp := models.Specialty{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	// nome duplicado cai no ErrDuplicatedKey → 409
	if err := h.db.Create(&sp).Error; err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.Created(c, sp)
}

func (h *SpecialtyHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		sp := models.Specialty{ID: id}
		if err := tx.Exec("DELETE FROM barber_specialties WHERE specialty_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&sp)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("specialty_not_found")
		}
		return nil
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
