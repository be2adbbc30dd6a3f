package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	slotdomain "github.com/BruksfildServices01/barbershop-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type WorkingHoursHandler struct {
	db    *gorm.DB
	audit audit.Recorder
}

func NewWorkingHoursHandler(db *gorm.DB, audit audit.Recorder) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, audit: audit}
}

type WorkingDayConfig struct {
	Weekday      int    `json:"weekday" binding:"weekday"`
	Active       bool   `json:"active"`
	StartTime    string `json:"start_time" binding:"hhmm"`
	EndTime      string `json:"end_time" binding:"hhmm"`
	BreakStart   string `json:"break_start" binding:"hhmm"`
	BreakEnd     string `json:"break_end" binding:"hhmm"`
	SlotDuration int    `json:"slot_duration" binding:"omitempty,min=5,max=240"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,max=7,dive"`
}

// buildWeek valida os dias e monta as linhas do barbeiro.
func buildWeek(barberID uint, days []WorkingDayConfig) ([]models.WorkingHours, error) {
	seen := make(map[int]bool, len(days))
	week := make([]models.WorkingHours, 0, len(days))

	for _, d := range days {
		if seen[d.Weekday] {
			return nil, httperr.ErrBusiness("invalid_request")
		}
		seen[d.Weekday] = true

		duration := d.SlotDuration
		if duration == 0 {
			duration = models.DefaultSlotDuration
		}

		wh := models.WorkingHours{
			BarberID:     barberID,
			Weekday:      d.Weekday,
			Active:       d.Active,
			StartTime:    d.StartTime,
			EndTime:      d.EndTime,
			BreakStart:   d.BreakStart,
			BreakEnd:     d.BreakEnd,
			SlotDuration: duration,
		}
		if err := slotdomain.ValidateWorkingHours(wh); err != nil {
			return nil, err
		}
		week = append(week, wh)
	}
	return week, nil
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID, ok := uintParam(c, "barberId")
	if !ok {
		return
	}

	var hours []models.WorkingHours
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		httperr.Abort(c, err)
		return
	}

	httpresp.List(c, hours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	barberID, ok := uintParam(c, "barberId")
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	week, err := buildWeek(barberID, req.Days)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	var profile models.BarberProfile
	if err := h.db.Where("user_id = ? AND active = ?", barberID, true).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = httperr.ErrBusiness("barber_not_found")
		}
		httperr.Abort(c, err)
		return
	}

	shop, err := shopByID(h.db, profile.ShopID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if !middleware.ActorFrom(c).CanManageBarber(shop, barberID) {
		httperr.Abort(c, httperr.ErrBusiness("forbidden"))
		return
	}

	for i := range week {
		week[i].ShopID = shop.ID
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(week) == 0 {
			return nil
		}
		return tx.Create(&week).Error
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	userID := c.GetUint(middleware.ContextUserID)
	h.audit.Dispatch(audit.Event{
		ShopID:   shop.ID,
		UserID:   &userID,
		Action:   "working_hours_updated",
		Entity:   "barber",
		EntityID: &barberID,
		Metadata: gin.H{"days": len(week)},
	})

	httpresp.List(c, week)
}
