package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	slotuc "github.com/BruksfildServices01/barbershop-booking/internal/usecase/slot"
)

// ======================================================
// USE CASES
// ======================================================

type availableSlotsLister interface {
	Execute(ctx context.Context, barberID uint, date string) ([]models.Slot, error)
}

type barberSlotsLister interface {
	Execute(ctx context.Context, actor auth.Actor, barberID uint, date string) ([]models.Slot, error)
}

type slotGenerator interface {
	Execute(ctx context.Context, in slotuc.GenerateSlotsInput) (*slotuc.GenerateSlotsResult, error)
}

type slotBlocker interface {
	Execute(ctx context.Context, actor auth.Actor, slotID uint, blocked bool) (*models.Slot, error)
}

// ======================================================
// HANDLER
// ======================================================

type SlotHandler struct {
	available availableSlotsLister
	byBarber  barberSlotsLister
	generate  slotGenerator
	block     slotBlocker
}

func NewSlotHandler(
	available *slotuc.ListAvailableSlots,
	byBarber *slotuc.ListBarberSlots,
	generate *slotuc.GenerateSlots,
	block *slotuc.SetSlotBlocked,
) *SlotHandler {
	return &SlotHandler{
		available: available,
		byBarber:  byBarber,
		generate:  generate,
		block:     block,
	}
}

type GenerateSlotsRequest struct {
	BarberID uint   `json:"barber_id" binding:"required"`
	From     string `json:"from" binding:"required,isodate"`
	To       string `json:"to" binding:"required,isodate"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *SlotHandler) Available(c *gin.Context) {
	barberID, ok := uintQuery(c, "barber_id")
	if !ok {
		return
	}
	date := c.Query("date")
	if barberID == 0 || date == "" {
		httperr.Abort(c, httperr.ErrBusiness("invalid_request"))
		return
	}

	slots, err := h.available.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.List(c, slots)
}

// ======================================================
// STAFF
// ======================================================

func (h *SlotHandler) ByBarber(c *gin.Context) {
	barberID, ok := uintParam(c, "barberId")
	if !ok {
		return
	}

	slots, err := h.byBarber.Execute(
		c.Request.Context(),
		middleware.ActorFrom(c),
		barberID,
		c.Query("date"),
	)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.List(c, slots)
}

func (h *SlotHandler) Generate(c *gin.Context) {
	var req GenerateSlotsRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.generate.Execute(c.Request.Context(), slotuc.GenerateSlotsInput{
		Actor:    middleware.ActorFrom(c),
		BarberID: req.BarberID,
		From:     req.From,
		To:       req.To,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.Created(c, res)
}

func (h *SlotHandler) Block(c *gin.Context) {
	h.setBlocked(c, true)
}

func (h *SlotHandler) Unblock(c *gin.Context) {
	h.setBlocked(c, false)
}

func (h *SlotHandler) setBlocked(c *gin.Context, blocked bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	slot, err := h.block.Execute(c.Request.Context(), middleware.ActorFrom(c), id, blocked)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, slot)
}
