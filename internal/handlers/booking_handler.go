package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	bookinguc "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
)

// ======================================================
// USE CASES
// ======================================================

type bookingCreator interface {
	Execute(ctx context.Context, in bookinguc.CreateBookingInput) (*models.Booking, error)
}

type bookingStatusUpdater interface {
	Execute(ctx context.Context, in bookinguc.UpdateStatusInput) (*models.Booking, error)
}

type bookingGetter interface {
	Execute(ctx context.Context, actor auth.Actor, id uint) (*models.Booking, error)
}

type bookingLister interface {
	Execute(ctx context.Context, in bookinguc.ListBookingsInput) ([]models.Booking, error)
}

type bookingReviewer interface {
	Execute(ctx context.Context, in bookinguc.ReviewInput) (*models.Review, error)
}

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create       bookingCreator
	updateStatus bookingStatusUpdater
	get          bookingGetter
	list         bookingLister
	review       bookingReviewer
}

func NewBookingHandler(
	create *bookinguc.CreateBooking,
	updateStatus *bookinguc.UpdateBookingStatus,
	get *bookinguc.GetBooking,
	list *bookinguc.ListBookings,
	review *bookinguc.ReviewBooking,
) *BookingHandler {
	return &BookingHandler{
		create:       create,
		updateStatus: updateStatus,
		get:          get,
		list:         list,
		review:       review,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	SlotID     uint   `json:"slot_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required,min=1,max=10"`
	Notes      string `json:"notes" binding:"omitempty,max=500"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=500"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// lista vazia de serviços tem código próprio
		if len(req.ServiceIDs) == 0 && req.SlotID != 0 {
			httperr.Abort(c, httperr.ErrBusiness("services_required"))
			return
		}
		httperr.Abort(c, httperr.ErrBusiness("invalid_request"))
		return
	}

	b, err := h.create.Execute(c.Request.Context(), bookinguc.CreateBookingInput{
		CustomerID: c.GetUint(middleware.ContextUserID),
		SlotID:     req.SlotID,
		ServiceIDs: req.ServiceIDs,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.Created(c, b)
}

// ======================================================
// QUERIES
// ======================================================

func (h *BookingHandler) My(c *gin.Context) {
	h.listScope(c, bookinguc.ScopeCustomer, 0)
}

func (h *BookingHandler) Barber(c *gin.Context) {
	h.listScope(c, bookinguc.ScopeBarber, 0)
}

func (h *BookingHandler) Shop(c *gin.Context) {
	shopID, ok := uintParam(c, "shopId")
	if !ok {
		return
	}
	h.listScope(c, bookinguc.ScopeShop, shopID)
}

func (h *BookingHandler) listScope(c *gin.Context, scope bookinguc.Scope, shopID uint) {
	bookings, err := h.list.Execute(c.Request.Context(), bookinguc.ListBookingsInput{
		Actor:  middleware.ActorFrom(c),
		Scope:  scope,
		ShopID: shopID,
		Date:   c.Query("date"),
		Status: c.Query("status"),
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.List(c, dto.NewBookingList(bookings))
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	b, err := h.get.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, b)
}

// ======================================================
// STATUS
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	h.transition(c, id, req.Status, req.Reason)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	// corpo é opcional
	var req CancelBookingRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	h.transition(c, id, string(domain.StatusCancelled), req.Reason)
}

func (h *BookingHandler) transition(c *gin.Context, id uint, status, reason string) {
	b, err := h.updateStatus.Execute(c.Request.Context(), bookinguc.UpdateStatusInput{
		Actor:     middleware.ActorFrom(c),
		BookingID: id,
		Status:    status,
		Reason:    reason,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.OK(c, b)
}

// ======================================================
// REVIEW
// ======================================================

func (h *BookingHandler) Review(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if failedField(err, "Rating") {
			httperr.Abort(c, httperr.ErrBusiness("invalid_rating"))
			return
		}
		abortBind(c, err)
		return
	}

	review, err := h.review.Execute(c.Request.Context(), bookinguc.ReviewInput{
		Actor:     middleware.ActorFrom(c),
		BookingID: id,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	httpresp.Created(c, review)
}
