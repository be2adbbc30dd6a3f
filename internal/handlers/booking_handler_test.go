package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/auth"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	bookinguc "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
)

// ======================================================
// FAKES
// ======================================================

type fakeCreator struct {
	got bookinguc.CreateBookingInput
	err error
}

func (f *fakeCreator) Execute(_ context.Context, in bookinguc.CreateBookingInput) (*models.Booking, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.Booking{
		ID:            10,
		CustomerID:    in.CustomerID,
		SlotID:        in.SlotID,
		Status:        string(domain.StatusPending),
		TotalAmount:   75,
		TotalDuration: 50,
	}, nil
}

// fakeUpdater aplica só a tabela de transições sobre um status fixo.
type fakeUpdater struct {
	current domain.Status
	got     bookinguc.UpdateStatusInput
}

func (f *fakeUpdater) Execute(_ context.Context, in bookinguc.UpdateStatusInput) (*models.Booking, error) {
	f.got = in
	to, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if err := domain.CanTransition(f.current, to); err != nil {
		return nil, err
	}
	return &models.Booking{ID: in.BookingID, Status: string(to)}, nil
}

type fakeGetter struct{}

func (fakeGetter) Execute(_ context.Context, actor auth.Actor, id uint) (*models.Booking, error) {
	if id != 1 || actor.UserID != 7 {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	return &models.Booking{ID: 1, CustomerID: 7}, nil
}

type fakeLister struct {
	got bookinguc.ListBookingsInput
}

func (f *fakeLister) Execute(_ context.Context, in bookinguc.ListBookingsInput) ([]models.Booking, error) {
	f.got = in
	return nil, nil
}

type fakeReviewer struct {
	got bookinguc.ReviewInput
}

func (f *fakeReviewer) Execute(_ context.Context, in bookinguc.ReviewInput) (*models.Review, error) {
	f.got = in
	return &models.Review{ID: 3, BookingID: in.BookingID, Rating: in.Rating}, nil
}

type bookingFixture struct {
	create   *fakeCreator
	update   *fakeUpdater
	list     *fakeLister
	review   *fakeReviewer
	customer auth.Actor
}

func newBookingRouter(f *bookingFixture, actor auth.Actor) *gin.Engine {
	h := &BookingHandler{
		create:       f.create,
		updateStatus: f.update,
		get:          fakeGetter{},
		list:         f.list,
		review:       f.review,
	}

	r := newRouter(actor)
	r.POST("/bookings", h.Create)
	r.GET("/bookings/my", h.My)
	r.GET("/bookings/shop/:shopId", h.Shop)
	r.GET("/bookings/:id", h.Get)
	r.PUT("/bookings/:id/status", h.UpdateStatus)
	r.PATCH("/bookings/:id/cancel", h.Cancel)
	r.POST("/bookings/:id/review", h.Review)
	return r
}

func newBookingFixture(current domain.Status) *bookingFixture {
	return &bookingFixture{
		create:   &fakeCreator{},
		update:   &fakeUpdater{current: current},
		list:     &fakeLister{},
		review:   &fakeReviewer{},
		customer: auth.Actor{UserID: 7, Role: models.RoleCustomer},
	}
}

// ======================================================
// TESTS
// ======================================================

func TestCreateBookingReturnsCreatedWithTotals(t *testing.T) {
	f := newBookingFixture(domain.StatusPending)
	r := newBookingRouter(f, f.customer)

	w := doJSON(r, http.MethodPost, "/bookings", gin.H{
		"slot_id":     4,
		"service_ids": []uint{1, 2},
		"notes":       "degradê",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body models.Booking
	decode(t, w, &body)
	assert.Equal(t, 75.0, body.TotalAmount)
	assert.Equal(t, 50, body.TotalDuration)
	assert.Equal(t, "pending", body.Status)

	assert.Equal(t, uint(7), f.create.got.CustomerID)
	assert.Equal(t, uint(4), f.create.got.SlotID)
	assert.Equal(t, []uint{1, 2}, f.create.got.ServiceIDs)
}

func TestCreateBookingRequiresServices(t *testing.T) {
	f := newBookingFixture(domain.StatusPending)
	r := newBookingRouter(f, f.customer)

	w := doJSON(r, http.MethodPost, "/bookings", gin.H{"slot_id": 4, "service_ids": []uint{}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body httperr.HTTPError
	decode(t, w, &body)
	assert.Equal(t, "services_required", body.Code)
}

func TestCreateBookingMapsBusinessErrors(t *testing.T) {
	f := newBookingFixture(domain.StatusPending)
	f.create.err = httperr.ErrBusiness("slot_unavailable")
	r := newBookingRouter(f, f.customer)

	w := doJSON(r, http.MethodPost, "/bookings", gin.H{"slot_id": 4, "service_ids": []uint{1}})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateStatusRejectsCompletedToConfirmed(t *testing.T) {
	f := newBookingFixture(domain.StatusCompleted)
	barber := auth.Actor{UserID: 2, Role: models.RoleBarber}
	r := newBookingRouter(f, barber)

	w := doJSON(r, http.MethodPut, "/bookings/9/status", gin.H{"status": "confirmed"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body httperr.HTTPError
	decode(t, w, &body)
	assert.Equal(t, "invalid_status_transition", body.Code)
	assert.Equal(t, uint(9), f.update.got.BookingID)
	assert.Equal(t, barber, f.update.got.Actor)
}

func TestUpdateStatusAllowsLegalTransition(t *testing.T) {
	f := newBookingFixture(domain.StatusPending)
	r := newBookingRouter(f, auth.Actor{UserID: 2, Role: models.RoleBarber})

	w := doJSON(r, http.MethodPut, "/bookings/9/status", gin.H{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code)

	var body models.Booking
	decode(t, w, &body)
	assert.Equal(t, "confirmed", body.Status)
}

func TestCancelWithoutBody(t *testing.T) {
	f := newBookingFixture(domain.StatusConfirmed)
	r := newBookingRouter(f, f.customer)

	w := doJSON(r, http.MethodPatch, "/bookings/9/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "cancelled", f.update.got.Status)
	assert.Empty(t, f.update.got.Reason)

	w = doJSON(r, http.MethodPatch, "/bookings/9/cancel", gin.H{"reason": "imprevisto"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "imprevisto", f.update.got.Reason)
}

func TestGetBookingHidesForeignBookings(t *testing.T) {
	f := newBookingFixture(domain.StatusPending)

	w := doJSON(newBookingRouter(f, f.customer), http.MethodGet, "/bookings/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	stranger := auth.Actor{UserID: 99, Role: models.RoleCustomer}
	w = doJSON(newBookingRouter(f, stranger), http.MethodGet, "/bookings/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(newBookingRouter(f, f.customer), http.MethodGet, "/bookings/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListScopes(t *testing.T) {
	f := newBookingFixture(domain.StatusPending)
	r := newBookingRouter(f, f.customer)

	w := doJSON(r, http.MethodGet, "/bookings/my?status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, bookinguc.ScopeCustomer, f.list.got.Scope)
	assert.Equal(t, "pending", f.list.got.Status)
	assert.JSONEq(t, `{"data":[],"total":0}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/bookings/shop/3?date=2026-03-12", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, bookinguc.ScopeShop, f.list.got.Scope)
	assert.Equal(t, uint(3), f.list.got.ShopID)
	assert.Equal(t, "2026-03-12", f.list.got.Date)
}

func TestReviewValidatesRating(t *testing.T) {
	f := newBookingFixture(domain.StatusCompleted)
	r := newBookingRouter(f, f.customer)

	w := doJSON(r, http.MethodPost, "/bookings/5/review", gin.H{"rating": 6})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body httperr.HTTPError
	decode(t, w, &body)
	assert.Equal(t, "invalid_rating", body.Code)

	w = doJSON(r, http.MethodPost, "/bookings/5/review", gin.H{"rating": 5, "comment": "ótimo"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(5), f.review.got.BookingID)
	assert.Equal(t, "ótimo", f.review.got.Comment)
}

func TestReviewBindingErrors(t *testing.T) {
	f := newBookingFixture(domain.StatusCompleted)
	r := newBookingRouter(f, f.customer)

	// rating ausente conta como nota inválida
	w := doJSON(r, http.MethodPost, "/bookings/5/review", gin.H{"comment": "ok"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body httperr.HTTPError
	decode(t, w, &body)
	assert.Equal(t, "invalid_rating", body.Code)

	w = doJSON(r, http.MethodPost, "/bookings/5/review", gin.H{"rating": 4, "comment": strings.Repeat("a", 501)})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body = httperr.HTTPError{}
	decode(t, w, &body)
	assert.Equal(t, "validation_error", body.Code)
	assert.Contains(t, body.Fields, "Comment:max")

	req := httptest.NewRequest(http.MethodPost, "/bookings/5/review", strings.NewReader(`{"rating": 4,`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body = httperr.HTTPError{}
	decode(t, w, &body)
	assert.Equal(t, "invalid_request", body.Code)

	assert.Zero(t, f.review.got.BookingID)
}
