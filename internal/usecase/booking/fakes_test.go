package booking

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const (
	ownerID    uint = 1
	barberID   uint = 2
	customerID uint = 3
	strangerID uint = 4
	shopID     uint = 10
)

var fixedNow = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

type memRepo struct {
	mu sync.Mutex

	shops    map[uint]*models.Shop
	slots    map[uint]*models.Slot
	services map[uint]models.Service
	users    map[uint]models.User
	bookings map[uint]*models.Booking
	reviews  map[uint]*models.Review
	nextID   uint

	// barbeiro -> barbearia em que o perfil está ativo
	team map[uint]uint

	// roda antes do compare-and-set de status
	beforeStatusUpdate func()
}

func newMemRepo() *memRepo {
	r := &memRepo{
		shops: map[uint]*models.Shop{
			shopID: {
				ID: shopID, OwnerID: ownerID, Name: "Navalha de Ouro",
				Timezone: "UTC", MinAdvanceMinutes: 60,
				Active: true, Status: models.ShopStatusApproved,
			},
			11: {ID: 11, OwnerID: 99, Name: "Outra", Timezone: "UTC", Active: true, Status: models.ShopStatusApproved},
		},
		slots: map[uint]*models.Slot{
			100: {ID: 100, BarberID: barberID, ShopID: shopID, Date: "2026-03-10", StartTime: "10:00", EndTime: "10:30", Status: models.SlotStatusAvailable},
			101: {ID: 101, BarberID: barberID, ShopID: shopID, Date: "2026-03-10", StartTime: "08:30", EndTime: "09:00", Status: models.SlotStatusAvailable},
			102: {ID: 102, BarberID: barberID, ShopID: shopID, Date: "2026-03-09", StartTime: "10:00", EndTime: "10:30", Status: models.SlotStatusAvailable},
		},
		services: map[uint]models.Service{
			1: {ID: 1, ShopID: shopID, Name: "Corte", Price: 45, DurationMin: 30, Active: true},
			2: {ID: 2, ShopID: shopID, Name: "Barba", Price: 30.5, DurationMin: 20, Active: true},
			3: {ID: 3, ShopID: shopID, Name: "Pigmentação", Price: 60, DurationMin: 40, Active: false},
			4: {ID: 4, ShopID: 11, Name: "Corte", Price: 40, DurationMin: 30, Active: true},
		},
		users: map[uint]models.User{
			barberID:   {ID: barberID, Name: "Bruno", Email: "bruno@example.com", Role: models.RoleBarber},
			customerID: {ID: customerID, Name: "Carla", Email: "carla@example.com", Role: models.RoleCustomer},
		},
		bookings: map[uint]*models.Booking{},
		reviews:  map[uint]*models.Review{},
		team:     map[uint]uint{barberID: shopID},
		nextID:   1000,
	}
	return r
}

func (r *memRepo) GetShopByID(_ context.Context, id uint) (*models.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shops[id]
	if !ok {
		return nil, httperr.ErrBusiness("shop_not_found")
	}
	cp := *s
	return &cp, nil
}

func (r *memRepo) GetSlot(_ context.Context, id uint) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, httperr.ErrBusiness("slot_not_found")
	}
	cp := *s
	return &cp, nil
}

func (r *memRepo) ListServicesByIDs(_ context.Context, ids []uint) ([]models.Service, error) {
	var out []models.Service
	for _, id := range ids {
		if s, ok := r.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memRepo) IsBarberActive(_ context.Context, barber, shop uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.team[barber]
	return ok && s == shop, nil
}

func (r *memRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot := r.slots[b.SlotID]
	if slot == nil {
		return httperr.ErrBusiness("slot_not_found")
	}
	if !slot.IsAvailable() {
		return httperr.ErrBusiness("slot_unavailable")
	}

	r.nextID++
	b.ID = r.nextID
	slot.IsBooked = true
	slot.Status = models.SlotStatusBooked
	slot.BookingID = &b.ID

	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	cp := *b
	cp.Shop = *r.shops[b.ShopID]
	cp.Customer = r.users[b.CustomerID]
	cp.Barber = r.users[b.BarberID]
	if s, ok := r.slots[b.SlotID]; ok {
		cp.Slot = *s
	}
	return &cp, nil
}

func (r *memRepo) UpdateBookingStatus(_ context.Context, b *models.Booking, from domain.Status) error {
	if r.beforeStatusUpdate != nil {
		r.beforeStatusUpdate()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.bookings[b.ID]
	if stored == nil || stored.Status != string(from) {
		return httperr.ErrBusiness("status_conflict")
	}

	stored.Status = b.Status
	stored.CancelledAt = b.CancelledAt
	stored.CancelledBy = b.CancelledBy
	stored.CancellationReason = b.CancellationReason
	stored.ConfirmedAt = b.ConfirmedAt
	stored.StartedAt = b.StartedAt
	stored.CompletedAt = b.CompletedAt

	if domain.Status(b.Status) == domain.StatusCancelled {
		if slot := r.slots[b.SlotID]; slot != nil {
			slot.IsBooked = false
			slot.Status = models.SlotStatusAvailable
			slot.BookingID = nil
		}
	}
	return nil
}

func (r *memRepo) ListBookings(_ context.Context, f domain.ListFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if f.CustomerID != nil && b.CustomerID != *f.CustomerID {
			continue
		}
		if f.BarberID != nil && b.BarberID != *f.BarberID {
			continue
		}
		if f.ShopID != nil && b.ShopID != *f.ShopID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.Date != "" && b.Date != f.Date {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *memRepo) HasReview(_ context.Context, bookingID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.reviews[bookingID]
	return ok, nil
}

func (r *memRepo) CreateReview(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	review.ID = r.nextID
	r.reviews[review.BookingID] = review

	shop := r.shops[review.ShopID]
	total := shop.Rating*float64(shop.RatingCount) + float64(review.Rating)
	shop.RatingCount++
	shop.Rating = total / float64(shop.RatingCount)
	return nil
}

// seed grava uma reserva direto no repositório.
func (r *memRepo) seed(status domain.Status) *models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	slot := r.slots[100]
	slot.IsBooked = true
	slot.Status = models.SlotStatusBooked

	b := &models.Booking{
		ID: r.nextID, CustomerID: customerID, BarberID: barberID, ShopID: shopID, SlotID: 100,
		Date: slot.Date, StartTime: slot.StartTime, EndTime: slot.EndTime,
		TotalAmount: 45, Status: string(status),
	}
	slot.BookingID = &b.ID
	r.bookings[b.ID] = b
	return b
}

var _ domain.Repository = (*memRepo)(nil)

type recordingPublisher struct {
	mu  sync.Mutex
	got []events.Event
}

func (p *recordingPublisher) Publish(ev events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, ev)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.got))
	for _, ev := range p.got {
		out = append(out, ev.Type)
	}
	return out
}

type recordingAudit struct {
	got []audit.Event
}

func (a *recordingAudit) Dispatch(ev audit.Event) {
	a.got = append(a.got, ev)
}

type lockerFunc func(ctx context.Context, slotID uint) (func(), error)

func (f lockerFunc) Lock(ctx context.Context, slotID uint) (func(), error) {
	return f(ctx, slotID)
}

var noLock = lockerFunc(func(context.Context, uint) (func(), error) { return func() {}, nil })
