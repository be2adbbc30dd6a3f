package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const (
	BookingCreated   = "booking.created"
	BookingUpdated   = "booking.updated"
	BookingCancelled = "booking.cancelled"
	SlotUpdated      = "slot.updated"
)

type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	ShopID     uint            `json:"shop_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Booking    *BookingPayload `json:"booking,omitempty"`
	Slot       *SlotPayload    `json:"slot,omitempty"`
}

type BookingPayload struct {
	ID             uint     `json:"id"`
	SlotID         uint     `json:"slot_id"`
	Status         string   `json:"status"`
	PreviousStatus string   `json:"previous_status,omitempty"`
	Date           string   `json:"date"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	TotalAmount    float64  `json:"total_amount"`
	Services       []string `json:"services"`
	Reason         string   `json:"reason,omitempty"`

	ShopName      string `json:"shop_name"`
	CustomerID    uint   `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	BarberID      uint   `json:"barber_id"`
	BarberName    string `json:"barber_name"`
	BarberEmail   string `json:"barber_email"`
}

type SlotPayload struct {
	ID        uint   `json:"id"`
	BarberID  uint   `json:"barber_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

// Publisher recebe eventos sem bloquear quem publica.
type Publisher interface {
	Publish(ev Event)
}

// Multi repassa o evento para todos os publishers.
type Multi []Publisher

func (m Multi) Publish(ev Event) {
	for _, p := range m {
		if p != nil {
			p.Publish(ev)
		}
	}
}

type Discard struct{}

func (Discard) Publish(Event) {}

func NewBookingEvent(typ string, b *models.Booking, previous string, shopName string) Event {
	services := make([]string, 0, len(b.Services))
	for _, s := range b.Services {
		services = append(services, s.Name)
	}

	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		ShopID:     b.ShopID,
		OccurredAt: time.Now().UTC(),
		Booking: &BookingPayload{
			ID:             b.ID,
			SlotID:         b.SlotID,
			Status:         b.Status,
			PreviousStatus: previous,
			Date:           b.Date,
			StartTime:      b.StartTime,
			EndTime:        b.EndTime,
			TotalAmount:    b.TotalAmount,
			Services:       services,
			Reason:         b.CancellationReason,
			ShopName:       shopName,
			CustomerID:     b.CustomerID,
			CustomerName:   b.Customer.Name,
			CustomerEmail:  b.Customer.Email,
			BarberID:       b.BarberID,
			BarberName:     b.Barber.Name,
			BarberEmail:    b.Barber.Email,
		},
	}
}

func NewSlotEvent(s *models.Slot) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       SlotUpdated,
		ShopID:     s.ShopID,
		OccurredAt: time.Now().UTC(),
		Slot: &SlotPayload{
			ID:        s.ID,
			BarberID:  s.BarberID,
			Date:      s.Date,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Status:    s.Status,
		},
	}
}
