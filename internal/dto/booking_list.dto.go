package dto

import "github.com/BruksfildServices01/barbershop-booking/internal/models"

// BookingListDTO é a linha enxuta usada nas listagens de reservas.
type BookingListDTO struct {
	ID            uint     `json:"id"`
	ShopID        uint     `json:"shop_id"`
	SlotID        uint     `json:"slot_id"`
	Date          string   `json:"date"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	Status        string   `json:"status"`
	CustomerID    uint     `json:"customer_id"`
	CustomerName  string   `json:"customer_name"`
	BarberID      uint     `json:"barber_id"`
	BarberName    string   `json:"barber_name"`
	Services      []string `json:"services"`
	TotalAmount   float64  `json:"total_amount"`
	TotalDuration int      `json:"total_duration"`
}

func NewBookingListDTO(b models.Booking) BookingListDTO {
	services := make([]string, 0, len(b.Services))
	for _, s := range b.Services {
		services = append(services, s.Name)
	}

	return BookingListDTO{
		ID:            b.ID,
		ShopID:        b.ShopID,
		SlotID:        b.SlotID,
		Date:          b.Date,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        b.Status,
		CustomerID:    b.CustomerID,
		CustomerName:  b.Customer.Name,
		BarberID:      b.BarberID,
		BarberName:    b.Barber.Name,
		Services:      services,
		TotalAmount:   b.TotalAmount,
		TotalDuration: b.TotalDuration,
	}
}

func NewBookingList(bookings []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingListDTO(b))
	}
	return out
}
