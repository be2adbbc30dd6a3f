package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/BruksfildServices01/barbershop-booking/internal/events"
)

type fakeMailClient struct {
	sent []*mail.Msg
}

func (f *fakeMailClient) DialAndSendWithContext(_ context.Context, msgs ...*mail.Msg) error {
	f.sent = append(f.sent, msgs...)
	return nil
}

func TestEmailSender_SendsToCustomerAndBarber(t *testing.T) {
	client := &fakeMailClient{}
	s := &EmailSender{client: client, from: "no-reply@barbershop.local"}

	ev := bookingEvent(events.BookingCancelled)
	ev.Booking.Reason = "imprevisto"

	require.NoError(t, s.Send(context.Background(), ev))
	require.Len(t, client.sent, 2)

	var to []string
	for _, m := range client.sent {
		rcpts, err := m.GetRecipients()
		require.NoError(t, err)
		to = append(to, rcpts...)
		assert.Equal(t, []string{"Agendamento cancelado"}, m.GetGenHeader(mail.HeaderSubject))
	}
	assert.ElementsMatch(t, []string{"cliente@example.com", "barbeiro@example.com"}, to)
}

func TestEmailSender_SkipsMissingAddresses(t *testing.T) {
	client := &fakeMailClient{}
	s := &EmailSender{client: client, from: "no-reply@barbershop.local"}

	ev := bookingEvent(events.BookingUpdated)
	ev.Booking.BarberEmail = ""

	require.NoError(t, s.Send(context.Background(), ev))
	assert.Len(t, client.sent, 1)
}

func TestBody_IncludesReasonAndServices(t *testing.T) {
	out := body("Ana", "lead", &events.BookingPayload{
		ShopName:    "Navalha",
		Date:        "2026-03-10",
		StartTime:   "10:00",
		EndTime:     "10:30",
		Services:    []string{"Corte", "Barba"},
		TotalAmount: 70,
		Reason:      "chuva",
	})

	assert.Contains(t, out, "Olá, Ana!")
	assert.Contains(t, out, "Corte, Barba")
	assert.Contains(t, out, "R$ 70.00")
	assert.Contains(t, out, "Motivo: chuva")
}
