package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/events"
)

type mailClient interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type EmailSender struct {
	client mailClient
	from   string
}

func NewEmailSender(cfg config.SMTPConfig) (*EmailSender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &EmailSender{client: client, from: cfg.From}, nil
}

func (s *EmailSender) Name() string { return "email" }

func (s *EmailSender) Send(ctx context.Context, ev events.Event) error {
	msgs, err := s.build(ev)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		return nil
	}
	return s.client.DialAndSendWithContext(ctx, msgs...)
}

// build monta uma mensagem para o cliente e outra para o barbeiro.
func (s *EmailSender) build(ev events.Event) ([]*mail.Msg, error) {
	b := ev.Booking
	if b == nil {
		return nil, nil
	}

	subject, lead := describe(ev)

	type recipient struct {
		name, email string
	}
	var (
		msgs []*mail.Msg
		errs []error
	)

	for _, r := range []recipient{{b.CustomerName, b.CustomerEmail}, {b.BarberName, b.BarberEmail}} {
		if r.email == "" {
			continue
		}

		m := mail.NewMsg()
		if err := m.From(s.from); err != nil {
			return nil, fmt.Errorf("from address: %w", err)
		}
		if err := m.AddTo(r.email); err != nil {
			errs = append(errs, fmt.Errorf("to %s: %w", r.email, err))
			continue
		}
		m.Subject(subject)
		m.SetBodyString(mail.TypeTextPlain, body(r.name, lead, b))
		msgs = append(msgs, m)
	}

	return msgs, errors.Join(errs...)
}

func describe(ev events.Event) (subject, lead string) {
	b := ev.Booking
	switch ev.Type {
	case events.BookingCreated:
		return "Agendamento recebido", "Seu agendamento foi registrado e aguarda confirmação."
	case events.BookingCancelled:
		return "Agendamento cancelado", "O agendamento abaixo foi cancelado."
	default:
		return "Agendamento atualizado", fmt.Sprintf("O status do agendamento mudou para %q.", b.Status)
	}
}

func body(name, lead string, b *events.BookingPayload) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Olá, %s!\n\n%s\n\n", name, lead)
	fmt.Fprintf(&sb, "Barbearia: %s\n", b.ShopName)
	fmt.Fprintf(&sb, "Barbeiro: %s\n", b.BarberName)
	fmt.Fprintf(&sb, "Data: %s, %s às %s\n", b.Date, b.StartTime, b.EndTime)
	if len(b.Services) > 0 {
		fmt.Fprintf(&sb, "Serviços: %s\n", strings.Join(b.Services, ", "))
	}
	fmt.Fprintf(&sb, "Total: R$ %.2f\n", b.TotalAmount)
	if b.Reason != "" {
		fmt.Fprintf(&sb, "Motivo: %s\n", b.Reason)
	}

	return sb.String()
}
