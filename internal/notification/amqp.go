package notification

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/BruksfildServices01/barbershop-booking/internal/events"
)

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPSender publica os eventos de reserva numa exchange topic
// (routing key = tipo do evento, ex.: booking.created).
type AMQPSender struct {
	conn     *amqp.Connection
	ch       amqpChannel
	exchange string
}

func NewAMQPSender(url, exchange string) (*AMQPSender, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPSender{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *AMQPSender) Name() string { return "amqp" }

func (p *AMQPSender) Send(ctx context.Context, ev events.Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, ev.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Timestamp:    ev.OccurredAt,
		Body:         b,
	})
}

func (p *AMQPSender) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
