package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barbershop-booking/internal/events"
)

// RedisBridge espalha os eventos entre instâncias: Publish manda para o
// canal e Run repassa tudo o que chega ao Hub local.
type RedisBridge struct {
	client  *redis.Client
	channel string
	local   events.Publisher
	log     *slog.Logger
}

func NewRedisBridge(client *redis.Client, channel string, local events.Publisher, log *slog.Logger) *RedisBridge {
	return &RedisBridge{client: client, channel: channel, local: local, log: log}
}

func (b *RedisBridge) Publish(ev events.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		b.log.Error("realtime bridge encode failed", "event", ev.Type, "error", err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
			b.log.Warn("realtime bridge publish failed, delivering locally", "event", ev.Type, "error", err)
			b.local.Publish(ev)
		}
	}()
}

// Run bloqueia até ctx ser cancelado.
func (b *RedisBridge) Run(ctx context.Context) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var ev events.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.log.Warn("realtime bridge decode failed", "error", err)
				continue
			}
			b.local.Publish(ev)
		}
	}
}
