package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

// só apaga a chave se ainda for nossa
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisSlotLocker struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

func NewRedisSlotLocker(client *redis.Client, ttl time.Duration, log *slog.Logger) *RedisSlotLocker {
	return &RedisSlotLocker{client: client, ttl: ttl, log: log}
}

func slotKey(slotID uint) string {
	return fmt.Sprintf("slot-lock:%d", slotID)
}

func (l *RedisSlotLocker) Lock(ctx context.Context, slotID uint) (func(), error) {
	key := slotKey(slotID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("slot lock: %w", err)
	}
	if !ok {
		return nil, httperr.ErrBusiness("slot_locked")
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			l.log.Warn("slot unlock failed", "slot_id", slotID, "error", err)
		}
	}, nil
}

// NoopLocker é usado sem Redis: a transação do banco já garante a exclusão.
type NoopLocker struct{}

func (NoopLocker) Lock(context.Context, uint) (func(), error) {
	return func() {}, nil
}

func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
