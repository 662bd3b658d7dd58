package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisBroker раздает события через Redis pub/sub, чтобы подписчики
// на любом экземпляре сервиса получали изменения
type RedisBroker struct {
	client    *redis.Client
	logger    *zap.Logger
	wg        sync.WaitGroup
	closing   chan struct{}
	closeOnce sync.Once
}

// NewRedisBroker подключается к Redis и проверяет соединение
func NewRedisBroker(ctx context.Context, addr, password string, logger *zap.Logger) (*RedisBroker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}

	return &RedisBroker{client: client, logger: logger, closing: make(chan struct{})}, nil
}

// Publish публикует событие в канал топика
func (b *RedisBroker) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	if err := b.client.Publish(ctx, ev.Topic, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", ev.Topic, err)
	}
	return nil
}

// Subscribe подписывается на каналы топиков
func (b *RedisBroker) Subscribe(ctx context.Context, topics ...string) (<-chan Event, func(), error) {
	pubsub := b.client.Subscribe(ctx, topics...)

	// Receive дожидается подтверждения подписки
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %v: %w", topics, err)
	}

	out := make(chan Event, subscriberBuffer)
	subCtx, cancel := context.WithCancel(ctx)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case <-b.closing:
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					b.logger.Warn("dropping malformed realtime event",
						zap.String("channel", msg.Channel),
						zap.Error(err),
					)
					continue
				}

				select {
				case out <- ev:
				default:
				}
			}
		}
	}()

	return out, cancel, nil
}

// Close завершает подписки и закрывает соединение
func (b *RedisBroker) Close() error {
	b.closeOnce.Do(func() { close(b.closing) })
	b.wg.Wait()
	return b.client.Close()
}

// Ping проверяет соединение с Redis
func (b *RedisBroker) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
