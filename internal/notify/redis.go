package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/redis/go-redis/v9"

	"github.com/desertthunder/cinex/internal/shared"
)

// RedisSource subscribes to a pub/sub channel named after the topic.
type RedisSource struct {
	client   *redis.Client
	attempts uint
	delay    time.Duration
}

var _ Source = (*RedisSource)(nil)

// NewRedisSource creates a source from the push.redis config section.
func NewRedisSource(cfg shared.RedisConfig) *RedisSource {
	return &RedisSource{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		attempts: 3,
		delay:    time.Second,
	}
}

func (s *RedisSource) ping(ctx context.Context) error {
	return retry.Do(
		func() error { return s.client.Ping(ctx).Err() },
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.LastErrorOnly(true),
	)
}

// Listen blocks until ctx ends or the subscription channel closes.
func (s *RedisSource) Listen(ctx context.Context, topic string, deliver func(context.Context, []byte)) error {
	const op = "notify.RedisSource.Listen"
	if err := s.ping(ctx); err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrPushSource, op, err)
	}

	sub := s.client.Subscribe(ctx, topic)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("%w: %s: subscribe %s: %v", shared.ErrPushSource, op, topic, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("%w: %s: subscription closed", shared.ErrPushSource, op)
			}
			deliver(ctx, []byte(msg.Payload))
		}
	}
}

// Close releases the client connection pool.
func (s *RedisSource) Close() error {
	return s.client.Close()
}
