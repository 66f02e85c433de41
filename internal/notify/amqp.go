package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/streadway/amqp"

	"github.com/desertthunder/cinex/internal/shared"
)

// Exchange is the direct exchange push messages are published to, keyed by topic.
const Exchange = "notifications"

// AMQPSource consumes an exclusive, auto-acked queue bound to the topic.
type AMQPSource struct {
	url      string
	attempts uint
	delay    time.Duration
	dial     func(url string) (*amqp.Connection, error)
	conn     *amqp.Connection
}

var _ Source = (*AMQPSource)(nil)

// NewAMQPSource creates a source from the push.amqp config section.
func NewAMQPSource(cfg shared.AMQPConfig) *AMQPSource {
	attempts := uint(max(cfg.Retries, 1))
	return &AMQPSource{
		url:      cfg.URL,
		attempts: attempts,
		delay:    time.Duration(cfg.RetryDelaySeconds) * time.Second,
		dial:     amqp.Dial,
	}
}

func (s *AMQPSource) connect(ctx context.Context) (*amqp.Connection, error) {
	var conn *amqp.Connection
	err := retry.Do(
		func() error {
			c, err := s.dial(s.url)
			if err != nil {
				return err
			}
			conn = c
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(s.delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	return conn, err
}

// Listen declares the exchange and a server-named queue, then consumes until ctx ends.
func (s *AMQPSource) Listen(ctx context.Context, topic string, deliver func(context.Context, []byte)) error {
	const op = "notify.AMQPSource.Listen"

	conn, err := s.connect(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrPushSource, op, err)
	}
	s.conn = conn

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrPushSource, op, err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(Exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("%w: %s: declare exchange: %v", shared.ErrPushSource, op, err)
	}

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: declare queue: %v", shared.ErrPushSource, op, err)
	}
	if err := ch.QueueBind(q.Name, topic, Exchange, false, nil); err != nil {
		return fmt.Errorf("%w: %s: bind %s: %v", shared.ErrPushSource, op, topic, err)
	}

	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: consume: %v", shared.ErrPushSource, op, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("%w: %s: channel closed", shared.ErrPushSource, op)
			}
			deliver(ctx, d.Body)
		}
	}
}

// Close closes the broker connection if one was opened.
func (s *AMQPSource) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
