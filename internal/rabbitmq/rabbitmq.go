package rabbitmq

import (
	"accounts/internal/core/domain/logging"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sethvargo/go-retry"
)

const reconnectDelay = 3 * time.Second

// Connection redials the broker whenever the underlying connection drops
// until Close is called.
type Connection struct {
	url    string
	log    logging.Logger
	mu     sync.RWMutex
	conn   *amqp.Connection
	closed atomic.Bool
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		return nil, fmt.Errorf("log argument must not be nil")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	c := &Connection{url: url, log: log, conn: conn}
	go c.watch()
	return c, nil
}

func (c *Connection) current() *amqp.Connection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn
}

func (c *Connection) watch() {
	ctx := context.Background()
	for {
		reason, ok := <-c.current().NotifyClose(make(chan *amqp.Error, 1))
		if !ok || c.closed.Load() {
			c.log.Info(ctx, "RabbitMQ connection closed.")
			return
		}
		c.log.Warning(ctx, "RabbitMQ connection lost.", logging.Entry("reason", reason.Error()))

		retry.Do(ctx, retry.NewConstant(reconnectDelay), func(ctx context.Context) error {
			if c.closed.Load() {
				return nil
			}
			conn, err := amqp.Dial(c.url)
			if err != nil {
				c.log.Error(ctx, "RabbitMQ reconnect failed.", logging.Entry("err", err))
				return retry.RetryableError(err)
			}
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
			c.log.Info(ctx, "RabbitMQ reconnect success.")
			return nil
		})
	}
}

func (c *Connection) Close() error {
	c.closed.Store(true)
	return c.current().Close()
}

// Channel opens a channel that is reopened on the current connection
// whenever the broker closes it.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.current().Channel()
	if err != nil {
		return nil, err
	}

	channel := &Channel{conn: c, log: c.log, ch: ch}
	go channel.watch()
	return channel, nil
}

type Channel struct {
	conn   *Connection
	log    logging.Logger
	mu     sync.RWMutex
	ch     *amqp.Channel
	closed atomic.Bool
}

func (ch *Channel) current() *amqp.Channel {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.ch
}

func (ch *Channel) watch() {
	ctx := context.Background()
	for {
		reason, ok := <-ch.current().NotifyClose(make(chan *amqp.Error, 1))
		if !ok || ch.IsClosed() {
			ch.closed.Store(true)
			return
		}
		ch.log.Warning(ctx, "RabbitMQ channel closed.", logging.Entry("reason", reason.Error()))

		retry.Do(ctx, retry.NewConstant(reconnectDelay), func(ctx context.Context) error {
			if ch.IsClosed() {
				return nil
			}
			reopened, err := ch.conn.current().Channel()
			if err != nil {
				ch.log.Error(ctx, "Channel recreate failed.", logging.Entry("err", err))
				return retry.RetryableError(err)
			}
			ch.mu.Lock()
			ch.ch = reopened
			ch.mu.Unlock()
			ch.log.Info(ctx, "Channel recreate success.")
			return nil
		})
	}
}

// IsClosed reports whether Close has been called.
func (ch *Channel) IsClosed() bool {
	return ch.closed.Load()
}

func (ch *Channel) Close() error {
	if ch.closed.Swap(true) {
		return amqp.ErrClosed
	}
	return ch.current().Close()
}

// DeclareQueue declares a durable queue.
func (ch *Channel) DeclareQueue(name string) error {
	_, err := ch.current().QueueDeclare(name, true, false, false, false, nil)
	return err
}

func (ch *Channel) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	return ch.current().PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}

// Consume subscribes again after every reconnect. The returned deliveries
// are closed once the channel is closed with Close.
func (ch *Channel) Consume(
	queue, consumer string,
	autoAck, exclusive, noLocal, noWait bool,
	args amqp.Table,
) (<-chan amqp.Delivery, error) {
	deliveries := make(chan amqp.Delivery)

	go func() {
		defer close(deliveries)
		for !ch.IsClosed() {
			d, err := ch.current().Consume(queue, consumer, autoAck, exclusive, noLocal, noWait, args)
			if err != nil {
				ch.log.Error(
					context.Background(),
					"Consume failed.",
					logging.Entry("err", err),
					logging.Entry("queue", queue),
				)
				time.Sleep(reconnectDelay)
				continue
			}

			for msg := range d {
				deliveries <- msg
			}

			// The closed flag may be set only after the deliveries stop.
			time.Sleep(reconnectDelay)
		}
		ch.log.Info(context.Background(), "Channel is closed, stop consuming.", logging.Entry("queue", queue))
	}()

	return deliveries, nil
}
