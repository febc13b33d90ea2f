package confirmationtokenready

import (
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/domain/logging"
	"accounts/internal/core/services"
	deliverconfirmationtoken "accounts/internal/core/services/deliver_confirmation_token"
	"accounts/internal/rabbitmq/schema"
	"context"
	"errors"

	"github.com/rabbitmq/amqp091-go"
)

type consumer interface {
	Consume(
		queue, consumer string,
		autoAck, exclusive, noLocal, noWait bool,
		args amqp091.Table,
	) (<-chan amqp091.Delivery, error)
}

type Consumer struct {
	log     logging.Logger
	channel consumer
	queue   string
	service services.Service[deliverconfirmationtoken.Input, deliverconfirmationtoken.Result]
}

func New(
	log logging.Logger,
	channel consumer,
	queue string,
	service services.Service[deliverconfirmationtoken.Input, deliverconfirmationtoken.Result],
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}

	return &Consumer{log: log, channel: channel, queue: queue, service: service}
}

// Consume starts handling deliveries in background until the channel is closed.
func (c *Consumer) Consume(ctx context.Context) error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(ctx, "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			c.Handle(ctx, delivery)
		}
	}()
	return nil
}

func (c *Consumer) Handle(ctx context.Context, delivery amqp091.Delivery) {
	message := &schema.ConfirmationToken{}
	if err := message.Unmarshal(delivery.Body); err != nil {
		c.log.Error(
			ctx,
			"Could not unmarshal confirmation token message.",
			logging.Entry("err", err),
			logging.Entry("deliveryTag", delivery.DeliveryTag),
		)
		c.ack(ctx, delivery)
		return
	}

	c.log.Info(ctx, "Got confirmation token for delivery.", logging.Entry("username", message.Username))
	_, err := c.service.Run(ctx, deliverconfirmationtoken.Input{Notification: message.Notification()})
	if errors.Is(err, context.Canceled) {
		c.nack(ctx, delivery)
		return
	}
	if err != nil {
		c.log.Error(
			ctx,
			"Could not deliver confirmation token, message is dropped.",
			logging.Entry("username", message.Username),
			logging.Entry("err", err),
		)
	}
	c.ack(ctx, delivery)
}

func (c *Consumer) ack(ctx context.Context, delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(ctx, "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}

func (c *Consumer) nack(ctx context.Context, delivery amqp091.Delivery) {
	if err := delivery.Nack(false, true); err != nil {
		c.log.Error(ctx, "Could not NACK AMQP message.", logging.Entry("err", err))
	}
}
