package confirmationtoken

import (
	"accounts/internal/core/domain/account"
	e "accounts/internal/core/domain/errors"
	"accounts/internal/core/domain/logging"
	"accounts/internal/rabbitmq/schema"
	"context"
	"strconv"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type publisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp091.Publishing,
	) error
}

// RabbitMQ queues confirmation tokens for delivery by the mailer.
type RabbitMQ struct {
	log       logging.Logger
	publisher publisher
	queue     string
}

func NewRabbitMQ(log logging.Logger, publisher publisher, queue string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	return &RabbitMQ{log: log, publisher: publisher, queue: queue}
}

func (s *RabbitMQ) SendConfirmationToken(ctx context.Context, n account.ConfirmationTokenNotification) error {
	body, err := schema.NewConfirmationToken(n).Marshal()
	if err != nil {
		return err
	}

	err = s.publisher.PublishWithContext(ctx, "", s.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Expiration:   expiration(n),
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("queue", s.queue))
		return err
	}
	s.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("queue", s.queue),
		logging.Entry("username", n.Username),
	)
	return nil
}

// expiration is the per-message TTL in milliseconds, matching the token expiry.
func expiration(n account.ConfirmationTokenNotification) string {
	ttl := time.Until(n.ExpiresAt).Milliseconds()
	if ttl < 0 {
		ttl = 0
	}
	return strconv.FormatInt(ttl, 10)
}
