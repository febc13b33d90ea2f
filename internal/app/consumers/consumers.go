package consumers

import (
	"accounts/internal/app/deps"
	"accounts/internal/app/services"
	dl "accounts/internal/core/domain/logging"
	confirmationtokenready "accounts/internal/rabbitmq/consumers/confirmation_token_ready"
	"context"
)

func initConfirmationTokenReadyConsumer(ctx context.Context, deps *deps.Deps, services *services.Services) func() {
	if deps.Rabbitmq == nil {
		panic("RABBITMQ_URL must be set to consume confirmation tokens")
	}
	if services.DeliverConfirmationToken == nil {
		panic("AWS_EMAIL_SENDER must be set to deliver confirmation tokens")
	}

	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(ctx, "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqNotificationQueue
	if err := rabbitmqChannel.DeclareQueue(queue); err != nil {
		deps.Logger.Error(ctx, "Could not create RabbitMQ queue.", dl.Entry("err", err), dl.Entry("queue", queue))
		panic(err)
	}

	confirmationTokenReadyConsumer := confirmationtokenready.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		services.DeliverConfirmationToken,
	)
	if err = confirmationTokenReadyConsumer.Consume(ctx); err != nil {
		deps.Logger.Error(
			ctx,
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(ctx, "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(ctx context.Context, deps *deps.Deps, services *services.Services) func() {
	shutdownConfirmationTokenReadyConsumer := initConfirmationTokenReadyConsumer(ctx, deps, services)

	return func() {
		shutdownConfirmationTokenReadyConsumer()
	}
}
