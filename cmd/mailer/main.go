package main

import (
	"accounts/internal/app/consumers"
	"accounts/internal/app/deps"
	"accounts/internal/app/services"
	"accounts/internal/core/domain/logging"
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownConsumers := consumers.InitConsumers(ctx, deps, services)
	defer shutdownConsumers()

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(ctx, "Mailer has started.", logging.Entry("queue", deps.Config.RabbitmqNotificationQueue))
	<-stopCh
	log.Info(ctx, "Stopping mailer.")
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
