package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"ums/internal/app/consumers"
	"ums/internal/app/deps"
	"ums/internal/core/domain/logging"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	done, stopConsumers := consumers.InitConsumers(deps)
	defer stopConsumers()

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(
		context.Background(),
		"Auditing account events.",
		logging.Entry("queue", deps.Config.RabbitmqAccountEventsQueue),
	)

	select {
	case <-stopCh:
		log.Info(context.Background(), "Stopping account events auditor.")
	case <-done:
		log.Warning(context.Background(), "Account events delivery has stopped.")
	}
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
