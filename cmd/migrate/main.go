package main

import (
	"context"
	"os"
	"ums/internal/core/domain/logging"
	"ums/internal/db"
	zaplogging "ums/internal/implementations/logging"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	log := zaplogging.NewZapLogger(false)
	defer log.Sync()

	connString := os.Getenv("POSTGRESQL_URL")
	if connString == "" {
		log.Error(context.Background(), "POSTGRESQL_URL must be set.")
		os.Exit(1)
	}

	if err := db.Migrate(connString); err != nil {
		log.Error(context.Background(), "Could not apply migrations.", logging.Entry("err", err))
		os.Exit(1)
	}
	log.Info(context.Background(), "Migrations have been applied.")
}
