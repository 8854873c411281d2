// Command migrate applies pending database migrations and exits. Useful for
// running schema changes separately from the API process.
package main

import (
	"os"

	"onepocket/internal/config"
	"onepocket/internal/database"
	"onepocket/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	appConfig, err := config.Load()
	if err != nil {
		logger.Get().Fatalf("Failed to load configuration: %v", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		logger.Get().Fatalf("Failed to connect to database: %v", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		logger.Get().Fatalf("Migration failed: %v", err)
	}
}
