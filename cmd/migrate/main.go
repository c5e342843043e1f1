package main

// Apply, roll back or inspect the catalog schema:
//   DATABASE_URL=postgres://... go run ./cmd/migrate [up|down|status]

import (
	"context"
	"flag"
	"log"
	"os"

	"job-catalog/internal/shared/config"
	"job-catalog/internal/shared/storage/db"
	"job-catalog/internal/shared/telemetry"
)

func main() {
	flag.Parse()
	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg := config.Load()
	ctx := context.Background()

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL, db.PoolFor(db.ProfileMigrate))
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.Migrate(ctx, sqlDB, command); err != nil {
		telemetry.Err("migrate.failed", err, telemetry.Fields{"command": command})
		sqlDB.Close()
		os.Exit(1)
	}
	telemetry.Info("migrate.done", telemetry.Fields{"command": command})
}
