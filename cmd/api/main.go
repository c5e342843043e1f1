package main

import (
	"log"

	"job-catalog/internal/bootstrap"
	"job-catalog/internal/shared/config"
	"job-catalog/internal/shared/server"
	"job-catalog/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	addr := server.Addr(cfg.Port)
	telemetry.Info("api.start", telemetry.Fields{"addr": addr, "env": cfg.Env, "storage": storageMode(app)})

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func storageMode(app *bootstrap.App) string {
	if app.DB != nil {
		return "postgres"
	}
	return "memory"
}
