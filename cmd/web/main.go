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
	w, err := bootstrap.BuildWeb(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	addr := server.Addr(cfg.WebPort)
	telemetry.Info("web.start", telemetry.Fields{
		"addr":        addr,
		"api_base":    cfg.APIBaseURL,
		"api_timeout": cfg.APITimeout.String(),
		"resources":   len(w.Resources.All()),
	})

	if err := w.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
