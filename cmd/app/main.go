package main

import (
	"hotel/config"
	"hotel/di"
	"hotel/helper"
	"hotel/shared/logger"
	"hotel/shared/metrics"

	"github.com/rs/zerolog/log"
)

//go:generate go run github.com/swaggo/swag/cmd/swag init -g ./cmd/app/main.go -o ./docs -d ../../

// @title Hotel Management API
// @version 1.0
// @description Rooms, guests and bookings for a single hotel.
// @BasePath /
func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.Configure(cfg)

	metrics.Register()

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
