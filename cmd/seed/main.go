package main

import (
	"context"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	logger.Configure(config.Get())

	if err := di.InitializeSeeder().Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed database")
	}
}
