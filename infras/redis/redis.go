package redis

import (
	"context"
	"net"
	"time"

	"hotel/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// New connects to the primary Redis node used for response caching and rate limiting.
// Startup fails if the node does not answer a ping within the dial timeout.
func New(config *config.Config) *goRedis.Client {
	primary := config.Cache.Redis.Primary
	dialTimeout := time.Duration(primary.DialTimeoutSeconds) * time.Second

	client := goRedis.NewClient(&goRedis.Options{
		Addr:        net.JoinHostPort(primary.Host, primary.Port),
		Password:    primary.Password,
		DB:          primary.DB,
		PoolSize:    primary.PoolSize,
		DialTimeout: dialTimeout,
	})

	ctx := context.Background()
	if dialTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, dialTimeout)
		defer cancel()
	}

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", client.Options().Addr).Msg("Failed to connect to Redis")
	}

	log.Info().
		Str("addr", client.Options().Addr).
		Int("db", primary.DB).
		Int("poolSize", primary.PoolSize).
		Msg("Connected to Redis")

	return client
}
