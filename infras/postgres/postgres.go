package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"hotel/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

// Connection holds the read and write pools. Reads that feed a write decision go through a
// transaction on Write instead.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	conn := &Connection{
		Read:  connect(*config, "read", pg.Read),
		Write: connect(*config, "write", pg.Write),
	}

	if conn.Read == nil || conn.Write == nil {
		conn.Close()
		log.Fatal().Int("maxRetry", pg.MaxRetry).Msg("Could not connect to database")
	}

	return conn
}

// Close releases both pools.
func (c *Connection) Close() {
	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}
}

// DBName applies the optional DB_POSTGRES_PREFIX to a database name.
func DBName(config config.Config, baseName string) string {
	return config.DB.Postgres.Prefix + baseName
}

// DSN renders endpoint as a postgres:// URL with credentials escaped. extra is merged into the
// query string after sslmode.
func DSN(config config.Config, endpoint config.PostgresEndpoint, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", endpoint.SSLMode)

	for key, values := range extra {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + DBName(config, endpoint.Name),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(config config.Config, name string, endpoint config.PostgresEndpoint) *sqlx.DB {
	pg := config.DB.Postgres
	dbName := DBName(config, endpoint.Name)

	logger := log.With().
		Str("name", name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", dbName).
		Logger()

	for attempt := 1; attempt <= pg.MaxRetry; attempt++ {
		db, err := sqlx.Connect(driverName, DSN(config, endpoint, nil))
		if err == nil {
			db.SetMaxOpenConns(pg.MaxOpenConns)
			db.SetMaxIdleConns(pg.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(pg.ConnMaxLifetimeSeconds) * time.Second)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		if attempt < pg.MaxRetry {
			time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
		}
	}

	return nil
}
