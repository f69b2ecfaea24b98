package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"hotel/config"
	"hotel/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

type MigrationAction string

const (
	MigrationUp     MigrationAction = "up"
	MigrationDown   MigrationAction = "down"
	MigrationStepUp MigrationAction = "step-up"
	MigrationDrop   MigrationAction = "drop"
)

var ErrUnknownMigrationAction = errors.New("unknown migration action")

// MigrationDSN builds the golang-migrate URL for the write database.
func MigrationDSN(config *config.Config) string {
	return postgres.DSN(*config, config.DB.Postgres.Write, url.Values{
		"x-migrations-table": {config.DB.Postgres.MigrationTable},
	})
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(config.DB.Postgres.MigrationPath, MigrationDSN(config))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func (a MigrationAction) run(mig *migrate.Migrate) error {
	switch a {
	case MigrationUp:
		return mig.Up()
	case MigrationDown:
		return mig.Steps(-1)
	case MigrationStepUp:
		return mig.Steps(1)
	case MigrationDrop:
		return mig.Down()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMigrationAction, a)
	}
}

func (a MigrationAction) Valid() bool {
	switch a {
	case MigrationUp, MigrationDown, MigrationStepUp, MigrationDrop:
		return true
	default:
		return false
	}
}

func Runner(config *config.Config, action MigrationAction) error {
	if !action.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownMigrationAction, action)
	}

	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer func() {
		sourceErr, dbErr := mig.Close()
		if sourceErr != nil || dbErr != nil {
			log.Warn().AnErr("source", sourceErr).AnErr("database", dbErr).Msg("Failed to close migrate instance")
		}
	}()

	if err = action.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	version, dirty, verErr := mig.Version()
	if verErr != nil && !errors.Is(verErr, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", verErr)
	}

	log.Info().Str("action", string(action)).Uint("version", version).Bool("dirty", dirty).Msg("Database migrations applied")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, MigrationUp)
}

func StepUp(config *config.Config) error {
	return Runner(config, MigrationStepUp)
}

func Down(config *config.Config) error {
	return Runner(config, MigrationDown)
}

func Drop(config *config.Config) error {
	return Runner(config, MigrationDrop)
}
