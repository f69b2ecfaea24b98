package timezone

import (
	"errors"
	"strings"
	"sync"
	"time"

	"hotel/config"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
)

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD or RFC3339")

// location resolves APP_TIMEZONE on first use. Unknown or empty names fall back to UTC.
var location = sync.OnceValue(func() *time.Location {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).
			Msg("Failed to load timezone, falling back to UTC. Use IANA names like 'Europe/Berlin' or 'America/New_York'")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
})

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(location())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(location())
}

func GetLocation() *time.Location {
	return location()
}

// Format formats t in the application timezone.
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// ParseDate accepts a calendar date (read as midnight UTC) or a full RFC3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if t, err := time.Parse(constant.DateFormat, value); err == nil {
		return t.UTC(), nil
	}

	if t, err := time.ParseInLocation(constant.DateOnlyFormat, value, time.UTC); err == nil {
		return t, nil
	}

	return time.Time{}, ErrInvalidDate
}
