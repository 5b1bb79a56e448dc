package timezone

import (
	"hotel/config"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const fallbackZone = "UTC"

var (
	appLocation *time.Location
	loadOnce    sync.Once
)

// Load resolves an IANA zone name. An empty name means UTC.
func Load(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(err, "load timezone %q", name)
	}

	return loc, nil
}

// Init sets the hotel zone. Only the first call, or the first use of any
// other function, takes effect.
func Init(name string) {
	loadOnce.Do(func() {
		loc, err := Load(name)
		if err != nil {
			log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")

			loc = time.UTC
		}

		if name == "" {
			log.Warn().Msg("No timezone configured, using " + fallbackZone)
		}

		appLocation = loc

		log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")
	})
}

// GetLocation returns the hotel zone.
func GetLocation() *time.Location {
	Init(config.Get().App.Timezone)

	return appLocation
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// Parse reads value as a wall clock time in the hotel zone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

