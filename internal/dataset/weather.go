package dataset

import (
	"fmt"
	"sort"
	"time"

	"github.com/flightschool/auditor/internal/errors"
)

// WeatherAt returns the latest observation for area taken at or before t.
// When several observations share that timestamp, the last one in file
// order wins.
func (s *Set) WeatherAt(area string, t time.Time) (WeatherObservation, error) {
	obs := s.weatherByArea[area]

	// First observation strictly after t; the one before it is in force.
	i := sort.Search(len(obs), func(i int) bool {
		return obs[i].Timestamp.After(t)
	})
	if i == 0 {
		return WeatherObservation{}, errors.LookupError(errors.ErrCodeNoWeather,
			fmt.Sprintf("no weather for %s at or before %s", area, t.Format(time.RFC3339))).
			WithDetail("area", area)
	}
	return obs[i-1], nil
}
