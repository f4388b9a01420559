package dataset

import (
	"fmt"
	"time"

	"github.com/flightschool/auditor/internal/errors"
)

// Classify reports whether t falls in the day or night period for area.
//
// The day cycle entry is selected by the calendar date of t in t's own zone
// offset. Sunrise and sunset are inclusive: a takeoff exactly at either
// boundary is DAY. Dates are never interpolated; a missing entry is a lookup
// error.
func (s *Set) Classify(area string, t time.Time) (Cycle, error) {
	date := t.Format(dateLayout)
	entry, ok := s.cycles[cycleKey{area: area, date: date}]
	if !ok {
		return "", errors.LookupError(errors.ErrCodeNoDayCycle,
			fmt.Sprintf("no day cycle for %s on %s", area, date)).
			WithDetail("area", area).
			WithDetail("date", date)
	}

	sunrise := entry.Sunrise.On(t)
	sunset := entry.Sunset.On(t)
	if t.Before(sunrise) || t.After(sunset) {
		return CycleNight, nil
	}
	return CycleDay, nil
}
