package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Cycle classifies a timestamp as day or night.
type Cycle string

const (
	// CycleDay covers sunrise through sunset, both inclusive.
	CycleDay Cycle = "DAY"
	// CycleNight is any time outside the day period.
	CycleNight Cycle = "NIGHT"
)

// ParseCycle parses a cycle name case-insensitively.
func ParseCycle(s string) (Cycle, error) {
	switch Cycle(strings.ToUpper(strings.TrimSpace(s))) {
	case CycleDay:
		return CycleDay, nil
	case CycleNight:
		return CycleNight, nil
	default:
		return "", fmt.Errorf("unknown cycle %q (use DAY or NIGHT)", s)
	}
}

// Lesson is one logged flight from lessons.csv.
type Lesson struct {
	StudentID    string
	AirplaneID   string
	InstructorID string // empty for a solo lesson
	Takeoff      time.Time
	Landing      time.Time
	Filed        string // flight rule category, upper case (VFR, IFR)
	Area         string
	Line         int // 1-based line in lessons.csv
}

// Solo reports whether the lesson was flown without an instructor.
func (l Lesson) Solo() bool {
	return l.InstructorID == ""
}

// WeatherObservation is one weather report for an area.
type WeatherObservation struct {
	Area       string
	Timestamp  time.Time
	Visibility Visibility
	// Ceiling is the lowest broken or overcast layer in feet AGL.
	// Nil means no ceiling.
	Ceiling   *int
	WindSpeed *float64
	Gusts     *float64
	Raw       string
}

// Visibility is prevailing visibility in statute miles.
//
// It decodes from a JSON number or from a METAR-style string such as
// "10+", "P6SM", "1/2" or "1 1/2".
type Visibility float64

// UnmarshalJSON implements json.Unmarshaler.
func (v *Visibility) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		if n < 0 {
			return fmt.Errorf("visibility must not be negative, got %s", string(data))
		}
		*v = Visibility(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("visibility must be a number or string, got %s", string(data))
	}

	parsed, err := ParseVisibility(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVisibility parses a METAR-style visibility string. The result is
// always finite and non-negative.
func ParseVisibility(s string) (Visibility, error) {
	text := strings.TrimSpace(strings.ToUpper(s))
	text = strings.TrimSuffix(text, "SM")
	text = strings.TrimPrefix(text, "P")
	text = strings.TrimSuffix(text, "+")
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("empty visibility %q", s)
	}

	var total float64
	for _, part := range strings.Fields(text) {
		if num, den, ok := strings.Cut(part, "/"); ok {
			n, err1 := strconv.ParseFloat(num, 64)
			d, err2 := strconv.ParseFloat(den, 64)
			if err1 != nil || err2 != nil || !validMiles(n) || !validMiles(d) || d == 0 {
				return 0, fmt.Errorf("invalid visibility %q", s)
			}
			total += n / d
			continue
		}
		f, err := strconv.ParseFloat(part, 64)
		if err != nil || !validMiles(f) {
			return 0, fmt.Errorf("invalid visibility %q", s)
		}
		total += f
	}
	if !validMiles(total) {
		return 0, fmt.Errorf("invalid visibility %q", s)
	}
	return Visibility(total), nil
}

func validMiles(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}

// DayCycleEntry holds sunrise and sunset for one area on one date.
type DayCycleEntry struct {
	Area    string
	Date    string // YYYY-MM-DD
	Sunrise Clock
	Sunset  Clock
}

// Clock is a time of day in minutes after midnight.
type Clock int

// ParseClock parses an HH:MM time of day.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q (want HH:MM)", s)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

// On returns the instant at this clock time on the calendar day of ref,
// in ref's location.
func (c Clock) On(ref time.Time) time.Time {
	y, m, d := ref.Date()
	return time.Date(y, m, d, int(c)/60, int(c)%60, 0, 0, ref.Location())
}

// String formats the clock as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// MinimumsRule is the regulatory floor for one (area, cycle, filed rule).
type MinimumsRule struct {
	Area          string
	Cycle         Cycle
	Filed         string
	MinVisibility Visibility
	// MinCeiling is nil when the rule sets no ceiling floor.
	MinCeiling *int
}

// Person is a student or an instructor.
type Person struct {
	ID    string
	Last  string
	First string
}

// Name returns the display name used in reports.
func (p Person) Name() string {
	return strings.TrimSpace(p.First + " " + p.Last)
}

// Airplane is one aircraft in fleet.csv.
type Airplane struct {
	TailNo string
	Type   string
}

// Repair is one maintenance window from repairs.csv.
// The airplane is out of service from In (inclusive) until Out (exclusive).
type Repair struct {
	TailNo      string
	In          time.Time
	Out         time.Time
	Description string
}

// Covers reports whether t falls inside the repair window.
func (r Repair) Covers(t time.Time) bool {
	return !t.Before(r.In) && t.Before(r.Out)
}
