package dataset

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/flightschool/auditor/internal/errors"
)

// weatherRecord is the on-disk shape of one weather.json entry.
type weatherRecord struct {
	Area       string      `json:"area"`
	Timestamp  string      `json:"timestamp"`
	Visibility *Visibility `json:"visibility"`
	Ceiling    *int        `json:"ceiling"`
	WindSpeed  *float64    `json:"wind_speed"`
	Gusts      *float64    `json:"gusts"`
	Raw        string      `json:"raw"`
}

// dayCycleRecord is the on-disk shape of one daycycle.json entry.
type dayCycleRecord struct {
	Area    string `json:"area"`
	Date    string `json:"date"`
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

// readJSON decodes a JSON array from a dataset file, rejecting unknown fields.
func readJSON(dir, file string, v any) error {
	f, err := openDatasetFile(dir, file)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.DatasetError(errors.ErrCodeDatasetMalformed, file, err.Error(), err)
	}
	if dec.More() {
		return errors.DatasetError(errors.ErrCodeDatasetMalformed, file, "unexpected data after top-level array", nil)
	}
	return nil
}

// jsonEntryError reports a bad value in the i-th (0-based) element of a JSON file.
func jsonEntryError(file string, i int, format string, args ...any) error {
	msg := fmt.Sprintf("entry %d: %s", i+1, fmt.Sprintf(format, args...))
	return errors.DatasetError(errors.ErrCodeDatasetMalformed, file, msg, nil)
}

// loadWeather reads weather.json.
func loadWeather(dir string) ([]WeatherObservation, error) {
	var raw []weatherRecord
	if err := readJSON(dir, FileWeather, &raw); err != nil {
		return nil, err
	}

	observations := make([]WeatherObservation, 0, len(raw))
	for i, r := range raw {
		area := strings.TrimSpace(r.Area)
		if area == "" {
			return nil, jsonEntryError(FileWeather, i, "missing area")
		}
		ts, err := parseTimestamp(r.Timestamp)
		if err != nil {
			return nil, jsonEntryError(FileWeather, i, "%v", err)
		}
		if r.Visibility == nil {
			return nil, jsonEntryError(FileWeather, i, "missing visibility")
		}
		if r.Ceiling != nil && *r.Ceiling < 0 {
			return nil, jsonEntryError(FileWeather, i, "negative ceiling %d", *r.Ceiling)
		}
		observations = append(observations, WeatherObservation{
			Area:       area,
			Timestamp:  ts,
			Visibility: *r.Visibility,
			Ceiling:    r.Ceiling,
			WindSpeed:  r.WindSpeed,
			Gusts:      r.Gusts,
			Raw:        r.Raw,
		})
	}
	return observations, nil
}

// loadDayCycles reads daycycle.json.
func loadDayCycles(dir string) ([]DayCycleEntry, error) {
	var raw []dayCycleRecord
	if err := readJSON(dir, FileDayCycle, &raw); err != nil {
		return nil, err
	}

	entries := make([]DayCycleEntry, 0, len(raw))
	for i, r := range raw {
		area := strings.TrimSpace(r.Area)
		if area == "" {
			return nil, jsonEntryError(FileDayCycle, i, "missing area")
		}
		date, err := time.Parse(dateLayout, strings.TrimSpace(r.Date))
		if err != nil {
			return nil, jsonEntryError(FileDayCycle, i, "invalid date %q (want YYYY-MM-DD)", r.Date)
		}
		sunrise, err := ParseClock(r.Sunrise)
		if err != nil {
			return nil, jsonEntryError(FileDayCycle, i, "sunrise: %v", err)
		}
		sunset, err := ParseClock(r.Sunset)
		if err != nil {
			return nil, jsonEntryError(FileDayCycle, i, "sunset: %v", err)
		}
		if sunset < sunrise {
			return nil, jsonEntryError(FileDayCycle, i, "sunset %s is before sunrise %s", sunset, sunrise)
		}
		entries = append(entries, DayCycleEntry{
			Area:    area,
			Date:    date.Format(dateLayout),
			Sunrise: sunrise,
			Sunset:  sunset,
		})
	}
	return entries, nil
}

const dateLayout = "2006-01-02"

// parseTimestamp parses an RFC 3339 timestamp. A timestamp without a zone
// offset is read as UTC.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q (want RFC 3339, e.g. 2017-01-05T06:00:00-06:00)", s)
}
