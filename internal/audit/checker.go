// Package audit finds lessons that were flown in violation of school rules.
//
// Each rule is a Checker. Run applies checkers in order to a loaded
// dataset.Set and concatenates their violations; checkers never see each
// other's output.
package audit

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/flightschool/auditor/internal/dataset"
	"github.com/flightschool/auditor/internal/errors"
)

// CheckName identifies a checker in configuration.
type CheckName string

const (
	// CheckWeather compares takeoff weather against the regulatory minimums.
	CheckWeather CheckName = "weather"

	// CheckMaintenance flags takeoffs in airplanes that were under repair.
	CheckMaintenance CheckName = "maintenance"
)

// DefaultChecks is the checker list used when none is configured.
var DefaultChecks = []CheckName{CheckWeather}

// KnownChecks lists every checker NewChecker can build, in display order.
var KnownChecks = []CheckName{CheckWeather, CheckMaintenance}

// Reasons written to the REASON column.
const (
	ReasonVisibility = "Visibility"
	ReasonCeiling    = "Ceiling"
	ReasonGrounded   = "Grounded"
)

// MissingPolicy decides what happens to a lesson whose day cycle, minimums
// or weather cannot be found.
type MissingPolicy string

const (
	// MissingSkip excludes the lesson from the results and keeps going.
	MissingSkip MissingPolicy = "skip"

	// MissingFatal aborts the run with the lookup error.
	MissingFatal MissingPolicy = "fatal"
)

// ParseMissingPolicy parses a policy name case-insensitively.
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch p := MissingPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case MissingSkip, MissingFatal:
		return p, nil
	default:
		return "", errors.ValidationError(fmt.Sprintf("unknown missing-data policy %q", s), nil).
			WithSuggestion("Use 'skip' or 'fatal'")
	}
}

// Violation is one lesson that should not have been flown.
type Violation struct {
	Student    string
	Airplane   string
	Instructor string
	Takeoff    time.Time
	Landing    time.Time
	Filed      string
	Area       string
	Reason     string
}

// Row returns the violation as CSV fields in report column order.
func (v Violation) Row() []string {
	return []string{
		v.Student,
		v.Airplane,
		v.Instructor,
		v.Takeoff.Format(time.RFC3339),
		v.Landing.Format(time.RFC3339),
		v.Filed,
		v.Area,
		v.Reason,
	}
}

// Checker inspects a dataset for one kind of violation.
type Checker interface {
	Name() string
	Check(set *dataset.Set) ([]Violation, error)
}

// Options configure the checkers built by NewChecker.
type Options struct {
	Missing MissingPolicy
	Logger  *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// NewChecker builds a checker by name.
func NewChecker(name CheckName, opts Options) (Checker, error) {
	if opts.Missing == "" {
		opts.Missing = MissingSkip
	}

	switch CheckName(strings.ToLower(string(name))) {
	case CheckWeather:
		return &WeatherChecker{missing: opts.Missing, logger: opts.logger()}, nil
	case CheckMaintenance:
		return &MaintenanceChecker{}, nil
	default:
		return nil, errors.ConfigError(fmt.Sprintf("unknown check %q", name), nil).
			WithSuggestion("Available checks: " + joinChecks(KnownChecks))
	}
}

// NewCheckers builds checkers for names in order. An empty list yields the
// default checkers.
func NewCheckers(names []CheckName, opts Options) ([]Checker, error) {
	if len(names) == 0 {
		names = DefaultChecks
	}
	checkers := make([]Checker, 0, len(names))
	for _, name := range names {
		c, err := NewChecker(name, opts)
		if err != nil {
			return nil, err
		}
		checkers = append(checkers, c)
	}
	return checkers, nil
}

func joinChecks(names []CheckName) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}

// violationFor resolves the people on a lesson and builds its violation.
// An unresolvable id is a dataset error.
func violationFor(set *dataset.Set, l dataset.Lesson, reason string) (Violation, error) {
	student, instructor, err := set.Names(l)
	if err != nil {
		return Violation{}, err
	}
	return Violation{
		Student:    student,
		Airplane:   l.AirplaneID,
		Instructor: instructor,
		Takeoff:    l.Takeoff,
		Landing:    l.Landing,
		Filed:      l.Filed,
		Area:       l.Area,
		Reason:     reason,
	}, nil
}
