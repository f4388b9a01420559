package audit

import (
	"log/slog"

	"github.com/flightschool/auditor/internal/dataset"
	"github.com/flightschool/auditor/internal/errors"
	"github.com/flightschool/auditor/internal/logging"
)

// WeatherChecker flags lessons that took off in weather below the minimums
// for their area, day or night period and filed flight rule.
type WeatherChecker struct {
	missing MissingPolicy
	logger  *slog.Logger
}

// Name implements Checker.
func (c *WeatherChecker) Name() string { return string(CheckWeather) }

// Check evaluates every lesson in file order and returns at most one
// violation per lesson.
func (c *WeatherChecker) Check(set *dataset.Set) ([]Violation, error) {
	var violations []Violation
	skipped := 0

	for _, l := range set.Lessons {
		reason, err := c.evaluate(set, l)
		if err != nil {
			if !errors.IsLookup(err) || c.missing == MissingFatal {
				return nil, err
			}
			skipped++
			c.logger.Debug(logging.MsgLessonSkipped,
				slog.Int("line", l.Line),
				slog.String("student", l.StudentID),
				slog.String("area", l.Area),
				slog.String("code", errors.GetCode(err)),
				slog.String("error", err.Error()))
			continue
		}
		if reason == "" {
			continue
		}

		v, err := violationFor(set, l, reason)
		if err != nil {
			return nil, err
		}
		violations = append(violations, v)
	}

	c.logger.Debug("weather check complete",
		slog.Int("lessons", len(set.Lessons)),
		slog.Int("violations", len(violations)),
		slog.Int("skipped", skipped))
	return violations, nil
}

// evaluate returns the breach reason for one lesson, or "" if it complied.
func (c *WeatherChecker) evaluate(set *dataset.Set, l dataset.Lesson) (string, error) {
	cycle, err := set.Classify(l.Area, l.Takeoff)
	if err != nil {
		return "", err
	}
	rule, err := set.MinimumsFor(l.Area, cycle, l.Filed)
	if err != nil {
		return "", err
	}
	obs, err := set.WeatherAt(l.Area, l.Takeoff)
	if err != nil {
		return "", err
	}
	return Breach(rule, obs), nil
}

// Breach compares an observation against a rule. Only values strictly below
// the minimum breach it. A rule without a ceiling floor, or an observation
// without a ceiling, never breaches on ceiling.
func Breach(rule dataset.MinimumsRule, obs dataset.WeatherObservation) string {
	visibility := obs.Visibility < rule.MinVisibility
	ceiling := rule.MinCeiling != nil && obs.Ceiling != nil && *obs.Ceiling < *rule.MinCeiling

	switch {
	case visibility && ceiling:
		return ReasonVisibility + "+" + ReasonCeiling
	case visibility:
		return ReasonVisibility
	case ceiling:
		return ReasonCeiling
	default:
		return ""
	}
}
