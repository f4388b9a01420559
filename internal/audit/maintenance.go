package audit

import (
	"github.com/flightschool/auditor/internal/dataset"
)

// MaintenanceChecker flags lessons whose airplane was in a repair window at
// takeoff.
type MaintenanceChecker struct{}

// Name implements Checker.
func (c *MaintenanceChecker) Name() string { return string(CheckMaintenance) }

// Check returns one Grounded violation per lesson flown during a repair.
func (c *MaintenanceChecker) Check(set *dataset.Set) ([]Violation, error) {
	var violations []Violation
	for _, l := range set.Lessons {
		if !grounded(set.RepairsFor(l.AirplaneID), l) {
			continue
		}
		v, err := violationFor(set, l, ReasonGrounded)
		if err != nil {
			return nil, err
		}
		violations = append(violations, v)
	}
	return violations, nil
}

func grounded(repairs []dataset.Repair, l dataset.Lesson) bool {
	for _, r := range repairs {
		if r.Covers(l.Takeoff) {
			return true
		}
	}
	return false
}
