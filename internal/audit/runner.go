package audit

import (
	"fmt"

	"github.com/flightschool/auditor/internal/dataset"
	"github.com/flightschool/auditor/internal/errors"
)

// Run applies checkers to set in order and concatenates their violations.
// The first checker error aborts the run.
func Run(set *dataset.Set, checkers ...Checker) ([]Violation, error) {
	if set == nil {
		return nil, errors.InternalError("audit run without a dataset", nil)
	}

	var all []Violation
	for _, c := range checkers {
		v, err := c.Check(set)
		if err != nil {
			return nil, fmt.Errorf("%s check: %w", c.Name(), err)
		}
		all = append(all, v...)
	}
	return all, nil
}
