package dataset

import (
	"fmt"
	"strings"

	"github.com/flightschool/auditor/internal/errors"
)

// MinimumsFor returns the rule for the exact (area, cycle, filed) triple.
// An unregulated combination is a lookup error, never an implicit pass.
func (s *Set) MinimumsFor(area string, cycle Cycle, filed string) (MinimumsRule, error) {
	filed = strings.ToUpper(filed)
	rule, ok := s.rules[ruleKey{area: area, cycle: cycle, filed: filed}]
	if !ok {
		return MinimumsRule{}, errors.LookupError(errors.ErrCodeNoMinimums,
			fmt.Sprintf("no minimums for %s %s %s", area, cycle, filed)).
			WithDetail("area", area).
			WithDetail("cycle", string(cycle)).
			WithDetail("filed", filed)
	}
	return rule, nil
}
