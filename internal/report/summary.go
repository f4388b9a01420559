package report

import "fmt"

// Summary returns the one-line console summary for n violations.
func Summary(n int) string {
	switch n {
	case 0:
		return "No violations found."
	case 1:
		return "1 violation found."
	default:
		return fmt.Sprintf("%d violations found.", n)
	}
}
