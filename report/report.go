// Package report holds the presentation helpers shared by the batch checks:
// the output mode that decides which per-item results are logged, and the pass/fail tally.
package report

import (
	"fmt"
	"strings"
)

// OutputMode selects which per-item results a batch check logs. It never changes the results themselves
type OutputMode int

const (
	NoOutput OutputMode = iota
	SuccessOnly
	FailureOnly
	All
)

// ShowsOnSuccess reports whether passing items are logged
func (m OutputMode) ShowsOnSuccess() bool {
	return m == SuccessOnly || m == All
}

// ShowsOnFailure reports whether failing items are logged
func (m OutputMode) ShowsOnFailure() bool {
	return m == FailureOnly || m == All
}

// Shows reports whether an item with the given outcome is logged
func (m OutputMode) Shows(ok bool) bool {
	if ok {
		return m.ShowsOnSuccess()
	}
	return m.ShowsOnFailure()
}

func (m OutputMode) String() string {
	switch m {
	case NoOutput:
		return "none"
	case SuccessOnly:
		return "ok"
	case FailureOnly:
		return "ng"
	case All:
		return "all"
	default:
		return fmt.Sprintf("OutputMode(%d)", int(m))
	}
}

// ParseOutputMode accepts the names produced by [OutputMode.String], case-insensitively
func ParseOutputMode(s string) (OutputMode, error) {
	switch strings.ToLower(s) {
	case "none":
		return NoOutput, nil
	case "ok":
		return SuccessOnly, nil
	case "ng":
		return FailureOnly, nil
	case "all":
		return All, nil
	default:
		return NoOutput, fmt.Errorf("unrecognized output mode %q: expected one of none, ok, ng, all", s)
	}
}

// Tally counts how many items of a batch passed
type Tally struct {
	Passed int
	Total  int
}

// Record adds one outcome to the tally
func (t *Tally) Record(ok bool) {
	t.Total++
	if ok {
		t.Passed++
	}
}

// Failed is the number of items that did not pass
func (t Tally) Failed() int {
	return t.Total - t.Passed
}

// AllPassed is true for a non-empty batch in which every item passed
func (t Tally) AllPassed() bool {
	return t.Total > 0 && t.Passed == t.Total
}

func (t Tally) String() string {
	return fmt.Sprintf("%d / %d OK", t.Passed, t.Total)
}

// Verdict renders an outcome the way the tally lines do
func Verdict(ok bool) string {
	if ok {
		return "OK"
	}
	return "NG"
}
