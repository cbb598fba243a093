package validation

import (
	"time"
)

const DateLayout = "2006-01-02"

// ValidateDate checks that s is a calendar date in YYYY-MM-DD form and
// returns it normalized. Malformed dates are rejected outright rather than
// silently skipped.
func ValidateDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fail("invalid date, expected YYYY-MM-DD")
	}
	return t.Format(DateLayout), nil
}

// Today returns the current UTC date in YYYY-MM-DD form, matching the
// timezone the stats windows are computed in.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}
