package dates

import (
	"fmt"
	"time"
)

// Layout is the fixed calendar-date format used by the close-approach data,
// e.g. "1900-Dec-27 01:30". Times are naive UTC with minute precision.
const Layout = "2006-Jan-02 15:04"

// Parse converts a calendar-date string in the fixed dataset format into a
// UTC timestamp.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse calendar date %q: %w", s, err)
	}
	return t, nil
}

// Format renders a timestamp at minute precision, matching the input data's
// significant figures.
func Format(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
