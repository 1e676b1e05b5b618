package takeout

import (
	"fmt"
	"strings"
	"time"
)

// exportDateLayout matches the long-form timestamps Takeout
// writes, e.g. "Friday, October 25, 2024 at 3:20:36 AM UTC".
// Day of month and hour appear without zero padding.
const exportDateLayout = "Monday, January 2, 2006 at 3:04:05 PM MST"

// narrowNoBreakSpace separates time from meridiem in exports
// from some locales.
const narrowNoBreakSpace = "\u202f"

// ParseExportDate parses a Takeout created_date string into a
// UTC time. An empty input yields a zero time and no error; any
// other string that does not match the export layout is an
// error naming the offending value.
func ParseExportDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, narrowNoBreakSpace, " "))
	t, err := time.Parse(exportDateLayout, cleaned)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable created date %q", raw)
	}
	return t.UTC(), nil
}
