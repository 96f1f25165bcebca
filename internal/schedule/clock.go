package schedule

import (
	"fmt"
	"time"
)

// ParseClock parses an instant at which the schedule should be evaluated.
// Supports 3 formats, all interpreted in loc:
// - HH:MM → that time on now's date
// - "YYYY-MM-DD HH:MM" → exact datetime
// - YYYY-MM-DDTHH:MM → ISO 8601 format
func ParseClock(input string, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	if t, err := time.ParseInLocation("2006-01-02T15:04", input, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", input, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("15:04", input, loc); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(),
			t.Hour(), t.Minute(), 0, 0, loc), nil
	}

	return time.Time{}, fmt.Errorf("invalid clock format: %q (supported: HH:MM, \"YYYY-MM-DD HH:MM\", YYYY-MM-DDTHH:MM)", input)
}

// LoadLocation resolves a timezone name. An empty name means UTC.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}
