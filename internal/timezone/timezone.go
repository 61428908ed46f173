package timezone

import (
	"strings"
	"time"
)

const DefaultTimezone = "Asia/Jerusalem"

const DefaultSlotWidth = 30 * time.Minute

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

// Now is the current wall clock in loc.
func Now(loc *time.Location) time.Time {
	return time.Now().In(loc)
}

// WeekdayName returns the lower-case english day name used as the
// day_of_week value in storage ("sunday" ... "saturday").
func WeekdayName(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// ParseWeekday is the inverse of WeekdayName.
func ParseWeekday(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if WeekdayName(d) == strings.ToLower(strings.TrimSpace(name)) {
			return d, true
		}
	}
	return 0, false
}

// ParseHM converts "HH:MM" (or "HH:MM:SS" as returned by postgres time
// columns) into minutes since midnight. "24:00" is accepted as end of day.
func ParseHM(hm string) (int, bool) {
	hm = strings.TrimSpace(hm)
	if len(hm) < 5 {
		return 0, false
	}
	hm = hm[:5]
	if hm == "24:00" {
		return 24 * 60, true
	}
	t, err := time.Parse(TimeLayout, hm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
