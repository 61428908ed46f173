package timezone

import (
	"time"
)

// Slot is a candidate booking slot expressed in shop time. Every field is
// derived from the same rounded-down start instant.
type Slot struct {
	Start        time.Time
	DayStart     time.Time
	Weekday      string
	DayNum       int
	TimeOfDay    string
	Date         string
	MinutesOfDay int
}

func (s Slot) StartMs() int64 {
	return s.Start.UnixMilli()
}

func (s Slot) DayStartMs() int64 {
	return s.DayStart.UnixMilli()
}

// Same reports whether both slots share the same normalized start.
func (s Slot) Same(o Slot) bool {
	return s.Start.Equal(o.Start)
}

type Normalizer struct {
	loc   *time.Location
	width time.Duration
}

func NewNormalizer(tz string, width time.Duration) Normalizer {
	if width <= 0 || width > 24*time.Hour {
		width = DefaultSlotWidth
	}
	return Normalizer{
		loc:   Location(tz),
		width: width,
	}
}

func (n Normalizer) Location() *time.Location {
	return n.loc
}

// Normalize rounds a millisecond timestamp down to the slot grid of the
// shop's wall clock. Seconds and milliseconds from client clock drift are
// discarded.
func (n Normalizer) Normalize(ms int64) Slot {
	return n.NormalizeTime(time.UnixMilli(ms))
}

// NormalizeTime floors the instant itself against the offset in force at t.
// Rebuilding from the wall clock would pick the wrong occurrence of the
// repeated hour when daylight saving ends.
func (n Normalizer) NormalizeTime(t time.Time) Slot {
	_, offset := t.In(n.loc).Zone()

	width := int64(n.width / time.Second)
	wall := t.Unix() + int64(offset)
	wall -= floorMod(wall, width)
	start := time.Unix(wall-int64(offset), 0).In(n.loc)

	y, m, d := start.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, n.loc)

	return Slot{
		Start:        start,
		DayStart:     dayStart,
		Weekday:      WeekdayName(start.Weekday()),
		DayNum:       int(start.Weekday()),
		TimeOfDay:    start.Format(TimeLayout),
		Date:         start.Format(DateLayout),
		MinutesOfDay: start.Hour()*60 + start.Minute(),
	}
}

func floorMod(a, b int64) int64 {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

// ParseDate parses "YYYY-MM-DD" as midnight in shop time.
func (n Normalizer) ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, n.loc)
}

// DaySlots returns every slot of the given day whose start falls in
// [fromMin, toMin).
func (n Normalizer) DaySlots(day time.Time, fromMin, toMin int) []Slot {
	local := day.In(n.loc)
	y, m, d := local.Date()

	widthMin := int(n.width / time.Minute)
	if rem := fromMin % widthMin; rem != 0 {
		fromMin += widthMin - rem
	}

	var slots []Slot
	for cur := fromMin; cur < toMin; cur += widthMin {
		t := time.Date(y, m, d, cur/60, cur%60, 0, 0, n.loc)
		s := n.NormalizeTime(t)
		// skip wall-clock times that do not exist on DST change days
		if s.MinutesOfDay != cur {
			continue
		}
		slots = append(slots, s)
	}
	return slots
}
