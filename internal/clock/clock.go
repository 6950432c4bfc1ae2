// Package clock supplies the current instant and wall-clock conversions.
//
// Every conversion takes an explicit UTC offset in minutes; nothing here
// reads the process-local timezone, so the server and the operator can sit
// in different zones without skewing day boundaries.
package clock

import (
	"fmt"
	"math"
	"time"
)

// Clock abstracts "now" so services can be tested against a fixed instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns a Clock backed by the real time.
func System() Clock { return systemClock{} }

// Fixed returns a Clock that always reports t. Test helper.
func Fixed(t time.Time) Clock { return fixedClock(t) }

type fixedClock time.Time

func (f fixedClock) Now() time.Time { return time.Time(f) }

// Hours returns the elapsed time between two instants in hours, rounded
// to 2 decimals. A negative or zero span yields 0.
func Hours(start, end time.Time) float64 {
	if !end.After(start) {
		return 0
	}

	h := end.Sub(start).Hours()

	return math.Round(h*100) / 100
}

// ParseHHMM validates a wall-clock "HH:MM" string and returns its hour
// and minute components.
func ParseHHMM(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q: want HH:MM", s)
	}

	return t.Hour(), t.Minute(), nil
}

// Compose combines a calendar day with a wall-clock "HH:MM" value,
// interpreted at the given UTC offset, and returns the UTC instant.
func Compose(day time.Time, hhmm string, offsetMinutes int) (time.Time, error) {
	hour, minute, err := ParseHHMM(hhmm)
	if err != nil {
		return time.Time{}, err
	}

	loc := offsetLocation(offsetMinutes)
	local := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)

	return local.UTC(), nil
}

// DayRange returns the UTC bounds [midnight, next midnight) of the local
// calendar day containing the given date at the given offset.
func DayRange(day time.Time, offsetMinutes int) (time.Time, time.Time) {
	loc := offsetLocation(offsetMinutes)
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// MonthRange returns the UTC bounds [first, next-first) of a calendar month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	return start, start.AddDate(0, 1, 0)
}

// YearRange returns the UTC bounds [Jan 1, next Jan 1) of a calendar year.
func YearRange(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	return start, start.AddDate(1, 0, 0)
}

func offsetLocation(offsetMinutes int) *time.Location {
	if offsetMinutes == 0 {
		return time.UTC
	}

	return time.FixedZone(fmt.Sprintf("UTC%+d", offsetMinutes/60), offsetMinutes*60)
}
