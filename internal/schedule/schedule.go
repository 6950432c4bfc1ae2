package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Pattern is the recurrence pattern of a schedule.
//
// Generation currently gates days on weekday membership alone, so WEEKLY,
// BIWEEKLY and MONTHLY expand identically; the pattern is stored and
// round-tripped so an interval-aware generator can distinguish them later.
type Pattern string

const (
	PatternOnce     Pattern = "once"
	PatternWeekly   Pattern = "weekly"
	PatternBiweekly Pattern = "biweekly"
	PatternMonthly  Pattern = "monthly"
)

func (p Pattern) Valid() bool {
	switch p {
	case PatternOnce, PatternWeekly, PatternBiweekly, PatternMonthly:
		return true
	}

	return false
}

// Recurring reports whether the pattern expands across multiple days.
func (p Pattern) Recurring() bool {
	return p.Valid() && p != PatternOnce
}

var weekdayNames = map[string]time.Weekday{
	"SUNDAY":    time.Sunday,
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
}

// ParseWeekday maps a day name (SUNDAY..SATURDAY, case-insensitive) to a
// time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	d, ok := weekdayNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", name)
	}

	return d, nil
}

// WeekdayName is the canonical upper-case name for a weekday.
func WeekdayName(d time.Weekday) string {
	return strings.ToUpper(d.String())
}

// Schedule is a template describing when recurring (or a single) care
// session should occur.
type Schedule struct {
	ID         uuid.UUID
	FamilyID   uuid.UUID
	OfferingID uuid.UUID
	Pattern    Pattern

	// Weekdays is empty exactly when Pattern is ONCE.
	Weekdays []time.Weekday

	// StartTimeOfDay/EndTimeOfDay are local wall-clock "HH:MM" values;
	// they only become instants when combined with a day and an explicit
	// UTC offset at generation time.
	StartTimeOfDay string
	EndTimeOfDay   string

	StartDate time.Time
	EndDate   *time.Time // nil = open-ended

	// FixedRateCents overrides the offering's default hourly rate.
	FixedRateCents *int64

	Active   bool
	ChildIDs []uuid.UUID

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// HasWeekday reports whether d's weekday is in the schedule's set.
func (s *Schedule) HasWeekday(d time.Weekday) bool {
	for _, w := range s.Weekdays {
		if w == d {
			return true
		}
	}

	return false
}

// Unavailability is a caregiver block-out range. Overlaps with planned
// sessions are surfaced as conflicts, never enforced.
type Unavailability struct {
	ID        uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	StartTime *string // "HH:MM", nil when AllDay
	EndTime   *string
	AllDay    bool
	Reason    string
	CreatedAt time.Time
}

// Overlaps reports whether the block-out touches the closed date range
// [from, to] at day granularity.
func (u *Unavailability) Overlaps(from, to time.Time) bool {
	return !u.EndDate.Before(from) && !u.StartDate.After(to)
}
