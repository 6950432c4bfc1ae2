package session

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a care session.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether moving from s to next is a legal step.
// The forward path is scheduled → in_progress → completed; cancellation
// is reachable from any non-terminal state. All transitions are explicit,
// nothing advances automatically.
func (s Status) CanTransition(next Status) bool {
	if s.Terminal() {
		return false
	}

	switch next {
	case StatusCancelled:
		return true
	case StatusInProgress:
		return s == StatusScheduled
	case StatusCompleted:
		return s == StatusInProgress
	}

	return false
}

// Billable reports whether the status counts toward amounts owed.
// Cancelled sessions never bill.
func (s Status) Billable() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted:
		return true
	}

	return false
}

// Session is one concrete, datable occurrence of care, generated from a
// schedule or booked ad hoc.
type Session struct {
	ID         uuid.UUID
	ScheduleID *uuid.UUID // nil for one-off bookings
	FamilyID   uuid.UUID
	OfferingID uuid.UUID
	StartTime  time.Time // UTC
	EndTime    time.Time // UTC

	// RateCents is the effective hourly rate captured at creation time,
	// already multiplied by child count for per-child offerings. It is
	// immutable afterward; later offering rate changes never touch it.
	// nil means no rate was available, which bills as zero.
	RateCents *int64

	Status    Status
	Confirmed bool

	DropOffPerson *string
	DropOffTime   *time.Time
	PickUpPerson  *string
	PickUpTime    *time.Time

	MealsBreakfast int
	MealsLunch     int
	MealsSnack     int

	Notes    string
	ChildIDs []uuid.UUID

	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}
