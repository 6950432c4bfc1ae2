package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/clock"
	"github.com/hannahwr/nestcare/internal/offering"
	"github.com/hannahwr/nestcare/internal/session"
)

var (
	ErrNotFound   = errors.New("schedule not found")
	ErrValidation = errors.New("invalid schedule input")
	ErrInactive   = errors.New("schedule is inactive")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=schedule
type Repository interface {
	CreateSchedule(ctx context.Context, s *Schedule) error
	GetSchedule(ctx context.Context, id uuid.UUID) (*Schedule, error)
	ListSchedules(ctx context.Context, activeOnly bool) ([]*Schedule, error)
	UpdateSchedule(ctx context.Context, s *Schedule) error
	// DeleteSchedule removes the template only; sessions already
	// generated from it keep existing with a dangling back-reference.
	DeleteSchedule(ctx context.Context, id uuid.UUID) error

	GetOffering(ctx context.Context, id uuid.UUID) (*offering.Offering, error)

	BeginGeneration(ctx context.Context, scheduleID uuid.UUID) (GenerationTx, error)

	CreateUnavailability(ctx context.Context, u *Unavailability) error
	ListUnavailabilities(ctx context.Context, from, to time.Time) ([]*Unavailability, error)
	DeleteUnavailability(ctx context.Context, id uuid.UUID) error
}

// GenerationTx is one atomic session-generation run. It holds a database
// transaction plus an advisory lock on the schedule, so concurrent
// regeneration calls for the same schedule serialize instead of
// double-creating sessions.
type GenerationTx interface {
	// ExistingStartTimes returns the start instants of sessions already
	// materialized for the schedule within [from, to].
	ExistingStartTimes(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) (map[time.Time]struct{}, error)
	CreateSessions(ctx context.Context, sessions []*session.Session) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	FamilyID       uuid.UUID
	OfferingID     uuid.UUID
	Pattern        Pattern
	Weekdays       []time.Weekday
	StartTimeOfDay string
	EndTimeOfDay   string
	StartDate      time.Time
	EndDate        *time.Time
	FixedRateCents *int64
	ChildIDs       []uuid.UUID

	// OffsetMinutes is the caller's UTC offset, used when a ONCE
	// schedule materializes its single session immediately.
	OffsetMinutes int
}

// Create validates and stores a schedule. A ONCE schedule synchronously
// materializes exactly one session on its start date; that session is
// auto-confirmed because it represents a single deliberate booking rather
// than a speculative recurring slot.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Schedule, error) {
	off, err := s.repo.GetOffering(ctx, params.OfferingID)
	if err != nil {
		return nil, err
	}

	sched := &Schedule{
		FamilyID:       params.FamilyID,
		OfferingID:     params.OfferingID,
		Pattern:        params.Pattern,
		Weekdays:       params.Weekdays,
		StartTimeOfDay: params.StartTimeOfDay,
		EndTimeOfDay:   params.EndTimeOfDay,
		StartDate:      params.StartDate,
		EndDate:        params.EndDate,
		FixedRateCents: params.FixedRateCents,
		Active:         true,
		ChildIDs:       params.ChildIDs,
	}
	if err := validate(sched, off); err != nil {
		return nil, err
	}

	if err := s.repo.CreateSchedule(ctx, sched); err != nil {
		return nil, err
	}

	if sched.Pattern == PatternOnce {
		if err := s.materializeOnce(ctx, sched, off, params.OffsetMinutes); err != nil {
			return nil, err
		}
	}

	return sched, nil
}

func validate(sched *Schedule, off *offering.Offering) error {
	if !sched.Pattern.Valid() {
		return fmt.Errorf("%w: unknown pattern %q", ErrValidation, sched.Pattern)
	}

	if sched.Pattern.Recurring() && len(sched.Weekdays) == 0 {
		return fmt.Errorf("%w: recurring schedule requires at least one weekday", ErrValidation)
	}

	if sched.Pattern == PatternOnce && len(sched.Weekdays) != 0 {
		return fmt.Errorf("%w: one-time schedule cannot have weekdays", ErrValidation)
	}

	startH, startM, err := parseTimeOfDay(sched.StartTimeOfDay)
	if err != nil {
		return err
	}

	endH, endM, err := parseTimeOfDay(sched.EndTimeOfDay)
	if err != nil {
		return err
	}

	if endH*60+endM <= startH*60+startM {
		return fmt.Errorf("%w: end time must be after start time", ErrValidation)
	}

	if sched.EndDate != nil && sched.EndDate.Before(sched.StartDate) {
		return fmt.Errorf("%w: end date before start date", ErrValidation)
	}

	if off.RequiresChild && len(sched.ChildIDs) == 0 {
		return fmt.Errorf("%w: offering %q requires at least one child", ErrValidation, off.Name)
	}

	return nil
}

// GenerateResult reports one generation run. Days skipped as duplicates
// are simply absent from Created, not errors.
type GenerateResult struct {
	Created []*session.Session
	Count   int
}

// Generate expands a schedule into concrete sessions over the closed
// date interval [from, to], intersected with the schedule's own
// [StartDate, EndDate] range; days outside the schedule's range never
// materialize. It is idempotent: re-running over an overlapping range
// only creates sessions for (schedule, start instant) pairs that do
// not exist yet.
func (s *Service) Generate(ctx context.Context, scheduleID uuid.UUID, from, to time.Time, offsetMinutes int) (*GenerateResult, error) {
	sched, err := s.repo.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if !sched.Active {
		return nil, fmt.Errorf("%w: %s", ErrInactive, scheduleID)
	}

	off, err := s.repo.GetOffering(ctx, sched.OfferingID)
	if err != nil {
		return nil, err
	}

	if to.Before(from) {
		return nil, fmt.Errorf("%w: generation range end before start", ErrValidation)
	}

	// Clamp to the schedule's own date range: an ended schedule must not
	// keep spawning sessions, nor may one materialize before it starts.
	lo := dateOnly(from)
	if sd := dateOnly(sched.StartDate); lo.Before(sd) {
		lo = sd
	}

	hi := dateOnly(to)
	if sched.EndDate != nil {
		if ed := dateOnly(*sched.EndDate); hi.After(ed) {
			hi = ed
		}
	}

	gtx, err := s.repo.BeginGeneration(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("begin generation: %w", err)
	}
	defer gtx.Rollback()

	// The window is padded a day each side so offset-shifted instants
	// near the range edges still hit the duplicate set.
	existing, err := gtx.ExistingStartTimes(ctx, scheduleID,
		lo.AddDate(0, 0, -1), hi.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("existing start times: %w", err)
	}

	rate := effectiveRate(sched, off)

	var created []*session.Session

	for d := lo; !d.After(hi); d = d.AddDate(0, 0, 1) {
		if !sched.HasWeekday(d.Weekday()) {
			continue
		}

		start, end, err := s.sessionWindow(sched, d, offsetMinutes)
		if err != nil {
			return nil, err
		}

		if _, dup := existing[start]; dup {
			continue
		}

		// Mark the slot so a later day in this run (or a padded edge)
		// cannot create it again.
		existing[start] = struct{}{}

		schedID := sched.ID
		created = append(created, &session.Session{
			ScheduleID: &schedID,
			FamilyID:   sched.FamilyID,
			OfferingID: sched.OfferingID,
			StartTime:  start,
			EndTime:    end,
			RateCents:  rate,
			Status:     session.StatusScheduled,
			Confirmed:  false,
			ChildIDs:   sched.ChildIDs,
		})
	}

	if len(created) > 0 {
		if err := gtx.CreateSessions(ctx, created); err != nil {
			return nil, fmt.Errorf("create sessions: %w", err)
		}
	}

	if err := gtx.Commit(); err != nil {
		return nil, fmt.Errorf("commit generation: %w", err)
	}

	return &GenerateResult{Created: created, Count: len(created)}, nil
}

// materializeOnce creates the single session of a ONCE schedule, within
// its own generation transaction.
func (s *Service) materializeOnce(ctx context.Context, sched *Schedule, off *offering.Offering, offsetMinutes int) error {
	start, end, err := s.sessionWindow(sched, dateOnly(sched.StartDate), offsetMinutes)
	if err != nil {
		return err
	}

	gtx, err := s.repo.BeginGeneration(ctx, sched.ID)
	if err != nil {
		return fmt.Errorf("begin generation: %w", err)
	}
	defer gtx.Rollback()

	schedID := sched.ID
	sess := &session.Session{
		ScheduleID: &schedID,
		FamilyID:   sched.FamilyID,
		OfferingID: sched.OfferingID,
		StartTime:  start,
		EndTime:    end,
		RateCents:  effectiveRate(sched, off),
		Status:     session.StatusScheduled,
		Confirmed:  true,
		ChildIDs:   sched.ChildIDs,
	}
	if err := gtx.CreateSessions(ctx, []*session.Session{sess}); err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	if err := gtx.Commit(); err != nil {
		return fmt.Errorf("commit generation: %w", err)
	}

	return nil
}

// effectiveRate captures the hourly rate a session bills at: the
// schedule's fixed rate when set, else the offering default, multiplied
// by child count for per-child pricing. nil when neither rate exists;
// billing treats that as zero but still charges expenses.
func effectiveRate(sched *Schedule, off *offering.Offering) *int64 {
	base := sched.FixedRateCents
	if base == nil {
		base = off.RateCents
	}

	if base == nil {
		return nil
	}

	rate := *base
	if sched.FixedRateCents == nil && off.PricingType == offering.PricingPerChild {
		rate *= int64(len(sched.ChildIDs))
	}

	return &rate
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Schedule, error) {
	return s.repo.GetSchedule(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]*Schedule, error) {
	return s.repo.ListSchedules(ctx, activeOnly)
}

// Update rewrites the schedule template. Changing the time-of-day window
// does not retroactively re-key sessions generated earlier; regenerating
// afterward can add a second session on a day that already has one with
// the old time.
func (s *Service) Update(ctx context.Context, sched *Schedule) error {
	off, err := s.repo.GetOffering(ctx, sched.OfferingID)
	if err != nil {
		return err
	}

	if err := validate(sched, off); err != nil {
		return err
	}

	return s.repo.UpdateSchedule(ctx, sched)
}

func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	sched, err := s.repo.GetSchedule(ctx, id)
	if err != nil {
		return err
	}

	sched.Active = active

	return s.repo.UpdateSchedule(ctx, sched)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSchedule(ctx, id)
}

type UnavailabilityParams struct {
	StartDate time.Time
	EndDate   time.Time
	StartTime *string
	EndTime   *string
	AllDay    bool
	Reason    string
}

func (s *Service) AddUnavailability(ctx context.Context, params UnavailabilityParams) (*Unavailability, error) {
	if params.EndDate.Before(params.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", ErrValidation)
	}

	if !params.AllDay {
		if params.StartTime == nil || params.EndTime == nil {
			return nil, fmt.Errorf("%w: partial-day unavailability needs start and end times", ErrValidation)
		}

		if _, _, err := parseTimeOfDay(*params.StartTime); err != nil {
			return nil, err
		}

		if _, _, err := parseTimeOfDay(*params.EndTime); err != nil {
			return nil, err
		}
	}

	u := &Unavailability{
		StartDate: dateOnly(params.StartDate),
		EndDate:   dateOnly(params.EndDate),
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
		AllDay:    params.AllDay,
		Reason:    params.Reason,
	}
	if err := s.repo.CreateUnavailability(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Conflicts lists block-outs overlapping [from, to]. Read-only: callers
// show these next to planned sessions, nothing is blocked.
func (s *Service) Conflicts(ctx context.Context, from, to time.Time) ([]*Unavailability, error) {
	return s.repo.ListUnavailabilities(ctx, dateOnly(from), dateOnly(to))
}

func (s *Service) RemoveUnavailability(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteUnavailability(ctx, id)
}

// sessionWindow composes a day with the schedule's wall-clock window at
// the caller's UTC offset, yielding UTC start/end instants.
func (s *Service) sessionWindow(sched *Schedule, day time.Time, offsetMinutes int) (time.Time, time.Time, error) {
	start, err := clock.Compose(day, sched.StartTimeOfDay, offsetMinutes)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	end, err := clock.Compose(day, sched.EndTimeOfDay, offsetMinutes)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return start, end, nil
}

func parseTimeOfDay(s string) (hour, minute int, err error) {
	hour, minute, err = clock.ParseHHMM(s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return hour, minute, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
