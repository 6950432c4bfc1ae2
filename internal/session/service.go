package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/clock"
)

var (
	ErrNotFound          = errors.New("session not found")
	ErrValidation        = errors.New("invalid session input")
	ErrInvalidTransition = errors.New("invalid session status transition")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=session
type Repository interface {
	CreateSession(ctx context.Context, sess *Session) error
	GetSession(ctx context.Context, id uuid.UUID) (*Session, error)
	ListSessions(ctx context.Context, filter ListFilter) ([]*Session, error)
	UpdateSession(ctx context.Context, sess *Session) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	SetConfirmed(ctx context.Context, id uuid.UUID, confirmed bool) error
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

type ListFilter struct {
	FamilyID   *uuid.UUID
	ScheduleID *uuid.UUID
	Status     *Status
	StartDate  *time.Time
	EndDate    *time.Time
}

type Service struct {
	repo Repository
	clk  clock.Clock
}

func NewService(repo Repository, clk clock.Clock) *Service {
	return &Service{repo: repo, clk: clk}
}

type CreateParams struct {
	FamilyID   uuid.UUID
	OfferingID uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	RateCents  *int64
	Confirmed  bool
	Notes      string
	ChildIDs   []uuid.UUID
}

// Create books a one-off session directly, with no backing schedule.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Session, error) {
	if !params.EndTime.After(params.StartTime) {
		return nil, fmt.Errorf("%w: end time must be after start time", ErrValidation)
	}

	sess := &Session{
		FamilyID:   params.FamilyID,
		OfferingID: params.OfferingID,
		StartTime:  params.StartTime.UTC(),
		EndTime:    params.EndTime.UTC(),
		RateCents:  params.RateCents,
		Status:     StatusScheduled,
		Confirmed:  params.Confirmed,
		Notes:      params.Notes,
		ChildIDs:   params.ChildIDs,
	}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.repo.GetSession(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Session, error) {
	return s.repo.ListSessions(ctx, filter)
}

type UpdateParams struct {
	StartTime *time.Time
	EndTime   *time.Time
	Notes     *string
	ChildIDs  []uuid.UUID
}

// Update edits the mutable fields of a session. The captured rate is
// deliberately not editable; historic rates stay fixed.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Session, error) {
	sess, err := s.repo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.StartTime != nil {
		sess.StartTime = params.StartTime.UTC()
	}

	if params.EndTime != nil {
		sess.EndTime = params.EndTime.UTC()
	}

	if !sess.EndTime.After(sess.StartTime) {
		return nil, fmt.Errorf("%w: end time must be after start time", ErrValidation)
	}

	if params.Notes != nil {
		sess.Notes = *params.Notes
	}

	if params.ChildIDs != nil {
		sess.ChildIDs = params.ChildIDs
	}

	if err := s.repo.UpdateSession(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

// Transition moves a session to the requested status, enforcing the
// lifecycle state machine.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, next Status) error {
	switch next {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}

	sess, err := s.repo.GetSession(ctx, id)
	if err != nil {
		return err
	}

	if !sess.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, sess.Status, next)
	}

	return s.repo.UpdateStatus(ctx, id, next)
}

// Confirm marks a session as a deliberate booking, making it eligible
// for billing.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetSession(ctx, id); err != nil {
		return err
	}

	return s.repo.SetConfirmed(ctx, id, true)
}

// RecordDropOff captures a custody hand-over into care.
func (s *Service) RecordDropOff(ctx context.Context, id uuid.UUID, person string, at *time.Time) error {
	return s.recordCustody(ctx, id, person, at, func(sess *Session, person string, when time.Time) {
		sess.DropOffPerson = &person
		sess.DropOffTime = &when
	})
}

// RecordPickUp captures a custody hand-over out of care.
func (s *Service) RecordPickUp(ctx context.Context, id uuid.UUID, person string, at *time.Time) error {
	return s.recordCustody(ctx, id, person, at, func(sess *Session, person string, when time.Time) {
		sess.PickUpPerson = &person
		sess.PickUpTime = &when
	})
}

func (s *Service) recordCustody(ctx context.Context, id uuid.UUID, person string, at *time.Time, apply func(*Session, string, time.Time)) error {
	if strings.TrimSpace(person) == "" {
		return fmt.Errorf("%w: custody person is required", ErrValidation)
	}

	sess, err := s.repo.GetSession(ctx, id)
	if err != nil {
		return err
	}

	when := s.clk.Now()
	if at != nil {
		when = at.UTC()
	}

	apply(sess, person, when)

	return s.repo.UpdateSession(ctx, sess)
}

// SetMeals records the meal counts served during a session.
func (s *Service) SetMeals(ctx context.Context, id uuid.UUID, breakfast, lunch, snack int) error {
	if breakfast < 0 || lunch < 0 || snack < 0 {
		return fmt.Errorf("%w: meal counts cannot be negative", ErrValidation)
	}

	sess, err := s.repo.GetSession(ctx, id)
	if err != nil {
		return err
	}

	sess.MealsBreakfast = breakfast
	sess.MealsLunch = lunch
	sess.MealsSnack = snack

	return s.repo.UpdateSession(ctx, sess)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSession(ctx, id)
}
