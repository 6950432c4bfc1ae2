package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hannahwr/nestcare/internal/clock"
	"github.com/hannahwr/nestcare/internal/session"
)

var testNow = time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*session.Service, *session.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := session.NewMockRepository(ctrl)

	return session.NewService(repo, clock.Fixed(testNow)), repo
}

func TestService_Create(t *testing.T) {
	svc, repo := newService(t)

	start := time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC)
	params := session.CreateParams{
		FamilyID:   uuid.New(),
		OfferingID: uuid.New(),
		StartTime:  start,
		EndTime:    start.Add(8 * time.Hour),
		Confirmed:  true,
	}

	repo.EXPECT().
		CreateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sess *session.Session) error {
			sess.ID = uuid.New()
			return nil
		})

	got, err := svc.Create(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, session.StatusScheduled, got.Status)
	assert.True(t, got.Confirmed)
	assert.Nil(t, got.ScheduleID)
}

func TestService_Create_EndBeforeStart(t *testing.T) {
	svc, _ := newService(t)

	start := time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), session.CreateParams{
		StartTime: start,
		EndTime:   start.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, session.ErrValidation)
}

func TestStatus_CanTransition(t *testing.T) {
	type testCase struct {
		name string
		from session.Status
		to   session.Status
		want bool
	}

	tests := []testCase{
		{name: "ScheduledToInProgress", from: session.StatusScheduled, to: session.StatusInProgress, want: true},
		{name: "InProgressToCompleted", from: session.StatusInProgress, to: session.StatusCompleted, want: true},
		{name: "ScheduledToCancelled", from: session.StatusScheduled, to: session.StatusCancelled, want: true},
		{name: "InProgressToCancelled", from: session.StatusInProgress, to: session.StatusCancelled, want: true},
		{name: "ScheduledToCompleted", from: session.StatusScheduled, to: session.StatusCompleted, want: false},
		{name: "CompletedIsTerminal", from: session.StatusCompleted, to: session.StatusCancelled, want: false},
		{name: "CancelledIsTerminal", from: session.StatusCancelled, to: session.StatusScheduled, want: false},
		{name: "NoBackwardStep", from: session.StatusInProgress, to: session.StatusScheduled, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestService_Transition(t *testing.T) {
	svc, repo := newService(t)

	id := uuid.New()
	repo.EXPECT().GetSession(gomock.Any(), id).
		Return(&session.Session{ID: id, Status: session.StatusScheduled}, nil)
	repo.EXPECT().UpdateStatus(gomock.Any(), id, session.StatusInProgress).Return(nil)

	require.NoError(t, svc.Transition(context.Background(), id, session.StatusInProgress))
}

func TestService_Transition_Invalid(t *testing.T) {
	svc, repo := newService(t)

	id := uuid.New()
	repo.EXPECT().GetSession(gomock.Any(), id).
		Return(&session.Session{ID: id, Status: session.StatusCompleted}, nil)

	err := svc.Transition(context.Background(), id, session.StatusInProgress)
	assert.ErrorIs(t, err, session.ErrInvalidTransition)
}

func TestService_Confirm(t *testing.T) {
	svc, repo := newService(t)

	id := uuid.New()
	repo.EXPECT().GetSession(gomock.Any(), id).Return(&session.Session{ID: id}, nil)
	repo.EXPECT().SetConfirmed(gomock.Any(), id, true).Return(nil)

	require.NoError(t, svc.Confirm(context.Background(), id))
}

func TestService_RecordDropOff(t *testing.T) {
	svc, repo := newService(t)

	id := uuid.New()
	repo.EXPECT().GetSession(gomock.Any(), id).
		Return(&session.Session{ID: id, Status: session.StatusScheduled}, nil)
	repo.EXPECT().
		UpdateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sess *session.Session) error {
			require.NotNil(t, sess.DropOffPerson)
			assert.Equal(t, "Grandma June", *sess.DropOffPerson)
			require.NotNil(t, sess.DropOffTime)
			// No explicit time supplied, so the clock's now is used.
			assert.Equal(t, testNow, *sess.DropOffTime)
			return nil
		})

	require.NoError(t, svc.RecordDropOff(context.Background(), id, "Grandma June", nil))
}

func TestService_RecordPickUp_ExplicitTime(t *testing.T) {
	svc, repo := newService(t)

	id := uuid.New()
	at := time.Date(2024, 6, 10, 17, 45, 0, 0, time.UTC)

	repo.EXPECT().GetSession(gomock.Any(), id).
		Return(&session.Session{ID: id, Status: session.StatusInProgress}, nil)
	repo.EXPECT().
		UpdateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sess *session.Session) error {
			require.NotNil(t, sess.PickUpTime)
			assert.Equal(t, at, *sess.PickUpTime)
			return nil
		})

	require.NoError(t, svc.RecordPickUp(context.Background(), id, "Dad", &at))
}

func TestService_RecordDropOff_MissingPerson(t *testing.T) {
	svc, _ := newService(t)

	err := svc.RecordDropOff(context.Background(), uuid.New(), "  ", nil)
	assert.ErrorIs(t, err, session.ErrValidation)
}

func TestService_SetMeals(t *testing.T) {
	svc, repo := newService(t)

	id := uuid.New()
	repo.EXPECT().GetSession(gomock.Any(), id).Return(&session.Session{ID: id}, nil)
	repo.EXPECT().
		UpdateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sess *session.Session) error {
			assert.Equal(t, 1, sess.MealsBreakfast)
			assert.Equal(t, 1, sess.MealsLunch)
			assert.Equal(t, 2, sess.MealsSnack)
			return nil
		})

	require.NoError(t, svc.SetMeals(context.Background(), id, 1, 1, 2))
}

func TestService_SetMeals_Negative(t *testing.T) {
	svc, _ := newService(t)

	err := svc.SetMeals(context.Background(), uuid.New(), -1, 0, 0)
	assert.ErrorIs(t, err, session.ErrValidation)
}

func TestService_Update_RateUntouched(t *testing.T) {
	svc, repo := newService(t)

	id := uuid.New()
	rate := int64(2500)
	start := time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC)

	repo.EXPECT().GetSession(gomock.Any(), id).Return(&session.Session{
		ID:        id,
		StartTime: start,
		EndTime:   start.Add(4 * time.Hour),
		RateCents: &rate,
	}, nil)
	repo.EXPECT().UpdateSession(gomock.Any(), gomock.Any()).Return(nil)

	notes := "half day"

	got, err := svc.Update(context.Background(), id, session.UpdateParams{Notes: &notes})
	require.NoError(t, err)
	require.NotNil(t, got.RateCents)
	assert.Equal(t, int64(2500), *got.RateCents)
	assert.Equal(t, "half day", got.Notes)
}
