package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hannahwr/nestcare/internal/offering"
	"github.com/hannahwr/nestcare/internal/schedule"
	"github.com/hannahwr/nestcare/internal/session"
)

func newService(t *testing.T) (*schedule.Service, *schedule.MockRepository, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := schedule.NewMockRepository(ctrl)

	return schedule.NewService(repo), repo, ctrl
}

func flatOffering(rateCents int64) *offering.Offering {
	return &offering.Offering{
		ID:          uuid.New(),
		Name:        "Full Day Care",
		PricingType: offering.PricingFlat,
		RateCents:   &rateCents,
		Active:      true,
	}
}

func weeklySchedule(off *offering.Offering) *schedule.Schedule {
	return &schedule.Schedule{
		ID:             uuid.New(),
		FamilyID:       uuid.New(),
		OfferingID:     off.ID,
		Pattern:        schedule.PatternWeekly,
		Weekdays:       []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		StartTimeOfDay: "08:00",
		EndTimeOfDay:   "17:00",
		StartDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Active:         true,
		ChildIDs:       []uuid.UUID{uuid.New()},
	}
}

func TestService_Create_RecurringWithoutWeekdays(t *testing.T) {
	svc, repo, _ := newService(t)

	off := flatOffering(2000)
	repo.EXPECT().GetOffering(gomock.Any(), off.ID).Return(off, nil)

	_, err := svc.Create(context.Background(), schedule.CreateParams{
		OfferingID:     off.ID,
		Pattern:        schedule.PatternWeekly,
		Weekdays:       nil,
		StartTimeOfDay: "08:00",
		EndTimeOfDay:   "17:00",
		StartDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, schedule.ErrValidation)
}

func TestService_Create_EndDateBeforeStart(t *testing.T) {
	svc, repo, _ := newService(t)

	off := flatOffering(2000)
	repo.EXPECT().GetOffering(gomock.Any(), off.ID).Return(off, nil)

	end := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), schedule.CreateParams{
		OfferingID:     off.ID,
		Pattern:        schedule.PatternWeekly,
		Weekdays:       []time.Weekday{time.Monday},
		StartTimeOfDay: "08:00",
		EndTimeOfDay:   "17:00",
		StartDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        &end,
	})
	assert.ErrorIs(t, err, schedule.ErrValidation)
}

func TestService_Create_RequiresChild(t *testing.T) {
	svc, repo, _ := newService(t)

	off := flatOffering(2000)
	off.RequiresChild = true
	repo.EXPECT().GetOffering(gomock.Any(), off.ID).Return(off, nil)

	_, err := svc.Create(context.Background(), schedule.CreateParams{
		OfferingID:     off.ID,
		Pattern:        schedule.PatternWeekly,
		Weekdays:       []time.Weekday{time.Monday},
		StartTimeOfDay: "08:00",
		EndTimeOfDay:   "17:00",
		StartDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, schedule.ErrValidation)
}

func TestService_Create_Once_AutoConfirms(t *testing.T) {
	svc, repo, ctrl := newService(t)
	gtx := schedule.NewMockGenerationTx(ctrl)

	off := flatOffering(2000)
	repo.EXPECT().GetOffering(gomock.Any(), off.ID).Return(off, nil)
	repo.EXPECT().
		CreateSchedule(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *schedule.Schedule) error {
			s.ID = uuid.New()
			return nil
		})
	repo.EXPECT().BeginGeneration(gomock.Any(), gomock.Any()).Return(gtx, nil)

	var created []*session.Session

	gtx.EXPECT().
		CreateSessions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sessions []*session.Session) error {
			created = sessions
			return nil
		})
	gtx.EXPECT().Commit().Return(nil)
	gtx.EXPECT().Rollback().Return(nil)

	sched, err := svc.Create(context.Background(), schedule.CreateParams{
		FamilyID:       uuid.New(),
		OfferingID:     off.ID,
		Pattern:        schedule.PatternOnce,
		StartTimeOfDay: "09:00",
		EndTimeOfDay:   "13:00",
		StartDate:      time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, sched.Weekdays)

	require.Len(t, created, 1)
	assert.True(t, created[0].Confirmed)
	assert.Equal(t, session.StatusScheduled, created[0].Status)
	assert.Equal(t, time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC), created[0].StartTime)
}

func TestService_Create_OnceWithWeekdays(t *testing.T) {
	svc, repo, _ := newService(t)

	off := flatOffering(2000)
	repo.EXPECT().GetOffering(gomock.Any(), off.ID).Return(off, nil)

	_, err := svc.Create(context.Background(), schedule.CreateParams{
		OfferingID:     off.ID,
		Pattern:        schedule.PatternOnce,
		Weekdays:       []time.Weekday{time.Monday},
		StartTimeOfDay: "09:00",
		EndTimeOfDay:   "13:00",
		StartDate:      time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, schedule.ErrValidation)
}

func TestService_Generate_Weekly(t *testing.T) {
	svc, repo, ctrl := newService(t)
	gtx := schedule.NewMockGenerationTx(ctrl)

	off := flatOffering(2000)
	sched := weeklySchedule(off)

	repo.EXPECT().GetSchedule(gomock.Any(), sched.ID).Return(sched, nil)
	repo.EXPECT().GetOffering(gomock.Any(), off.ID).Return(off, nil)
	repo.EXPECT().BeginGeneration(gomock.Any(), sched.ID).Return(gtx, nil)
	gtx.EXPECT().
		ExistingStartTimes(gomock.Any(), sched.ID, gomock.Any(), gomock.Any()).
		Return(map[time.Time]struct{}{}, nil)
	gtx.EXPECT().CreateSessions(gomock.Any(), gomock.Any()).Return(nil)
	gtx.EXPECT().Commit().Return(nil)
	gtx.EXPECT().Rollback().Return(nil)

	// Mon Jun 10 through Sun Jun 16: Mon/Wed/Fri qualify.
	res, err := svc.Generate(context.Background(), sched.ID,
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
		0)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)

	// Sessions come out in ascending date order, unconfirmed, scheduled.
	require.Len(t, res.Created, 3)
	assert.Equal(t, time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC), res.Created[0].StartTime)
	assert.Equal(t, time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC), res.Created[1].StartTime)
	assert.Equal(t, time.Date(2024, 6, 14, 8, 0, 0, 0, time.UTC), res.Created[2].StartTime)

	for _, sess := range res.Created {
		assert.False(t, sess.Confirmed)
		assert.Equal(t, session.StatusScheduled, sess.Status)
		assert.Equal(t, 17, sess.EndTime.Hour())
		require.NotNil(t, sess.RateCents)
		assert.Equal(t, int64(2000), *sess.RateCents)
	}
}

func TestService_Generate_Idempotent(t *testing.T) {
	svc, repo, ctrl := newService(t)
	gtx := schedule.NewMockGenerationTx(ctrl)

	off := flatOffering(2000)
	sched := weeklySchedule(off)

	// All three qualifying slots already exist.
	existing := map[time.Time]struct{}{
		time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC): {},
		time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC): {},
		time.Date(2024, 6, 14, 8, 0, 0, 0, time.UTC): {},
	}

	repo.EXPECT().GetSchedule(gomock.Any(), sched.ID).Return(sched, nil)
	repo.EXPECT().GetOffering(gomock.Any(), off.ID).Return(off, nil)
	repo.EXPECT().BeginGeneration(gomock.Any(), sched.ID).Return(gtx, nil)
	gtx.EXPECT().
		ExistingStartTimes(gomock.Any(), sched.ID, gomock.Any(), gomock.Any()).
		Return(existing, nil)
	// No CreateSessions call: duplicates are skipped, not errors.
	gtx.EXPECT().Commit().Return(nil)
	gtx.EXPECT().Rollback().Return(nil)

	res, err := svc.Generate(context.Background(), sched.ID,
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
		0)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.Empty(t, res.Created)
}

func TestService_Generate_StopsAtScheduleEndDate(t *testing.T) {
	svc, repo, ctrl := newService(t)
	gtx := schedule.NewMockGenerationTx(ctrl)

	off := flatOffering(2000)
	sched := weeklySchedule(off)
	sched.Weekdays = []time.Weekday{time.Monday}

	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	sched.EndDate = &end

	repo.EXPECT().GetSchedule(gomock.Any(), sched.ID).Return(sched, nil)
	repo.EXPECT().GetOffering(gomock.Any(), off.ID).Return(off, nil)
	repo.EXPECT().BeginGeneration(gomock.Any(), sched.ID).Return(gtx, nil)
	gtx.EXPECT().
		ExistingStartTimes(gomock.Any(), sched.ID, gomock.Any(), gomock.Any()).
		Return(map[time.Time]struct{}{}, nil)
	// No CreateSessions call: the whole of July lies past the end date.
	gtx.EXPECT().Commit().Return(nil)
	gtx.EXPECT().Rollback().Return(nil)

	res, err := svc.Generate(context.Background(), sched.ID,
		time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC),
		0)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.Empty(t, res.Created)
}

func TestService_Generate_StartsAtScheduleStartDate(t *testing.T) {
	svc, repo, ctrl := newService(t)
	gtx := schedule.NewMockGenerationTx(ctrl)

	off := flatOffering(2000)
	sched := weeklySchedule(off)
	sched.Weekdays = []time.Weekday{time.Monday}
	// StartDate is Sat Jun 1; the Mondays of May 20 and May 27 fall
	// before the schedule exists.

	repo.EXPECT().GetSchedule(gomock.Any(), sched.ID).Return(sched, nil)
	repo.EXPECT().GetOffering(gomock.Any(), off.ID).Return(off, nil)
	repo.EXPECT().BeginGeneration(gomock.Any(), sched.ID).Return(gtx, nil)
	gtx.EXPECT().
		ExistingStartTimes(gomock.Any(), sched.ID, gomock.Any(), gomock.Any()).
		Return(map[time.Time]struct{}{}, nil)
	gtx.EXPECT().CreateSessions(gomock.Any(), gomock.Any()).Return(nil)
	gtx.EXPECT().Commit().Return(nil)
	gtx.EXPECT().Rollback().Return(nil)

	res, err := svc.Generate(context.Background(), sched.ID,
		time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		0)
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC), res.Created[0].StartTime)
}

func TestService_Generate_PaddedDuplicateWindow(t *testing.T) {
	svc, repo, ctrl := newService(t)
	gtx := schedule.NewMockGenerationTx(ctrl)

	off := flatOffering(2000)
	sched := weeklySchedule(off)
	sched.Weekdays = []time.Weekday{time.Monday}

	// 08:00 local at UTC+12 lands at 20:00 UTC the previous day, so the
	// existing instant sits outside [from, to] by date. The one-day
	// padding on the duplicate query must still pick it up.
	existing := map[time.Time]struct{}{
		time.Date(2024, 6, 9, 20, 0, 0, 0, time.UTC): {},
	}

	repo.EXPECT().GetSchedule(gomock.Any(), sched.ID).Return(sched, nil)
	repo.EXPECT().GetOffering(gomock.Any(), off.ID).Return(off, nil)
	repo.EXPECT().BeginGeneration(gomock.Any(), sched.ID).Return(gtx, nil)
	gtx.EXPECT().
		ExistingStartTimes(gomock.Any(), sched.ID,
			time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)).
		Return(existing, nil)
	// No CreateSessions call: the shifted instant is a duplicate.
	gtx.EXPECT().Commit().Return(nil)
	gtx.EXPECT().Rollback().Return(nil)

	res, err := svc.Generate(context.Background(), sched.ID,
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		720)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
}

func TestService_Generate_Inactive(t *testing.T) {
	svc, repo, _ := newService(t)

	off := flatOffering(2000)
	sched := weeklySchedule(off)
	sched.Active = false

	repo.EXPECT().GetSchedule(gomock.Any(), sched.ID).Return(sched, nil)

	_, err := svc.Generate(context.Background(), sched.ID,
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
		0)
	assert.ErrorIs(t, err, schedule.ErrInactive)
}

func TestService_Generate_NoQualifyingDays(t *testing.T) {
	svc, repo, ctrl := newService(t)
	gtx := schedule.NewMockGenerationTx(ctrl)

	off := flatOffering(2000)
	sched := weeklySchedule(off)
	sched.Weekdays = []time.Weekday{time.Saturday}

	repo.EXPECT().GetSchedule(gomock.Any(), sched.ID).Return(sched, nil)
	repo.EXPECT().GetOffering(gomock.Any(), off.ID).Return(off, nil)
	repo.EXPECT().BeginGeneration(gomock.Any(), sched.ID).Return(gtx, nil)
	gtx.EXPECT().
		ExistingStartTimes(gomock.Any(), sched.ID, gomock.Any(), gomock.Any()).
		Return(map[time.Time]struct{}{}, nil)
	gtx.EXPECT().Commit().Return(nil)
	gtx.EXPECT().Rollback().Return(nil)

	// Mon Jun 10 through Fri Jun 14 holds no Saturday.
	res, err := svc.Generate(context.Background(), sched.ID,
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		0)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
}

func TestService_Generate_PerChildRateCapture(t *testing.T) {
	svc, repo, ctrl := newService(t)
	gtx := schedule.NewMockGenerationTx(ctrl)

	rate := int64(2000) // $20/h default
	off := &offering.Offering{
		ID:          uuid.New(),
		Name:        "Sibling Care",
		PricingType: offering.PricingPerChild,
		RateCents:   &rate,
		Active:      true,
	}

	sched := weeklySchedule(off)
	sched.OfferingID = off.ID
	sched.FixedRateCents = nil
	sched.ChildIDs = []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	repo.EXPECT().GetSchedule(gomock.Any(), sched.ID).Return(sched, nil)
	repo.EXPECT().GetOffering(gomock.Any(), off.ID).Return(off, nil)
	repo.EXPECT().BeginGeneration(gomock.Any(), sched.ID).Return(gtx, nil)
	gtx.EXPECT().
		ExistingStartTimes(gomock.Any(), sched.ID, gomock.Any(), gomock.Any()).
		Return(map[time.Time]struct{}{}, nil)
	gtx.EXPECT().CreateSessions(gomock.Any(), gomock.Any()).Return(nil)
	gtx.EXPECT().Commit().Return(nil)
	gtx.EXPECT().Rollback().Return(nil)

	res, err := svc.Generate(context.Background(), sched.ID,
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		0)
	require.NoError(t, err)
	require.Len(t, res.Created, 1)

	// $20 × 3 children captured once onto the session.
	require.NotNil(t, res.Created[0].RateCents)
	assert.Equal(t, int64(6000), *res.Created[0].RateCents)
	assert.Len(t, res.Created[0].ChildIDs, 3)
}

func TestService_Generate_NoRateAnywhere(t *testing.T) {
	svc, repo, ctrl := newService(t)
	gtx := schedule.NewMockGenerationTx(ctrl)

	off := &offering.Offering{
		ID:          uuid.New(),
		Name:        "Volunteer Care",
		PricingType: offering.PricingFlat,
		Active:      true,
	}

	sched := weeklySchedule(off)
	sched.OfferingID = off.ID

	repo.EXPECT().GetSchedule(gomock.Any(), sched.ID).Return(sched, nil)
	repo.EXPECT().GetOffering(gomock.Any(), off.ID).Return(off, nil)
	repo.EXPECT().BeginGeneration(gomock.Any(), sched.ID).Return(gtx, nil)
	gtx.EXPECT().
		ExistingStartTimes(gomock.Any(), sched.ID, gomock.Any(), gomock.Any()).
		Return(map[time.Time]struct{}{}, nil)
	gtx.EXPECT().CreateSessions(gomock.Any(), gomock.Any()).Return(nil)
	gtx.EXPECT().Commit().Return(nil)
	gtx.EXPECT().Rollback().Return(nil)

	res, err := svc.Generate(context.Background(), sched.ID,
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		0)
	require.NoError(t, err)
	require.Len(t, res.Created, 1)
	assert.Nil(t, res.Created[0].RateCents)
}

func TestService_Generate_OffsetComposition(t *testing.T) {
	svc, repo, ctrl := newService(t)
	gtx := schedule.NewMockGenerationTx(ctrl)

	off := flatOffering(2000)
	sched := weeklySchedule(off)

	repo.EXPECT().GetSchedule(gomock.Any(), sched.ID).Return(sched, nil)
	repo.EXPECT().GetOffering(gomock.Any(), off.ID).Return(off, nil)
	repo.EXPECT().BeginGeneration(gomock.Any(), sched.ID).Return(gtx, nil)
	gtx.EXPECT().
		ExistingStartTimes(gomock.Any(), sched.ID, gomock.Any(), gomock.Any()).
		Return(map[time.Time]struct{}{}, nil)
	gtx.EXPECT().CreateSessions(gomock.Any(), gomock.Any()).Return(nil)
	gtx.EXPECT().Commit().Return(nil)
	gtx.EXPECT().Rollback().Return(nil)

	// 08:00 local at UTC-4 lands at 12:00 UTC.
	res, err := svc.Generate(context.Background(), sched.ID,
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		-240)
	require.NoError(t, err)
	require.Len(t, res.Created, 1)
	assert.Equal(t, time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC), res.Created[0].StartTime)
	assert.Equal(t, time.Date(2024, 6, 10, 21, 0, 0, 0, time.UTC), res.Created[0].EndTime)
}

func TestParseWeekday(t *testing.T) {
	d, err := schedule.ParseWeekday("wednesday")
	require.NoError(t, err)
	assert.Equal(t, time.Wednesday, d)

	_, err = schedule.ParseWeekday("someday")
	assert.Error(t, err)

	assert.Equal(t, "SUNDAY", schedule.WeekdayName(time.Sunday))
}

func TestUnavailability_Overlaps(t *testing.T) {
	u := &schedule.Unavailability{
		StartDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 7, 14, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, u.Overlaps(
		time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC)))
	assert.False(t, u.Overlaps(
		time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC)))
}

func TestService_AddUnavailability_PartialDayNeedsTimes(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.AddUnavailability(context.Background(), schedule.UnavailabilityParams{
		StartDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		AllDay:    false,
	})
	assert.ErrorIs(t, err, schedule.ErrValidation)
}
