package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hannahwr/nestcare/internal/billing"
	"github.com/hannahwr/nestcare/internal/session"
)

func newTestService(t *testing.T) (*Service, *MockRepository) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)

	return NewService(repo), repo
}

func TestIncomeYearSeedsAllMonths(t *testing.T) {
	svc, repo := newTestService(t)

	famA := uuid.New()
	famB := uuid.New()

	repo.EXPECT().
		ListPaidPayments(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*PaymentRecord{
			{FamilyID: &famA, AmountCents: 16000, PaidDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
			{FamilyID: &famA, AmountCents: 4000, PaidDate: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)},
			{FamilyID: &famB, AmountCents: 9000, PaidDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		}, nil)
	repo.EXPECT().
		ListSessionExpenses(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*ExpenseRecord{
			{FamilyID: famA, SessionStart: time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC), AmountCents: 1500},
		}, nil)

	rep, err := svc.Income(context.Background(), 2024, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(29000), rep.GrossCents)
	assert.Equal(t, int64(1500), rep.ExpenseCents)
	assert.Equal(t, int64(27500), rep.NetCents)

	// Every month appears, empty ones zero-filled.
	require.Len(t, rep.ByMonth, 12)

	for i, m := range rep.ByMonth {
		assert.Equal(t, 2024, m.Year)
		assert.Equal(t, time.Month(i+1), m.Month)
	}

	march := rep.ByMonth[2]
	assert.Equal(t, int64(20000), march.GrossCents)
	assert.Equal(t, int64(1500), march.ExpenseCents)
	assert.Equal(t, int64(18500), march.NetCents)

	july := rep.ByMonth[6]
	assert.Equal(t, int64(9000), july.GrossCents)

	january := rep.ByMonth[0]
	assert.Equal(t, int64(0), january.GrossCents)
	assert.Equal(t, int64(0), january.ExpenseCents)

	// Family rollup: sum plus payment count, largest first.
	require.Len(t, rep.ByFamily, 2)
	assert.Equal(t, famA, rep.ByFamily[0].FamilyID)
	assert.Equal(t, int64(20000), rep.ByFamily[0].GrossCents)
	assert.Equal(t, 2, rep.ByFamily[0].PaymentCount)
	assert.Equal(t, famB, rep.ByFamily[1].FamilyID)
	assert.Equal(t, 1, rep.ByFamily[1].PaymentCount)
}

func TestIncomeMonth(t *testing.T) {
	svc, repo := newTestService(t)

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().
		ListPaidPayments(gomock.Any(), from, to).
		Return([]*PaymentRecord{
			{AmountCents: 2500, PaidDate: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
		}, nil)
	repo.EXPECT().
		ListSessionExpenses(gomock.Any(), from, to).
		Return(nil, nil)

	month := time.June

	rep, err := svc.Income(context.Background(), 2024, &month)

	require.NoError(t, err)
	assert.Equal(t, int64(2500), rep.GrossCents)
	require.Len(t, rep.ByMonth, 1)
	assert.Equal(t, time.June, rep.ByMonth[0].Month)
	assert.Equal(t, int64(2500), rep.ByMonth[0].GrossCents)

	// Unattributed income counts toward gross but has no family row.
	assert.Empty(t, rep.ByFamily)
}

func yearEndSession(familyID uuid.UUID, day int, rateCents int64) *billing.BillableSession {
	start := time.Date(2024, 6, day, 8, 0, 0, 0, time.UTC)

	return &billing.BillableSession{
		ID:        uuid.New(),
		FamilyID:  familyID,
		StartTime: start,
		EndTime:   start.Add(8 * time.Hour),
		RateCents: &rateCents,
		Status:    session.StatusCompleted,
		Confirmed: true,
	}
}

func TestYearEndPaidReconciliation(t *testing.T) {
	familyID := uuid.New()

	// Two sessions at $20/h for 8h: 16000 each, 32000 total.
	first := yearEndSession(familyID, 10, 2000)
	first.Payments = []*billing.Payment{{Status: billing.PaymentPaid, AmountCents: 16000}}

	second := yearEndSession(familyID, 12, 2000)

	tests := []struct {
		name            string
		familyPaid      int64
		wantPaid        int64
		wantOutstanding int64
	}{
		{
			// Session-linked attribution misses the family-level tip
			// payment; the family-year sum wins.
			name:            "family year sum larger",
			familyPaid:      18500,
			wantPaid:        18500,
			wantOutstanding: 13500,
		},
		{
			// A payment recorded last year for this year's sessions is
			// outside the family-year window; linked attribution wins.
			name:            "session linked larger",
			familyPaid:      0,
			wantPaid:        16000,
			wantOutstanding: 16000,
		},
		{
			name:            "overpaid goes negative",
			familyPaid:      40000,
			wantPaid:        40000,
			wantOutstanding: -8000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t)

			repo.EXPECT().
				ListFamilySessions(gomock.Any(), familyID, gomock.Any(), gomock.Any()).
				Return([]*billing.BillableSession{first, second}, nil)
			repo.EXPECT().
				FamilyPaidCents(gomock.Any(), familyID, gomock.Any(), gomock.Any()).
				Return(tt.familyPaid, nil)

			rep, err := svc.YearEnd(context.Background(), familyID, 2024)

			require.NoError(t, err)
			require.Len(t, rep.Sessions, 2)
			assert.Equal(t, 16.0, rep.TotalHours)
			assert.Equal(t, int64(32000), rep.TotalCents)
			assert.Equal(t, tt.wantPaid, rep.TotalPaidCents)
			assert.Equal(t, tt.wantOutstanding, rep.TotalOutstandingCents)
		})
	}
}

func TestYearEndIncludesExpenses(t *testing.T) {
	svc, repo := newTestService(t)
	familyID := uuid.New()

	sess := yearEndSession(familyID, 10, 2000)
	sess.ExpenseCents = []int64{1250}

	repo.EXPECT().
		ListFamilySessions(gomock.Any(), familyID, gomock.Any(), gomock.Any()).
		Return([]*billing.BillableSession{sess}, nil)
	repo.EXPECT().
		FamilyPaidCents(gomock.Any(), familyID, gomock.Any(), gomock.Any()).
		Return(int64(0), nil)

	rep, err := svc.YearEnd(context.Background(), familyID, 2024)

	require.NoError(t, err)
	require.Len(t, rep.Sessions, 1)
	assert.Equal(t, int64(16000), rep.Sessions[0].CostCents)
	assert.Equal(t, int64(1250), rep.Sessions[0].ExpenseCents)
	assert.Equal(t, int64(17250), rep.Sessions[0].TotalCents)
	assert.Equal(t, int64(17250), rep.TotalCents)
}

func TestYearEndEmpty(t *testing.T) {
	svc, repo := newTestService(t)
	familyID := uuid.New()

	repo.EXPECT().
		ListFamilySessions(gomock.Any(), familyID, gomock.Any(), gomock.Any()).
		Return(nil, nil)
	repo.EXPECT().
		FamilyPaidCents(gomock.Any(), familyID, gomock.Any(), gomock.Any()).
		Return(int64(0), nil)

	rep, err := svc.YearEnd(context.Background(), familyID, 2024)

	require.NoError(t, err)
	assert.Empty(t, rep.Sessions)
	assert.Equal(t, int64(0), rep.TotalCents)
	assert.Equal(t, int64(0), rep.TotalOutstandingCents)
}
