package billing

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

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *MockRepository) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)

	return NewService(repo, clock.Fixed(testNow)), repo
}

func billable(familyID uuid.UUID, rateCents int64, hours int) *BillableSession {
	start := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	return &BillableSession{
		ID:        uuid.New(),
		FamilyID:  familyID,
		StartTime: start,
		EndTime:   start.Add(time.Duration(hours) * time.Hour),
		RateCents: &rateCents,
		Status:    session.StatusCompleted,
		Confirmed: true,
	}
}

func TestUnpaidSessions(t *testing.T) {
	svc, repo := newTestService(t)
	familyID := uuid.New()

	owed := billable(familyID, 2000, 8)

	settled := billable(familyID, 2000, 8)
	settled.Payments = []*Payment{{Status: PaymentPaid}}

	unconfirmed := billable(familyID, 2000, 8)
	unconfirmed.Confirmed = false

	cancelled := billable(familyID, 2000, 8)
	cancelled.Status = session.StatusCancelled

	repo.EXPECT().
		ListBillableSessions(gomock.Any(), familyID).
		Return([]*BillableSession{owed, settled, unconfirmed, cancelled}, nil)

	unpaid, err := svc.UnpaidSessions(context.Background(), familyID)

	require.NoError(t, err)
	require.Len(t, unpaid, 1)
	assert.Equal(t, owed.ID, unpaid[0].ID)
}

func TestFamilyAmountOwedExcludesExpenses(t *testing.T) {
	svc, repo := newTestService(t)
	familyID := uuid.New()

	first := billable(familyID, 2000, 8)  // 16000
	second := billable(familyID, 1500, 4) // 6000
	second.ExpenseCents = []int64{1250}   // not part of owed

	repo.EXPECT().
		ListBillableSessions(gomock.Any(), familyID).
		Return([]*BillableSession{first, second}, nil)

	owed, err := svc.FamilyAmountOwed(context.Background(), familyID)

	require.NoError(t, err)
	assert.Equal(t, int64(22000), owed)
}

func TestFamilyAmountOwedEmpty(t *testing.T) {
	svc, repo := newTestService(t)
	familyID := uuid.New()

	repo.EXPECT().
		ListBillableSessions(gomock.Any(), familyID).
		Return(nil, nil)

	owed, err := svc.FamilyAmountOwed(context.Background(), familyID)

	require.NoError(t, err)
	assert.Equal(t, int64(0), owed)
}

func TestCreatePayment(t *testing.T) {
	svc, repo := newTestService(t)
	ctrl := gomock.NewController(t)
	familyID := uuid.New()

	first := billable(familyID, 2000, 8) // 16000
	second := billable(familyID, 2000, 4)
	second.ExpenseCents = []int64{1500} // 8000 + 1500

	// Fetch order differs from the requested order on purpose.
	repo.EXPECT().
		GetBillableSessions(gomock.Any(), familyID, []uuid.UUID{first.ID, second.ID}).
		Return([]*BillableSession{second, first}, nil)

	ptx := NewMockPaymentTx(ctrl)
	repo.EXPECT().BeginPaymentBatch(gomock.Any()).Return(ptx, nil)

	var created []*Payment

	ptx.EXPECT().
		CreatePayments(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payments []*Payment) error {
			created = payments
			return nil
		})
	ptx.EXPECT().Commit().Return(nil)
	ptx.EXPECT().Rollback().Return(nil)

	result, err := svc.CreatePayment(context.Background(), CreatePaymentParams{
		FamilyID:   familyID,
		SessionIDs: []uuid.UUID{first.ID, second.ID},
		TipCents:   2500,
		Method:     "venmo",
		Notes:      "June care",
	})

	require.NoError(t, err)
	require.Len(t, created, 3)
	assert.Regexp(t, `^INV-20240615-\d{3}$`, result.InvoicePrefix)
	assert.Equal(t, int64(28000), result.TotalCents)

	// Sub-numbers follow the requested session order.
	assert.Equal(t, result.InvoicePrefix+"-01", created[0].InvoiceNumber)
	assert.Equal(t, first.ID, *created[0].SessionID)
	assert.Equal(t, int64(16000), created[0].AmountCents)

	assert.Equal(t, result.InvoicePrefix+"-02", created[1].InvoiceNumber)
	assert.Equal(t, second.ID, *created[1].SessionID)
	assert.Equal(t, int64(9500), created[1].AmountCents)

	assert.Equal(t, result.InvoicePrefix+"-TIPS", created[2].InvoiceNumber)
	assert.Nil(t, created[2].SessionID)
	assert.Equal(t, int64(2500), created[2].AmountCents)
	assert.Equal(t, "Tips/Bonus - June care", created[2].Notes)

	for _, p := range created {
		assert.Equal(t, PaymentPaid, p.Status)
		assert.Equal(t, familyID, *p.FamilyID)
		assert.Equal(t, testNow, p.PaidDate)
		assert.Equal(t, 2024, p.TaxYear)
	}
}

func TestCreatePaymentSkipsCancelledSessions(t *testing.T) {
	svc, repo := newTestService(t)
	ctrl := gomock.NewController(t)
	familyID := uuid.New()

	live := billable(familyID, 2000, 8) // 16000
	cancelled := billable(familyID, 2000, 4)
	cancelled.Status = session.StatusCancelled

	// A stale id list may still name a cancelled session; even if the
	// fetch returns it, no paid row may be written for it.
	repo.EXPECT().
		GetBillableSessions(gomock.Any(), familyID, []uuid.UUID{live.ID, cancelled.ID}).
		Return([]*BillableSession{live, cancelled}, nil)

	ptx := NewMockPaymentTx(ctrl)
	repo.EXPECT().BeginPaymentBatch(gomock.Any()).Return(ptx, nil)

	var created []*Payment

	ptx.EXPECT().
		CreatePayments(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payments []*Payment) error {
			created = payments
			return nil
		})
	ptx.EXPECT().Commit().Return(nil)
	ptx.EXPECT().Rollback().Return(nil)

	result, err := svc.CreatePayment(context.Background(), CreatePaymentParams{
		FamilyID:   familyID,
		SessionIDs: []uuid.UUID{live.ID, cancelled.ID},
		Method:     "cash",
	})

	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, live.ID, *created[0].SessionID)
	assert.Equal(t, int64(16000), created[0].AmountCents)
	assert.Equal(t, int64(16000), result.TotalCents)
}

func TestCreatePaymentAllCancelled(t *testing.T) {
	svc, repo := newTestService(t)
	familyID := uuid.New()

	cancelled := billable(familyID, 2000, 4)
	cancelled.Status = session.StatusCancelled

	repo.EXPECT().
		GetBillableSessions(gomock.Any(), familyID, gomock.Any()).
		Return([]*BillableSession{cancelled}, nil)

	_, err := svc.CreatePayment(context.Background(), CreatePaymentParams{
		FamilyID:   familyID,
		SessionIDs: []uuid.UUID{cancelled.ID},
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePaymentNoSessions(t *testing.T) {
	svc, repo := newTestService(t)
	familyID := uuid.New()

	repo.EXPECT().
		GetBillableSessions(gomock.Any(), familyID, gomock.Any()).
		Return(nil, nil)

	_, err := svc.CreatePayment(context.Background(), CreatePaymentParams{
		FamilyID:   familyID,
		SessionIDs: []uuid.UUID{uuid.New()},
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePaymentNonPositiveTotal(t *testing.T) {
	svc, repo := newTestService(t)
	familyID := uuid.New()

	zeroRate := billable(familyID, 0, 8)

	repo.EXPECT().
		GetBillableSessions(gomock.Any(), familyID, gomock.Any()).
		Return([]*BillableSession{zeroRate}, nil)

	_, err := svc.CreatePayment(context.Background(), CreatePaymentParams{
		FamilyID:   familyID,
		SessionIDs: []uuid.UUID{zeroRate.ID},
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreatePaymentExplicitPaidDate(t *testing.T) {
	svc, repo := newTestService(t)
	ctrl := gomock.NewController(t)
	familyID := uuid.New()

	sess := billable(familyID, 2000, 8)
	paidDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().
		GetBillableSessions(gomock.Any(), familyID, gomock.Any()).
		Return([]*BillableSession{sess}, nil)

	ptx := NewMockPaymentTx(ctrl)
	repo.EXPECT().BeginPaymentBatch(gomock.Any()).Return(ptx, nil)

	var created []*Payment

	ptx.EXPECT().
		CreatePayments(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payments []*Payment) error {
			created = payments
			return nil
		})
	ptx.EXPECT().Commit().Return(nil)
	ptx.EXPECT().Rollback().Return(nil)

	_, err := svc.CreatePayment(context.Background(), CreatePaymentParams{
		FamilyID:   familyID,
		SessionIDs: []uuid.UUID{sess.ID},
		PaidDate:   &paidDate,
	})

	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, paidDate, created[0].PaidDate)
	// Tax year keys on when the payment was recorded.
	assert.Equal(t, 2024, created[0].TaxYear)
}

func TestUpdatePaymentStatus(t *testing.T) {
	svc, repo := newTestService(t)
	id := uuid.New()

	repo.EXPECT().UpdatePaymentStatus(gomock.Any(), id, PaymentOverdue).Return(nil)

	require.NoError(t, svc.UpdatePaymentStatus(context.Background(), id, PaymentOverdue))

	err := svc.UpdatePaymentStatus(context.Background(), id, PaymentStatus("refunded"))
	assert.ErrorIs(t, err, ErrValidation)
}
