package billing

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hannahwr/nestcare/internal/session"
)

func TestBillableSessionCostCents(t *testing.T) {
	start := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		rateCents *int64
		end       time.Time
		want      int64
	}{
		{
			name:      "whole hours",
			rateCents: new(int64(2000)),
			end:       start.Add(9 * time.Hour),
			want:      18000,
		},
		{
			name:      "fractional hours round to cent",
			rateCents: new(int64(2000)),
			end:       start.Add(100 * time.Minute), // 1.67h
			want:      3340,
		},
		{
			name:      "nil rate bills zero",
			rateCents: nil,
			end:       start.Add(8 * time.Hour),
			want:      0,
		},
		{
			name:      "zero span bills zero",
			rateCents: new(int64(2000)),
			end:       start,
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &BillableSession{
				StartTime: start,
				EndTime:   tt.end,
				RateCents: tt.rateCents,
			}

			assert.Equal(t, tt.want, sess.CostCents())
		})
	}
}

func TestBillableSessionTotalCents(t *testing.T) {
	start := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	sess := &BillableSession{
		StartTime:    start,
		EndTime:      start.Add(2 * time.Hour),
		RateCents:    new(int64(1750)),
		ExpenseCents: []int64{1250, 499},
	}

	assert.Equal(t, int64(3500), sess.CostCents())
	assert.Equal(t, int64(1749), sess.ExpenseTotalCents())
	assert.Equal(t, int64(5249), sess.TotalCents())
}

func TestBillableSessionUnpaid(t *testing.T) {
	tests := []struct {
		name      string
		status    session.Status
		confirmed bool
		payments  []*Payment
		want      bool
	}{
		{
			name:      "confirmed completed without payment",
			status:    session.StatusCompleted,
			confirmed: true,
			want:      true,
		},
		{
			name:      "confirmed scheduled without payment",
			status:    session.StatusScheduled,
			confirmed: true,
			want:      true,
		},
		{
			name:      "paid payment settles",
			status:    session.StatusCompleted,
			confirmed: true,
			payments:  []*Payment{{Status: PaymentPaid}},
			want:      false,
		},
		{
			name:      "pending payment does not settle",
			status:    session.StatusCompleted,
			confirmed: true,
			payments:  []*Payment{{Status: PaymentPending}},
			want:      true,
		},
		{
			name:      "unconfirmed never owes",
			status:    session.StatusCompleted,
			confirmed: false,
			want:      false,
		},
		{
			name:      "cancelled never owes",
			status:    session.StatusCancelled,
			confirmed: true,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &BillableSession{
				Status:    tt.status,
				Confirmed: tt.confirmed,
				Payments:  tt.payments,
			}

			assert.Equal(t, tt.want, sess.Unpaid())
		})
	}
}

func TestNewInvoicePrefix(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

	prefix := newInvoicePrefix(now)

	assert.Regexp(t, regexp.MustCompile(`^INV-20240615-\d{3}$`), prefix)
}

func TestPaymentStatusValid(t *testing.T) {
	assert.True(t, PaymentPaid.Valid())
	assert.True(t, PaymentPending.Valid())
	assert.True(t, PaymentOverdue.Valid())
	assert.True(t, PaymentCancelled.Valid())
	assert.False(t, PaymentStatus("refunded").Valid())
}
