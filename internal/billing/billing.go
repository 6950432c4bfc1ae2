// Package billing computes what families owe and turns settled sessions
// into payment records.
package billing

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/clock"
	"github.com/hannahwr/nestcare/internal/money"
	"github.com/hannahwr/nestcare/internal/session"
)

// BillableSession is the billing view of a session: the captured rate,
// the time window, and the expenses and payments hanging off it.
type BillableSession struct {
	ID        uuid.UUID
	FamilyID  uuid.UUID
	StartTime time.Time
	EndTime   time.Time

	// RateCents is the effective hourly rate captured at session
	// creation; it is already the total rate (child multipliers applied
	// then), so cost math never re-multiplies by head count.
	RateCents *int64

	Status    session.Status
	Confirmed bool

	ExpenseCents []int64
	Payments     []*Payment
}

// Hours is the session's elapsed time in hours, rounded to 2 decimals.
func (b *BillableSession) Hours() float64 {
	return clock.Hours(b.StartTime, b.EndTime)
}

// CostCents is hours × captured rate, exact to the cent. A missing rate
// bills as zero; expenses still count.
func (b *BillableSession) CostCents() int64 {
	if b.RateCents == nil {
		return 0
	}

	return money.MultiplyCents(*b.RateCents, b.Hours())
}

// ExpenseTotalCents sums the session's attached expenses.
func (b *BillableSession) ExpenseTotalCents() int64 {
	return money.SumCents(b.ExpenseCents)
}

// TotalCents is the full charge for the session: hourly cost plus
// expenses.
func (b *BillableSession) TotalCents() int64 {
	return b.CostCents() + b.ExpenseTotalCents()
}

// HasPaidPayment reports whether any attached payment settled.
func (b *BillableSession) HasPaidPayment() bool {
	for _, p := range b.Payments {
		if p.Status == PaymentPaid {
			return true
		}
	}

	return false
}

// Unpaid is the billing predicate: confirmed, in a billable status, and
// not yet covered by a paid payment. Cancelled sessions are never unpaid.
func (b *BillableSession) Unpaid() bool {
	return b.Confirmed && b.Status.Billable() && !b.HasPaidPayment()
}

// newInvoicePrefix builds the shared invoice number for one payment
// batch: INV-YYYYMMDD-RRR with a zero-padded 3-digit random suffix.
func newInvoicePrefix(now time.Time) string {
	return fmt.Sprintf("INV-%s-%03d", now.Format("20060102"), rand.IntN(1000))
}
