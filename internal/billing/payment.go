package billing

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the settlement state of a payment record.
type PaymentStatus string

const (
	PaymentPaid      PaymentStatus = "paid"
	PaymentPending   PaymentStatus = "pending"
	PaymentOverdue   PaymentStatus = "overdue"
	PaymentCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPending, PaymentOverdue, PaymentCancelled:
		return true
	}

	return false
}

// Payment is one settlement row. A payment marks at most one originating
// session as paid; tip/bonus payments carry no session reference.
type Payment struct {
	ID            uuid.UUID
	FamilyID      *uuid.UUID
	SessionID     *uuid.UUID
	AmountCents   int64
	Status        PaymentStatus
	PaidDate      time.Time
	InvoiceNumber string
	Method        string
	Notes         string

	// TaxYear is the year the payment was recorded, not the session
	// year; year-end grouping keys on it.
	TaxYear int

	CreatedAt time.Time
	UpdatedAt *time.Time
}
