// Package report aggregates payments, sessions, and expenses into income
// and year-end summaries.
package report

import (
	"time"

	"github.com/google/uuid"
)

// PaymentRecord is the report view of a settled payment. A nil FamilyID
// marks income with no family attribution (it still counts toward gross,
// just not toward any family rollup).
type PaymentRecord struct {
	FamilyID    *uuid.UUID
	AmountCents int64
	PaidDate    time.Time
}

// ExpenseRecord is an expense anchored to its session's scheduled start.
// Income reporting attributes expenses by session date while payments go
// by paid date; the two anchors differ on purpose.
type ExpenseRecord struct {
	FamilyID     uuid.UUID
	SessionStart time.Time
	AmountCents  int64
}

// MonthlyIncome is one calendar month's slice of an income report.
type MonthlyIncome struct {
	Year         int
	Month        time.Month
	GrossCents   int64
	ExpenseCents int64
	NetCents     int64
}

// FamilyIncome is one family's rollup within an income report.
type FamilyIncome struct {
	FamilyID     uuid.UUID
	GrossCents   int64
	PaymentCount int
}

// IncomeReport covers one year or one month within a year. For a
// year-wide report ByMonth always holds all 12 months, zero-filled where
// nothing happened.
type IncomeReport struct {
	Year         int
	Month        *time.Month
	GrossCents   int64
	ExpenseCents int64
	NetCents     int64
	ByFamily     []FamilyIncome
	ByMonth      []MonthlyIncome
}

// SessionLine is one session's row in a year-end report.
type SessionLine struct {
	SessionID    uuid.UUID
	StartTime    time.Time
	EndTime      time.Time
	Hours        float64
	CostCents    int64
	ExpenseCents int64
	TotalCents   int64
}

// YearEndReport summarizes one family's year. TotalPaidCents reconciles
// two attribution paths (payments linked to the year's sessions vs. all
// family payments paid within the year) by taking the larger, since
// either path alone can undercount. TotalOutstandingCents is not
// clamped; an overpaid family shows negative.
type YearEndReport struct {
	FamilyID              uuid.UUID
	Year                  int
	Sessions              []SessionLine
	TotalHours            float64
	TotalCents            int64
	TotalPaidCents        int64
	TotalOutstandingCents int64
}
