package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/clock"
	"github.com/hannahwr/nestcare/internal/money"
	"github.com/hannahwr/nestcare/internal/session"
)

var (
	ErrNotFound   = errors.New("no sessions found for payment")
	ErrValidation = errors.New("invalid payment input")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=billing
type Repository interface {
	// ListBillableSessions returns the family's non-deleted,
	// non-cancelled sessions with expenses and payments attached.
	ListBillableSessions(ctx context.Context, familyID uuid.UUID) ([]*BillableSession, error)
	// GetBillableSessions fetches specific sessions, restricted to the
	// given family. Unknown, foreign, or cancelled ids are simply absent
	// from the result.
	GetBillableSessions(ctx context.Context, familyID uuid.UUID, ids []uuid.UUID) ([]*BillableSession, error)

	BeginPaymentBatch(ctx context.Context) (PaymentTx, error)

	GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error)
	ListPayments(ctx context.Context, filter PaymentFilter) ([]*Payment, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status PaymentStatus) error
	DeletePayment(ctx context.Context, id uuid.UUID) error
}

// PaymentTx writes a payment batch atomically: either every row of a
// createPayment call lands or none do. Partial batches must never be
// visible to readers.
type PaymentTx interface {
	CreatePayments(ctx context.Context, payments []*Payment) error
	Commit() error
	Rollback() error
}

type PaymentFilter struct {
	FamilyID  *uuid.UUID
	Status    *PaymentStatus
	StartDate *time.Time
	EndDate   *time.Time
	TaxYear   *int
}

type Service struct {
	repo Repository
	clk  clock.Clock
}

func NewService(repo Repository, clk clock.Clock) *Service {
	return &Service{repo: repo, clk: clk}
}

// UnpaidSessions lists the family's confirmed, billable, not-yet-paid
// sessions. The same predicate backs the amount-owed aggregate and the
// payment-creation session picker.
func (s *Service) UnpaidSessions(ctx context.Context, familyID uuid.UUID) ([]*BillableSession, error) {
	sessions, err := s.repo.ListBillableSessions(ctx, familyID)
	if err != nil {
		return nil, err
	}

	var unpaid []*BillableSession

	for _, sess := range sessions {
		if sess.Unpaid() {
			unpaid = append(unpaid, sess)
		}
	}

	return unpaid, nil
}

// FamilyAmountOwed sums rate×hours over the family's unpaid sessions,
// in cents. Expenses are deliberately excluded here: the owed figure
// reflects billable hourly time only, while payment creation and the
// year-end report charge expenses too.
func (s *Service) FamilyAmountOwed(ctx context.Context, familyID uuid.UUID) (int64, error) {
	unpaid, err := s.UnpaidSessions(ctx, familyID)
	if err != nil {
		return 0, err
	}

	costs := make([]int64, 0, len(unpaid))
	for _, sess := range unpaid {
		costs = append(costs, sess.CostCents())
	}

	return money.SumCents(costs), nil
}

type CreatePaymentParams struct {
	FamilyID uuid.UUID
	// SessionIDs order is preserved: invoice sub-numbers -01, -02, …
	// follow the supplied order, not a sorted one.
	SessionIDs []uuid.UUID
	TipCents   int64
	Method     string
	PaidDate   *time.Time
	Notes      string
}

// CreatePaymentResult reports one settled batch.
type CreatePaymentResult struct {
	Payments      []*Payment
	InvoicePrefix string
	TotalCents    int64
}

// CreatePayment settles a set of sessions: one PAID payment row per
// session (amount = that session's hourly cost plus expenses) and an
// optional standalone tip row, all sharing one invoice prefix and
// written in one transaction.
func (s *Service) CreatePayment(ctx context.Context, params CreatePaymentParams) (*CreatePaymentResult, error) {
	fetched, err := s.repo.GetBillableSessions(ctx, params.FamilyID, params.SessionIDs)
	if err != nil {
		return nil, err
	}

	if len(fetched) == 0 {
		return nil, fmt.Errorf("%w: family %s", ErrNotFound, params.FamilyID)
	}

	byID := make(map[uuid.UUID]*BillableSession, len(fetched))
	for _, sess := range fetched {
		byID[sess.ID] = sess
	}

	// Re-walk the supplied ids so sub-numbering follows caller order.
	// Cancelled sessions are dropped here too: the store excludes them,
	// but a PAID row must never be written for one regardless of where
	// the fetched set came from.
	var sessions []*BillableSession

	for _, id := range params.SessionIDs {
		sess, ok := byID[id]
		if !ok || sess.Status == session.StatusCancelled {
			continue
		}

		sessions = append(sessions, sess)
	}

	if len(sessions) == 0 {
		return nil, fmt.Errorf("%w: family %s", ErrNotFound, params.FamilyID)
	}

	totals := make([]int64, 0, len(sessions))
	for _, sess := range sessions {
		totals = append(totals, sess.TotalCents())
	}

	grand := money.SumCents(totals)
	if params.TipCents > 0 {
		grand += params.TipCents
	}

	if grand <= 0 {
		return nil, fmt.Errorf("%w: total payment amount must be positive", ErrValidation)
	}

	now := s.clk.Now()

	paidDate := now
	if params.PaidDate != nil {
		paidDate = params.PaidDate.UTC()
	}

	prefix := newInvoicePrefix(now)
	familyID := params.FamilyID

	var payments []*Payment

	for i, sess := range sessions {
		sessID := sess.ID
		payments = append(payments, &Payment{
			FamilyID:      &familyID,
			SessionID:     &sessID,
			AmountCents:   totals[i],
			Status:        PaymentPaid,
			PaidDate:      paidDate,
			InvoiceNumber: fmt.Sprintf("%s-%02d", prefix, i+1),
			Method:        params.Method,
			Notes:         params.Notes,
			TaxYear:       now.Year(),
		})
	}

	if params.TipCents > 0 {
		notes := "Tips/Bonus"
		if params.Notes != "" {
			notes = "Tips/Bonus - " + params.Notes
		}

		payments = append(payments, &Payment{
			FamilyID:      &familyID,
			AmountCents:   params.TipCents,
			Status:        PaymentPaid,
			PaidDate:      paidDate,
			InvoiceNumber: prefix + "-TIPS",
			Method:        params.Method,
			Notes:         notes,
			TaxYear:       now.Year(),
		})
	}

	ptx, err := s.repo.BeginPaymentBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin payment batch: %w", err)
	}
	defer ptx.Rollback()

	if err := ptx.CreatePayments(ctx, payments); err != nil {
		return nil, fmt.Errorf("create payments: %w", err)
	}

	if err := ptx.Commit(); err != nil {
		return nil, fmt.Errorf("commit payment batch: %w", err)
	}

	return &CreatePaymentResult{
		Payments:      payments,
		InvoicePrefix: prefix,
		TotalCents:    grand,
	}, nil
}

func (s *Service) GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return s.repo.GetPayment(ctx, id)
}

func (s *Service) ListPayments(ctx context.Context, filter PaymentFilter) ([]*Payment, error) {
	return s.repo.ListPayments(ctx, filter)
}

func (s *Service) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status PaymentStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown payment status %q", ErrValidation, status)
	}

	return s.repo.UpdatePaymentStatus(ctx, id, status)
}

func (s *Service) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeletePayment(ctx, id)
}
