package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/billing"
	"github.com/hannahwr/nestcare/internal/report"
	"github.com/hannahwr/nestcare/internal/session"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListPaidPayments(ctx context.Context, from, to time.Time) ([]*report.PaymentRecord, error) {
	query := `
		SELECT family_id, amount_cents, paid_date
		FROM payments
		WHERE status = 'paid' AND paid_date >= $1 AND paid_date < $2
		ORDER BY paid_date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing paid payments: %w", err)
	}
	defer rows.Close()

	var records []*report.PaymentRecord

	for rows.Next() {
		var r report.PaymentRecord

		if err := rows.Scan(&r.FamilyID, &r.AmountCents, &r.PaidDate); err != nil {
			return nil, fmt.Errorf("scanning paid payment: %w", err)
		}

		records = append(records, &r)
	}

	return records, rows.Err()
}

func (s *Store) ListSessionExpenses(ctx context.Context, from, to time.Time) ([]*report.ExpenseRecord, error) {
	// Anchored on the session's scheduled start, not the expense's own
	// creation time.
	query := `
		SELECT s.family_id, s.start_time, e.amount_cents
		FROM expenses e
		JOIN sessions s ON s.id = e.session_id
		WHERE s.deleted_at IS NULL AND s.start_time >= $1 AND s.start_time < $2
	`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing session expenses: %w", err)
	}
	defer rows.Close()

	var records []*report.ExpenseRecord

	for rows.Next() {
		var r report.ExpenseRecord

		if err := rows.Scan(&r.FamilyID, &r.SessionStart, &r.AmountCents); err != nil {
			return nil, fmt.Errorf("scanning session expense: %w", err)
		}

		records = append(records, &r)
	}

	return records, rows.Err()
}

func (s *Store) ListFamilySessions(ctx context.Context, familyID uuid.UUID, from, to time.Time) ([]*billing.BillableSession, error) {
	query := `
		SELECT s.id, s.family_id, s.start_time, s.end_time, s.rate_cents, s.status, s.confirmed
		FROM sessions s
		WHERE s.deleted_at IS NULL
			AND s.family_id = $1
			AND s.status != 'cancelled'
			AND s.start_time >= $2 AND s.start_time < $3
		ORDER BY s.start_time ASC
	`

	rows, err := s.db.QueryContext(ctx, query, familyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing family sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*billing.BillableSession

	for rows.Next() {
		var b billing.BillableSession

		var status string

		var rate sql.NullInt64

		if err := rows.Scan(
			&b.ID, &b.FamilyID, &b.StartTime, &b.EndTime, &rate, &status, &b.Confirmed,
		); err != nil {
			return nil, fmt.Errorf("scanning family session: %w", err)
		}

		b.Status = session.Status(status)
		if rate.Valid {
			b.RateCents = &rate.Int64
		}

		sessions = append(sessions, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating family sessions: %w", err)
	}

	for _, b := range sessions {
		if err := s.attachSessionData(ctx, b); err != nil {
			return nil, err
		}
	}

	return sessions, nil
}

func (s *Store) attachSessionData(ctx context.Context, b *billing.BillableSession) error {
	expRows, err := s.db.QueryContext(ctx,
		"SELECT amount_cents FROM expenses WHERE session_id = $1", b.ID)
	if err != nil {
		return fmt.Errorf("loading session expenses: %w", err)
	}
	defer expRows.Close()

	for expRows.Next() {
		var cents int64
		if err := expRows.Scan(&cents); err != nil {
			return fmt.Errorf("scanning expense amount: %w", err)
		}

		b.ExpenseCents = append(b.ExpenseCents, cents)
	}

	if err := expRows.Err(); err != nil {
		return fmt.Errorf("iterating expenses: %w", err)
	}

	payQuery := `
		SELECT id, family_id, session_id, amount_cents, status, paid_date, invoice_number, tax_year
		FROM payments
		WHERE session_id = $1
	`

	payRows, err := s.db.QueryContext(ctx, payQuery, b.ID)
	if err != nil {
		return fmt.Errorf("loading session payments: %w", err)
	}
	defer payRows.Close()

	for payRows.Next() {
		var p billing.Payment

		var status string

		if err := payRows.Scan(
			&p.ID, &p.FamilyID, &p.SessionID, &p.AmountCents, &status,
			&p.PaidDate, &p.InvoiceNumber, &p.TaxYear,
		); err != nil {
			return fmt.Errorf("scanning session payment: %w", err)
		}

		p.Status = billing.PaymentStatus(status)
		b.Payments = append(b.Payments, &p)
	}

	return payRows.Err()
}

func (s *Store) FamilyPaidCents(ctx context.Context, familyID uuid.UUID, from, to time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM payments
		WHERE family_id = $1 AND status = 'paid' AND paid_date >= $2 AND paid_date < $3
	`

	var total int64
	if err := s.db.QueryRowContext(ctx, query, familyID, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing family payments: %w", err)
	}

	return total, nil
}
