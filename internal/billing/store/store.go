package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/billing"
	"github.com/hannahwr/nestcare/internal/session"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPayment(sc scanner) (*billing.Payment, error) {
	var p billing.Payment

	var status string

	var method, notes sql.NullString

	if err := sc.Scan(
		&p.ID, &p.FamilyID, &p.SessionID, &p.AmountCents, &status,
		&p.PaidDate, &p.InvoiceNumber, &method, &notes, &p.TaxYear,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Status = billing.PaymentStatus(status)
	p.Method = method.String
	p.Notes = notes.String

	return &p, nil
}

const selectPaymentColumns = `
	p.id, p.family_id, p.session_id, p.amount_cents, p.status,
	p.paid_date, p.invoice_number, p.method, p.notes, p.tax_year,
	p.created_at, p.updated_at
`

// billableSessionQuery pulls sessions for the billing view; cancelled
// and soft-deleted rows are excluded at the source since they can never
// be unpaid.
const billableSessionQuery = `
	SELECT s.id, s.family_id, s.start_time, s.end_time, s.rate_cents, s.status, s.confirmed
	FROM sessions s
	WHERE s.deleted_at IS NULL AND s.status != 'cancelled' AND s.family_id = $1
`

func (s *Store) scanBillableSessions(ctx context.Context, rows *sql.Rows) ([]*billing.BillableSession, error) {
	defer rows.Close()

	var sessions []*billing.BillableSession

	for rows.Next() {
		var b billing.BillableSession

		var status string

		var rate sql.NullInt64

		if err := rows.Scan(
			&b.ID, &b.FamilyID, &b.StartTime, &b.EndTime, &rate, &status, &b.Confirmed,
		); err != nil {
			return nil, fmt.Errorf("scanning billable session: %w", err)
		}

		b.Status = session.Status(status)
		if rate.Valid {
			b.RateCents = &rate.Int64
		}

		sessions = append(sessions, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating billable sessions: %w", err)
	}

	for _, b := range sessions {
		if err := s.attachBillingData(ctx, b); err != nil {
			return nil, err
		}
	}

	return sessions, nil
}

func (s *Store) attachBillingData(ctx context.Context, b *billing.BillableSession) error {
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

	payQuery := `SELECT ` + selectPaymentColumns + `
		FROM payments p
		WHERE p.session_id = $1`

	payRows, err := s.db.QueryContext(ctx, payQuery, b.ID)
	if err != nil {
		return fmt.Errorf("loading session payments: %w", err)
	}
	defer payRows.Close()

	for payRows.Next() {
		p, err := scanPayment(payRows)
		if err != nil {
			return fmt.Errorf("scanning payment: %w", err)
		}

		b.Payments = append(b.Payments, p)
	}

	return payRows.Err()
}

func (s *Store) ListBillableSessions(ctx context.Context, familyID uuid.UUID) ([]*billing.BillableSession, error) {
	query := billableSessionQuery + ` ORDER BY s.start_time ASC`

	rows, err := s.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("listing billable sessions: %w", err)
	}

	return s.scanBillableSessions(ctx, rows)
}

func (s *Store) GetBillableSessions(ctx context.Context, familyID uuid.UUID, ids []uuid.UUID) ([]*billing.BillableSession, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := billableSessionQuery + ` AND s.id = ANY($2::uuid[])`

	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}

	rows, err := s.db.QueryContext(ctx, query, familyID, pgUUIDArray(idStrings))
	if err != nil {
		return nil, fmt.Errorf("getting billable sessions: %w", err)
	}

	return s.scanBillableSessions(ctx, rows)
}

// pgUUIDArray renders ids as a Postgres array literal; the pgx stdlib
// driver passes it through as text and the explicit ::uuid[] cast at
// the call site fixes the parameter type instead of leaving it to
// server-side inference.
func pgUUIDArray(ids []string) string {
	out := "{"
	for i, id := range ids {
		if i > 0 {
			out += ","
		}

		out += id
	}

	return out + "}"
}

type paymentTx struct {
	tx *sql.Tx
}

func (s *Store) BeginPaymentBatch(ctx context.Context) (billing.PaymentTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning payment tx: %w", err)
	}

	return &paymentTx{tx: tx}, nil
}

func (p *paymentTx) Commit() error   { return p.tx.Commit() }
func (p *paymentTx) Rollback() error { return p.tx.Rollback() }

func (p *paymentTx) CreatePayments(ctx context.Context, payments []*billing.Payment) error {
	query := `
		INSERT INTO payments (
			family_id, session_id, amount_cents, status, paid_date,
			invoice_number, method, notes, tax_year, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	for _, pay := range payments {
		err := p.tx.QueryRowContext(ctx, query,
			pay.FamilyID, pay.SessionID, pay.AmountCents, pay.Status, pay.PaidDate,
			pay.InvoiceNumber, pay.Method, pay.Notes, pay.TaxYear,
		).Scan(&pay.ID, &pay.CreatedAt, &pay.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating payment: %w", err)
		}
	}

	return nil
}

func (s *Store) GetPayment(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + ` FROM payments p WHERE p.id = $1`

	p, err := scanPayment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, billing.ErrNotFound
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	return p, nil
}

func (s *Store) ListPayments(ctx context.Context, filter billing.PaymentFilter) ([]*billing.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + ` FROM payments p WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.FamilyID != nil {
		query += fmt.Sprintf(" AND p.family_id = $%d", argIdx)

		args = append(args, *filter.FamilyID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND p.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND p.paid_date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND p.paid_date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.TaxYear != nil {
		query += fmt.Sprintf(" AND p.tax_year = $%d", argIdx)

		args = append(args, *filter.TaxYear)
		argIdx++
	}

	query += " ORDER BY p.paid_date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*billing.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (s *Store) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status billing.PaymentStatus) error {
	query := `
		UPDATE payments
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := s.db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("updating payment status: %w", err)
	}

	return nil
}

func (s *Store) DeletePayment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE id = $1", id); err != nil {
		return fmt.Errorf("deleting payment: %w", err)
	}

	return nil
}
