package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/billing"
	"github.com/hannahwr/nestcare/internal/clock"
	"github.com/hannahwr/nestcare/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	// ListPaidPayments returns PAID payments with paid_date in [from, to).
	ListPaidPayments(ctx context.Context, from, to time.Time) ([]*PaymentRecord, error)
	// ListSessionExpenses returns expenses whose owning session's
	// scheduled start falls in [from, to). Deleted sessions are excluded.
	ListSessionExpenses(ctx context.Context, from, to time.Time) ([]*ExpenseRecord, error)
	// ListFamilySessions returns the family's non-deleted, non-cancelled
	// sessions starting in [from, to), with expenses and payments
	// attached.
	ListFamilySessions(ctx context.Context, familyID uuid.UUID, from, to time.Time) ([]*billing.BillableSession, error)
	// FamilyPaidCents sums the family's PAID payments with paid_date in
	// [from, to).
	FamilyPaidCents(ctx context.Context, familyID uuid.UUID, from, to time.Time) (int64, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Income builds the income report for a year, or for one month when
// month is non-nil.
func (s *Service) Income(ctx context.Context, year int, month *time.Month) (*IncomeReport, error) {
	var from, to time.Time
	if month != nil {
		from, to = clock.MonthRange(year, *month)
	} else {
		from, to = clock.YearRange(year)
	}

	payments, err := s.repo.ListPaidPayments(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list paid payments: %w", err)
	}

	expenses, err := s.repo.ListSessionExpenses(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list session expenses: %w", err)
	}

	report := &IncomeReport{
		Year:     year,
		Month:    month,
		ByMonth:  seedMonths(year, month),
		ByFamily: []FamilyIncome{},
	}

	byMonth := make(map[time.Month]*MonthlyIncome, len(report.ByMonth))
	for i := range report.ByMonth {
		byMonth[report.ByMonth[i].Month] = &report.ByMonth[i]
	}

	grossByFamily := make(map[uuid.UUID]*FamilyIncome)

	for _, p := range payments {
		report.GrossCents += p.AmountCents

		if m, ok := byMonth[p.PaidDate.UTC().Month()]; ok {
			m.GrossCents += p.AmountCents
		}

		// Tip-style payments without a family still count toward gross,
		// they just have no rollup row to live in.
		if p.FamilyID == nil {
			continue
		}

		fam, ok := grossByFamily[*p.FamilyID]
		if !ok {
			fam = &FamilyIncome{FamilyID: *p.FamilyID}
			grossByFamily[*p.FamilyID] = fam
		}

		fam.GrossCents += p.AmountCents
		fam.PaymentCount++
	}

	for _, e := range expenses {
		report.ExpenseCents += e.AmountCents

		if m, ok := byMonth[e.SessionStart.UTC().Month()]; ok {
			m.ExpenseCents += e.AmountCents
		}
	}

	report.NetCents = report.GrossCents - report.ExpenseCents

	for i := range report.ByMonth {
		report.ByMonth[i].NetCents = report.ByMonth[i].GrossCents - report.ByMonth[i].ExpenseCents
	}

	for _, fam := range grossByFamily {
		report.ByFamily = append(report.ByFamily, *fam)
	}

	sort.Slice(report.ByFamily, func(i, j int) bool {
		return report.ByFamily[i].GrossCents > report.ByFamily[j].GrossCents
	})

	return report, nil
}

// YearEnd builds one family's year-end statement.
func (s *Service) YearEnd(ctx context.Context, familyID uuid.UUID, year int) (*YearEndReport, error) {
	from, to := clock.YearRange(year)

	sessions, err := s.repo.ListFamilySessions(ctx, familyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list family sessions: %w", err)
	}

	report := &YearEndReport{
		FamilyID: familyID,
		Year:     year,
		Sessions: []SessionLine{},
	}

	totals := make([]int64, 0, len(sessions))

	var linkedPaid int64

	for _, sess := range sessions {
		line := SessionLine{
			SessionID:    sess.ID,
			StartTime:    sess.StartTime,
			EndTime:      sess.EndTime,
			Hours:        sess.Hours(),
			CostCents:    sess.CostCents(),
			ExpenseCents: sess.ExpenseTotalCents(),
			TotalCents:   sess.TotalCents(),
		}

		report.Sessions = append(report.Sessions, line)
		report.TotalHours += line.Hours
		totals = append(totals, line.TotalCents)

		for _, p := range sess.Payments {
			if p.Status == billing.PaymentPaid {
				linkedPaid += p.AmountCents
			}
		}
	}

	report.TotalHours = math.Round(report.TotalHours*100) / 100
	report.TotalCents = money.SumCents(totals)

	familyPaid, err := s.repo.FamilyPaidCents(ctx, familyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("family paid total: %w", err)
	}

	report.TotalPaidCents = max(linkedPaid, familyPaid)
	report.TotalOutstandingCents = report.TotalCents - report.TotalPaidCents

	return report, nil
}

// seedMonths pre-fills the per-month slices so empty months still show
// up as zero rows. A month-scoped report carries just that month.
func seedMonths(year int, month *time.Month) []MonthlyIncome {
	if month != nil {
		return []MonthlyIncome{{Year: year, Month: *month}}
	}

	months := make([]MonthlyIncome, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, MonthlyIncome{Year: year, Month: m})
	}

	return months
}
