package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/money"
	"github.com/hannahwr/nestcare/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/income", h.income)
	r.Get("/year-end", h.yearEnd)
}

// Report endpoints expose dollars as JSON numbers; entity endpoints
// stay on cents.
type monthlyIncomeDTO struct {
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	GrossIncome float64 `json:"gross_income"`
	Expenses    float64 `json:"expenses"`
	NetIncome   float64 `json:"net_income"`
}

type familyIncomeDTO struct {
	FamilyID     uuid.UUID `json:"family_id"`
	GrossIncome  float64   `json:"gross_income"`
	PaymentCount int       `json:"payment_count"`
}

type incomeReportDTO struct {
	Year        int                `json:"year"`
	Month       *int               `json:"month,omitempty"`
	GrossIncome float64            `json:"gross_income"`
	Expenses    float64            `json:"expenses"`
	NetIncome   float64            `json:"net_income"`
	ByFamily    []familyIncomeDTO  `json:"by_family"`
	ByMonth     []monthlyIncomeDTO `json:"by_month"`
}

func toIncomeDTO(rep *report.IncomeReport) incomeReportDTO {
	dto := incomeReportDTO{
		Year:        rep.Year,
		GrossIncome: money.ToDollars(rep.GrossCents),
		Expenses:    money.ToDollars(rep.ExpenseCents),
		NetIncome:   money.ToDollars(rep.NetCents),
		ByFamily:    make([]familyIncomeDTO, 0, len(rep.ByFamily)),
		ByMonth:     make([]monthlyIncomeDTO, 0, len(rep.ByMonth)),
	}

	if rep.Month != nil {
		m := int(*rep.Month)
		dto.Month = &m
	}

	for _, f := range rep.ByFamily {
		dto.ByFamily = append(dto.ByFamily, familyIncomeDTO{
			FamilyID:     f.FamilyID,
			GrossIncome:  money.ToDollars(f.GrossCents),
			PaymentCount: f.PaymentCount,
		})
	}

	for _, m := range rep.ByMonth {
		dto.ByMonth = append(dto.ByMonth, monthlyIncomeDTO{
			Year:        m.Year,
			Month:       int(m.Month),
			GrossIncome: money.ToDollars(m.GrossCents),
			Expenses:    money.ToDollars(m.ExpenseCents),
			NetIncome:   money.ToDollars(m.NetCents),
		})
	}

	return dto
}

func (h *Handler) income(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "year query parameter is required", http.StatusBadRequest)
		return
	}

	var month *time.Month

	if s := r.URL.Query().Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			http.Error(w, "month must be 1-12", http.StatusBadRequest)
			return
		}

		month = new(time.Month(m))
	}

	rep, err := h.svc.Income(r.Context(), year, month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toIncomeDTO(rep)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type sessionLineDTO struct {
	SessionID uuid.UUID `json:"session_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Hours     float64   `json:"hours"`
	Cost      float64   `json:"cost"`
	Expenses  float64   `json:"expenses"`
	Total     float64   `json:"total"`
}

type yearEndDTO struct {
	FamilyID         uuid.UUID        `json:"family_id"`
	Year             int              `json:"year"`
	Sessions         []sessionLineDTO `json:"sessions"`
	TotalHours       float64          `json:"total_hours"`
	TotalAmount      float64          `json:"total_amount"`
	TotalPaid        float64          `json:"total_paid"`
	TotalOutstanding float64          `json:"total_outstanding"`
}

func (h *Handler) yearEnd(w http.ResponseWriter, r *http.Request) {
	familyID, err := uuid.Parse(r.URL.Query().Get("family_id"))
	if err != nil {
		http.Error(w, "family_id query parameter is required", http.StatusBadRequest)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "year query parameter is required", http.StatusBadRequest)
		return
	}

	rep, err := h.svc.YearEnd(r.Context(), familyID, year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := yearEndDTO{
		FamilyID:         rep.FamilyID,
		Year:             rep.Year,
		Sessions:         make([]sessionLineDTO, 0, len(rep.Sessions)),
		TotalHours:       rep.TotalHours,
		TotalAmount:      money.ToDollars(rep.TotalCents),
		TotalPaid:        money.ToDollars(rep.TotalPaidCents),
		TotalOutstanding: money.ToDollars(rep.TotalOutstandingCents),
	}
	for _, line := range rep.Sessions {
		dto.Sessions = append(dto.Sessions, sessionLineDTO{
			SessionID: line.SessionID,
			StartTime: line.StartTime,
			EndTime:   line.EndTime,
			Hours:     line.Hours,
			Cost:      money.ToDollars(line.CostCents),
			Expenses:  money.ToDollars(line.ExpenseCents),
			Total:     money.ToDollars(line.TotalCents),
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(dto); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
