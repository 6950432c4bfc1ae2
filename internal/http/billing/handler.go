package billing

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/billing"
)

type Handler struct {
	svc *billing.Service
}

func NewHandler(svc *billing.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
	r.Delete("/{id}", h.delete)
}

// UnpaidRoutes mounts the per-family unpaid-session listing.
func (h *Handler) UnpaidRoutes(r chi.Router) {
	r.Get("/{id}/unpaid-sessions", h.unpaidSessions)
}

type paymentResponse struct {
	ID            uuid.UUID             `json:"id"`
	FamilyID      *uuid.UUID            `json:"family_id,omitempty"`
	SessionID     *uuid.UUID            `json:"session_id,omitempty"`
	AmountCents   int64                 `json:"amount_cents"`
	Status        billing.PaymentStatus `json:"status"`
	PaidDate      time.Time             `json:"paid_date"`
	InvoiceNumber string                `json:"invoice_number"`
	Method        string                `json:"method,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	TaxYear       int                   `json:"tax_year"`
	CreatedAt     time.Time             `json:"created_at"`
}

func toResponse(p *billing.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		FamilyID:      p.FamilyID,
		SessionID:     p.SessionID,
		AmountCents:   p.AmountCents,
		Status:        p.Status,
		PaidDate:      p.PaidDate,
		InvoiceNumber: p.InvoiceNumber,
		Method:        p.Method,
		Notes:         p.Notes,
		TaxYear:       p.TaxYear,
		CreatedAt:     p.CreatedAt,
	}
}

type createPaymentRequest struct {
	FamilyID   uuid.UUID   `json:"family_id"`
	SessionIDs []uuid.UUID `json:"session_ids"`
	TipCents   int64       `json:"tip_cents"`
	Method     string      `json:"method"`
	PaidDate   *time.Time  `json:"paid_date"`
	Notes      string      `json:"notes"`
}

type createPaymentResponse struct {
	PaymentIDs    []uuid.UUID `json:"payment_ids"`
	InvoicePrefix string      `json:"invoice_prefix"`
	TotalCents    int64       `json:"total_cents"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.CreatePayment(r.Context(), billing.CreatePaymentParams{
		FamilyID:   req.FamilyID,
		SessionIDs: req.SessionIDs,
		TipCents:   req.TipCents,
		Method:     req.Method,
		PaidDate:   req.PaidDate,
		Notes:      req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, billing.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	resp := createPaymentResponse{
		PaymentIDs:    make([]uuid.UUID, 0, len(result.Payments)),
		InvoicePrefix: result.InvoicePrefix,
		TotalCents:    result.TotalCents,
	}
	for _, p := range result.Payments {
		resp.PaymentIDs = append(resp.PaymentIDs, p.ID)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := billing.PaymentFilter{}

	if s := r.URL.Query().Get("family_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.FamilyID = &id
		}
	}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(billing.PaymentStatus(s))
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	if s := r.URL.Query().Get("tax_year"); s != "" {
		if year, err := strconv.Atoi(s); err == nil {
			filter.TaxYear = &year
		}
	}

	payments, err := h.svc.ListPayments(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toResponse(p)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.GetPayment(r.Context(), id)
	if err != nil {
		if errors.Is(err, billing.ErrNotFound) {
			http.Error(w, "payment not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateStatusRequest struct {
	Status billing.PaymentStatus `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdatePaymentStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, billing.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeletePayment(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type unpaidSessionResponse struct {
	ID           uuid.UUID `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Hours        float64   `json:"hours"`
	RateCents    *int64    `json:"rate_cents,omitempty"`
	CostCents    int64     `json:"cost_cents"`
	ExpenseCents int64     `json:"expense_cents"`
	TotalCents   int64     `json:"total_cents"`
}

func (h *Handler) unpaidSessions(w http.ResponseWriter, r *http.Request) {
	familyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid family id", http.StatusBadRequest)
		return
	}

	sessions, err := h.svc.UnpaidSessions(r.Context(), familyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]unpaidSessionResponse, len(sessions))
	for i, s := range sessions {
		resp[i] = unpaidSessionResponse{
			ID:           s.ID,
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
			Hours:        s.Hours(),
			RateCents:    s.RateCents,
			CostCents:    s.CostCents(),
			ExpenseCents: s.ExpenseTotalCents(),
			TotalCents:   s.TotalCents(),
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
