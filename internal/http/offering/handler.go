package offering

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/offering"
)

type Handler struct {
	svc *offering.Service
}

func NewHandler(svc *offering.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Post("/{id}/deactivate", h.deactivate)
}

type offeringResponse struct {
	ID            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	PricingType   offering.PricingType `json:"pricing_type"`
	RateCents     *int64               `json:"rate_cents,omitempty"`
	RequiresChild bool                 `json:"requires_child"`
	Active        bool                 `json:"active"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     *time.Time           `json:"updated_at,omitempty"`
}

func toResponse(o *offering.Offering) offeringResponse {
	return offeringResponse{
		ID:            o.ID,
		Name:          o.Name,
		PricingType:   o.PricingType,
		RateCents:     o.RateCents,
		RequiresChild: o.RequiresChild,
		Active:        o.Active,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

type createOfferingRequest struct {
	Name          string               `json:"name"`
	PricingType   offering.PricingType `json:"pricing_type"`
	RateCents     *int64               `json:"rate_cents"`
	RequiresChild bool                 `json:"requires_child"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createOfferingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o, err := h.svc.Create(r.Context(), offering.CreateParams{
		Name:          req.Name,
		PricingType:   req.PricingType,
		RateCents:     req.RateCents,
		RequiresChild: req.RequiresChild,
	})
	if err != nil {
		if errors.Is(err, offering.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(o)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	offerings, err := h.svc.List(r.Context(), activeOnly)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]offeringResponse, len(offerings))
	for i, o := range offerings {
		resp[i] = toResponse(o)
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

	o, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, offering.ErrNotFound) {
			http.Error(w, "offering not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(o)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateOfferingRequest struct {
	Name          *string               `json:"name,omitempty"`
	PricingType   *offering.PricingType `json:"pricing_type,omitempty"`
	RateCents     *int64                `json:"rate_cents,omitempty"`
	RequiresChild *bool                 `json:"requires_child,omitempty"`
	Active        *bool                 `json:"active,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateOfferingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, offering.ErrNotFound) {
			http.Error(w, "offering not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		o.Name = *req.Name
	}

	if req.PricingType != nil {
		o.PricingType = *req.PricingType
	}

	if req.RateCents != nil {
		o.RateCents = req.RateCents
	}

	if req.RequiresChild != nil {
		o.RequiresChild = *req.RequiresChild
	}

	if req.Active != nil {
		o.Active = *req.Active
	}

	if err := h.svc.Update(r.Context(), o); err != nil {
		if errors.Is(err, offering.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(o)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, offering.ErrNotFound) {
			http.Error(w, "offering not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
