package schedule

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/schedule"
)

type Handler struct {
	svc *schedule.Service

	// defaultOffset fills in for requests that do not state the
	// caller's UTC offset.
	defaultOffset int
}

func NewHandler(svc *schedule.Service, defaultOffsetMinutes int) *Handler {
	return &Handler{svc: svc, defaultOffset: defaultOffsetMinutes}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Post("/{id}/active", h.setActive)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/generate", h.generate)
}

// UnavailabilityRoutes mounts the caregiver block-out endpoints.
func (h *Handler) UnavailabilityRoutes(r chi.Router) {
	r.Post("/", h.addUnavailability)
	r.Get("/", h.conflicts)
	r.Delete("/{id}", h.removeUnavailability)
}

type scheduleResponse struct {
	ID             uuid.UUID        `json:"id"`
	FamilyID       uuid.UUID        `json:"family_id"`
	OfferingID     uuid.UUID        `json:"offering_id"`
	Pattern        schedule.Pattern `json:"pattern"`
	Weekdays       []string         `json:"weekdays"`
	StartTimeOfDay string           `json:"start_time_of_day"`
	EndTimeOfDay   string           `json:"end_time_of_day"`
	StartDate      time.Time        `json:"start_date"`
	EndDate        *time.Time       `json:"end_date,omitempty"`
	FixedRateCents *int64           `json:"fixed_rate_cents,omitempty"`
	Active         bool             `json:"active"`
	ChildIDs       []uuid.UUID      `json:"child_ids"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      *time.Time       `json:"updated_at,omitempty"`
}

func toResponse(s *schedule.Schedule) scheduleResponse {
	weekdays := make([]string, len(s.Weekdays))
	for i, d := range s.Weekdays {
		weekdays[i] = schedule.WeekdayName(d)
	}

	return scheduleResponse{
		ID:             s.ID,
		FamilyID:       s.FamilyID,
		OfferingID:     s.OfferingID,
		Pattern:        s.Pattern,
		Weekdays:       weekdays,
		StartTimeOfDay: s.StartTimeOfDay,
		EndTimeOfDay:   s.EndTimeOfDay,
		StartDate:      s.StartDate,
		EndDate:        s.EndDate,
		FixedRateCents: s.FixedRateCents,
		Active:         s.Active,
		ChildIDs:       s.ChildIDs,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

type createScheduleRequest struct {
	FamilyID        uuid.UUID   `json:"family_id"`
	OfferingID      uuid.UUID   `json:"offering_id"`
	Pattern         string      `json:"pattern"`
	Weekdays        []string    `json:"weekdays"`
	StartTimeOfDay  string      `json:"start_time_of_day"`
	EndTimeOfDay    string      `json:"end_time_of_day"`
	StartDate       string      `json:"start_date"`
	EndDate         *string     `json:"end_date"`
	FixedRateCents  *int64      `json:"fixed_rate_cents"`
	ChildIDs        []uuid.UUID `json:"child_ids"`
	TZOffsetMinutes *int        `json:"tz_offset_minutes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	weekdays := make([]time.Weekday, 0, len(req.Weekdays))

	for _, name := range req.Weekdays {
		d, err := schedule.ParseWeekday(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		weekdays = append(weekdays, d)
	}

	startDate, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		http.Error(w, "invalid start_date", http.StatusBadRequest)
		return
	}

	var endDate *time.Time

	if req.EndDate != nil {
		t, err := time.Parse(time.DateOnly, *req.EndDate)
		if err != nil {
			http.Error(w, "invalid end_date", http.StatusBadRequest)
			return
		}

		endDate = &t
	}

	offset := h.defaultOffset
	if req.TZOffsetMinutes != nil {
		offset = *req.TZOffsetMinutes
	}

	sched, err := h.svc.Create(r.Context(), schedule.CreateParams{
		FamilyID:       req.FamilyID,
		OfferingID:     req.OfferingID,
		Pattern:        schedule.Pattern(req.Pattern),
		Weekdays:       weekdays,
		StartTimeOfDay: req.StartTimeOfDay,
		EndTimeOfDay:   req.EndTimeOfDay,
		StartDate:      startDate,
		EndDate:        endDate,
		FixedRateCents: req.FixedRateCents,
		ChildIDs:       req.ChildIDs,
		OffsetMinutes:  offset,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, schedule.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(sched)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	schedules, err := h.svc.List(r.Context(), activeOnly)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]scheduleResponse, len(schedules))
	for i, s := range schedules {
		resp[i] = toResponse(s)
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

	sched, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			http.Error(w, "schedule not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(sched)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateScheduleRequest struct {
	Weekdays       []string    `json:"weekdays,omitempty"`
	StartTimeOfDay *string     `json:"start_time_of_day,omitempty"`
	EndTimeOfDay   *string     `json:"end_time_of_day,omitempty"`
	EndDate        *string     `json:"end_date,omitempty"`
	FixedRateCents *int64      `json:"fixed_rate_cents,omitempty"`
	ChildIDs       []uuid.UUID `json:"child_ids,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sched, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			http.Error(w, "schedule not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Weekdays != nil {
		weekdays := make([]time.Weekday, 0, len(req.Weekdays))

		for _, name := range req.Weekdays {
			d, err := schedule.ParseWeekday(name)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			weekdays = append(weekdays, d)
		}

		sched.Weekdays = weekdays
	}

	if req.StartTimeOfDay != nil {
		sched.StartTimeOfDay = *req.StartTimeOfDay
	}

	if req.EndTimeOfDay != nil {
		sched.EndTimeOfDay = *req.EndTimeOfDay
	}

	if req.EndDate != nil {
		t, err := time.Parse(time.DateOnly, *req.EndDate)
		if err != nil {
			http.Error(w, "invalid end_date", http.StatusBadRequest)
			return
		}

		sched.EndDate = &t
	}

	if req.FixedRateCents != nil {
		sched.FixedRateCents = req.FixedRateCents
	}

	if req.ChildIDs != nil {
		sched.ChildIDs = req.ChildIDs
	}

	if err := h.svc.Update(r.Context(), sched); err != nil {
		if errors.Is(err, schedule.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(sched)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SetActive(r.Context(), id, req.Active); err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			http.Error(w, "schedule not found", http.StatusNotFound)
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

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type generateRequest struct {
	From            string `json:"from"`
	To              string `json:"to"`
	TZOffsetMinutes *int   `json:"tz_offset_minutes"`
}

type generateResponse struct {
	CreatedCount int `json:"created_count"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	from, err := time.Parse(time.DateOnly, req.From)
	if err != nil {
		http.Error(w, "invalid from date", http.StatusBadRequest)
		return
	}

	to, err := time.Parse(time.DateOnly, req.To)
	if err != nil {
		http.Error(w, "invalid to date", http.StatusBadRequest)
		return
	}

	offset := h.defaultOffset
	if req.TZOffsetMinutes != nil {
		offset = *req.TZOffsetMinutes
	}

	result, err := h.svc.Generate(r.Context(), id, from, to, offset)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrNotFound):
			http.Error(w, "schedule not found", http.StatusNotFound)
		case errors.Is(err, schedule.ErrInactive):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, schedule.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(generateResponse{CreatedCount: result.Count}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type unavailabilityResponse struct {
	ID        uuid.UUID `json:"id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	StartTime *string   `json:"start_time,omitempty"`
	EndTime   *string   `json:"end_time,omitempty"`
	AllDay    bool      `json:"all_day"`
	Reason    string    `json:"reason,omitempty"`
}

func toUnavailabilityResponse(u *schedule.Unavailability) unavailabilityResponse {
	return unavailabilityResponse{
		ID:        u.ID,
		StartDate: u.StartDate,
		EndDate:   u.EndDate,
		StartTime: u.StartTime,
		EndTime:   u.EndTime,
		AllDay:    u.AllDay,
		Reason:    u.Reason,
	}
}

type addUnavailabilityRequest struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	AllDay    bool    `json:"all_day"`
	Reason    string  `json:"reason"`
}

func (h *Handler) addUnavailability(w http.ResponseWriter, r *http.Request) {
	var req addUnavailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	startDate, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		http.Error(w, "invalid start_date", http.StatusBadRequest)
		return
	}

	endDate, err := time.Parse(time.DateOnly, req.EndDate)
	if err != nil {
		http.Error(w, "invalid end_date", http.StatusBadRequest)
		return
	}

	u, err := h.svc.AddUnavailability(r.Context(), schedule.UnavailabilityParams{
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		AllDay:    req.AllDay,
		Reason:    req.Reason,
	})
	if err != nil {
		if errors.Is(err, schedule.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toUnavailabilityResponse(u)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) conflicts(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse(time.DateOnly, r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "invalid from date", http.StatusBadRequest)
		return
	}

	to, err := time.Parse(time.DateOnly, r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "invalid to date", http.StatusBadRequest)
		return
	}

	unavailabilities, err := h.svc.Conflicts(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]unavailabilityResponse, len(unavailabilities))
	for i, u := range unavailabilities {
		resp[i] = toUnavailabilityResponse(u)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) removeUnavailability(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.RemoveUnavailability(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
