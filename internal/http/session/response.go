package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/session"
)

type sessionResponse struct {
	ID         uuid.UUID      `json:"id"`
	ScheduleID *uuid.UUID     `json:"schedule_id,omitempty"`
	FamilyID   uuid.UUID      `json:"family_id"`
	OfferingID uuid.UUID      `json:"offering_id"`
	StartTime  time.Time      `json:"start_time"`
	EndTime    time.Time      `json:"end_time"`
	RateCents  *int64         `json:"rate_cents,omitempty"`
	Status     session.Status `json:"status"`
	Confirmed  bool           `json:"confirmed"`

	DropOffPerson *string    `json:"drop_off_person,omitempty"`
	DropOffTime   *time.Time `json:"drop_off_time,omitempty"`
	PickUpPerson  *string    `json:"pick_up_person,omitempty"`
	PickUpTime    *time.Time `json:"pick_up_time,omitempty"`

	MealsBreakfast int `json:"meals_breakfast"`
	MealsLunch     int `json:"meals_lunch"`
	MealsSnack     int `json:"meals_snack"`

	Notes    string      `json:"notes,omitempty"`
	ChildIDs []uuid.UUID `json:"child_ids"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(s *session.Session) sessionResponse {
	return sessionResponse{
		ID:             s.ID,
		ScheduleID:     s.ScheduleID,
		FamilyID:       s.FamilyID,
		OfferingID:     s.OfferingID,
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		RateCents:      s.RateCents,
		Status:         s.Status,
		Confirmed:      s.Confirmed,
		DropOffPerson:  s.DropOffPerson,
		DropOffTime:    s.DropOffTime,
		PickUpPerson:   s.PickUpPerson,
		PickUpTime:     s.PickUpTime,
		MealsBreakfast: s.MealsBreakfast,
		MealsLunch:     s.MealsLunch,
		MealsSnack:     s.MealsSnack,
		Notes:          s.Notes,
		ChildIDs:       s.ChildIDs,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func toResponseList(sessions []*session.Session) []sessionResponse {
	resp := make([]sessionResponse, len(sessions))
	for i, s := range sessions {
		resp[i] = toResponse(s)
	}

	return resp
}
