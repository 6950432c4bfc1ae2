package expense

import (
	"time"

	"github.com/google/uuid"
)

// Expense is a pass-through cost attached to a session (supplies, meals
// out, admission fees). Expenses bill alongside the hourly cost no matter
// what state the session is in.
type Expense struct {
	ID          uuid.UUID
	SessionID   uuid.UUID
	AmountCents int64
	Category    *string
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
