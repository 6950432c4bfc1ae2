package family

import (
	"time"

	"github.com/google/uuid"
)

// Family is the billing root: sessions, payments and expenses all roll up
// to a family.
type Family struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	Notes     string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

// Child belongs to a family and can be assigned to schedules and sessions.
type Child struct {
	ID        uuid.UUID
	FamilyID  uuid.UUID
	FirstName string
	LastName  string
	BirthDate *time.Time
	Allergies string
	Notes     string
	CreatedAt time.Time
}
