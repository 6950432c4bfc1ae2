// Package offering models the care services a caregiver sells: their
// pricing type and default hourly rate.
package offering

import (
	"time"

	"github.com/google/uuid"
)

// PricingType decides how the default hourly rate turns into a session's
// effective rate.
type PricingType string

const (
	// PricingFlat charges the default rate regardless of head count.
	PricingFlat PricingType = "flat"
	// PricingPerChild multiplies the default rate by the number of
	// assigned children when the rate is captured onto a session.
	PricingPerChild PricingType = "per_child"
)

type Offering struct {
	ID            uuid.UUID
	Name          string
	PricingType   PricingType
	RateCents     *int64 // default hourly rate; nil means no default
	RequiresChild bool
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
