package offering

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("offering not found")
	ErrValidation = errors.New("invalid offering input")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=offering
type Repository interface {
	CreateOffering(ctx context.Context, o *Offering) error
	GetOffering(ctx context.Context, id uuid.UUID) (*Offering, error)
	ListOfferings(ctx context.Context, activeOnly bool) ([]*Offering, error)
	UpdateOffering(ctx context.Context, o *Offering) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name          string
	PricingType   PricingType
	RateCents     *int64
	RequiresChild bool
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Offering, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	switch params.PricingType {
	case PricingFlat, PricingPerChild:
	default:
		return nil, fmt.Errorf("%w: unknown pricing type %q", ErrValidation, params.PricingType)
	}

	if params.RateCents != nil && *params.RateCents < 0 {
		return nil, fmt.Errorf("%w: rate cannot be negative", ErrValidation)
	}

	o := &Offering{
		Name:          params.Name,
		PricingType:   params.PricingType,
		RateCents:     params.RateCents,
		RequiresChild: params.RequiresChild,
		Active:        true,
	}
	if err := s.repo.CreateOffering(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Offering, error) {
	return s.repo.GetOffering(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]*Offering, error) {
	return s.repo.ListOfferings(ctx, activeOnly)
}

func (s *Service) Update(ctx context.Context, o *Offering) error {
	if strings.TrimSpace(o.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	return s.repo.UpdateOffering(ctx, o)
}

// Deactivate retires an offering without touching the rates already
// captured on existing sessions.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	o, err := s.repo.GetOffering(ctx, id)
	if err != nil {
		return err
	}

	o.Active = false

	return s.repo.UpdateOffering(ctx, o)
}
