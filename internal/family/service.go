package family

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("family not found")
	ErrValidation = errors.New("invalid family input")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=family
type Repository interface {
	CreateFamily(ctx context.Context, f *Family) error
	GetFamily(ctx context.Context, id uuid.UUID) (*Family, error)
	ListFamilies(ctx context.Context) ([]*Family, error)
	UpdateFamily(ctx context.Context, f *Family) error
	DeleteFamily(ctx context.Context, id uuid.UUID) error

	CreateChild(ctx context.Context, c *Child) error
	ListChildren(ctx context.Context, familyID uuid.UUID) ([]*Child, error)
	DeleteChild(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name  string
	Email string
	Phone string
	Notes string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Family, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	f := &Family{
		Name:  params.Name,
		Email: params.Email,
		Phone: params.Phone,
		Notes: params.Notes,
	}
	if err := s.repo.CreateFamily(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Family, error) {
	return s.repo.GetFamily(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Family, error) {
	return s.repo.ListFamilies(ctx)
}

func (s *Service) Update(ctx context.Context, f *Family) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	return s.repo.UpdateFamily(ctx, f)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteFamily(ctx, id)
}

type CreateChildParams struct {
	FamilyID  uuid.UUID
	FirstName string
	LastName  string
	BirthDate *time.Time
	Allergies string
	Notes     string
}

func (s *Service) AddChild(ctx context.Context, params CreateChildParams) (*Child, error) {
	if strings.TrimSpace(params.FirstName) == "" {
		return nil, fmt.Errorf("%w: child first name is required", ErrValidation)
	}

	if _, err := s.repo.GetFamily(ctx, params.FamilyID); err != nil {
		return nil, err
	}

	c := &Child{
		FamilyID:  params.FamilyID,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		BirthDate: params.BirthDate,
		Allergies: params.Allergies,
		Notes:     params.Notes,
	}

	if err := s.repo.CreateChild(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Children(ctx context.Context, familyID uuid.UUID) ([]*Child, error) {
	return s.repo.ListChildren(ctx, familyID)
}

func (s *Service) RemoveChild(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteChild(ctx, id)
}
