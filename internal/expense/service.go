package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("expense not found")
	ErrValidation = errors.New("invalid expense input")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*Expense, error)
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	SessionID   uuid.UUID
	AmountCents int64
	Category    *string
	Description string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	if params.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	e := &Expense{
		SessionID:   params.SessionID,
		AmountCents: params.AmountCents,
		Category:    params.Category,
		Description: params.Description,
	}
	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// CreateBatch stores several expenses against one session, typically
// from a CSV import.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Expense, error) {
	expenses := make([]*Expense, 0, len(params))

	for _, p := range params {
		e, err := s.Create(ctx, p)
		if err != nil {
			return nil, err
		}

		expenses = append(expenses, e)
	}

	return expenses, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

func (s *Service) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*Expense, error) {
	return s.repo.ListBySession(ctx, sessionID)
}

func (s *Service) Update(ctx context.Context, e *Expense) error {
	if e.AmountCents <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	return s.repo.UpdateExpense(ctx, e)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteExpense(ctx, id)
}
