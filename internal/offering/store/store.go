package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/offering"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOffering(s scanner) (*offering.Offering, error) {
	var o offering.Offering

	var pricing string

	var rate sql.NullInt64

	if err := s.Scan(
		&o.ID, &o.Name, &pricing, &rate, &o.RequiresChild, &o.Active,
		&o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}

	o.PricingType = offering.PricingType(pricing)
	if rate.Valid {
		o.RateCents = &rate.Int64
	}

	return &o, nil
}

const selectOfferingColumns = `
	o.id, o.name, o.pricing_type, o.rate_cents, o.requires_child, o.active, o.created_at, o.updated_at
`

func (s *Store) CreateOffering(ctx context.Context, o *offering.Offering) error {
	query := `
		INSERT INTO offerings (name, pricing_type, rate_cents, requires_child, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		o.Name, o.PricingType, o.RateCents, o.RequiresChild, o.Active,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating offering: %w", err)
	}

	return nil
}

func (s *Store) GetOffering(ctx context.Context, id uuid.UUID) (*offering.Offering, error) {
	query := `SELECT ` + selectOfferingColumns + ` FROM offerings o WHERE o.id = $1`

	o, err := scanOffering(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, offering.ErrNotFound
		}

		return nil, fmt.Errorf("getting offering: %w", err)
	}

	return o, nil
}

func (s *Store) ListOfferings(ctx context.Context, activeOnly bool) ([]*offering.Offering, error) {
	query := `SELECT ` + selectOfferingColumns + ` FROM offerings o`
	if activeOnly {
		query += ` WHERE o.active`
	}

	query += ` ORDER BY o.name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing offerings: %w", err)
	}
	defer rows.Close()

	var offs []*offering.Offering

	for rows.Next() {
		o, err := scanOffering(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning offering: %w", err)
		}

		offs = append(offs, o)
	}

	return offs, rows.Err()
}

func (s *Store) UpdateOffering(ctx context.Context, o *offering.Offering) error {
	query := `
		UPDATE offerings
		SET name = $1, pricing_type = $2, rate_cents = $3, requires_child = $4, active = $5, updated_at = NOW()
		WHERE id = $6
	`

	_, err := s.db.ExecContext(ctx, query,
		o.Name, o.PricingType, o.RateCents, o.RequiresChild, o.Active, o.ID,
	)
	if err != nil {
		return fmt.Errorf("updating offering: %w", err)
	}

	return nil
}
