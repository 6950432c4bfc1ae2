package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/family"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectFamilyColumns = `
	f.id, f.name, f.email, f.phone, f.notes, f.created_at, f.updated_at, f.deleted_at
`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanFamily(s scanner) (*family.Family, error) {
	var f family.Family

	var email, phone, notes sql.NullString

	if err := s.Scan(
		&f.ID, &f.Name, &email, &phone, &notes,
		&f.CreatedAt, &f.UpdatedAt, &f.DeletedAt,
	); err != nil {
		return nil, err
	}

	f.Email = email.String
	f.Phone = phone.String
	f.Notes = notes.String

	return &f, nil
}

func (s *Store) CreateFamily(ctx context.Context, f *family.Family) error {
	query := `
		INSERT INTO families (name, email, phone, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		f.Name, f.Email, f.Phone, f.Notes,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating family: %w", err)
	}

	return nil
}

func (s *Store) GetFamily(ctx context.Context, id uuid.UUID) (*family.Family, error) {
	query := `SELECT ` + selectFamilyColumns + `
		FROM families f
		WHERE f.id = $1 AND f.deleted_at IS NULL`

	f, err := scanFamily(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, family.ErrNotFound
		}

		return nil, fmt.Errorf("getting family: %w", err)
	}

	return f, nil
}

func (s *Store) ListFamilies(ctx context.Context) ([]*family.Family, error) {
	query := `SELECT ` + selectFamilyColumns + `
		FROM families f
		WHERE f.deleted_at IS NULL
		ORDER BY f.name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing families: %w", err)
	}
	defer rows.Close()

	var fams []*family.Family

	for rows.Next() {
		f, err := scanFamily(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning family: %w", err)
		}

		fams = append(fams, f)
	}

	return fams, rows.Err()
}

func (s *Store) UpdateFamily(ctx context.Context, f *family.Family) error {
	query := `
		UPDATE families
		SET name = $1, email = $2, phone = $3, notes = $4, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query, f.Name, f.Email, f.Phone, f.Notes, f.ID)
	if err != nil {
		return fmt.Errorf("updating family: %w", err)
	}

	return nil
}

func (s *Store) DeleteFamily(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE families
		SET deleted_at = NOW()
		WHERE id = $1
	`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting family: %w", err)
	}

	return nil
}

func (s *Store) CreateChild(ctx context.Context, c *family.Child) error {
	query := `
		INSERT INTO children (family_id, first_name, last_name, birth_date, allergies, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.FamilyID, c.FirstName, c.LastName, c.BirthDate, c.Allergies, c.Notes,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating child: %w", err)
	}

	return nil
}

func (s *Store) ListChildren(ctx context.Context, familyID uuid.UUID) ([]*family.Child, error) {
	query := `
		SELECT id, family_id, first_name, last_name, birth_date, allergies, notes, created_at
		FROM children
		WHERE family_id = $1
		ORDER BY first_name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("listing children: %w", err)
	}
	defer rows.Close()

	var kids []*family.Child

	for rows.Next() {
		var c family.Child

		var lastName, allergies, notes sql.NullString

		if err := rows.Scan(
			&c.ID, &c.FamilyID, &c.FirstName, &lastName, &c.BirthDate,
			&allergies, &notes, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning child: %w", err)
		}

		c.LastName = lastName.String
		c.Allergies = allergies.String
		c.Notes = notes.String

		kids = append(kids, &c)
	}

	return kids, rows.Err()
}

func (s *Store) DeleteChild(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM children WHERE id = $1", id); err != nil {
		return fmt.Errorf("deleting child: %w", err)
	}

	return nil
}
