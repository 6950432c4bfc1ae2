package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/session"
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

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const selectSessionColumns = `
	s.id, s.schedule_id, s.family_id, s.offering_id, s.start_time, s.end_time,
	s.rate_cents, s.status, s.confirmed,
	s.drop_off_person, s.drop_off_time, s.pick_up_person, s.pick_up_time,
	s.meals_breakfast, s.meals_lunch, s.meals_snack, s.notes,
	s.created_at, s.updated_at, s.deleted_at
`

func scanSession(sc scanner) (*session.Session, error) {
	var sess session.Session

	var status string

	var rate sql.NullInt64

	var notes sql.NullString

	if err := sc.Scan(
		&sess.ID, &sess.ScheduleID, &sess.FamilyID, &sess.OfferingID,
		&sess.StartTime, &sess.EndTime,
		&rate, &status, &sess.Confirmed,
		&sess.DropOffPerson, &sess.DropOffTime, &sess.PickUpPerson, &sess.PickUpTime,
		&sess.MealsBreakfast, &sess.MealsLunch, &sess.MealsSnack, &notes,
		&sess.CreatedAt, &sess.UpdatedAt, &sess.DeletedAt,
	); err != nil {
		return nil, err
	}

	sess.Status = session.Status(status)
	sess.Notes = notes.String

	if rate.Valid {
		sess.RateCents = &rate.Int64
	}

	return &sess, nil
}

func loadChildIDs(ctx context.Context, q querier, sessionID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT child_id FROM session_children WHERE session_id = $1 ORDER BY child_id", sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading session children: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning child id: %w", err)
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// insertSession writes one session row plus its child assignments.
// The sessions table carries a unique index on (schedule_id, start_time)
// as defense-in-depth behind the generator's duplicate check.
func insertSession(ctx context.Context, q querier, sess *session.Session) error {
	query := `
		INSERT INTO sessions (
			schedule_id, family_id, offering_id, start_time, end_time,
			rate_cents, status, confirmed, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		sess.ScheduleID, sess.FamilyID, sess.OfferingID, sess.StartTime, sess.EndTime,
		sess.RateCents, sess.Status, sess.Confirmed, sess.Notes,
	).Scan(&sess.ID, &sess.CreatedAt, &sess.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	for _, childID := range sess.ChildIDs {
		if _, err := q.ExecContext(ctx,
			"INSERT INTO session_children (session_id, child_id) VALUES ($1, $2)",
			sess.ID, childID,
		); err != nil {
			return fmt.Errorf("assigning child to session: %w", err)
		}
	}

	return nil
}

func (s *Store) CreateSession(ctx context.Context, sess *session.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertSession(ctx, tx, sess); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}

	return nil
}

func (s *Store) GetSession(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	query := `SELECT ` + selectSessionColumns + `
		FROM sessions s
		WHERE s.id = $1 AND s.deleted_at IS NULL`

	sess, err := scanSession(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, session.ErrNotFound
		}

		return nil, fmt.Errorf("getting session: %w", err)
	}

	if sess.ChildIDs, err = loadChildIDs(ctx, s.db, sess.ID); err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *Store) ListSessions(ctx context.Context, filter session.ListFilter) ([]*session.Session, error) {
	query := `SELECT ` + selectSessionColumns + `
		FROM sessions s
		WHERE s.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.FamilyID != nil {
		query += fmt.Sprintf(" AND s.family_id = $%d", argIdx)

		args = append(args, *filter.FamilyID)
		argIdx++
	}

	if filter.ScheduleID != nil {
		query += fmt.Sprintf(" AND s.schedule_id = $%d", argIdx)

		args = append(args, *filter.ScheduleID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND s.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND s.start_time >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND s.start_time <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY s.start_time ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*session.Session

	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}

		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}

	for _, sess := range sessions {
		if sess.ChildIDs, err = loadChildIDs(ctx, s.db, sess.ID); err != nil {
			return nil, err
		}
	}

	return sessions, nil
}

func (s *Store) UpdateSession(ctx context.Context, sess *session.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE sessions
		SET start_time = $1, end_time = $2, notes = $3,
			drop_off_person = $4, drop_off_time = $5,
			pick_up_person = $6, pick_up_time = $7,
			meals_breakfast = $8, meals_lunch = $9, meals_snack = $10,
			updated_at = NOW()
		WHERE id = $11 AND deleted_at IS NULL
	`

	if _, err := tx.ExecContext(ctx, query,
		sess.StartTime, sess.EndTime, sess.Notes,
		sess.DropOffPerson, sess.DropOffTime,
		sess.PickUpPerson, sess.PickUpTime,
		sess.MealsBreakfast, sess.MealsLunch, sess.MealsSnack,
		sess.ID,
	); err != nil {
		return fmt.Errorf("updating session: %w", err)
	}

	if sess.ChildIDs != nil {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM session_children WHERE session_id = $1", sess.ID); err != nil {
			return fmt.Errorf("clearing session children: %w", err)
		}

		for _, childID := range sess.ChildIDs {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO session_children (session_id, child_id) VALUES ($1, $2)",
				sess.ID, childID,
			); err != nil {
				return fmt.Errorf("assigning child to session: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session update: %w", err)
	}

	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status session.Status) error {
	query := `
		UPDATE sessions
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`

	if _, err := s.db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("updating session status: %w", err)
	}

	return nil
}

func (s *Store) SetConfirmed(ctx context.Context, id uuid.UUID, confirmed bool) error {
	query := `
		UPDATE sessions
		SET confirmed = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`

	if _, err := s.db.ExecContext(ctx, query, confirmed, id); err != nil {
		return fmt.Errorf("confirming session: %w", err)
	}

	return nil
}

func (s *Store) DeleteSession(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE sessions
		SET deleted_at = NOW()
		WHERE id = $1
	`

	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	return nil
}
