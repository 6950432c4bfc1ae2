package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hannahwr/nestcare/internal/offering"
	"github.com/hannahwr/nestcare/internal/schedule"
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

const selectScheduleColumns = `
	s.id, s.family_id, s.offering_id, s.pattern, s.weekdays,
	s.start_time_of_day, s.end_time_of_day, s.start_date, s.end_date,
	s.fixed_rate_cents, s.active, s.created_at, s.updated_at
`

func scanSchedule(sc scanner) (*schedule.Schedule, error) {
	var s schedule.Schedule

	var pattern, weekdays string

	var rate sql.NullInt64

	if err := sc.Scan(
		&s.ID, &s.FamilyID, &s.OfferingID, &pattern, &weekdays,
		&s.StartTimeOfDay, &s.EndTimeOfDay, &s.StartDate, &s.EndDate,
		&rate, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}

	s.Pattern = schedule.Pattern(pattern)
	s.Weekdays = decodeWeekdays(weekdays)

	if rate.Valid {
		s.FixedRateCents = &rate.Int64
	}

	return &s, nil
}

// Weekday sets are persisted as a comma-joined digit string ("1,3,5"),
// empty for ONCE schedules.
func encodeWeekdays(days []time.Weekday) string {
	out := make([]byte, 0, len(days)*2)
	for i, d := range days {
		if i > 0 {
			out = append(out, ',')
		}

		out = append(out, byte('0'+int(d)))
	}

	return string(out)
}

func decodeWeekdays(s string) []time.Weekday {
	var days []time.Weekday

	for _, c := range s {
		if c >= '0' && c <= '6' {
			days = append(days, time.Weekday(c-'0'))
		}
	}

	return days
}

func (s *Store) CreateSchedule(ctx context.Context, sched *schedule.Schedule) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO schedules (
			family_id, offering_id, pattern, weekdays,
			start_time_of_day, end_time_of_day, start_date, end_date,
			fixed_rate_cents, active, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRowContext(ctx, query,
		sched.FamilyID, sched.OfferingID, sched.Pattern, encodeWeekdays(sched.Weekdays),
		sched.StartTimeOfDay, sched.EndTimeOfDay, sched.StartDate, sched.EndDate,
		sched.FixedRateCents, sched.Active,
	).Scan(&sched.ID, &sched.CreatedAt, &sched.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating schedule: %w", err)
	}

	for _, childID := range sched.ChildIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO schedule_children (schedule_id, child_id) VALUES ($1, $2)",
			sched.ID, childID,
		); err != nil {
			return fmt.Errorf("assigning child to schedule: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schedule: %w", err)
	}

	return nil
}

func (s *Store) loadChildIDs(ctx context.Context, scheduleID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT child_id FROM schedule_children WHERE schedule_id = $1 ORDER BY child_id", scheduleID)
	if err != nil {
		return nil, fmt.Errorf("loading schedule children: %w", err)
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

func (s *Store) GetSchedule(ctx context.Context, id uuid.UUID) (*schedule.Schedule, error) {
	query := `SELECT ` + selectScheduleColumns + ` FROM schedules s WHERE s.id = $1`

	sched, err := scanSchedule(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, schedule.ErrNotFound
		}

		return nil, fmt.Errorf("getting schedule: %w", err)
	}

	if sched.ChildIDs, err = s.loadChildIDs(ctx, sched.ID); err != nil {
		return nil, err
	}

	return sched, nil
}

func (s *Store) ListSchedules(ctx context.Context, activeOnly bool) ([]*schedule.Schedule, error) {
	query := `SELECT ` + selectScheduleColumns + ` FROM schedules s`
	if activeOnly {
		query += ` WHERE s.active`
	}

	query += ` ORDER BY s.start_date ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing schedules: %w", err)
	}
	defer rows.Close()

	var scheds []*schedule.Schedule

	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning schedule: %w", err)
		}

		scheds = append(scheds, sched)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedules: %w", err)
	}

	for _, sched := range scheds {
		if sched.ChildIDs, err = s.loadChildIDs(ctx, sched.ID); err != nil {
			return nil, err
		}
	}

	return scheds, nil
}

func (s *Store) UpdateSchedule(ctx context.Context, sched *schedule.Schedule) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE schedules
		SET pattern = $1, weekdays = $2, start_time_of_day = $3, end_time_of_day = $4,
			start_date = $5, end_date = $6, fixed_rate_cents = $7, active = $8,
			updated_at = NOW()
		WHERE id = $9
	`

	if _, err := tx.ExecContext(ctx, query,
		sched.Pattern, encodeWeekdays(sched.Weekdays),
		sched.StartTimeOfDay, sched.EndTimeOfDay,
		sched.StartDate, sched.EndDate, sched.FixedRateCents, sched.Active,
		sched.ID,
	); err != nil {
		return fmt.Errorf("updating schedule: %w", err)
	}

	if sched.ChildIDs != nil {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM schedule_children WHERE schedule_id = $1", sched.ID); err != nil {
			return fmt.Errorf("clearing schedule children: %w", err)
		}

		for _, childID := range sched.ChildIDs {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO schedule_children (schedule_id, child_id) VALUES ($1, $2)",
				sched.ID, childID,
			); err != nil {
				return fmt.Errorf("assigning child to schedule: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schedule update: %w", err)
	}

	return nil
}

// DeleteSchedule removes the template and its child assignments. Session
// rows keep their schedule_id value; the foreign key is declared with
// ON DELETE SET NULL semantics handled here explicitly so generated
// sessions survive.
func (s *Store) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE sessions SET schedule_id = NULL WHERE schedule_id = $1", id); err != nil {
		return fmt.Errorf("detaching sessions: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM schedule_children WHERE schedule_id = $1", id); err != nil {
		return fmt.Errorf("clearing schedule children: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM schedules WHERE id = $1", id); err != nil {
		return fmt.Errorf("deleting schedule: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schedule delete: %w", err)
	}

	return nil
}

func (s *Store) GetOffering(ctx context.Context, id uuid.UUID) (*offering.Offering, error) {
	query := `
		SELECT o.id, o.name, o.pricing_type, o.rate_cents, o.requires_child, o.active, o.created_at, o.updated_at
		FROM offerings o
		WHERE o.id = $1
	`

	var o offering.Offering

	var pricing string

	var rate sql.NullInt64

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.Name, &pricing, &rate, &o.RequiresChild, &o.Active,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, offering.ErrNotFound
		}

		return nil, fmt.Errorf("getting offering: %w", err)
	}

	o.PricingType = offering.PricingType(pricing)
	if rate.Valid {
		o.RateCents = &rate.Int64
	}

	return &o, nil
}

type generationTx struct {
	tx *sql.Tx
}

// BeginGeneration opens the transaction for one generation run and takes
// a per-schedule advisory lock, serializing concurrent regeneration of
// the same schedule.
func (s *Store) BeginGeneration(ctx context.Context, scheduleID uuid.UUID) (schedule.GenerationTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning generation tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"SELECT pg_advisory_xact_lock(hashtext($1))", scheduleID.String()); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("acquiring generation lock: %w", err)
	}

	return &generationTx{tx: tx}, nil
}

func (g *generationTx) Commit() error   { return g.tx.Commit() }
func (g *generationTx) Rollback() error { return g.tx.Rollback() }

func (g *generationTx) ExistingStartTimes(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) (map[time.Time]struct{}, error) {
	query := `
		SELECT start_time
		FROM sessions
		WHERE schedule_id = $1 AND start_time >= $2 AND start_time <= $3
	`

	rows, err := g.tx.QueryContext(ctx, query, scheduleID, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying existing start times: %w", err)
	}
	defer rows.Close()

	starts := make(map[time.Time]struct{})

	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scanning start time: %w", err)
		}

		starts[t.UTC()] = struct{}{}
	}

	return starts, rows.Err()
}

func (g *generationTx) CreateSessions(ctx context.Context, sessions []*session.Session) error {
	query := `
		INSERT INTO sessions (
			schedule_id, family_id, offering_id, start_time, end_time,
			rate_cents, status, confirmed, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	for _, sess := range sessions {
		err := g.tx.QueryRowContext(ctx, query,
			sess.ScheduleID, sess.FamilyID, sess.OfferingID, sess.StartTime, sess.EndTime,
			sess.RateCents, sess.Status, sess.Confirmed, sess.Notes,
		).Scan(&sess.ID, &sess.CreatedAt, &sess.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating session: %w", err)
		}

		for _, childID := range sess.ChildIDs {
			if _, err := g.tx.ExecContext(ctx,
				"INSERT INTO session_children (session_id, child_id) VALUES ($1, $2)",
				sess.ID, childID,
			); err != nil {
				return fmt.Errorf("assigning child to session: %w", err)
			}
		}
	}

	return nil
}

func (s *Store) CreateUnavailability(ctx context.Context, u *schedule.Unavailability) error {
	query := `
		INSERT INTO unavailabilities (start_date, end_date, start_time, end_time, all_day, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		u.StartDate, u.EndDate, u.StartTime, u.EndTime, u.AllDay, u.Reason,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating unavailability: %w", err)
	}

	return nil
}

func (s *Store) ListUnavailabilities(ctx context.Context, from, to time.Time) ([]*schedule.Unavailability, error) {
	query := `
		SELECT id, start_date, end_date, start_time, end_time, all_day, reason, created_at
		FROM unavailabilities
		WHERE end_date >= $1 AND start_date <= $2
		ORDER BY start_date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing unavailabilities: %w", err)
	}
	defer rows.Close()

	var blocks []*schedule.Unavailability

	for rows.Next() {
		var u schedule.Unavailability

		var reason sql.NullString

		if err := rows.Scan(
			&u.ID, &u.StartDate, &u.EndDate, &u.StartTime, &u.EndTime,
			&u.AllDay, &reason, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning unavailability: %w", err)
		}

		u.Reason = reason.String

		blocks = append(blocks, &u)
	}

	return blocks, rows.Err()
}

func (s *Store) DeleteUnavailability(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM unavailabilities WHERE id = $1", id); err != nil {
		return fmt.Errorf("deleting unavailability: %w", err)
	}

	return nil
}
