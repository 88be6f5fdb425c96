package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventregistry/internal/domain"
)

type attendeeRepository struct {
	DB *sql.DB
}

func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &attendeeRepository{
		DB: db,
	}
}

// Register inserts the attendee in a transaction that first locks the event
// row. Without the lock two registrations near the capacity boundary can both
// pass the count check and together exceed max_capacity.
func (r *attendeeRepository) Register(ctx context.Context, a *domain.Attendee) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var maxCapacity int
	err = tx.QueryRowContext(ctx,
		`SELECT max_capacity FROM events WHERE id = $1 FOR UPDATE`, a.EventID).
		Scan(&maxCapacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attendees WHERE event_id = $1`, a.EventID).
		Scan(&count)
	if err != nil {
		return err
	}
	if count >= maxCapacity {
		return domain.ErrCapacityFull
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO attendees (name, email, event_id) VALUES ($1, $2, $3) RETURNING id`,
		a.Name, a.Email, a.EventID).
		Scan(&a.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrAlreadyRegistered
		}
		return err
	}

	return tx.Commit()
}

func (r *attendeeRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attendees WHERE event_id = $1`, eventID).
		Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *attendeeRepository) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Attendee, error) {
	query := `
		SELECT id, name, email, event_id
		FROM attendees
		WHERE event_id = $1 AND email = $2
	`
	a := &domain.Attendee{}
	err := r.DB.QueryRowContext(ctx, query, eventID, email).
		Scan(&a.ID, &a.Name, &a.Email, &a.EventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}
