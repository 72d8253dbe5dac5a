package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kunal2899/event-management-api/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, date, location, description, organizer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, e.Name, e.Date, e.Location, e.Description, e.OrganizerID, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.EventWithOrganizer, error) {
	query := `
		SELECT e.id, e.name, e.date, e.location, e.description, e.organizer_id,
		       u.name, e.created_at, e.updated_at
		FROM events e
		JOIN users u ON e.organizer_id = u.id
		WHERE e.id = $1
	`
	e := &domain.EventWithOrganizer{}
	var descNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.Date, &e.Location, &descNull, &e.OrganizerID,
		&e.OrganizerName, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.EventWithOrganizer, error) {
	query := `
		SELECT e.id, e.name, e.date, e.location, e.description, e.organizer_id,
		       u.name, e.created_at, e.updated_at
		FROM events e
		JOIN users u ON e.organizer_id = u.id
		ORDER BY e.date
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.EventWithOrganizer, 0)
	for rows.Next() {
		e := &domain.EventWithOrganizer{}
		var descNull sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Location, &descNull, &e.OrganizerID, &e.OrganizerName, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		if descNull.Valid {
			e.Description = &descNull.String
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Update overwrites the whitelisted fields and bumps updated_at. The organizer
// column is never touched.
func (r *eventRepository) Update(ctx context.Context, id int64, upd domain.EventUpdate) (*domain.Event, error) {
	query := `
		UPDATE events
		SET name = $1, date = $2, location = $3, description = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id, name, date, location, description, organizer_id, created_at, updated_at
	`
	e := &domain.Event{}
	var descNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, upd.Name, upd.Date, upd.Location, upd.Description, id).Scan(
		&e.ID, &e.Name, &e.Date, &e.Location, &descNull, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	return e, nil
}

// DeleteWithParticipants removes the event's participant rows and the event
// itself inside one transaction, so a partial failure never leaves orphaned
// registrations.
func (r *eventRepository) DeleteWithParticipants(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM participants WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("delete participants: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}
