package postgres

import (
	"context"
	"database/sql"

	"github.com/kunal2899/event-management-api/internal/domain"
)

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{DB: db}
}

// Create inserts the registration and sets p.ID. A unique violation on the
// (event_id, user_id) constraint is reported as domain.ErrAlreadyRegistered;
// the constraint is the sole source of truth for duplicate registrations.
func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO participants (event_id, user_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, p.EventID, p.UserID, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *participantRepository) ListByEventID(ctx context.Context, eventID int64) ([]*domain.ParticipantInfo, error) {
	query := `
		SELECT p.id, p.event_id, p.user_id, u.name, u.email, p.created_at
		FROM participants p
		JOIN users u ON p.user_id = u.id
		WHERE p.event_id = $1
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]*domain.ParticipantInfo, 0)
	for rows.Next() {
		p := &domain.ParticipantInfo{}
		if err := rows.Scan(&p.ID, &p.EventID, &p.UserID, &p.Name, &p.Email, &p.RegisteredAt); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *participantRepository) ListEventsByUserID(ctx context.Context, userID int64) ([]*domain.RegisteredEvent, error) {
	query := `
		SELECT e.id, e.name, e.date, e.location, e.description, e.organizer_id,
		       u.name, e.created_at, e.updated_at, p.created_at
		FROM events e
		JOIN participants p ON e.id = p.event_id
		JOIN users u ON e.organizer_id = u.id
		WHERE p.user_id = $1
		ORDER BY e.date
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.RegisteredEvent, 0)
	for rows.Next() {
		e := &domain.RegisteredEvent{}
		var descNull sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Location, &descNull, &e.OrganizerID, &e.OrganizerName, &e.CreatedAt, &e.UpdatedAt, &e.RegistrationDate); err != nil {
			return nil, err
		}
		if descNull.Valid {
			e.Description = &descNull.String
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
