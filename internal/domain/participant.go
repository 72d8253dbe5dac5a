package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyRegistered is returned when a user registers twice for the same event.
var ErrAlreadyRegistered = errors.New("user already registered for this event")

// Participant is a user's registration for an event.
// swagger:model Participant
type Participant struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"eventId"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"created_at"`
}

// NewParticipant returns a new Participant. ID is set by the repository on create.
func NewParticipant(eventID, userID int64, createdAt time.Time) *Participant {
	return &Participant{
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: createdAt,
	}
}

// ParticipantInfo is a registration annotated with the participant's name and
// email (read-only join), as shown to the event organizer.
// swagger:model ParticipantInfo
type ParticipantInfo struct {
	ID           int64     `json:"id"`
	EventID      int64     `json:"eventId"`
	UserID       int64     `json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"created_at"`
}

// RegisteredEvent is an event a user registered for, annotated with the
// organizer's name and the registration date.
// swagger:model RegisteredEvent
type RegisteredEvent struct {
	Event
	OrganizerName    string    `json:"organizerName"`
	RegistrationDate time.Time `json:"registrationDate"`
}

// ParticipantRepository defines the interface for registration storage
type ParticipantRepository interface {
	// Create inserts the registration. A duplicate (event, user) pair is
	// reported as ErrAlreadyRegistered.
	Create(ctx context.Context, p *Participant) error
	ListByEventID(ctx context.Context, eventID int64) ([]*ParticipantInfo, error)
	ListEventsByUserID(ctx context.Context, userID int64) ([]*RegisteredEvent, error)
}
