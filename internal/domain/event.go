package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when the requested event does not exist.
var ErrNotFound = errors.New("event not found")

// ErrForbidden is returned when the caller is not the organizer of the event.
var ErrForbidden = errors.New("forbidden")

// Event represents an event created by an organizer.
// swagger:model Event
type Event struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Description *string   `json:"description,omitempty"`
	OrganizerID int64     `json:"organizerId"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(name string, date time.Time, location string, description *string, organizerID int64, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:        name,
		Date:        date,
		Location:    location,
		Description: description,
		OrganizerID: organizerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventWithOrganizer is an event annotated with its organizer's name (read-only join).
// swagger:model EventWithOrganizer
type EventWithOrganizer struct {
	Event
	OrganizerName string `json:"organizerName"`
}

// EventUpdate is the whitelisted set of mutable event fields. The organizer is
// immutable through updates.
type EventUpdate struct {
	Name        string
	Date        time.Time
	Location    string
	Description *string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*EventWithOrganizer, error)
	List(ctx context.Context) ([]*EventWithOrganizer, error)
	Update(ctx context.Context, id int64, upd EventUpdate) (*Event, error)
	// DeleteWithParticipants removes the event and all its participant rows in
	// a single transaction.
	DeleteWithParticipants(ctx context.Context, id int64) error
}

// EventService defines the business logic for the event and participant lifecycle.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	ListEvents(ctx context.Context) ([]*EventWithOrganizer, error)
	GetEvent(ctx context.Context, id int64) (*EventWithOrganizer, error)
	UpdateEvent(ctx context.Context, id, callerID int64, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, id, callerID int64) error
	RegisterParticipant(ctx context.Context, eventID, userID int64) (*Participant, error)
	ListParticipants(ctx context.Context, eventID, callerID int64) ([]*ParticipantInfo, error)
}
