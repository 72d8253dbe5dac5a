package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kunal2899/event-management-api/internal/domain"
)

type eventService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	userRepo        domain.UserRepository
	emailService    domain.EmailService
	logger          *slog.Logger
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.EventService {
	return &eventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		emailService:    emailService,
		logger:          logger,
	}
}

// requireOrganizer is the single authorization predicate for organizer-only
// operations: update, delete, and participant listing.
func requireOrganizer(event *domain.EventWithOrganizer, callerID int64) error {
	if event.OrganizerID != callerID {
		return domain.ErrForbidden
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	if event.OrganizerID == 0 {
		return fmt.Errorf("event organizer is required")
	}
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.EventWithOrganizer, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.EventWithOrganizer{}
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*domain.EventWithOrganizer, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id, callerID int64, upd domain.EventUpdate) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := requireOrganizer(event, callerID); err != nil {
		return nil, err
	}
	updated, err := s.eventRepo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id, callerID int64) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if err := requireOrganizer(event, callerID); err != nil {
		return err
	}
	if err := s.eventRepo.DeleteWithParticipants(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// RegisterParticipant registers the user for the event. The store's
// uniqueness constraint decides duplicates; a second registration for the
// same (event, user) pair surfaces as domain.ErrAlreadyRegistered. On success
// a confirmation email is sent best-effort: failures are logged and never
// fail the registration.
func (s *eventService) RegisterParticipant(ctx context.Context, eventID, userID int64) (*domain.Participant, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	participant := domain.NewParticipant(eventID, userID, time.Now())
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create participant: %w", err)
	}

	s.sendRegistrationConfirmation(ctx, event, userID)
	return participant, nil
}

func (s *eventService) sendRegistrationConfirmation(ctx context.Context, event *domain.EventWithOrganizer, userID int64) {
	if s.emailService == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "confirmation email not sent", "event_id", event.ID, "user_id", userID, "err", err)
		return
	}
	data := &domain.RegistrationConfirmationEmailData{
		Name:          user.Name,
		Email:         user.Email,
		EventName:     event.Name,
		EventDate:     event.Date,
		EventLocation: event.Location,
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "confirmation email not sent", "event_id", event.ID, "user_id", userID, "err", err)
	}
}

func (s *eventService) ListParticipants(ctx context.Context, eventID, callerID int64) ([]*domain.ParticipantInfo, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := requireOrganizer(event, callerID); err != nil {
		return nil, err
	}
	participants, err := s.participantRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	if participants == nil {
		participants = []*domain.ParticipantInfo{}
	}
	return participants, nil
}
