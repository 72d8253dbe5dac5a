package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunal2899/event-management-api/internal/domain"
)

type fakeEventRepo struct {
	events     map[int64]*domain.EventWithOrganizer
	listResult []*domain.EventWithOrganizer
	listErr    error
	updated    *domain.Event
	updateErr  error
	deletedIDs []int64
	deleteErr  error
	createErr  error
}

func (f *fakeEventRepo) Create(ctx context.Context, event *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = 100
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.EventWithOrganizer, error) {
	if ev, ok := f.events[id]; ok {
		return ev, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*domain.EventWithOrganizer, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id int64, upd domain.EventUpdate) (*domain.Event, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updated != nil {
		return f.updated, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) DeleteWithParticipants(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func eventOwnedBy(id, organizerID int64) *domain.EventWithOrganizer {
	return &domain.EventWithOrganizer{
		Event: domain.Event{
			ID:          id,
			Name:        "Go Meetup",
			Date:        time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
			Location:    "Berlin",
			OrganizerID: organizerID,
		},
		OrganizerName: "Ann",
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("success sets timestamps", func(t *testing.T) {
		repo := &fakeEventRepo{}
		svc := NewEventService(repo, &fakeParticipantRepo{}, &fakeUserRepo{}, nil, testLogger())

		event := &domain.Event{Name: "Go Meetup", OrganizerID: 1}
		require.NoError(t, svc.CreateEvent(ctx, event))
		assert.Equal(t, int64(100), event.ID)
		assert.False(t, event.CreatedAt.IsZero())
		assert.False(t, event.UpdatedAt.IsZero())
	})

	t.Run("missing organizer rejected", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{}, &fakeParticipantRepo{}, &fakeUserRepo{}, nil, testLogger())

		err := svc.CreateEvent(ctx, &domain.Event{Name: "Go Meetup"})
		require.Error(t, err)
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	upd := domain.EventUpdate{Name: "New Name", Date: time.Now(), Location: "Munich"}

	t.Run("organizer may update", func(t *testing.T) {
		repo := &fakeEventRepo{
			events:  map[int64]*domain.EventWithOrganizer{10: eventOwnedBy(10, 1)},
			updated: &domain.Event{ID: 10, Name: "New Name", OrganizerID: 1},
		}
		svc := NewEventService(repo, &fakeParticipantRepo{}, &fakeUserRepo{}, nil, testLogger())

		event, err := svc.UpdateEvent(ctx, 10, 1, upd)
		require.NoError(t, err)
		assert.Equal(t, "New Name", event.Name)
		assert.Equal(t, int64(1), event.OrganizerID, "organizer is immutable")
	})

	t.Run("non-organizer gets ErrForbidden", func(t *testing.T) {
		repo := &fakeEventRepo{events: map[int64]*domain.EventWithOrganizer{10: eventOwnedBy(10, 1)}}
		svc := NewEventService(repo, &fakeParticipantRepo{}, &fakeUserRepo{}, nil, testLogger())

		_, err := svc.UpdateEvent(ctx, 10, 2, upd)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("missing event gets ErrNotFound", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{}, &fakeParticipantRepo{}, &fakeUserRepo{}, nil, testLogger())

		_, err := svc.UpdateEvent(ctx, 99, 1, upd)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("organizer may delete, cascade goes through repository", func(t *testing.T) {
		repo := &fakeEventRepo{events: map[int64]*domain.EventWithOrganizer{10: eventOwnedBy(10, 1)}}
		svc := NewEventService(repo, &fakeParticipantRepo{}, &fakeUserRepo{}, nil, testLogger())

		require.NoError(t, svc.DeleteEvent(ctx, 10, 1))
		assert.Equal(t, []int64{10}, repo.deletedIDs)
	})

	t.Run("non-organizer gets ErrForbidden", func(t *testing.T) {
		repo := &fakeEventRepo{events: map[int64]*domain.EventWithOrganizer{10: eventOwnedBy(10, 1)}}
		svc := NewEventService(repo, &fakeParticipantRepo{}, &fakeUserRepo{}, nil, testLogger())

		require.ErrorIs(t, svc.DeleteEvent(ctx, 10, 2), domain.ErrForbidden)
		assert.Empty(t, repo.deletedIDs)
	})

	t.Run("missing event gets ErrNotFound", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{}, &fakeParticipantRepo{}, &fakeUserRepo{}, nil, testLogger())

		require.ErrorIs(t, svc.DeleteEvent(ctx, 99, 1), domain.ErrNotFound)
	})
}

func TestEventService_RegisterParticipant(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: 2, Name: "Bob", Email: "b@x.com"}

	t.Run("success sends confirmation email", func(t *testing.T) {
		repo := &fakeEventRepo{events: map[int64]*domain.EventWithOrganizer{10: eventOwnedBy(10, 1)}}
		participants := &fakeParticipantRepo{}
		emails := &fakeEmailService{}
		users := &fakeUserRepo{usersByID: map[int64]*domain.User{2: user}}
		svc := NewEventService(repo, participants, users, emails, testLogger())

		p, err := svc.RegisterParticipant(ctx, 10, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(10), p.EventID)
		assert.Equal(t, int64(2), p.UserID)
		assert.Equal(t, []string{"b@x.com"}, emails.confirmSentTo)
	})

	t.Run("missing event gets ErrNotFound", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{}, &fakeParticipantRepo{}, &fakeUserRepo{}, nil, testLogger())

		_, err := svc.RegisterParticipant(ctx, 99, 2)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("duplicate registration gets ErrAlreadyRegistered", func(t *testing.T) {
		repo := &fakeEventRepo{events: map[int64]*domain.EventWithOrganizer{10: eventOwnedBy(10, 1)}}
		participants := &fakeParticipantRepo{createErr: domain.ErrAlreadyRegistered}
		svc := NewEventService(repo, participants, &fakeUserRepo{}, nil, testLogger())

		_, err := svc.RegisterParticipant(ctx, 10, 2)
		require.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	})

	t.Run("email failure does not fail registration", func(t *testing.T) {
		repo := &fakeEventRepo{events: map[int64]*domain.EventWithOrganizer{10: eventOwnedBy(10, 1)}}
		emails := &fakeEmailService{confirmErr: errors.New("ses throttled")}
		users := &fakeUserRepo{usersByID: map[int64]*domain.User{2: user}}
		svc := NewEventService(repo, &fakeParticipantRepo{}, users, emails, testLogger())

		p, err := svc.RegisterParticipant(ctx, 10, 2)
		require.NoError(t, err)
		assert.NotNil(t, p)
	})
}

func TestEventService_ListParticipants(t *testing.T) {
	ctx := context.Background()

	t.Run("organizer sees participants", func(t *testing.T) {
		repo := &fakeEventRepo{events: map[int64]*domain.EventWithOrganizer{10: eventOwnedBy(10, 1)}}
		participants := &fakeParticipantRepo{byEvent: map[int64][]*domain.ParticipantInfo{
			10: {{ID: 1, EventID: 10, UserID: 2, Name: "Bob", Email: "b@x.com"}},
		}}
		svc := NewEventService(repo, participants, &fakeUserRepo{}, nil, testLogger())

		got, err := svc.ListParticipants(ctx, 10, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Bob", got[0].Name)
	})

	t.Run("non-organizer gets ErrForbidden", func(t *testing.T) {
		repo := &fakeEventRepo{events: map[int64]*domain.EventWithOrganizer{10: eventOwnedBy(10, 1)}}
		svc := NewEventService(repo, &fakeParticipantRepo{}, &fakeUserRepo{}, nil, testLogger())

		_, err := svc.ListParticipants(ctx, 10, 2)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("no participants returns empty slice", func(t *testing.T) {
		repo := &fakeEventRepo{events: map[int64]*domain.EventWithOrganizer{10: eventOwnedBy(10, 1)}}
		svc := NewEventService(repo, &fakeParticipantRepo{}, &fakeUserRepo{}, nil, testLogger())

		got, err := svc.ListParticipants(ctx, 10, 1)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestEventService_ListEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("empty list returns empty slice", func(t *testing.T) {
		svc := NewEventService(&fakeEventRepo{}, &fakeParticipantRepo{}, &fakeUserRepo{}, nil, testLogger())

		got, err := svc.ListEvents(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
