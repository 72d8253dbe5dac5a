package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/kunal2899/event-management-api/internal/domain"
)

var eventColumns = []string{"id", "name", "date", "location", "description", "organizer_id", "organizer_name", "created_at", "updated_at"}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr bool
	}{
		{
			name:  "success",
			event: domain.NewEvent("Go Meetup", date, "Berlin", nil, 1, now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WithArgs("Go Meetup", date, "Berlin", nil, int64(1), now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(10)))
			},
			wantID: 10,
		},
		{
			name:  "db error",
			event: domain.NewEvent("Go Meetup", date, "Berlin", nil, 1, now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("success with organizer name", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT e.id, e.name, e.date, e.location, e.description`).
			WithArgs(int64(10)).
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow(int64(10), "Go Meetup", now, "Berlin", "talks and pizza", int64(1), "Ann", now, now))

		repo := NewEventRepository(db)
		e, err := repo.GetByID(ctx, 10)
		require.NoError(t, err)
		require.Equal(t, int64(10), e.ID)
		require.Equal(t, "Ann", e.OrganizerName)
		require.NotNil(t, e.Description)
		require.Equal(t, "talks and pizza", *e.Description)
	})

	t.Run("null description", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT e.id, e.name, e.date, e.location, e.description`).
			WithArgs(int64(10)).
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow(int64(10), "Go Meetup", now, "Berlin", nil, int64(1), "Ann", now, now))

		repo := NewEventRepository(db)
		e, err := repo.GetByID(ctx, 10)
		require.NoError(t, err)
		require.Nil(t, e.Description)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT e.id, e.name, e.date, e.location, e.description`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.GetByID(ctx, 99)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT e.id, e.name, e.date, e.location, e.description`).
		WillReturnRows(sqlmock.NewRows(eventColumns).
			AddRow(int64(1), "Earlier", now, "Berlin", nil, int64(1), "Ann", now, now).
			AddRow(int64(2), "Later", now.Add(time.Hour), "Munich", "desc", int64(2), "Bob", now, now))

	repo := NewEventRepository(db)
	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "Ann", events[0].OrganizerName)
	require.Equal(t, "Bob", events[1].OrganizerName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	date := time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC)
	desc := "updated description"

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events`).
			WithArgs("New Name", date, "Hamburg", desc, int64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "date", "location", "description", "organizer_id", "created_at", "updated_at"}).
				AddRow(int64(10), "New Name", date, "Hamburg", desc, int64(1), now, now))

		repo := NewEventRepository(db)
		e, err := repo.Update(ctx, 10, domain.EventUpdate{Name: "New Name", Date: date, Location: "Hamburg", Description: &desc})
		require.NoError(t, err)
		require.Equal(t, "New Name", e.Name)
		require.Equal(t, int64(1), e.OrganizerID)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events`).
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.Update(ctx, 99, domain.EventUpdate{Name: "x", Date: date, Location: "y"})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepository_DeleteWithParticipants(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes participants then event in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM participants WHERE event_id`).
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM events WHERE id`).
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		repo := NewEventRepository(db)
		require.NoError(t, repo.DeleteWithParticipants(ctx, 10))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("event missing rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM participants WHERE event_id`).
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM events WHERE id`).
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		repo := NewEventRepository(db)
		require.ErrorIs(t, repo.DeleteWithParticipants(ctx, 99), domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("participant delete failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM participants WHERE event_id`).
			WithArgs(int64(10)).
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		repo := NewEventRepository(db)
		require.Error(t, repo.DeleteWithParticipants(ctx, 10))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
