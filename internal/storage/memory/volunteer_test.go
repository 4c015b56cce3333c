package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seung-2001/plant/internal/model"
	"github.com/seung-2001/plant/internal/volunteer"
	"github.com/seung-2001/plant/models"
)

func volunteerInput(required int) model.VolunteerInput {
	return model.VolunteerInput{
		Title:          "Tree planting",
		Description:    "Planting trees along the embankment",
		Location:       "City embankment",
		StartsAt:       time.Now().Add(48 * time.Hour),
		EndsAt:         time.Now().Add(52 * time.Hour),
		RequiredPeople: required,
	}
}

func TestVolunteerMemoryStorage_CreateVolunteer(t *testing.T) {
	t.Run("Success creation", func(t *testing.T) {
		storage := NewVolunteerMemoryStorage()

		v, err := storage.CreateVolunteer(userContext(1), volunteerInput(5))
		require.NoError(t, err)
		assert.Equal(t, "1", v.ID)
		assert.Equal(t, models.VolunteerStatusOpen, v.Status)
		assert.Equal(t, 5, v.RequiredPeople)
		assert.Equal(t, 0, v.CurrentPeople)
		assert.Equal(t, "1", v.OrganizerID)
	})
}

func TestVolunteerMemoryStorage_UpdateVolunteer(t *testing.T) {
	t.Run("Organizer can update", func(t *testing.T) {
		storage := NewVolunteerMemoryStorage()

		created, err := storage.CreateVolunteer(userContext(1), volunteerInput(5))
		require.NoError(t, err)

		v, err := storage.UpdateVolunteer(userContext(1), created.ID, model.VolunteerInput{Title: "Updated"})
		require.NoError(t, err)
		assert.Equal(t, "Updated", v.Title)
		assert.Equal(t, "City embankment", v.Location)
	})

	t.Run("Non-organizer gets ErrForbidden", func(t *testing.T) {
		storage := NewVolunteerMemoryStorage()

		created, err := storage.CreateVolunteer(userContext(1), volunteerInput(5))
		require.NoError(t, err)

		_, err = storage.UpdateVolunteer(userContext(2), created.ID, model.VolunteerInput{Title: "hijack"})
		assert.ErrorIs(t, err, volunteer.ErrForbidden)
	})
}

func TestVolunteerMemoryStorage_DeleteVolunteerById(t *testing.T) {
	t.Run("Organizer can delete", func(t *testing.T) {
		storage := NewVolunteerMemoryStorage()

		created, err := storage.CreateVolunteer(userContext(1), volunteerInput(5))
		require.NoError(t, err)

		require.NoError(t, storage.DeleteVolunteerById(userContext(1), created.ID))

		_, err = storage.GetVolunteerById(created.ID)
		assert.ErrorIs(t, err, volunteer.ErrNotFound)
	})

	t.Run("Unknown activity returns ErrNotFound", func(t *testing.T) {
		storage := NewVolunteerMemoryStorage()

		err := storage.DeleteVolunteerById(userContext(1), "999")
		assert.ErrorIs(t, err, volunteer.ErrNotFound)
	})
}

func TestVolunteerMemoryStorage_JoinVolunteer(t *testing.T) {
	t.Run("Join then leave restores the counter", func(t *testing.T) {
		storage := NewVolunteerMemoryStorage()

		created, err := storage.CreateVolunteer(userContext(1), volunteerInput(5))
		require.NoError(t, err)

		require.NoError(t, storage.JoinVolunteer(userContext(2), created.ID))

		v, err := storage.GetVolunteerById(created.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, v.CurrentPeople)

		require.NoError(t, storage.LeaveVolunteer(userContext(2), created.ID))

		v, err = storage.GetVolunteerById(created.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, v.CurrentPeople)

		// После выхода можно записаться снова
		require.NoError(t, storage.JoinVolunteer(userContext(2), created.ID))
	})

	t.Run("Double join returns ErrAlreadyJoined", func(t *testing.T) {
		storage := NewVolunteerMemoryStorage()

		created, err := storage.CreateVolunteer(userContext(1), volunteerInput(5))
		require.NoError(t, err)

		require.NoError(t, storage.JoinVolunteer(userContext(2), created.ID))
		err = storage.JoinVolunteer(userContext(2), created.ID)
		assert.ErrorIs(t, err, volunteer.ErrAlreadyJoined)
	})

	t.Run("Joining a full activity returns ErrFull", func(t *testing.T) {
		storage := NewVolunteerMemoryStorage()

		created, err := storage.CreateVolunteer(userContext(1), volunteerInput(2))
		require.NoError(t, err)

		require.NoError(t, storage.JoinVolunteer(userContext(2), created.ID))
		require.NoError(t, storage.JoinVolunteer(userContext(3), created.ID))

		err = storage.JoinVolunteer(userContext(4), created.ID)
		assert.ErrorIs(t, err, volunteer.ErrFull)
	})

	t.Run("Joining a closed activity returns ErrClosed", func(t *testing.T) {
		storage := NewVolunteerMemoryStorage()

		created, err := storage.CreateVolunteer(userContext(1), volunteerInput(5))
		require.NoError(t, err)

		v, err := storage.GetVolunteerById(created.ID)
		require.NoError(t, err)
		v.Status = models.VolunteerStatusClosed

		err = storage.JoinVolunteer(userContext(2), created.ID)
		assert.ErrorIs(t, err, volunteer.ErrClosed)
	})

	t.Run("Concurrent joins never exceed the capacity", func(t *testing.T) {
		storage := NewVolunteerMemoryStorage()

		const capacity = 3
		created, err := storage.CreateVolunteer(userContext(1), volunteerInput(capacity))
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(userID uint) {
				defer wg.Done()
				// ошибки ErrFull здесь ожидаемы
				_ = storage.JoinVolunteer(userContext(userID), created.ID)
			}(uint(i + 2))
		}
		wg.Wait()

		v, err := storage.GetVolunteerById(created.ID)
		require.NoError(t, err)
		assert.Equal(t, capacity, v.CurrentPeople)
	})

	t.Run("Leaving without joining returns ErrNotJoined", func(t *testing.T) {
		storage := NewVolunteerMemoryStorage()

		created, err := storage.CreateVolunteer(userContext(1), volunteerInput(5))
		require.NoError(t, err)

		err = storage.LeaveVolunteer(userContext(2), created.ID)
		assert.ErrorIs(t, err, volunteer.ErrNotJoined)
	})
}
