package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seung-2001/plant/internal/model"
)

const volunteerBody = `{
	"title": "Park cleanup",
	"description": "Cleaning the riverside park",
	"location": "Riverside park",
	"starts_at": "2026-09-12T10:00:00Z",
	"ends_at": "2026-09-12T13:00:00Z",
	"required_people": 2
}`

func TestHandleCreateVolunteer(t *testing.T) {
	t.Run("Success creation returns 201", func(t *testing.T) {
		s := newTestServer()

		rec := doRequest(t, s, http.MethodPost, "/volunteers", volunteerBody, bearerFor(t, 1))

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Park cleanup", body["title"])
		assert.Equal(t, "open", body["status"])
		assert.Equal(t, "1", body["organizer_id"])
	})

	t.Run("Missing fields return 400", func(t *testing.T) {
		s := newTestServer()

		rec := doRequest(t, s, http.MethodPost, "/volunteers",
			`{"title":"no dates"}`, bearerFor(t, 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Broken date format returns 400", func(t *testing.T) {
		s := newTestServer()

		rec := doRequest(t, s, http.MethodPost, "/volunteers", `{
			"title": "Park cleanup",
			"location": "Riverside park",
			"starts_at": "12.09.2026 10:00",
			"ends_at": "2026-09-12T13:00:00Z",
			"required_people": 2
		}`, bearerFor(t, 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("End before start returns 400", func(t *testing.T) {
		s := newTestServer()

		rec := doRequest(t, s, http.MethodPost, "/volunteers", `{
			"title": "Park cleanup",
			"location": "Riverside park",
			"starts_at": "2026-09-12T13:00:00Z",
			"ends_at": "2026-09-12T10:00:00Z",
			"required_people": 2
		}`, bearerFor(t, 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("No token returns 401", func(t *testing.T) {
		s := newTestServer()

		rec := doRequest(t, s, http.MethodPost, "/volunteers", volunteerBody, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandleListVolunteers(t *testing.T) {
	t.Run("Empty list is a JSON array, not null", func(t *testing.T) {
		s := newTestServer()

		rec := doRequest(t, s, http.MethodGet, "/volunteers", "", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("Created activity shows up in the list", func(t *testing.T) {
		s := newTestServer()

		rec := doRequest(t, s, http.MethodPost, "/volunteers", volunteerBody, bearerFor(t, 1))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(t, s, http.MethodGet, "/volunteers", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var volunteers []*model.Volunteer
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &volunteers))
		require.Len(t, volunteers, 1)
		assert.Equal(t, "Park cleanup", volunteers[0].Title)
	})
}

func TestHandleGetVolunteer(t *testing.T) {
	t.Run("Unknown activity returns 404", func(t *testing.T) {
		s := newTestServer()

		rec := doRequest(t, s, http.MethodGet, "/volunteers/999", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleUpdateVolunteer(t *testing.T) {
	t.Run("Organizer can update a single field", func(t *testing.T) {
		s := newTestServer()

		rec := doRequest(t, s, http.MethodPost, "/volunteers", volunteerBody, bearerFor(t, 1))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(t, s, http.MethodPut, "/volunteers/1",
			`{"title":"Updated cleanup"}`, bearerFor(t, 1))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Updated cleanup", body["title"])
		assert.Equal(t, "Riverside park", body["location"])
	})

	t.Run("Non-organizer gets 403", func(t *testing.T) {
		s := newTestServer()

		rec := doRequest(t, s, http.MethodPost, "/volunteers", volunteerBody, bearerFor(t, 1))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(t, s, http.MethodPut, "/volunteers/1",
			`{"title":"hijack"}`, bearerFor(t, 2))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestHandleDeleteVolunteer(t *testing.T) {
	t.Run("Delete then get returns 404", func(t *testing.T) {
		s := newTestServer()

		rec := doRequest(t, s, http.MethodPost, "/volunteers", volunteerBody, bearerFor(t, 1))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(t, s, http.MethodDelete, "/volunteers/1", "", bearerFor(t, 1))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, s, http.MethodGet, "/volunteers/1", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleJoinVolunteer(t *testing.T) {
	t.Run("Join then leave", func(t *testing.T) {
		s := newTestServer()

		rec := doRequest(t, s, http.MethodPost, "/volunteers", volunteerBody, bearerFor(t, 1))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(t, s, http.MethodPost, "/volunteers/1/join", "", bearerFor(t, 2))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, s, http.MethodGet, "/volunteers/1", "", "")
		body := decodeBody(t, rec)
		assert.Equal(t, float64(1), body["current_people"])

		rec = doRequest(t, s, http.MethodPost, "/volunteers/1/leave", "", bearerFor(t, 2))
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, s, http.MethodGet, "/volunteers/1", "", "")
		body = decodeBody(t, rec)
		assert.Equal(t, float64(0), body["current_people"])
	})

	t.Run("Double join returns 409", func(t *testing.T) {
		s := newTestServer()

		rec := doRequest(t, s, http.MethodPost, "/volunteers", volunteerBody, bearerFor(t, 1))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(t, s, http.MethodPost, "/volunteers/1/join", "", bearerFor(t, 2))
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, s, http.MethodPost, "/volunteers/1/join", "", bearerFor(t, 2))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Joining a full activity returns 409", func(t *testing.T) {
		s := newTestServer()

		// required_people = 2
		rec := doRequest(t, s, http.MethodPost, "/volunteers", volunteerBody, bearerFor(t, 1))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(t, s, http.MethodPost, "/volunteers/1/join", "", bearerFor(t, 2))
		require.Equal(t, http.StatusNoContent, rec.Code)
		rec = doRequest(t, s, http.MethodPost, "/volunteers/1/join", "", bearerFor(t, 3))
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doRequest(t, s, http.MethodPost, "/volunteers/1/join", "", bearerFor(t, 4))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Leaving without joining returns 409", func(t *testing.T) {
		s := newTestServer()

		rec := doRequest(t, s, http.MethodPost, "/volunteers", volunteerBody, bearerFor(t, 1))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doRequest(t, s, http.MethodPost, "/volunteers/1/leave", "", bearerFor(t, 2))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
