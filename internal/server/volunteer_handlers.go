package server

import (
	"net/http"
	"time"

	"github.com/seung-2001/plant/internal/model"
)

type volunteerRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	StartsAt       string `json:"starts_at"` // RFC3339
	EndsAt         string `json:"ends_at"`   // RFC3339
	RequiredPeople int    `json:"required_people"`
}

// toInput валидирует и переводит запрос в model.VolunteerInput.
// При create все поля обязательны, при update - только присланные.
func (req *volunteerRequest) toInput(requireAll bool) (model.VolunteerInput, string) {
	var input model.VolunteerInput

	if requireAll {
		if req.Title == "" || req.Location == "" || req.StartsAt == "" || req.EndsAt == "" {
			return input, "title, location, starts_at and ends_at are required"
		}
		if req.RequiredPeople <= 0 {
			return input, "required_people must be positive"
		}
	}

	input.Title = req.Title
	input.Description = req.Description
	input.Location = req.Location
	input.RequiredPeople = req.RequiredPeople

	if req.StartsAt != "" {
		t, err := time.Parse(time.RFC3339, req.StartsAt)
		if err != nil {
			return input, "starts_at must be in RFC3339 format"
		}
		input.StartsAt = t
	}
	if req.EndsAt != "" {
		t, err := time.Parse(time.RFC3339, req.EndsAt)
		if err != nil {
			return input, "ends_at must be in RFC3339 format"
		}
		input.EndsAt = t
	}

	if !input.StartsAt.IsZero() && !input.EndsAt.IsZero() && input.EndsAt.Before(input.StartsAt) {
		return input, "ends_at must not be before starts_at"
	}

	return input, ""
}

func (s *Server) handleListVolunteers(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	volunteers, err := s.VolunteerStore.ListVolunteers(limit, offset)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	if volunteers == nil {
		volunteers = []*model.Volunteer{}
	}

	respondJSON(w, http.StatusOK, volunteers)
}

func (s *Server) handleGetVolunteer(w http.ResponseWriter, r *http.Request) {
	v, err := s.VolunteerStore.GetVolunteerById(r.PathValue("id"))
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, v)
}

func (s *Server) handleCreateVolunteer(w http.ResponseWriter, r *http.Request) {
	var req volunteerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input, msg := req.toInput(true)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	v, err := s.VolunteerStore.CreateVolunteer(r.Context(), input)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, v)
}

func (s *Server) handleUpdateVolunteer(w http.ResponseWriter, r *http.Request) {
	var req volunteerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input, msg := req.toInput(false)
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	v, err := s.VolunteerStore.UpdateVolunteer(r.Context(), r.PathValue("id"), input)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, v)
}

func (s *Server) handleDeleteVolunteer(w http.ResponseWriter, r *http.Request) {
	if err := s.VolunteerStore.DeleteVolunteerById(r.Context(), r.PathValue("id")); err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleJoinVolunteer(w http.ResponseWriter, r *http.Request) {
	if err := s.VolunteerStore.JoinVolunteer(r.Context(), r.PathValue("id")); err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleLeaveVolunteer(w http.ResponseWriter, r *http.Request) {
	if err := s.VolunteerStore.LeaveVolunteer(r.Context(), r.PathValue("id")); err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
