package server

import (
	"net/http"

	"github.com/seung-2001/plant/internal/auth"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
}

type passwordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		respondError(w, http.StatusBadRequest, "email, password and name are required")
		return
	}

	u, err := s.UserStore.RegisterUser(req.Email, req.Password, req.Name)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, u, err := s.UserStore.LoginUser(req.Email, req.Password)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := s.UserStore.GetUserByID(userID)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, u)
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "current_password and new_password are required")
		return
	}

	if err := s.UserStore.UpdatePassword(r.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.UserStore.DeleteUser(r.Context()); err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
