package server

import (
	"net/http"

	"github.com/seung-2001/plant/internal/model"
)

type commentRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	comments, err := s.CommentStore.GetComments(r.PathValue("id"), limit, offset)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	if comments == nil {
		comments = []*model.Comment{}
	}

	respondJSON(w, http.StatusOK, comments)
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Content == "" {
		respondError(w, http.StatusBadRequest, "content is required")
		return
	}

	c, err := s.CommentStore.CreateComment(r.Context(), r.PathValue("id"), req.Content)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, c)
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Content == "" {
		respondError(w, http.StatusBadRequest, "content is required")
		return
	}

	c, err := s.CommentStore.UpdateComment(r.Context(), r.PathValue("id"), r.PathValue("commentID"), req.Content)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	err := s.CommentStore.DeleteComment(r.Context(), r.PathValue("id"), r.PathValue("commentID"))
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
