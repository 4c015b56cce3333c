package server

import (
	"net/http"

	"github.com/seung-2001/plant/internal/model"
)

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	posts, err := s.PostStore.ListPosts(limit, offset)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	if posts == nil {
		posts = []*model.Post{}
	}

	respondJSON(w, http.StatusOK, posts)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	p, err := s.PostStore.GetPostById(r.PathValue("id"))
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" || req.Content == "" {
		respondError(w, http.StatusBadRequest, "title and content are required")
		return
	}

	p, err := s.PostStore.CreatePost(r.Context(), req.Title, req.Content)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" && req.Content == "" {
		respondError(w, http.StatusBadRequest, "title or content is required")
		return
	}

	p, err := s.PostStore.UpdatePost(r.Context(), r.PathValue("id"), req.Title, req.Content)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.PostStore.DeletePostById(r.Context(), r.PathValue("id")); err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleLikePost(w http.ResponseWriter, r *http.Request) {
	if err := s.PostStore.LikePost(r.Context(), r.PathValue("id")); err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleUnlikePost(w http.ResponseWriter, r *http.Request) {
	if err := s.PostStore.UnlikePost(r.Context(), r.PathValue("id")); err != nil {
		respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
