package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/seung-2001/plant/internal/comment"
	"github.com/seung-2001/plant/internal/post"
	"github.com/seung-2001/plant/internal/user"
	"github.com/seung-2001/plant/internal/volunteer"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondStorageError переводит ошибки хранилища в коды ответов:
// 404 - нет такой записи, 403 - не автор/организатор, 409 - конфликт,
// все остальное - 500 с логированием оригинальной ошибки только на сервере
func respondStorageError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, post.ErrNotFound),
		errors.Is(err, comment.ErrNotFound),
		errors.Is(err, comment.ErrPostNotFound),
		errors.Is(err, volunteer.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, post.ErrForbidden),
		errors.Is(err, comment.ErrForbidden),
		errors.Is(err, volunteer.ErrForbidden):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, post.ErrAlreadyLiked),
		errors.Is(err, post.ErrNotLiked),
		errors.Is(err, volunteer.ErrFull),
		errors.Is(err, volunteer.ErrClosed),
		errors.Is(err, volunteer.ErrAlreadyJoined),
		errors.Is(err, volunteer.ErrNotJoined):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, user.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, user.ErrWrongPassword):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[%s] %s %s: %v", requestIDFromContext(r.Context()), r.Method, r.URL.Path, err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// parsePagination читает page/limit из query и возвращает limit и offset для SQL
func parsePagination(r *http.Request) (limit, offset int) {
	limit = defaultLimit
	page := 1

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}

	return limit, (page - 1) * limit
}
