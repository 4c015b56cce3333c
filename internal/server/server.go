// Package server реализует HTTP JSON API поверх интерфейсов хранилищ.
package server

import (
	"net/http"

	"github.com/seung-2001/plant/internal/auth"
	"github.com/seung-2001/plant/internal/comment"
	"github.com/seung-2001/plant/internal/metrics"
	"github.com/seung-2001/plant/internal/post"
	"github.com/seung-2001/plant/internal/user"
	"github.com/seung-2001/plant/internal/volunteer"
)

// Server служит корневой точкой для всех обработчиков.
// Зависимости (хранилища) внедряются через поля.
type Server struct {
	UserStore      user.UserStorage
	PostStore      post.PostStorage
	CommentStore   comment.CommentStorage
	VolunteerStore volunteer.VolunteerStorage
	AllowedOrigins []string
}

func New(userStore user.UserStorage, postStore post.PostStorage, commentStore comment.CommentStorage, volunteerStore volunteer.VolunteerStorage, allowedOrigins []string) *Server {
	return &Server{
		UserStore:      userStore,
		PostStore:      postStore,
		CommentStore:   commentStore,
		VolunteerStore: volunteerStore,
		AllowedOrigins: allowedOrigins,
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /me", auth.RequireAuth(s.handleProfile))
	mux.HandleFunc("PUT /me/password", auth.RequireAuth(s.handleUpdatePassword))
	mux.HandleFunc("DELETE /me", auth.RequireAuth(s.handleDeleteAccount))

	mux.HandleFunc("GET /posts", s.handleListPosts)
	mux.HandleFunc("POST /posts", auth.RequireAuth(s.handleCreatePost))
	mux.HandleFunc("GET /posts/{id}", s.handleGetPost)
	mux.HandleFunc("PUT /posts/{id}", auth.RequireAuth(s.handleUpdatePost))
	mux.HandleFunc("DELETE /posts/{id}", auth.RequireAuth(s.handleDeletePost))
	mux.HandleFunc("POST /posts/{id}/like", auth.RequireAuth(s.handleLikePost))
	mux.HandleFunc("DELETE /posts/{id}/like", auth.RequireAuth(s.handleUnlikePost))

	mux.HandleFunc("GET /posts/{id}/comments", s.handleListComments)
	mux.HandleFunc("POST /posts/{id}/comments", auth.RequireAuth(s.handleCreateComment))
	mux.HandleFunc("PUT /posts/{id}/comments/{commentID}", auth.RequireAuth(s.handleUpdateComment))
	mux.HandleFunc("DELETE /posts/{id}/comments/{commentID}", auth.RequireAuth(s.handleDeleteComment))

	mux.HandleFunc("GET /volunteers", s.handleListVolunteers)
	mux.HandleFunc("POST /volunteers", auth.RequireAuth(s.handleCreateVolunteer))
	mux.HandleFunc("GET /volunteers/{id}", s.handleGetVolunteer)
	mux.HandleFunc("PUT /volunteers/{id}", auth.RequireAuth(s.handleUpdateVolunteer))
	mux.HandleFunc("DELETE /volunteers/{id}", auth.RequireAuth(s.handleDeleteVolunteer))
	mux.HandleFunc("POST /volunteers/{id}/join", auth.RequireAuth(s.handleJoinVolunteer))
	mux.HandleFunc("POST /volunteers/{id}/leave", auth.RequireAuth(s.handleLeaveVolunteer))

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	return mux
}

// Handler собирает полную цепочку: request-id -> логирование -> CORS -> метрики -> маршруты
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.routes()
	h = metrics.Middleware(h)
	h = s.corsMiddleware(h)
	h = loggingMiddleware(h)
	h = requestIDMiddleware(h)
	return h
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
